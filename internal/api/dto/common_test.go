package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewListResponse(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		page      int
		perPage   int
		wantPages int
	}{
		{name: "exact multiple", total: 20, page: 1, perPage: 10, wantPages: 2},
		{name: "partial last page", total: 21, page: 3, perPage: 10, wantPages: 3},
		{name: "single page", total: 3, page: 1, perPage: 10, wantPages: 1},
		{name: "empty result still reports one page", total: 0, page: 1, perPage: 10, wantPages: 1},
		{name: "per page larger than total", total: 5, page: 1, perPage: 100, wantPages: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewListResponse([]string{}, tt.total, tt.page, tt.perPage)

			assert.Equal(t, tt.total, resp.Total)
			assert.Equal(t, tt.wantPages, resp.Pages)
			assert.Equal(t, tt.page, resp.CurrentPage)
		})
	}
}

func TestFormatTime(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	ts := time.Date(2025, 3, 14, 9, 26, 53, 0, loc)

	assert.Equal(t, "2025-03-14T02:26:53Z", formatTime(ts))

	assert.Nil(t, formatTimePtr(nil))
	got := formatTimePtr(&ts)
	assert.Equal(t, "2025-03-14T02:26:53Z", *got)
}
