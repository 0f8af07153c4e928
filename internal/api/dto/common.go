package dto

import "time"

// ListResponse is the envelope every list endpoint responds with.
type ListResponse struct {
	Items       interface{} `json:"items"`
	Total       int         `json:"total"`
	Pages       int         `json:"pages"`
	CurrentPage int         `json:"current_page"`
}

// NewListResponse wraps items with the pagination envelope. Pages is
// computed from total and per_page; an empty result still reports page 1.
func NewListResponse(items interface{}, total, page, perPage int) ListResponse {
	pages := 0
	if perPage > 0 {
		pages = (total + perPage - 1) / perPage
	}
	if pages == 0 {
		pages = 1
	}
	return ListResponse{
		Items:       items,
		Total:       total,
		Pages:       pages,
		CurrentPage: page,
	}
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}
