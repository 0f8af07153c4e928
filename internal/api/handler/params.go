package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPerPage        = 10
	defaultMessagePerPage = 20
	maxPerPage            = 100
)

// pathID parses a positive integer path parameter. On failure it writes
// a 400 and returns false; callers must return immediately.
func pathID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a positive integer"})
		return 0, false
	}
	return id, true
}

// queryInt reads an integer query parameter, zero when absent or junk.
func queryInt(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}

// normalizePage applies the pagination defaults and the per-page cap.
func normalizePage(page, perPage, defaultSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultSize
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}
