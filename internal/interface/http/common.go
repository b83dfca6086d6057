package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/listinker/listinker-api/internal/apperror"
	"github.com/listinker/listinker-api/pkg/response"
)

// fail maps a service error onto the HTTP envelope. Validation errors
// carry the offending field as detail.
func fail(c *gin.Context, err error) {
	status := apperror.HTTPStatus(err)
	var detail any
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Field != "" {
		detail = map[string]string{appErr.Field: appErr.Message}
	}
	response.Error[any](c, status, err.Error(), detail)
}

// queryInt reads an integer query parameter, returning def when absent
// or malformed.
func queryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// queryIntPtr reads an optional integer query parameter.
func queryIntPtr(c *gin.Context, name string) *int {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

// pageParams reads page/page_size with bounds applied to page_size.
func pageParams(c *gin.Context, defaultSize, maxSize int) (page, pageSize int, ok bool) {
	page = queryInt(c, "page", 0)
	if page < 1 {
		return 0, 0, false
	}
	pageSize = queryInt(c, "page_size", defaultSize)
	if pageSize < 1 {
		pageSize = defaultSize
	}
	if pageSize > maxSize {
		pageSize = maxSize
	}
	return page, pageSize, true
}
