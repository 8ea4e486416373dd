package httpresp

import "github.com/gin-gonic/gin"

// ListResponse is the envelope for collection endpoints (bookings,
// resources, users, audit logs).
type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func OK(c *gin.Context, data any) {
	c.JSON(200, data)
}

// List wraps a slice in the standard envelope. Total counts the page
// actually returned, not the table.
func List[T any](c *gin.Context, data []T) {
	c.JSON(200, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}
