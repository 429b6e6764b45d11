package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// BoolQuery parses an optional boolean query parameter; nil means unset.
func BoolQuery(c *gin.Context, name string) (*bool, error) {
	raw, ok := c.GetQuery(name)
	if !ok {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s parameter", name)
	}
	return &v, nil
}
