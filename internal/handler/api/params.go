package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// pageParams reads the page/size query pair; out-of-range values are
// normalized downstream.
func pageParams(c *gin.Context) (page, size int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ = strconv.Atoi(c.DefaultQuery("size", "20"))
	return page, size
}
