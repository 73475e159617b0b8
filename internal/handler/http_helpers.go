package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func parseIntParam(c *gin.Context, key string) (int, error) {
	raw := strings.TrimSpace(c.Param(key))
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return value, nil
}

// previewRequested 只有 ?preview=true 才开启预览模式。
func previewRequested(c *gin.Context) bool {
	return c.Query("preview") == "true"
}
