package utils

import (
	"github.com/gin-gonic/gin"
)

// Error 统一错误出口，响应体固定为 {"error": msg}
func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// AbortError 中间件用，写错误并终止后续 handler
func AbortError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
