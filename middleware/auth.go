package middleware

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// AdminAuth 管理口令校验，口令从 ADMIN_TOKEN 环境变量读取
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := os.Getenv("ADMIN_TOKEN")
		if token == "" || c.GetHeader("Authorization") != token {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "未授权"})
			c.Abort()
			return
		}
		c.Next()
	}
}
