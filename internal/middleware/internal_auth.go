package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mkt-settle-api/internal/config"
	"mkt-settle-api/internal/utils"
)

// InternalAuth 内部服务间调用鉴权：静态 Token + 内网来源
func InternalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("X-Internal-Token")
		if token == "" || token != config.C.Security.InternalToken {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code": 401,
				"msg":  "invalid internal token",
			})
			c.Abort()
			return
		}

		ip := utils.GetRealClientIP(c)
		whitelist := []string{"127.0.0.1", "192.168.", "10.", "::1"}
		allowed := false
		for _, prefix := range whitelist {
			if strings.HasPrefix(ip, prefix) {
				allowed = true
				break
			}
		}
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{
				"code": 403,
				"msg":  "ip not allowed: " + ip,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
