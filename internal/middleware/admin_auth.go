package middleware

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mkt-settle-api/internal/config"
	"mkt-settle-api/internal/dal"
	rediskey "mkt-settle-api/internal/types/redis-key"
	"mkt-settle-api/internal/utils"
)

// AdminAuth 管理面写操作鉴权。
// HMAC-SHA256(body + timestamp + nonce)，时间窗限制重放，nonce 一次性。
func AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		sig := c.GetHeader("X-Signature")
		tsStr := c.GetHeader("X-Timestamp")
		nonce := c.GetHeader("X-Nonce")
		if sig == "" || tsStr == "" || nonce == "" {
			c.JSON(401, gin.H{"code": 401, "msg": "missing signature headers"})
			c.Abort()
			return
		}
		if !utils.IsValidNonce(nonce) {
			c.JSON(401, gin.H{"code": 401, "msg": "bad nonce"})
			c.Abort()
			return
		}

		// X-Timestamp 毫秒时间戳
		window := int64(config.C.Security.SignWindowSec)
		ts, err := utils.ParseTimestamp(tsStr)
		if err != nil || !utils.IsTimestampValid(ts, time.Duration(window)*time.Second) {
			c.JSON(401, gin.H{"code": 401, "msg": "timestamp out of window"})
			c.Abort()
			return
		}

		body, _ := io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		payload := append(append([]byte{}, body...), []byte(tsStr+nonce)...)
		if !utils.VerifyHmacSHA256(payload, config.C.Security.AdminKey, sig) {
			c.JSON(401, gin.H{"code": 401, "msg": "bad signature"})
			c.Abort()
			return
		}

		// nonce 只允许用一次，窗口两倍时长后自然过期
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		ok, err := dal.RedisClient.SetNX(ctx, rediskey.NonceKey(nonce), 1, time.Duration(2*window)*time.Second).Result()
		if err == nil && !ok {
			c.JSON(401, gin.H{"code": 401, "msg": "nonce replayed"})
			c.Abort()
			return
		}

		c.Next()
	}
}
