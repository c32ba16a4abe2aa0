package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// requestIDKey 在 gin.Context 里的键名，Logger 中间件按此取值
	requestIDKey = "request_id"

	// requestIDMaxLen 限制外部传入的 X-Request-ID 长度，超长视为非法重新生成
	requestIDMaxLen = 64
)

// RequestID 链路追踪 ID 中间件
// 优先沿用调用方传入的 X-Request-ID（网关或前端已生成时保持一致），
// 缺失或超长时生成 UUID，并回写到响应头供客户端对账。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.New().String()
		}

		c.Set(requestIDKey, rid)
		c.Header("X-Request-ID", rid)

		c.Next()
	}
}
