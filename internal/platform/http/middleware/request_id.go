// Package middleware はサーバー全体に適用する gin ミドルウェアを提供します。
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader はリクエストIDを運ぶヘッダー名です。
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey は gin.Context に保存する際のキーです。
	RequestIDKey = "request_id"
)

// RequestID は受信ヘッダーのIDを引き継ぎ、無ければ UUID を採番します。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)
		c.Set(RequestIDKey, id)
		c.Next()
	}
}

// GetRequestID returns the id stored by RequestID, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
