package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Timeout ограничивает время обработки запроса; дедлайн доходит до запросов в БД через context.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if uid, ok := c.Get(CtxUserID); ok {
			fields = append(fields, zap.Any("user_id", uid))
		}
		switch {
		case c.Writer.Status() >= 500:
			log.Error("запрос завершился ошибкой", fields...)
		case c.Writer.Status() >= 400:
			log.Warn("запрос отклонён", fields...)
		default:
			log.Info("запрос обработан", fields...)
		}
	}
}
