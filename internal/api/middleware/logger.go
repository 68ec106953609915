package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"agency-hub/internal/pkg/logger"
)

// LoggerMiddleware access log
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		cost := time.Since(start)

		fields := []zap.Field{
			zap.String("ip", c.ClientIP()),
			zap.String("user-agent", c.Request.UserAgent()),
			zap.String("errors", c.Errors.ByType(gin.ErrorTypePrivate).String()),
		}
		if claims, ok := GetPrincipal(c); ok {
			fields = append(fields, zap.String("user_id", claims.Subject))
		}

		logger.Info(fmt.Sprintf("%s %s %s %v %.3fs %v", c.Request.Proto, c.Request.Method, path, c.Writer.Status(), cost.Seconds(), query),
			fields...,
		)
	}
}
