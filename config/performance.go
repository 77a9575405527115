package config

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func PerformanceLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// Process request
		c.Next()

		// Calculate latency
		latency := time.Since(start)

		GetLogger().WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": latency.String(),
		}).Info("request")

		// Alert for slow requests
		if latency > 200*time.Millisecond {
			GetLogger().WithFields(logrus.Fields{
				"method":  c.Request.Method,
				"path":    c.Request.URL.Path,
				"latency": latency.String(),
			}).Warn("slow request")
		}
	}
}
