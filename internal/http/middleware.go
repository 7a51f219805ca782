package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"taskpilot/pkg/translator"
)

const (
	headerRequestID = "X-Request-ID"

	ctxKeyRequestID = "request_id"
	ctxKeyLang      = "lang"
)

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Accept-Language, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Expose-Headers", headerRequestID)
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// requestIDMiddleware keeps an inbound X-Request-ID or mints a new one, and
// echoes it on the response.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(ctxKeyRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

func accessLogMiddleware(logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		entry := loggerFrom(c, logger).WithFields(logrus.Fields{
			"status":     c.Writer.Status(),
			"method":     c.Request.Method,
			"path":       path,
			"ip":         c.ClientIP(),
			"user_agent": c.Request.UserAgent(),
			"latency":    time.Since(start),
		})
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}

		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Error("http request")
			return
		}
		entry.Info("http request")
	}
}

func languageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ctxKeyLang, translator.Match(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

func langFrom(c *gin.Context) string {
	if lang := c.GetString(ctxKeyLang); lang != "" {
		return lang
	}
	return translator.LanguageEn
}

func loggerFrom(c *gin.Context, logger logrus.FieldLogger) logrus.FieldLogger {
	if id := c.GetString(ctxKeyRequestID); id != "" {
		return logger.WithField(ctxKeyRequestID, id)
	}
	return logger
}
