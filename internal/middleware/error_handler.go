package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/Pazh/alami-b2b-admin-sub000/internal/apierror"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrorHandler catches errors attached to the Gin context and renders them
// through the kind → status mapping. Upstream bodies and stack traces are
// never exposed to clients.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		kind := apperr.KindOf(err)
		status := apierror.StatusFor(kind)

		evt := log.Error()
		if status < http.StatusInternalServerError {
			evt = log.Warn()
		}
		evt.
			Str("request_id", c.GetString(RequestIDKey)).
			Str("path", c.FullPath()).
			Str("method", c.Request.Method).
			Str("kind", kind.String()).
			Err(err).
			Msg("request failed")

		if c.Writer.Written() {
			// The handler already rendered the response; this pass only logs.
			return
		}
		var ae *apperr.Error
		if errors.As(err, &ae) && status < http.StatusInternalServerError {
			c.AbortWithStatusJSON(status, apierror.New(ae.Msg))
			return
		}
		c.AbortWithStatusJSON(status, apierror.New(http.StatusText(status)))
	}
}

// Recovery converts panics into 500 responses.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Str("request_id", c.GetString(RequestIDKey)).
					Interface("panic", r).
					Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New("internal server error"))
			}
		}()
		c.Next()
	}
}

// Logger logs each request with method, path, status, latency and request_id.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info().
			Str("request_id", c.GetString(RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}
