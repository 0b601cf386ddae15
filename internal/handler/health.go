package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/Pazh/alami-b2b-admin-sub000/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Health reports Redis connectivity and the upstream circuit state. Never
// exposes credentials or internals.
func Health(rdb *redis.Client, cb *infra.CircuitBreaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		redisStatus := "connected"
		if rdb.Ping(ctx).Err() != nil {
			redisStatus = "error"
		}

		upstream := "closed"
		if cb != nil {
			upstream = cb.State().String()
		}

		status := http.StatusOK
		if redisStatus != "connected" || upstream == "open" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":       status == http.StatusOK,
			"redis":    redisStatus,
			"upstream": upstream,
		})
	}
}
