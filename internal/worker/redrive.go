package worker

// redrive.go
// Background goroutine that periodically moves dead-lettered notice jobs
// back onto their source queue for another round of attempts. Skips ticks
// while the data service circuit breaker is open — a notice job that failed
// because the upstream is down will only fail again.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Pazh/alami-b2b-admin-sub000/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	redriveTickInterval = 5 * time.Minute
	redriveBatchSize    = 10
)

// RedriveConfig holds the dependencies of the redrive goroutine.
type RedriveConfig struct {
	RDB *redis.Client
	CB  *infra.CircuitBreaker
}

// StartRedrive launches a goroutine that ticks every few minutes and requeues
// a bounded batch of DLQ entries. Respects the context for graceful shutdown.
func StartRedrive(ctx context.Context, cfg RedriveConfig) {
	go func() {
		ticker := time.NewTicker(redriveTickInterval)
		defer ticker.Stop()

		log.Info().Msg("redrive: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("redrive: shutting down")
				return
			case <-ticker.C:
				redriveTick(ctx, cfg)
			}
		}
	}()
}

func redriveTick(ctx context.Context, cfg RedriveConfig) {
	if cfg.CB.State() == infra.CBOpen {
		log.Debug().Msg("redrive: circuit breaker is open, skipping tick")
		return
	}

	dlqKey := DLQPrefix + QueueNotice
	for i := 0; i < redriveBatchSize; i++ {
		raw, err := cfg.RDB.RPop(ctx, dlqKey).Result()
		if err != nil {
			return // empty DLQ or redis unavailable
		}

		var entry DLQEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			log.Error().Err(err).Msg("redrive: corrupt DLQ entry dropped")
			continue
		}

		// Attempts reset so the job gets a fresh round before re-DLQ.
		job := Job{Type: entry.JobType, Payload: entry.Payload}
		encoded, err := json.Marshal(job)
		if err != nil {
			continue
		}
		if err := cfg.RDB.LPush(ctx, entry.OriginalQueue, encoded).Err(); err != nil {
			log.Error().Err(err).Msg("redrive: requeue failed")
			return
		}
		log.Info().Str("job_type", entry.JobType).Msg("redrive: job requeued from DLQ")
	}
}
