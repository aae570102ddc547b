// Package workers runs periodic maintenance jobs for the worker process.
package workers

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"linkhub/internal/engine/appearance"
)

type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Every runs job immediately and then on each interval until ctx is done.
// Failures are logged and the schedule continues.
func Every(ctx context.Context, job Job) {
	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		runOnce(ctx, job)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func runOnce(ctx context.Context, job Job) {
	start := time.Now()
	if err := job.Run(ctx); err != nil {
		log.Error().Err(err).Str("job", job.Name).Msg("job failed")
		return
	}
	log.Debug().Str("job", job.Name).Dur("took", time.Since(start)).Msg("job finished")
}

// ColorCleanup nulls stored custom colours that are plain black or white.
func ColorCleanup(svc *appearance.Service, interval time.Duration) Job {
	return Job{
		Name:     "appearance_color_cleanup",
		Interval: interval,
		Run: func(ctx context.Context) error {
			n, err := svc.CleanupCustomColors(ctx)
			if err != nil {
				return err
			}
			if n > 0 {
				log.Info().Int64("rows", n).Msg("cleared black/white custom colours")
			}
			return nil
		},
	}
}
