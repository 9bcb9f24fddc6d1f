package cleanup

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/CongDon1207/Four-Connect/pkg/logger"
)

// Evictor drops sessions that have been idle longer than the given duration
// and reports how many it removed.
type Evictor interface {
	CleanupIdleSessions(idle time.Duration) int
}

type Worker struct {
	sessions Evictor
	idle     time.Duration
	interval time.Duration
	log      zerolog.Logger
}

func NewWorker(sessions Evictor, idle, interval time.Duration) *Worker {
	return &Worker{
		sessions: sessions,
		idle:     idle,
		interval: interval,
		log:      logger.Component("cleanup"),
	}
}

// Run sweeps once immediately and then every interval until ctx is done.
func (w *Worker) Run(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Dur("idle", w.idle).Msg("background worker started")
	w.runCleanup()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("background worker stopped")
			return
		case <-ticker.C:
			w.runCleanup()
		}
	}
}

func (w *Worker) runCleanup() int {
	removed := w.sessions.CleanupIdleSessions(w.idle)
	w.log.Debug().Int("removed", removed).Msg("cleanup pass finished")
	return removed
}
