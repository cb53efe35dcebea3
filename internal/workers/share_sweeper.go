package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-vault-keeper/internal/config"
	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/service"
)

// ShareSweeper periodically revokes expired shares. Expiry is enforced on
// every read, so the sweep only keeps listings and is_shared flags tidy.
type ShareSweeper struct {
	job      service.ShareSweepJob
	interval time.Duration

	logger *logger.Logger
}

func NewShareSweeper(job service.ShareSweepJob, cfg config.Workers, logger *logger.Logger) *ShareSweeper {
	return &ShareSweeper{job: job, interval: cfg.SweepInterval, logger: logger}
}

// Run starts the sweep job unless the interval is zero.
func (s *ShareSweeper) Run(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Info().Str("func", "ShareSweeper.Run").Msg("share sweep disabled")
		return
	}
	s.logger.Info().Dur("interval", s.interval).Msg("starting share sweep")
	s.job.Start(ctx, s.interval)
}

func (s *ShareSweeper) Stop() {
	s.job.Stop()
}
