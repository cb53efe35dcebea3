package server

import (
	"context"
	"os/signal"
	"sync"
	"syscall"

	"github.com/MKhiriev/go-vault-keeper/internal/logger"
	"github.com/MKhiriev/go-vault-keeper/internal/workers"
)

type server struct {
	workers *workers.Workers
	logger  *logger.Logger

	stopOnce sync.Once
}

func NewServer(ws *workers.Workers, logger *logger.Logger) (Server, error) {
	if ws == nil {
		return nil, errNoWorkers
	}
	logger.Info().Msg("creating vault daemon...")

	return &server{workers: ws, logger: logger}, nil
}

func (s *server) RunServer() {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	s.run(ctx)
}

// Shutdown stops the workers. Calling it more than once is a no-op.
func (s *server) Shutdown() {
	s.stopOnce.Do(func() {
		s.workers.Stop()
	})
}

// run starts the workers and blocks until ctx is done.
func (s *server) run(ctx context.Context) {
	s.logger.Info().Msg("launching workers")
	s.workers.Run(ctx)

	<-ctx.Done()

	s.Shutdown()
	s.logger.Info().Msg("vault daemon shut down gracefully")
}
