package workers

import (
	"context"

	"github.com/MKhiriev/go-file-keeper/internal/config"
	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the background workers enabled by cfg. The orphan
// sweeper is enabled by a positive sweep interval.
func NewWorkers(services *service.Services, cfg config.Workers, logger *logger.Logger) *Workers {
	w := &Workers{}

	if cfg.SweepInterval > 0 {
		w.workers = append(w.workers, NewOrphanSweeper(services.FileService, cfg.SweepInterval, cfg.SweepGrace, logger))
	}

	logger.Info().Int("count", len(w.workers)).Msg("workers created")
	return w
}

func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}

func (w *Workers) Stop() {
	for _, worker := range w.workers {
		worker.Stop()
	}
}
