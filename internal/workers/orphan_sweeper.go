// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-file-keeper/internal/logger"
	"github.com/MKhiriev/go-file-keeper/internal/service"
)

// orphanSweeper periodically removes blobs that no registry row references.
// Such blobs remain when a delete removed the row but failed to remove the
// blob, or when an upload rollback could not clean up.
type orphanSweeper struct {
	fileService service.FileService
	interval    time.Duration
	grace       time.Duration
	now         func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewOrphanSweeper creates a sweeper that runs every interval and only
// considers blobs older than grace, so uploads still in flight are never
// collected. The sweeper is idle until Run is called.
func NewOrphanSweeper(fileService service.FileService, interval, grace time.Duration, logger *logger.Logger) Worker {
	return &orphanSweeper{
		fileService: fileService,
		interval:    interval,
		grace:       grace,
		now:         time.Now,
		logger:      logger,
	}
}

// Run implements Worker. It stops any previously running loop, then
// launches a goroutine that sweeps on every tick until ctx is cancelled or
// Stop is called.
func (s *orphanSweeper) Run(ctx context.Context) {
	s.Stop()

	s.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()
		t := time.NewTicker(s.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				s.sweep(jobCtx)
			}
		}
	}()
}

// Stop implements Worker.
func (s *orphanSweeper) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}

func (s *orphanSweeper) sweep(ctx context.Context) {
	removed, err := s.fileService.SweepOrphans(ctx, s.now().Add(-s.grace))
	if err != nil {
		s.logger.Err(err).Str("func", "*orphanSweeper.sweep").Msg("orphan sweep failed")
		return
	}
	if removed > 0 {
		s.logger.Info().Int("removed", removed).Msg("orphan blobs removed")
	}
}
