package daemon

import (
	"context"
	"log/slog"
	"time"

	"github.com/1broseidon/foliodesk/internal/gallery"
	"github.com/1broseidon/foliodesk/internal/metrics"
)

// SamplerConfig holds configuration for the sampler.
type SamplerConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Sampler periodically measures the persisted gallery and publishes the
// figures as metrics.
type Sampler struct {
	interval time.Duration
	gallery  *gallery.Gallery
	logger   *slog.Logger
}

// NewSampler creates a sampler. The interval defaults to 30s.
func NewSampler(cfg SamplerConfig, gal *gallery.Gallery) *Sampler {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Sampler{interval: interval, gallery: gal, logger: logger}
}

// Run samples on every tick. Blocks until ctx is cancelled.
func (s *Sampler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Debug("gallery sampler started", "interval", s.interval)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SampleNow(ctx)
		}
	}
}

// SampleNow takes one measurement. Not-yet-loaded galleries are skipped.
func (s *Sampler) SampleNow(ctx context.Context) {
	defer func() {
		if err := recover(); err != nil {
			s.logger.Error("sampler panic recovered", "error", err)
		}
	}()

	if !s.gallery.Ready() {
		return
	}
	n, err := s.gallery.Usage(ctx)
	if err != nil {
		s.logger.Warn("sampler: failed to measure gallery", "error", err)
		return
	}
	metrics.SetGalleryUsage(len(s.gallery.Images()), n)
}
