package probe

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/narwhalmedia/splice/internal/domain/catalog"
)

// Chain asks each prober in turn until one handles the content type
type Chain []catalog.Prober

// Probe implements catalog.Prober. A prober that fails for a type it
// handles ends the chain with that error.
func (c Chain) Probe(ctx context.Context, path, mimeType string) (time.Duration, error) {
	for _, p := range c {
		d, err := p.Probe(ctx, path, mimeType)
		if errors.Is(err, catalog.ErrProbeUnsupported) {
			continue
		}
		return d, err
	}
	return 0, catalog.ErrProbeUnsupported
}

// NewDefault returns the WAV reader followed by ffprobe when it is installed
func NewDefault(ffprobePath string, timeout time.Duration, logger *zap.Logger) Chain {
	chain := Chain{WAV{}}

	ff, err := NewFFprobe(ffprobePath, timeout, logger)
	if err != nil {
		logger.Warn("ffprobe unavailable, non-WAV media will use the fallback duration", zap.Error(err))
		return chain
	}
	return append(chain, ff)
}
