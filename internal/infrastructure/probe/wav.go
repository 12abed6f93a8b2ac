package probe

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-audio/wav"

	"github.com/narwhalmedia/splice/internal/domain/catalog"
)

// WAV reads durations from RIFF/WAVE headers without external tools
type WAV struct{}

// Probe implements catalog.Prober
func (WAV) Probe(ctx context.Context, path, mimeType string) (time.Duration, error) {
	if !isWAV(mimeType) {
		return 0, catalog.ErrProbeUnsupported
	}

	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return 0, fmt.Errorf("%s is not a valid WAV file", path)
	}

	d, err := decoder.Duration()
	if err != nil {
		return 0, fmt.Errorf("failed to read WAV duration: %w", err)
	}
	return d, nil
}

func isWAV(mimeType string) bool {
	switch mimeType {
	case "audio/wav", "audio/x-wav", "audio/wave", "audio/vnd.wave":
		return true
	}
	return false
}
