// Package probe reads playable lengths of uploaded media files.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/narwhalmedia/splice/internal/domain/catalog"
)

type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// FFprobe shells out to ffprobe for video and audio containers
type FFprobe struct {
	binary  string
	timeout time.Duration
	logger  *zap.Logger
}

// NewFFprobe resolves the ffprobe binary from PATH or an explicit path
func NewFFprobe(binary string, timeout time.Duration, logger *zap.Logger) (*FFprobe, error) {
	if binary == "" {
		binary = "ffprobe"
	}
	path, err := exec.LookPath(binary)
	if err != nil {
		return nil, fmt.Errorf("ffprobe not found: %w", err)
	}

	return &FFprobe{
		binary:  path,
		timeout: timeout,
		logger:  logger.Named("ffprobe"),
	}, nil
}

// Probe implements catalog.Prober
func (p *FFprobe) Probe(ctx context.Context, path, mimeType string) (time.Duration, error) {
	if !strings.HasPrefix(mimeType, "video/") && !strings.HasPrefix(mimeType, "audio/") {
		return 0, catalog.ErrProbeUnsupported
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, p.binary,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		path,
	)

	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	d, err := parseFFprobeOutput(output)
	if err != nil {
		return 0, err
	}
	p.logger.Debug("probed media", zap.String("path", path), zap.Duration("duration", d))
	return d, nil
}

func parseFFprobeOutput(output []byte) (time.Duration, error) {
	var probe ffprobeOutput
	if err := json.Unmarshal(output, &probe); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	seconds, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil || seconds < 0 {
		return 0, fmt.Errorf("ffprobe reported no usable duration %q", probe.Format.Duration)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}
