// Package media wraps the external tools this repo delegates audio work to:
// ffmpeg for clip extraction and ffplay for segment preview.
package media

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/shopspring/decimal"
)

// ClipRequest describes one extraction window. Start and Duration are decimal
// seconds so the rendered command-line arguments never pick up float
// formatting artifacts.
type ClipRequest struct {
	SourcePath string
	OutPath    string
	Start      decimal.Decimal
	Duration   decimal.Decimal
}

// Clipper extracts one time window from an audio file into a standalone clip.
type Clipper interface {
	Clip(ctx context.Context, req ClipRequest) error
}

// Target clip format: mono, 16-bit samples, 24 kHz.
const (
	clipChannels   = "1"
	clipSampleFmt  = "s16"
	clipSampleRate = "24000"
)

// FFmpeg is the production Clipper. The binary can be overridden with the
// FFMPEG_BIN environment variable.
type FFmpeg struct {
	Bin string
}

func NewFFmpeg() *FFmpeg {
	bin := os.Getenv("FFMPEG_BIN")
	if bin == "" {
		bin = "ffmpeg"
	}
	return &FFmpeg{Bin: bin}
}

// Clip runs one ffmpeg invocation for the requested window. On a non-zero
// exit the captured stderr is folded into the returned error so the caller
// can log the tool's diagnostics.
func (f *FFmpeg) Clip(ctx context.Context, req ClipRequest) error {
	cmd := exec.CommandContext(ctx, f.Bin,
		"-y",
		"-i", req.SourcePath,
		"-ss", req.Start.String(),
		"-t", req.Duration.String(),
		"-ar", clipSampleRate,
		"-ac", clipChannels,
		"-sample_fmt", clipSampleFmt,
		req.OutPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
