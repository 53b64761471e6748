package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Player previews one time window of an audio file. Implementations own their
// whole playback lifecycle; nothing about playback state crosses back into
// the caller.
type Player interface {
	Play(ctx context.Context, audioPath string, start, end float64) error
}

// FFplay plays a segment through the ffplay binary (FFPLAY_BIN overrides).
type FFplay struct {
	Bin string
}

func NewFFplay() *FFplay {
	bin := os.Getenv("FFPLAY_BIN")
	if bin == "" {
		bin = "ffplay"
	}
	return &FFplay{Bin: bin}
}

func (f *FFplay) Play(ctx context.Context, audioPath string, start, end float64) error {
	if end <= start {
		return fmt.Errorf("invalid playback interval: start=%v end=%v", start, end)
	}
	dur := decimal.NewFromFloat(end).Sub(decimal.NewFromFloat(start))
	cmd := exec.CommandContext(ctx, f.Bin,
		"-nodisp", "-autoexit",
		"-loglevel", "error",
		"-ss", decimal.NewFromFloat(start).String(),
		"-t", dur.String(),
		audioPath,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffplay: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Preview fires playback on its own goroutine so the caller never blocks on
// the decoder. Errors are logged, not returned; there is no handle to join.
func Preview(ctx context.Context, p Player, log *logrus.Entry, audioPath string, start, end float64) {
	go func() {
		if err := p.Play(ctx, audioPath, start, end); err != nil {
			log.WithField("error", err.Error()).Warn("playback failed")
		}
	}()
}
