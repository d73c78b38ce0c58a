package audio

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/go-resty/resty/v2"
)

// playerCommands are external players probed at startup, in preference
// order. Each takes a URL as its final argument and streams it.
var playerCommands = [][]string{
	{"mpv", "--no-video", "--really-quiet"},
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
	{"afplay"},
}

// HTTPBackend probes sources with a ranged GET and hands playable URLs to
// an external player process.
type HTTPBackend struct {
	rc     *resty.Client
	player []string
}

func NewHTTPBackend() (*HTTPBackend, error) {
	for _, cmd := range playerCommands {
		if _, err := exec.LookPath(cmd[0]); err == nil {
			rc := resty.New().SetTimeout(10 * time.Second)
			return &HTTPBackend{rc: rc, player: cmd}, nil
		}
	}
	return nil, fmt.Errorf("no audio player found (tried mpv, ffplay, afplay)")
}

// Probe fetches the first byte of the source. Anything but a 200/206
// answer means the source cannot be loaded.
func (b *HTTPBackend) Probe(ctx context.Context, url string) error {
	resp, err := b.rc.R().
		SetContext(ctx).
		SetHeader("Range", "bytes=0-0").
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		return err
	}
	defer resp.RawBody().Close()
	if !resp.IsSuccess() {
		return fmt.Errorf("source returned status %d", resp.StatusCode())
	}
	return nil
}

// Play streams the URL through the external player until it exits or ctx
// is cancelled, which kills the process.
func (b *HTTPBackend) Play(ctx context.Context, url string) error {
	args := append(append([]string{}, b.player[1:]...), url)
	cmd := exec.CommandContext(ctx, b.player[0], args...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("player exited: %w", err)
	}
	return nil
}
