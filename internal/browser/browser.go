// Package browser opens film pages and posters in the system browser.
package browser

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
)

const (
	tmdbImageBase   = "https://image.tmdb.org/t/p/w500"
	fallbackPoster  = "https://placehold.co/400x600?text=No+Poster"
)

// PosterURL resolves a poster reference to an absolute URL: absolute URLs
// pass through, TMDB-style paths are prefixed, nil yields the placeholder.
func PosterURL(posterPath *string) string {
	if posterPath == nil || *posterPath == "" {
		return fallbackPoster
	}
	p := *posterPath
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return tmdbImageBase + p
}

// Opener launches URLs with the platform opener.
type Opener struct {
	logger *slog.Logger
}

// NewOpener creates an Opener.
func NewOpener(logger *slog.Logger) *Opener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Opener{logger: logger}
}

// Open launches the URL in the default browser. The browser process is
// detached; only launch failures are reported.
func (o *Opener) Open(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	o.logger.Debug("opening url", "url", url)
	if err := cmd.Start(); err != nil {
		o.logger.Error("failed to open url", "url", url, "error", err)
		return fmt.Errorf("failed to open browser: %w", err)
	}
	// Detach: the browser outlives us.
	go cmd.Wait()
	return nil
}
