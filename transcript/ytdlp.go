package transcript

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// YtdlpBackend downloads auto-generated caption tracks through the yt-dlp
// executable. It handles videos the timedtext endpoint refuses, at the cost
// of a subprocess per batch.
type YtdlpBackend struct {
	// Path is the yt-dlp executable; resolved from PATH when empty.
	Path string
	// DisableIPv6 forces IPv4 on hosts with broken IPv6 routing.
	DisableIPv6 bool
}

// Download runs yt-dlp once for the whole batch. The output template names
// files by video ID, so yt-dlp produces exactly the <id>.<lang>.vtt layout
// the Downloader expects.
func (b *YtdlpBackend) Download(ctx context.Context, videoIDs []string, languageCode, dir string) error {
	path := b.Path
	if path == "" {
		path = "yt-dlp"
	}

	args := []string{
		"--skip-download",
		"--write-auto-subs",
		"--sub-langs", languageCode,
		"--sub-format", "vtt",
		"--no-cache-dir",
		"--no-progress",
		"--quiet",
		"--no-warnings",
		"-o", filepath.Join(dir, "%(id)s"),
	}
	if b.DisableIPv6 {
		args = append(args, "--source-address", "0.0.0.0")
	}
	for _, id := range videoIDs {
		args = append(args, "https://www.youtube.com/watch?v="+id)
	}

	log.WithFields(log.Fields{
		"videos":   len(videoIDs),
		"language": languageCode,
	}).Debug("running yt-dlp")

	cmd := exec.CommandContext(ctx, path, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := stderr.String(); msg != "" {
			return errors.Wrapf(err, "yt-dlp: %s", msg)
		}
		return errors.Wrap(err, "yt-dlp")
	}
	return nil
}
