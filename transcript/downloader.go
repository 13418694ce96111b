// Package transcript downloads auto-generated caption tracks as WebVTT files
// and post-processes them into deduplicated transcripts. Two download
// backends exist: a direct timedtext endpoint fetcher, the default, and a
// yt-dlp subprocess for videos the endpoint refuses.
package transcript

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"ytharvest/youtube"
)

// Per-video download outcomes.
const (
	StatusDownloaded = "downloaded"
	StatusSkipped    = "skipped"
	StatusMissing    = "missing"
	StatusError      = "error"
)

// Result reports what happened to one video's caption track.
type Result struct {
	VideoID string
	Path    string
	Status  string
	Err     error
}

// Backend downloads caption tracks for a batch of videos into dir, writing
// <video_id>.<language_code>.vtt for every video that has one. A video
// without a track is not an error; its file simply does not appear.
type Backend interface {
	Download(ctx context.Context, videoIDs []string, languageCode, dir string) error
}

// Downloader drives a Backend over arbitrarily many videos, skipping tracks
// already on disk so interrupted runs resume cheaply.
type Downloader struct {
	backend   Backend
	batchSize int
}

// NewDownloader builds a downloader over the given backend.
func NewDownloader(backend Backend) *Downloader {
	return &Downloader{backend: backend, batchSize: 10}
}

// Filename returns the track file name for a video and language.
func Filename(videoID, languageCode string) string {
	return fmt.Sprintf("%s.%s.vtt", videoID, strings.ToLower(languageCode))
}

// Download fetches the caption tracks of videoIDs into dir and reports one
// Result per video, in input order. Tracks already on disk are skipped;
// videos the backend produced no file for are reported missing. A backend
// failure marks every video of the affected batch and the walk continues.
func (d *Downloader) Download(ctx context.Context, videoIDs []string, languageCode, dir string) ([]Result, error) {
	languageCode = strings.ToLower(languageCode)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create output directory")
	}

	outcome := make(map[string]Result, len(videoIDs))
	var pending []string
	for _, id := range videoIDs {
		path := filepath.Join(dir, Filename(id, languageCode))
		if _, err := os.Stat(path); err == nil {
			outcome[id] = Result{VideoID: id, Path: path, Status: StatusSkipped}
			continue
		}
		pending = append(pending, id)
	}

	for batch := range youtube.Partition(slices.Values(pending), d.batchSize) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		err := d.backend.Download(ctx, batch, languageCode, dir)
		for _, id := range batch {
			path := filepath.Join(dir, Filename(id, languageCode))
			switch {
			case err != nil:
				outcome[id] = Result{VideoID: id, Status: StatusError, Err: err}
			case fileExists(path):
				outcome[id] = Result{VideoID: id, Path: path, Status: StatusDownloaded}
			default:
				outcome[id] = Result{VideoID: id, Status: StatusMissing}
			}
		}
		if err != nil {
			log.WithError(err).WithField("batch_size", len(batch)).Warn("caption batch failed")
		}
	}

	results := make([]Result, 0, len(videoIDs))
	for _, id := range videoIDs {
		results = append(results, outcome[id])
	}
	return results, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
