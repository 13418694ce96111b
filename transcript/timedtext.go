package transcript

import (
	"context"
	"net/url"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	ythttp "ytharvest/http"
)

const timedtextURL = "https://www.youtube.com/api/timedtext"

// TimedtextBackend fetches caption tracks straight from the timedtext
// endpoint, which serves WebVTT without authentication. Uploaded tracks are
// requested first, then the auto-generated (asr) track as a fallback.
type TimedtextBackend struct {
	httpClient *ythttp.Client
	baseURL    string
}

// NewTimedtextBackend builds a timedtext backend on top of a shared
// rate-limited HTTP client.
func NewTimedtextBackend(httpClient *ythttp.Client) *TimedtextBackend {
	return &TimedtextBackend{httpClient: httpClient, baseURL: timedtextURL}
}

// Download fetches the tracks of videoIDs one by one. Videos without a track
// produce no file and no error; transport failures abort the batch.
func (b *TimedtextBackend) Download(ctx context.Context, videoIDs []string, languageCode, dir string) error {
	for _, id := range videoIDs {
		body, err := b.fetch(ctx, id, languageCode)
		if err != nil {
			return errors.Wrapf(err, "captions for %s", id)
		}
		if len(body) == 0 {
			log.WithFields(log.Fields{
				"video_id": id,
				"language": languageCode,
			}).Debug("no caption track")
			continue
		}
		path := filepath.Join(dir, Filename(id, languageCode))
		if err := os.WriteFile(path, body, 0o644); err != nil {
			return errors.Wrapf(err, "write %s", path)
		}
	}
	return nil
}

// fetch returns the WebVTT body of a video's track, or nil when the video
// carries none in the requested language.
func (b *TimedtextBackend) fetch(ctx context.Context, videoID, languageCode string) ([]byte, error) {
	for _, kind := range []string{"", "asr"} {
		params := url.Values{}
		params.Set("v", videoID)
		params.Set("lang", languageCode)
		params.Set("fmt", "vtt")
		if kind != "" {
			params.Set("kind", kind)
		}

		resp, err := b.httpClient.Get(ctx, b.baseURL+"?"+params.Encode())
		if err != nil {
			return nil, err
		}
		switch {
		case resp.StatusCode == 200 && len(resp.Body) > 0:
			return resp.Body, nil
		case resp.StatusCode == 200 || resp.StatusCode == 404:
			// An empty 200 means no track of this kind; try the next.
		default:
			return nil, errors.Errorf("timedtext returned status %d", resp.StatusCode)
		}
	}
	return nil, nil
}
