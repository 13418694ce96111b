package transcript

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend writes tracks for the configured videos and fails whole batches
// containing a poisoned id.
type fakeBackend struct {
	hasTrack map[string]bool
	failFor  map[string]bool
	batches  [][]string
}

func (b *fakeBackend) Download(ctx context.Context, videoIDs []string, languageCode, dir string) error {
	b.batches = append(b.batches, videoIDs)
	for _, id := range videoIDs {
		if b.failFor[id] {
			return errors.New("backend exploded")
		}
	}
	for _, id := range videoIDs {
		if !b.hasTrack[id] {
			continue
		}
		path := filepath.Join(dir, Filename(id, languageCode))
		if err := os.WriteFile(path, []byte("WEBVTT\n"), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "vid11111111.en.vtt", Filename("vid11111111", "en"))
	assert.Equal(t, "vid11111111.pt-br.vtt", Filename("vid11111111", "pt-BR"))
}

func TestDownloadStatuses(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, Filename("already1", "en")), []byte("WEBVTT\n"), 0o644))

	backend := &fakeBackend{hasTrack: map[string]bool{"fresh1": true}}
	d := NewDownloader(backend)

	results, err := d.Download(context.Background(), []string{"already1", "fresh1", "nocaps1"}, "en", dir)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, Result{VideoID: "already1", Path: filepath.Join(dir, "already1.en.vtt"), Status: StatusSkipped}, results[0])
	assert.Equal(t, Result{VideoID: "fresh1", Path: filepath.Join(dir, "fresh1.en.vtt"), Status: StatusDownloaded}, results[1])
	assert.Equal(t, Result{VideoID: "nocaps1", Status: StatusMissing}, results[2])

	require.Len(t, backend.batches, 1)
	assert.Equal(t, []string{"fresh1", "nocaps1"}, backend.batches[0], "skipped videos never reach the backend")
}

func TestDownloadBatchFailureDoesNotStopTheWalk(t *testing.T) {
	dir := t.TempDir()

	ids := make([]string, 0, 12)
	hasTrack := map[string]bool{}
	for i := 0; i < 12; i++ {
		id := string(rune('a'+i)) + "0000000000"
		ids = append(ids, id)
		hasTrack[id] = true
	}

	backend := &fakeBackend{
		hasTrack: hasTrack,
		failFor:  map[string]bool{ids[0]: true},
	}
	d := NewDownloader(backend)

	results, err := d.Download(context.Background(), ids, "en", dir)
	require.NoError(t, err)
	require.Len(t, results, 12)
	require.Len(t, backend.batches, 2, "batches of ten")

	for i, r := range results {
		assert.Equal(t, ids[i], r.VideoID, "results keep input order")
		if i < 10 {
			assert.Equal(t, StatusError, r.Status)
			assert.Error(t, r.Err)
		} else {
			assert.Equal(t, StatusDownloaded, r.Status)
		}
	}
}

func TestDownloadHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewDownloader(&fakeBackend{})
	_, err := d.Download(ctx, []string{"vid11111111"}, "en", t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}
