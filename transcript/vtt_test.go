package transcript

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/asticode/go-astisub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rawTrack mimics an auto-generated caption track: each cue repeats the tail
// of the previous one while the words scroll through.
const rawTrack = `WEBVTT

00:00:00.000 --> 00:00:02.000
hello world

00:00:01.500 --> 00:00:03.500
hello world
this is fine

00:00:03.000 --> 00:00:05.000
this is fine
`

func readTrack(t *testing.T, vtt string) *astisub.Subtitles {
	t.Helper()
	subs, err := astisub.ReadFromWebVTT(strings.NewReader(vtt))
	require.NoError(t, err)
	return subs
}

func TestSimplifyCollapsesRepeatedLines(t *testing.T) {
	got := Simplify(readTrack(t, rawTrack))
	require.Len(t, got.Items, 2)

	assert.Equal(t, "hello world", got.Items[0].String())
	assert.Equal(t, time.Duration(0), got.Items[0].StartAt)
	assert.Equal(t, 3500*time.Millisecond, got.Items[0].EndAt,
		"a repeated line extends the previous cue instead of duplicating it")

	assert.Equal(t, "this is fine", got.Items[1].String())
	assert.Equal(t, 1500*time.Millisecond, got.Items[1].StartAt)
	assert.Equal(t, 5*time.Second, got.Items[1].EndAt)
}

func TestSimplifyThreeIdenticalCues(t *testing.T) {
	got := Simplify(readTrack(t, `WEBVTT

00:00:00.000 --> 00:00:01.000
same words

00:00:01.000 --> 00:00:02.000
same words

00:00:02.000 --> 00:00:03.000
same words
`))
	require.Len(t, got.Items, 1)
	assert.Equal(t, "same words", got.Items[0].String())
	assert.Equal(t, time.Duration(0), got.Items[0].StartAt)
	assert.Equal(t, 3*time.Second, got.Items[0].EndAt)
}

func TestSimplifyDropsBlankLines(t *testing.T) {
	got := Simplify(readTrack(t, "WEBVTT\n\n00:00:00.000 --> 00:00:01.000\n \n\n00:00:01.000 --> 00:00:02.000\nactual text\n"))
	require.Len(t, got.Items, 1)
	assert.Equal(t, "actual text", got.Items[0].String())
}

func TestCleanTextWithTimestamps(t *testing.T) {
	got := CleanText(readTrack(t, rawTrack), true)
	assert.Equal(t, "00:00:00 hello world\n00:00:01 this is fine\n", got)
}

func TestCleanTextRunningText(t *testing.T) {
	got := CleanText(readTrack(t, rawTrack), false)
	assert.Equal(t, "hello world this is fine ", got)
}

func TestFormatOffset(t *testing.T) {
	assert.Equal(t, "00:00:00", formatOffset(0))
	assert.Equal(t, "00:01:05", formatOffset(65*time.Second+900*time.Millisecond))
	assert.Equal(t, "02:03:04", formatOffset(2*time.Hour+3*time.Minute+4*time.Second))
}

func TestCleanDirSkipsExistingOutputs(t *testing.T) {
	inDir := t.TempDir()
	outDir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(inDir, "one.en.vtt"), []byte(rawTrack), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(inDir, "two.en.vtt"), []byte(rawTrack), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(outDir, "two.en.vtt"), []byte("kept"), 0o644))

	require.NoError(t, CleanDir(inDir, outDir, true))

	cleaned, err := os.ReadFile(filepath.Join(outDir, "one.en.vtt"))
	require.NoError(t, err)
	assert.Equal(t, "00:00:00 hello world\n00:00:01 this is fine\n", string(cleaned))

	kept, err := os.ReadFile(filepath.Join(outDir, "two.en.vtt"))
	require.NoError(t, err)
	assert.Equal(t, "kept", string(kept), "existing outputs are not rewritten")
}
