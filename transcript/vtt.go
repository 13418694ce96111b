package transcript

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/asticode/go-astisub"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Simplify removes per-word cue churn from auto-generated caption tracks:
// multi-line cues are split into one cue per line, blank lines are dropped,
// and a line repeating the previous one extends the previous cue's end time
// instead of producing a duplicate.
//
// Adjacent simplified cues can still carry overlapping timestamps; the
// platform's auto-generated tracks overlap their windows and this pass keeps
// the cue boundaries it is given.
func Simplify(subs *astisub.Subtitles) *astisub.Subtitles {
	out := astisub.NewSubtitles()
	lastLine := ""
	for _, item := range subs.Items {
		for _, line := range item.Lines {
			text := strings.TrimSpace(line.String())
			if text == "" {
				continue
			}
			if text == lastLine {
				if n := len(out.Items); n > 0 {
					out.Items[n-1].EndAt = item.EndAt
				}
				continue
			}
			out.Items = append(out.Items, &astisub.Item{
				StartAt: item.StartAt,
				EndAt:   item.EndAt,
				Lines:   []astisub.Line{{Items: []astisub.LineItem{{Text: text}}}},
			})
			lastLine = text
		}
	}
	return out
}

// SimplifyWebVTT reads a WebVTT document, simplifies it and writes the result
// as WebVTT again.
func SimplifyWebVTT(r io.Reader, w io.Writer) error {
	subs, err := astisub.ReadFromWebVTT(r)
	if err != nil {
		return errors.Wrap(err, "read vtt")
	}
	if err := Simplify(subs).WriteToWebVTT(w); err != nil {
		return errors.Wrap(err, "write vtt")
	}
	return nil
}

// CleanText renders a caption track as deduplicated plain text, one line per
// cue. With timestamps each line is prefixed by the cue start truncated to
// seconds; without them the lines are joined into a single running text.
func CleanText(subs *astisub.Subtitles, timestamps bool) string {
	var b strings.Builder
	lastLine := ""
	for _, item := range subs.Items {
		for _, line := range item.Lines {
			text := strings.TrimSpace(line.String())
			if text == "" || text == lastLine {
				continue
			}
			if timestamps {
				fmt.Fprintf(&b, "%s %s\n", formatOffset(item.StartAt), text)
			} else {
				b.WriteString(text)
				b.WriteString(" ")
			}
			lastLine = text
		}
	}
	return b.String()
}

func formatOffset(d time.Duration) string {
	d = d.Truncate(time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60)
}

// CleanDir converts every .vtt file under inputDir to a cleaned plain-text
// file of the same name under outputDir. Files already present in outputDir
// are left alone, so an interrupted run resumes where it stopped.
func CleanDir(inputDir, outputDir string, timestamps bool) error {
	paths, err := filepath.Glob(filepath.Join(inputDir, "*.vtt"))
	if err != nil {
		return errors.Wrap(err, "list vtt files")
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return errors.Wrap(err, "create output directory")
	}

	for _, path := range paths {
		outPath := filepath.Join(outputDir, filepath.Base(path))
		if _, err := os.Stat(outPath); err == nil {
			continue
		}
		subs, err := astisub.OpenFile(path)
		if err != nil {
			return errors.Wrapf(err, "read %s", path)
		}
		if err := os.WriteFile(outPath, []byte(CleanText(subs, timestamps)), 0o644); err != nil {
			return errors.Wrapf(err, "write %s", outPath)
		}
		log.WithField("file", filepath.Base(path)).Debug("cleaned vtt")
	}
	return nil
}
