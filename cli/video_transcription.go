package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"ytharvest/transcript"
)

func makeVideoTranscriptionCMD() cli.Command {
	return cli.Command{
		Name:  "video-transcription",
		Usage: "Download auto-generated caption tracks as <id>.<lang>.vtt files",
		Flags: []cli.Flag{
			cli.StringSliceFlag{Name: "ids", Usage: "video IDs"},
			cli.StringSliceFlag{Name: "urls", Usage: "video URLs"},
			cli.StringFlag{Name: "input-file-path", Usage: "CSV file with video IDs or URLs"},
			cli.StringFlag{Name: "id-column-name", Usage: "ID column in the input file", Value: "video_id"},
			cli.StringFlag{Name: "language-code", Usage: "caption language code", Value: "en"},
			cli.StringFlag{Name: "output-dir", Usage: "directory for downloaded tracks", Value: "."},
			cli.BoolFlag{Name: "ytdlp", Usage: "download through the yt-dlp executable instead of the caption endpoint"},
			cli.StringFlag{Name: "ytdlp-path", Usage: "yt-dlp executable path"},
		},
		Action: videoTranscription,
	}
}

func videoTranscription(c *cli.Context) error {
	values := append(c.StringSlice("ids"), c.StringSlice("urls")...)
	values, err := gatherInputs(values, c.String("input-file-path"), c.String("id-column-name"))
	if err != nil {
		return err
	}
	ids := videoIDs(values)

	var backend transcript.Backend
	if c.Bool("ytdlp") {
		backend = &transcript.YtdlpBackend{
			Path:        c.String("ytdlp-path"),
			DisableIPv6: c.GlobalBool("disable-ipv6"),
		}
	} else {
		backend = transcript.NewTimedtextBackend(newHTTPClient(c))
	}

	results, err := transcript.NewDownloader(backend).
		Download(context.Background(), ids, c.String("language-code"), c.String("output-dir"))
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		fmt.Fprintf(c.App.Writer, "%s\t%s\n", r.VideoID, r.Status)
		if r.Status == transcript.StatusError {
			failed++
		}
	}
	if failed > 0 {
		return errors.Errorf("%d of %d downloads failed", failed, len(results))
	}
	return nil
}
