package main

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"ytharvest/csvio"
)

func makeVideoCommentsCMD() cli.Command {
	return cli.Command{
		Name:  "video-comments",
		Usage: "Fetch the comments of one video, replies inline, writing them as CSV",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "id", Usage: "video ID or URL"},
			cli.StringFlag{Name: "output-file-path", Usage: "output CSV path (stdout when omitted)"},
		},
		Action: videoComments,
	}
}

func videoComments(c *cli.Context) error {
	id := videoID(c.String("id"))
	if id == "" {
		return errors.New("a video --id is required")
	}

	client, err := newAPIClient(c)
	if err != nil {
		return err
	}
	out, err := csvio.OpenOutput(c.String("output-file-path"))
	if err != nil {
		return err
	}

	it := client.VideoComments(id)
	for it.Next() {
		if err := out.Write(it.Value()); err != nil {
			return err
		}
	}
	if err := it.Err(); err != nil {
		return err
	}
	return finishOutput(c, out)
}
