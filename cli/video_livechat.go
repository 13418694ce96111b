package main

import (
	"context"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"ytharvest/csvio"
	"ytharvest/livechat"
)

func makeVideoLivechatCMD() cli.Command {
	return cli.Command{
		Name:  "video-livechat",
		Usage: "Replay the live chat of one finished stream, writing messages as CSV",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "id", Usage: "video ID or URL"},
			cli.BoolFlag{Name: "keep-emoji-shortcuts", Usage: "leave emoji shortcuts like :smile: in message text"},
			cli.StringFlag{Name: "output-file-path", Usage: "output CSV path (stdout when omitted)"},
		},
		Action: videoLivechat,
	}
}

func videoLivechat(c *cli.Context) error {
	id := videoID(c.String("id"))
	if id == "" {
		return errors.New("a video --id is required")
	}

	client := livechat.NewClient(newHTTPClient(c), livechat.Options{
		KeepEmojiShortcuts: c.Bool("keep-emoji-shortcuts"),
	})
	out, err := csvio.OpenOutput(c.String("output-file-path"))
	if err != nil {
		return err
	}

	it := client.Messages(context.Background(), id)
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
