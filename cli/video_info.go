package main

import (
	"slices"

	"github.com/urfave/cli"

	"ytharvest/csvio"
)

func makeVideoInfoCMD() cli.Command {
	return cli.Command{
		Name:  "video-info",
		Usage: "Fetch full video records for IDs or URLs, writing them as CSV",
		Flags: []cli.Flag{
			cli.StringSliceFlag{Name: "ids", Usage: "video IDs"},
			cli.StringSliceFlag{Name: "urls", Usage: "video URLs"},
			cli.StringFlag{Name: "input-file-path", Usage: "CSV file with video IDs or URLs"},
			cli.StringFlag{Name: "id-column-name", Usage: "ID column in the input file", Value: "video_id"},
			cli.StringFlag{Name: "output-file-path", Usage: "output CSV path (stdout when omitted)"},
		},
		Action: videoInfo,
	}
}

func videoInfo(c *cli.Context) error {
	values := append(c.StringSlice("ids"), c.StringSlice("urls")...)
	values, err := gatherInputs(values, c.String("input-file-path"), c.String("id-column-name"))
	if err != nil {
		return err
	}
	ids := videoIDs(values)

	client, err := newAPIClient(c)
	if err != nil {
		return err
	}
	out, err := csvio.OpenOutput(c.String("output-file-path"))
	if err != nil {
		return err
	}

	it := client.VideosInfo(slices.Values(ids))
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
