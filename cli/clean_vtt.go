package main

import (
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"ytharvest/transcript"
)

func makeCleanVTTCMD() cli.Command {
	return cli.Command{
		Name:      "clean-vtt",
		Usage:     "Convert a directory of .vtt caption files into deduplicated plain-text transcripts",
		ArgsUsage: "<input-dir> <output-dir>",
		Flags: []cli.Flag{
			cli.BoolFlag{Name: "no-timestamps", Usage: "join lines into running text instead of prefixing cue start times"},
		},
		Action: cleanVTT,
	}
}

func cleanVTT(c *cli.Context) error {
	if c.NArg() != 2 {
		return errors.New("input and output directory arguments are required")
	}
	return transcript.CleanDir(c.Args().Get(0), c.Args().Get(1), !c.Bool("no-timestamps"))
}
