package main

import (
	"os"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "ytharvest"
	app.Usage = "Harvest YouTube channel, video, comment, chat and caption data into CSV and VTT files"
	app.Version = "0.1.0"
	configure(app)
	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("command failed")
	}
}

func configure(app *cli.App) {
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "api-key",
			Usage:  "comma-separated list of YouTube Data API keys, consumed in order as quotas run out",
			EnvVar: "YOUTUBE_API_KEY",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debug logging",
		},
		cli.BoolFlag{
			Name:  "disable-ipv6",
			Usage: "force IPv4 for all outgoing connections",
		},
	}
	app.Before = func(c *cli.Context) error {
		if c.Bool("debug") {
			log.SetLevel(log.DebugLevel)
		}
		log.SetOutput(os.Stderr)
		log.WithFields(log.Fields{
			"run_id":  uuid.NewString(),
			"command": c.Args().First(),
		}).Debug("starting")
		return nil
	}
	app.Commands = []cli.Command{
		makeChannelIDCMD(),
		makeChannelInfoCMD(),
		makeVideoInfoCMD(),
		makeVideoSearchCMD(),
		makeVideoCommentsCMD(),
		makeVideoLivechatCMD(),
		makeVideoTranscriptionCMD(),
		makeChannelDataCMD(),
		makeCleanVTTCMD(),
	}
}
