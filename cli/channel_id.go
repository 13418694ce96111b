package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"ytharvest/csvio"
	"ytharvest/scrape"
)

// idCell is the single-column record channel-id emits.
type idCell struct {
	column string
	value  string
}

func (r idCell) CSVHeader() []string { return []string{r.column} }
func (r idCell) CSVRow() []string    { return []string{r.value} }

func makeChannelIDCMD() cli.Command {
	return cli.Command{
		Name:  "channel-id",
		Usage: "Resolve channel URLs to channel IDs, writing a one-column CSV",
		Flags: []cli.Flag{
			cli.StringSliceFlag{Name: "urls", Usage: "channel URLs"},
			cli.StringFlag{Name: "urls-file-path", Usage: "CSV file with channel URLs"},
			cli.StringFlag{Name: "url-column-name", Usage: "URL column in the input file", Value: "channel_url"},
			cli.StringFlag{Name: "id-column-name", Usage: "ID column in the output file", Value: "channel_id"},
			cli.StringFlag{Name: "output-file-path", Usage: "output CSV path (stdout when omitted)"},
		},
		Action: channelID,
	}
}

func channelID(c *cli.Context) error {
	urls, err := gatherInputs(c.StringSlice("urls"), c.String("urls-file-path"), c.String("url-column-name"))
	if err != nil {
		return err
	}

	out, err := csvio.OpenOutput(c.String("output-file-path"))
	if err != nil {
		return err
	}

	resolver := scrape.NewResolver()
	column := c.String("id-column-name")
	for _, u := range urls {
		id, err := resolver.ChannelIDFromURL(u)
		if err != nil {
			return err
		}
		if id == "" {
			log.WithField("url", u).Warn("no channel id found")
			continue
		}
		if err := out.Write(idCell{column: column, value: id}); err != nil {
			return err
		}
	}
	return finishOutput(c, out)
}
