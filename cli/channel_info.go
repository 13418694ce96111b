package main

import (
	"slices"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"ytharvest/csvio"
	"ytharvest/scrape"
	"ytharvest/youtube"
)

func makeChannelInfoCMD() cli.Command {
	return cli.Command{
		Name:  "channel-info",
		Usage: "Fetch channel records for IDs, URLs or usernames, writing them as CSV",
		Flags: []cli.Flag{
			cli.StringSliceFlag{Name: "ids", Usage: "channel IDs"},
			cli.StringSliceFlag{Name: "urls", Usage: "channel URLs, resolved by scraping"},
			cli.StringSliceFlag{Name: "usernames", Usage: "old-style channel usernames, resolved through the API"},
			cli.StringFlag{Name: "input-file-path", Usage: "CSV file with channel IDs"},
			cli.StringFlag{Name: "id-column-name", Usage: "ID column in the input file", Value: "channel_id"},
			cli.StringFlag{Name: "usernames-file-path", Usage: "CSV file with channel usernames"},
			cli.StringFlag{Name: "username-column-name", Usage: "username column in the usernames file", Value: "username"},
			cli.StringFlag{Name: "output-file-path", Usage: "output CSV path (stdout when omitted)"},
		},
		Action: channelInfo,
	}
}

func channelInfo(c *cli.Context) error {
	client, err := newAPIClient(c)
	if err != nil {
		return err
	}

	ids := c.StringSlice("ids")
	if urls := c.StringSlice("urls"); len(urls) > 0 {
		resolver := scrape.NewResolver()
		for _, u := range urls {
			id, err := resolver.ChannelIDFromURL(u)
			if err != nil {
				return err
			}
			if id == "" {
				log.WithField("url", u).Warn("no channel id found")
				continue
			}
			ids = append(ids, id)
		}
	}

	usernames, err := gatherOptionalInputs(c.StringSlice("usernames"),
		c.String("usernames-file-path"), c.String("username-column-name"))
	if err != nil {
		return err
	}
	fromUsernames, err := usernameIDs(client, usernames)
	if err != nil {
		return err
	}
	ids = append(ids, fromUsernames...)

	ids, err = gatherInputs(ids, c.String("input-file-path"), c.String("id-column-name"))
	if err != nil {
		return err
	}

	out, err := csvio.OpenOutput(c.String("output-file-path"))
	if err != nil {
		return err
	}

	it := client.ChannelsInfo(slices.Values(ids))
	for it.Next() {
		channel := it.Value()
		if channel == nil {
			continue
		}
		if err := out.Write(*channel); err != nil {
			return err
		}
	}
	if err := it.Err(); err != nil {
		return err
	}
	return finishOutput(c, out)
}

// usernameIDs resolves old-style usernames to channel IDs through the
// forUsername lookup. Usernames the platform does not know are warned about
// and dropped.
func usernameIDs(client *youtube.Client, usernames []string) ([]string, error) {
	ids := make([]string, 0, len(usernames))
	for _, username := range usernames {
		id, err := client.ChannelIDFromUsername(username)
		if err != nil {
			return nil, err
		}
		if id == "" {
			log.WithField("username", username).Warn("no channel id found")
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
