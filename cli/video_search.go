package main

import (
	"slices"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"ytharvest/csvio"
	"ytharvest/youtube"
)

func makeVideoSearchCMD() cli.Command {
	return cli.Command{
		Name:  "video-search",
		Usage: "Search videos by term and filters, writing the matches as CSV",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "term", Usage: "search term"},
			cli.StringFlag{Name: "channel-id", Usage: "restrict to one channel"},
			cli.StringFlag{Name: "since", Usage: "published-after date (2006-01-02 or RFC 3339)"},
			cli.StringFlag{Name: "until", Usage: "published-before date (2006-01-02 or RFC 3339)"},
			cli.StringFlag{Name: "order", Usage: "result order (date, rating, relevance, title, videoCount, viewCount)"},
			cli.StringFlag{Name: "region-code", Usage: "ISO 3166-1 alpha-2 region"},
			cli.StringFlag{Name: "language-code", Usage: "ISO 639-1 relevance language"},
			cli.StringFlag{Name: "event-type", Usage: "completed, live or upcoming (requires --channel-type)"},
			cli.StringFlag{Name: "channel-type", Usage: "any or show"},
			cli.StringFlag{Name: "topic", Usage: "topic name, see the topic table"},
			cli.StringFlag{Name: "video-type", Usage: "any, episode or movie"},
			cli.StringFlag{Name: "safe-search", Usage: "moderate, none or strict"},
			cli.BoolFlag{Name: "full-info", Usage: "follow up with a full video lookup for every match"},
			cli.StringFlag{Name: "output-file-path", Usage: "output CSV path (stdout when omitted)"},
		},
		Action: videoSearch,
	}
}

func videoSearch(c *cli.Context) error {
	opts := youtube.SearchOptions{
		Term:         c.String("term"),
		ChannelID:    c.String("channel-id"),
		Order:        c.String("order"),
		RegionCode:   c.String("region-code"),
		LanguageCode: c.String("language-code"),
		EventType:    c.String("event-type"),
		ChannelType:  c.String("channel-type"),
		Topic:        c.String("topic"),
		VideoType:    c.String("video-type"),
		SafeSearch:   c.String("safe-search"),
	}
	if opts.Term == "" && opts.ChannelID == "" {
		return errors.New("either --term or --channel-id is required")
	}
	var err error
	if opts.Since, err = parseDate(c.String("since")); err != nil {
		return err
	}
	if opts.Until, err = parseDate(c.String("until")); err != nil {
		return err
	}

	client, err := newAPIClient(c)
	if err != nil {
		return err
	}
	out, err := csvio.OpenOutput(c.String("output-file-path"))
	if err != nil {
		return err
	}

	it := client.VideoSearch(opts)
	if c.Bool("full-info") {
		matches, err := it.Collect()
		if err != nil {
			return err
		}
		ids := make([]string, 0, len(matches))
		for _, video := range matches {
			ids = append(ids, video.ID)
		}
		it = client.VideosInfo(slices.Values(ids))
	}

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

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, errors.Errorf("malformed date %q", value)
}
