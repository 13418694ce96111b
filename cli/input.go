package main

import (
	"net/url"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"ytharvest/csvio"
	ythttp "ytharvest/http"
	"ytharvest/youtube"
)

// apiKeys splits the shared --api-key flag into the ordered credential list.
func apiKeys(c *cli.Context) ([]string, error) {
	raw := c.GlobalString("api-key")
	var keys []string
	for _, key := range strings.Split(raw, ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return nil, errors.New("an API key is required: pass --api-key or set YOUTUBE_API_KEY")
	}
	return keys, nil
}

func newAPIClient(c *cli.Context) (*youtube.Client, error) {
	keys, err := apiKeys(c)
	if err != nil {
		return nil, err
	}
	return youtube.NewClient(keys, &youtube.Options{
		DisableIPv6: c.GlobalBool("disable-ipv6"),
	})
}

func newHTTPClient(c *cli.Context) *ythttp.Client {
	cfg := ythttp.DefaultConfig()
	cfg.DisableIPv6 = c.GlobalBool("disable-ipv6")
	return ythttp.New(cfg)
}

// gatherInputs merges repeated flag values with a CSV column from an input
// file, dropping empties and duplicates while keeping first-seen order.
func gatherInputs(values []string, filePath, column string) ([]string, error) {
	out, err := gatherOptionalInputs(values, filePath, column)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, errors.New("no input: pass values as flags or point --input-file-path at a CSV")
	}
	return out, nil
}

// gatherOptionalInputs is gatherInputs for inputs a command can do without;
// an empty result is fine.
func gatherOptionalInputs(values []string, filePath, column string) ([]string, error) {
	if filePath != "" {
		fromFile, err := csvio.ReadColumnIfPresent(filePath, column)
		if err != nil {
			return nil, err
		}
		values = append(values, fromFile...)
	}

	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out, nil
}

// videoID extracts the video ID from a watch URL of any common shape; a value
// that is not a URL passes through as an ID.
func videoID(raw string) string {
	if !strings.Contains(raw, "/") {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if id := u.Query().Get("v"); id != "" {
		return id
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) == 0 {
		return raw
	}
	// youtu.be/<id>, /shorts/<id>, /live/<id>, /embed/<id>
	last := parts[len(parts)-1]
	switch {
	case u.Host == "youtu.be" && len(parts) == 1:
		return last
	case len(parts) == 2 && (parts[0] == "shorts" || parts[0] == "live" || parts[0] == "embed"):
		return last
	}
	return raw
}

func videoIDs(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, videoID(v))
	}
	return out
}

// finishOutput closes the CSV destination and prints in-memory results to
// stdout, so commands without --output-file-path behave like filters.
func finishOutput(c *cli.Context, out *csvio.Output) error {
	if err := out.Close(); err != nil {
		return err
	}
	if text := out.String(); text != "" {
		if _, err := c.App.Writer.Write([]byte(text)); err != nil {
			return err
		}
	}
	return nil
}
