package main

import (
	"context"
	"encoding/json"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"ytharvest/csvio"
	"ytharvest/livechat"
	"ytharvest/scrape"
	"ytharvest/transcript"
	"ytharvest/youtube"
)

func makeChannelDataCMD() cli.Command {
	return cli.Command{
		Name:      "channel-data",
		Usage:     "Harvest everything about one channel: channel, playlists, videos, comments, chat and captions",
		ArgsUsage: "<@username or channel URL>",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "data-dir", Usage: "directory for the output files", Value: "."},
			cli.StringFlag{Name: "language-code", Usage: "caption language code", Value: "en"},
			cli.BoolFlag{Name: "ytdlp", Usage: "download captions through the yt-dlp executable"},
			cli.StringFlag{Name: "ytdlp-path", Usage: "yt-dlp executable path"},
		},
		Action: channelData,
	}
}

// playlistVideoRow links a video to the playlist it was found in, with the
// snippet-level fields playlist items carry.
type playlistVideoRow struct {
	playlistID string
	video      youtube.Video
}

func (r playlistVideoRow) CSVHeader() []string {
	return []string{
		"playlist_id", "video_id", "video_status", "channel_id", "channel_title",
		"playlist_channel_id", "playlist_channel_title", "title", "description",
		"published_at", "added_to_playlist_at", "tags",
	}
}

func (r playlistVideoRow) CSVRow() []string {
	return []string{
		r.playlistID, r.video.ID, r.video.Status, r.video.ChannelID, r.video.ChannelTitle,
		r.video.PlaylistChannelID, r.video.PlaylistChannelTitle, r.video.Title, r.video.Description,
		fmtTime(r.video.PublishedAt), fmtTime(r.video.AddedToPlaylistAt), fmtTags(r.video.Tags),
	}
}

func fmtTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func fmtTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return ""
	}
	return string(data)
}

func channelData(c *cli.Context) error {
	target := c.Args().First()
	if target == "" {
		return errors.New("a @username or channel URL argument is required")
	}
	channelURL, name := channelTarget(target)

	client, err := newAPIClient(c)
	if err != nil {
		return err
	}
	httpClient := newHTTPClient(c)
	dataDir := c.String("data-dir")

	// Channel record.
	channelID, err := scrape.NewResolver().ChannelIDFromURL(channelURL)
	if err != nil {
		return err
	}
	if channelID == "" {
		return errors.Errorf("no channel found at %s", channelURL)
	}
	log.WithFields(log.Fields{"channel_id": channelID, "name": name}).Info("retrieving channel")

	channels, err := client.ChannelsInfo(slices.Values([]string{channelID})).Collect()
	if err != nil {
		return err
	}
	if len(channels) == 0 || channels[0] == nil {
		return errors.Errorf("channel %s not found", channelID)
	}
	channel := *channels[0]
	if err := writeOne(filepath.Join(dataDir, name+"-channel.csv"), channel); err != nil {
		return err
	}

	// Playlists, the implicit uploads playlist first.
	playlists := []youtube.Playlist{{
		ID:           channel.PlaylistID,
		Title:        "Uploads",
		Description:  channel.Description,
		Videos:       channel.Videos,
		ChannelID:    channelID,
		ChannelTitle: channel.Title,
		PublishedAt:  channel.PublishedAt,
		ThumbnailURL: channel.ThumbnailURL,
	}}
	it := client.ChannelPlaylists(channelID)
	for it.Next() {
		playlists = append(playlists, it.Value())
	}
	if err := it.Err(); err != nil {
		return err
	}
	playlistOut, err := csvio.OpenOutput(filepath.Join(dataDir, name+"-playlist.csv"))
	if err != nil {
		return err
	}
	for _, playlist := range playlists {
		if err := playlistOut.Write(playlist); err != nil {
			return err
		}
	}
	if err := playlistOut.Close(); err != nil {
		return err
	}

	// Playlist contents; collects the unique video IDs everything below uses.
	log.WithField("playlists", len(playlists)).Info("retrieving playlist videos")
	pvOut, err := csvio.OpenOutput(filepath.Join(dataDir, name+"-playlist-video.csv"))
	if err != nil {
		return err
	}
	var videoIDs []string
	seen := map[string]bool{}
	for _, playlist := range playlists {
		it := client.PlaylistVideos(playlist.ID)
		for it.Next() {
			video := it.Value()
			if !seen[video.ID] {
				seen[video.ID] = true
				videoIDs = append(videoIDs, video.ID)
			}
			if err := pvOut.Write(playlistVideoRow{playlistID: playlist.ID, video: video}); err != nil {
				return err
			}
		}
		if err := it.Err(); err != nil {
			return err
		}
	}
	if err := pvOut.Close(); err != nil {
		return err
	}

	// Full video records.
	log.WithField("videos", len(videoIDs)).Info("retrieving video details")
	videoOut, err := csvio.OpenOutput(filepath.Join(dataDir, name+"-video.csv"))
	if err != nil {
		return err
	}
	vit := client.VideosInfo(slices.Values(videoIDs))
	for vit.Next() {
		if err := videoOut.Write(vit.Value()); err != nil {
			return err
		}
	}
	if err := vit.Err(); err != nil {
		return err
	}
	if err := videoOut.Close(); err != nil {
		return err
	}

	// Comments. Videos with comments disabled exhaust the credential queue,
	// so the client is rebuilt before moving on.
	log.Info("retrieving comments")
	commentOut, err := csvio.OpenOutput(filepath.Join(dataDir, name+"-comment.csv"))
	if err != nil {
		return err
	}
	for _, id := range videoIDs {
		cit := client.VideoComments(id)
		for cit.Next() {
			if err := commentOut.Write(cit.Value()); err != nil {
				return err
			}
		}
		if err := cit.Err(); err != nil {
			var exhausted *youtube.ExhaustedKeysError
			if !errors.As(err, &exhausted) {
				return err
			}
			log.WithFields(log.Fields{"video_id": id}).WithError(err).Warn("skipping comments")
			if client, err = newAPIClient(c); err != nil {
				return err
			}
		}
	}
	if err := commentOut.Close(); err != nil {
		return err
	}

	// Caption tracks.
	log.Info("retrieving transcriptions")
	var backend transcript.Backend
	if c.Bool("ytdlp") {
		backend = &transcript.YtdlpBackend{Path: c.String("ytdlp-path"), DisableIPv6: c.GlobalBool("disable-ipv6")}
	} else {
		backend = transcript.NewTimedtextBackend(httpClient)
	}
	transcriptionDir := filepath.Join(dataDir, name+"-transcriptions")
	if _, err := transcript.NewDownloader(backend).
		Download(context.Background(), videoIDs, c.String("language-code"), transcriptionDir); err != nil {
		return err
	}

	// Chat replays. Most videos never streamed live; those are skipped.
	log.Info("retrieving live chat replays")
	chatClient := livechat.NewClient(httpClient, livechat.Options{})
	chatOut, err := csvio.OpenOutput(filepath.Join(dataDir, name+"-livechat.csv"))
	if err != nil {
		return err
	}
	for _, id := range videoIDs {
		mit := chatClient.Messages(context.Background(), id)
		for mit.Next() {
			if err := chatOut.Write(mit.Value()); err != nil {
				return err
			}
		}
		if err := mit.Err(); err != nil {
			if errors.Is(err, livechat.ErrChatUnavailable) {
				continue
			}
			log.WithFields(log.Fields{"video_id": id}).WithError(err).Warn("skipping chat replay")
		}
	}
	return chatOut.Close()
}

// channelTarget normalizes the positional argument into a channel URL and a
// short name used as the output file prefix.
func channelTarget(target string) (channelURL, name string) {
	if strings.HasPrefix(target, "https://") || strings.HasPrefix(target, "http://") {
		parts := strings.Split(strings.Trim(target, "/"), "/")
		return target, strings.TrimPrefix(parts[len(parts)-1], "@")
	}
	name = strings.TrimPrefix(target, "@")
	return "https://www.youtube.com/@" + name, name
}

// writeOne writes a single record to its own CSV file.
func writeOne(path string, rec csvio.Record) error {
	out, err := csvio.OpenOutput(path)
	if err != nil {
		return err
	}
	if err := out.Write(rec); err != nil {
		return err
	}
	return out.Close()
}
