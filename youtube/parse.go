package youtube

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sosodev/duration"
)

// UnknownKindError reports a raw item whose kind tag matches none of the
// resource kinds that map to a video record.
type UnknownKindError struct {
	Kind string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("youtube: unknown resource kind %q", e.Kind)
}

// Resource kind tags carried by raw video items.
const (
	kindVideo        = "youtube#video"
	kindPlaylistItem = "youtube#playlistItem"
	kindSearchResult = "youtube#searchResult"
)

// Clean strips embedded NUL bytes and surrounding whitespace from a string.
// Every string field of every record passes through here before emission.
func Clean(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\x00", ""))
}

func cleanAll(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = Clean(v)
	}
	return out
}

// ParseInt converts a numeric string to an integer. Empty, whitespace-only and
// literal "None" values yield nil.
func ParseInt(value string) (*int64, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "None" {
		return nil, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "parse int %q", value)
	}
	return &n, nil
}

// ParseDecimal converts a numeric string to an exact decimal. Monetary amounts
// must not go through binary floats, so the result is a decimal.Decimal.
// Empty input yields nil.
func ParseDecimal(value string) (*decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return nil, errors.Wrapf(err, "parse decimal %q", value)
	}
	return &d, nil
}

// ParseDatetime parses an RFC3339 timestamp. A literal "Z" suffix is rewritten
// to a "+00:00" offset first. Empty input yields nil; malformed input fails.
func ParseDatetime(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if strings.HasSuffix(value, "Z") {
		value = value[:len(value)-1] + "+00:00"
	}
	t, err := time.Parse("2006-01-02T15:04:05-07:00", value)
	if err != nil {
		return nil, errors.Wrapf(err, "parse datetime %q", value)
	}
	return &t, nil
}

// ParseTimestamp converts integer microseconds since the epoch to a UTC time.
// Chat message timestamps arrive in this encoding rather than RFC3339.
func ParseTimestamp(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	usec, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "parse timestamp %q", value)
	}
	t := time.UnixMicro(usec).UTC()
	return &t, nil
}

// ParseDuration converts an ISO-8601 duration string to a float seconds count.
// Empty input yields nil.
func ParseDuration(value string) (*float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	d, err := duration.Parse(value)
	if err != nil {
		return nil, errors.Wrapf(err, "parse duration %q", value)
	}
	seconds := d.ToTimeDuration().Seconds()
	return &seconds, nil
}

// fieldErrors collects the first conversion error while a parser extracts its
// fields, so record construction reads flat instead of being drowned in
// per-field error checks.
type fieldErrors struct {
	err error
}

func (f *fieldErrors) intp(field, value string) *int64 {
	v, err := ParseInt(value)
	f.record(field, err)
	return v
}

func (f *fieldErrors) timep(field, value string) *time.Time {
	v, err := ParseDatetime(value)
	f.record(field, err)
	return v
}

func (f *fieldErrors) durationp(field, value string) *float64 {
	v, err := ParseDuration(value)
	f.record(field, err)
	return v
}

func (f *fieldErrors) record(field string, err error) {
	if err != nil && f.err == nil {
		f.err = errors.Wrap(err, field)
	}
}

// ParseCategory transforms a raw videoCategories item into a Category record.
func ParseCategory(data json.RawMessage) (Category, error) {
	var raw rawCategory
	if err := json.Unmarshal(data, &raw); err != nil {
		return Category{}, errors.Wrap(err, "unmarshal category")
	}
	var fe fieldErrors
	cat := Category{
		ID:         fe.intp("id", raw.ID),
		Title:      Clean(raw.Snippet.Title),
		Assignable: raw.Snippet.Assignable,
		ChannelID:  Clean(raw.Snippet.ChannelID),
	}
	return cat, fe.err
}

// ParseChannel transforms a raw channels item into a Channel record.
func ParseChannel(data json.RawMessage) (Channel, error) {
	var raw rawChannel
	if err := json.Unmarshal(data, &raw); err != nil {
		return Channel{}, errors.Wrap(err, "unmarshal channel")
	}
	var fe fieldErrors
	ch := Channel{
		ID:             Clean(raw.ID),
		Title:          Clean(raw.Snippet.Title),
		Description:    Clean(raw.Snippet.Description),
		CustomUsername: Clean(raw.Snippet.CustomURL),
		PublishedAt:    fe.timep("snippet.publishedAt", raw.Snippet.PublishedAt),
		ThumbnailURL:   Clean(raw.Snippet.Thumbnails.Default.URL),
		Views:          fe.intp("statistics.viewCount", raw.Statistics.ViewCount),
		Subscribers:    fe.intp("statistics.subscriberCount", raw.Statistics.SubscriberCount),
		Videos:         fe.intp("statistics.videoCount", raw.Statistics.VideoCount),
		PlaylistID:     Clean(raw.ContentDetails.RelatedPlaylists.Uploads),
	}
	return ch, fe.err
}

// ParsePlaylist transforms a raw playlists item into a Playlist record.
func ParsePlaylist(data json.RawMessage) (Playlist, error) {
	var raw rawPlaylist
	if err := json.Unmarshal(data, &raw); err != nil {
		return Playlist{}, errors.Wrap(err, "unmarshal playlist")
	}
	var fe fieldErrors
	pl := Playlist{
		ID:           Clean(raw.ID),
		Title:        Clean(raw.Snippet.Title),
		Description:  Clean(raw.Snippet.Description),
		Videos:       raw.ContentDetails.ItemCount,
		ChannelID:    Clean(raw.Snippet.ChannelID),
		ChannelTitle: Clean(raw.Snippet.ChannelTitle),
		PublishedAt:  fe.timep("snippet.publishedAt", raw.Snippet.PublishedAt),
		ThumbnailURL: Clean(raw.Snippet.Thumbnails.Default.URL),
	}
	return pl, fe.err
}

// ParseVideo transforms a raw item from the videos, playlistItems or search
// resources into a Video record, dispatching on the item's kind tag. Each kind
// stores the video identifier and the ownership fields under a different path;
// fields the originating resource does not carry stay nil.
func ParseVideo(data json.RawMessage) (Video, error) {
	var raw rawVideo
	if err := json.Unmarshal(data, &raw); err != nil {
		return Video{}, errors.Wrap(err, "unmarshal video")
	}

	var fe fieldErrors
	video := Video{
		Duration:          fe.durationp("contentDetails.duration", raw.ContentDetails.Duration),
		Definition:        Clean(raw.ContentDetails.Definition),
		Status:            Clean(raw.Status.PrivacyStatus),
		Views:             fe.intp("statistics.viewCount", raw.Statistics.ViewCount),
		Likes:             fe.intp("statistics.likeCount", raw.Statistics.LikeCount),
		Dislikes:          fe.intp("statistics.dislikeCount", raw.Statistics.DislikeCount),
		Favorites:         fe.intp("statistics.favoriteCount", raw.Statistics.FavoriteCount),
		Comments:          fe.intp("statistics.commentCount", raw.Statistics.CommentCount),
		ScheduledTo:       fe.timep("liveStreamingDetails.scheduledStartTime", raw.LiveStreamingDetails.ScheduledStartTime),
		StartedAt:         fe.timep("liveStreamingDetails.actualStartTime", raw.LiveStreamingDetails.ActualStartTime),
		FinishedAt:        fe.timep("liveStreamingDetails.actualEndTime", raw.LiveStreamingDetails.ActualEndTime),
		ConcurrentViewers: fe.intp("liveStreamingDetails.concurrentViewers", raw.LiveStreamingDetails.ConcurrentViewers),
		Title:             Clean(raw.Snippet.Title),
		Description:       Clean(raw.Snippet.Description),
		Tags:              cleanAll(raw.Snippet.Tags),
	}

	switch raw.Kind {
	case kindVideo:
		// Most complete shape: everything lives on the item itself.
		if err := json.Unmarshal(raw.ID, &video.ID); err != nil {
			return Video{}, errors.Wrap(err, "unmarshal video id")
		}
		video.ChannelID = Clean(raw.Snippet.ChannelID)
		video.ChannelTitle = Clean(raw.Snippet.ChannelTitle)
		video.PublishedAt = fe.timep("snippet.publishedAt", raw.Snippet.PublishedAt)
	case kindPlaylistItem:
		// The owner fields name the video's author; snippet.channelId names
		// the playlist owner, which may differ.
		if raw.Snippet.ResourceID.Kind != kindVideo {
			return Video{}, errors.Errorf("expecting %q as playlist item resource, found %q",
				kindVideo, raw.Snippet.ResourceID.Kind)
		}
		video.ID = Clean(raw.Snippet.ResourceID.VideoID)
		video.ChannelID = Clean(raw.Snippet.VideoOwnerChannelID)
		video.ChannelTitle = Clean(raw.Snippet.VideoOwnerChannelTitle)
		video.PlaylistChannelID = Clean(raw.Snippet.ChannelID)
		video.PlaylistChannelTitle = Clean(raw.Snippet.ChannelTitle)
		video.AddedToPlaylistAt = fe.timep("snippet.publishedAt", raw.Snippet.PublishedAt)
		video.PublishedAt = fe.timep("contentDetails.videoPublishedAt", raw.ContentDetails.VideoPublishedAt)
	case kindSearchResult:
		var id struct {
			VideoID string `json:"videoId"`
		}
		if err := json.Unmarshal(raw.ID, &id); err != nil {
			return Video{}, errors.Wrap(err, "unmarshal search result id")
		}
		video.ID = Clean(id.VideoID)
		video.ChannelID = Clean(raw.Snippet.ChannelID)
		video.ChannelTitle = Clean(raw.Snippet.ChannelTitle)
		video.PublishedAt = fe.timep("snippet.publishedAt", raw.Snippet.PublishedAt)
	default:
		return Video{}, &UnknownKindError{Kind: raw.Kind}
	}

	video.ID = Clean(video.ID)
	return video, fe.err
}

// ParseComment transforms a raw comment resource into a Comment record.
// replies carries the total reply count for top-level comments and stays nil
// for replies themselves.
func ParseComment(data json.RawMessage, replies *int64) (Comment, error) {
	var raw rawComment
	if err := json.Unmarshal(data, &raw); err != nil {
		return Comment{}, errors.Wrap(err, "unmarshal comment")
	}
	var fe fieldErrors
	comment := Comment{
		ID:                    Clean(raw.ID),
		ParentID:              Clean(raw.Snippet.ParentID),
		VideoID:               Clean(raw.Snippet.VideoID),
		Text:                  Clean(raw.Snippet.TextOriginal),
		Author:                Clean(raw.Snippet.AuthorDisplayName),
		AuthorProfileImageURL: Clean(raw.Snippet.AuthorProfileImageURL),
		AuthorChannelID:       Clean(raw.Snippet.AuthorChannelID.Value),
		Likes:                 raw.Snippet.LikeCount,
		PublishedAt:           fe.timep("snippet.publishedAt", raw.Snippet.PublishedAt),
		UpdatedAt:             fe.timep("snippet.updatedAt", raw.Snippet.UpdatedAt),
		Replies:               replies,
	}
	return comment, fe.err
}
