package youtube

import (
	"encoding/json"
	"strconv"
	"time"
)

// Category is a regional video category.
type Category struct {
	ID         *int64 `json:"id"`
	Title      string `json:"title"`
	Assignable bool   `json:"assignable"`
	ChannelID  string `json:"channel_id"`
}

// Channel is a flattened channel record.
type Channel struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	CustomUsername string     `json:"custom_username"`
	PublishedAt    *time.Time `json:"published_at"`
	ThumbnailURL   string     `json:"thumbnail_url"`
	Views          *int64     `json:"views"`
	Subscribers    *int64     `json:"subscribers"`
	Videos         *int64     `json:"videos"`
	// PlaylistID is the channel's implicit "uploads" playlist.
	PlaylistID string `json:"playlist_id"`
}

// Playlist is a flattened playlist record.
type Playlist struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Videos       *int64     `json:"videos"`
	ChannelID    string     `json:"channel_id"`
	ChannelTitle string     `json:"channel_title"`
	PublishedAt  *time.Time `json:"published_at"`
	ThumbnailURL string     `json:"thumbnail_url"`
}

// Video is a flattened video record. The populated field set depends on which
// resource produced it: full videos carry statistics, live-streaming details and
// status; playlist items additionally carry the playlist owner and the time the
// video was added to the playlist; search results carry little more than the
// snippet. Absent fields stay nil.
type Video struct {
	ID                   string     `json:"id"`
	Duration             *float64   `json:"duration"`
	Definition           string     `json:"definition"`
	Status               string     `json:"status"`
	Views                *int64     `json:"views"`
	Likes                *int64     `json:"likes"`
	Dislikes             *int64     `json:"dislikes"`
	Favorites            *int64     `json:"favorites"`
	Comments             *int64     `json:"comments"`
	ScheduledTo          *time.Time `json:"scheduled_to"`
	StartedAt            *time.Time `json:"started_at"`
	FinishedAt           *time.Time `json:"finished_at"`
	ConcurrentViewers    *int64     `json:"concurrent_viewers"`
	ChannelID            string     `json:"channel_id"`
	ChannelTitle         string     `json:"channel_title"`
	PlaylistChannelID    string     `json:"playlist_channel_id"`
	PlaylistChannelTitle string     `json:"playlist_channel_title"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	PublishedAt          *time.Time `json:"published_at"`
	AddedToPlaylistAt    *time.Time `json:"added_to_playlist_at"`
	Tags                 []string   `json:"tags"`
}

// Comment is a flattened comment record. Top-level comments and replies share
// the shape; Replies (the reply count) is set on top-level comments only and
// ParentID on replies only.
type Comment struct {
	ID                    string     `json:"id"`
	ParentID              string     `json:"parent_id"`
	VideoID               string     `json:"video_id"`
	Text                  string     `json:"text"`
	Author                string     `json:"author"`
	AuthorProfileImageURL string     `json:"author_profile_image_url"`
	AuthorChannelID       string     `json:"author_channel_id"`
	Likes                 *int64     `json:"likes"`
	PublishedAt           *time.Time `json:"published_at"`
	UpdatedAt             *time.Time `json:"updated_at"`
	Replies               *int64     `json:"replies"`
}

// CSV field helpers shared by the record types. Nil pointers render as empty
// cells so CSV consumers see the same thing for "absent" and "null".

func csvInt(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func csvFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func csvTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func csvBool(b bool) string {
	return strconv.FormatBool(b)
}

func csvStrings(values []string) string {
	if len(values) == 0 {
		return ""
	}
	data, err := json.Marshal(values)
	if err != nil {
		return ""
	}
	return string(data)
}

// CSVHeader implements csvio.Record.
func (c Category) CSVHeader() []string {
	return []string{"id", "title", "assignable", "channel_id"}
}

// CSVRow implements csvio.Record.
func (c Category) CSVRow() []string {
	return []string{csvInt(c.ID), c.Title, csvBool(c.Assignable), c.ChannelID}
}

// CSVHeader implements csvio.Record.
func (c Channel) CSVHeader() []string {
	return []string{
		"id", "title", "description", "custom_username", "published_at",
		"thumbnail_url", "views", "subscribers", "videos", "playlist_id",
	}
}

// CSVRow implements csvio.Record.
func (c Channel) CSVRow() []string {
	return []string{
		c.ID, c.Title, c.Description, c.CustomUsername, csvTime(c.PublishedAt),
		c.ThumbnailURL, csvInt(c.Views), csvInt(c.Subscribers), csvInt(c.Videos), c.PlaylistID,
	}
}

// CSVHeader implements csvio.Record.
func (p Playlist) CSVHeader() []string {
	return []string{
		"id", "title", "description", "videos", "channel_id", "channel_title",
		"published_at", "thumbnail_url",
	}
}

// CSVRow implements csvio.Record.
func (p Playlist) CSVRow() []string {
	return []string{
		p.ID, p.Title, p.Description, csvInt(p.Videos), p.ChannelID, p.ChannelTitle,
		csvTime(p.PublishedAt), p.ThumbnailURL,
	}
}

// CSVHeader implements csvio.Record.
func (v Video) CSVHeader() []string {
	return []string{
		"id", "duration", "definition", "status", "views", "likes", "dislikes",
		"favorites", "comments", "scheduled_to", "started_at", "finished_at",
		"concurrent_viewers", "channel_id", "channel_title", "playlist_channel_id",
		"playlist_channel_title", "title", "description", "published_at",
		"added_to_playlist_at", "tags",
	}
}

// CSVRow implements csvio.Record.
func (v Video) CSVRow() []string {
	return []string{
		v.ID, csvFloat(v.Duration), v.Definition, v.Status, csvInt(v.Views),
		csvInt(v.Likes), csvInt(v.Dislikes), csvInt(v.Favorites), csvInt(v.Comments),
		csvTime(v.ScheduledTo), csvTime(v.StartedAt), csvTime(v.FinishedAt),
		csvInt(v.ConcurrentViewers), v.ChannelID, v.ChannelTitle, v.PlaylistChannelID,
		v.PlaylistChannelTitle, v.Title, v.Description, csvTime(v.PublishedAt),
		csvTime(v.AddedToPlaylistAt), csvStrings(v.Tags),
	}
}

// CSVHeader implements csvio.Record.
func (c Comment) CSVHeader() []string {
	return []string{
		"id", "parent_id", "video_id", "text", "author", "author_profile_image_url",
		"author_channel_id", "likes", "published_at", "updated_at", "replies",
	}
}

// CSVRow implements csvio.Record.
func (c Comment) CSVRow() []string {
	return []string{
		c.ID, c.ParentID, c.VideoID, c.Text, c.Author, c.AuthorProfileImageURL,
		c.AuthorChannelID, csvInt(c.Likes), csvTime(c.PublishedAt), csvTime(c.UpdatedAt),
		csvInt(c.Replies),
	}
}
