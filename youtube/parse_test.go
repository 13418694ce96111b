package youtube

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello", "hello"},
		{"surrounding whitespace", "  hello \n", "hello"},
		{"embedded nul", "he\x00llo", "hello"},
		{"nul then whitespace", "\x00 hello \x00", "hello"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.input))
		})
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *int64
		wantErr bool
	}{
		{"number", "42", int64p(42), false},
		{"empty", "", nil, false},
		{"whitespace", "  ", nil, false},
		{"literal none", "None", nil, false},
		{"garbage", "4x2", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInt(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDecimalKeepsExactness(t *testing.T) {
	d, err := ParseDecimal("3.14")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "3.14", d.String())

	d, err = ParseDecimal("123.4500")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "123.45", d.String())

	// A value binary floats cannot represent exactly.
	d, err = ParseDecimal("0.1")
	require.NoError(t, err)
	assert.Equal(t, "0.1", d.String())

	d, err = ParseDecimal("")
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestParseDatetime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"zulu suffix", "2023-01-02T03:04:05Z", "2023-01-02T03:04:05Z", false},
		{"explicit offset", "2023-01-02T03:04:05+02:00", "2023-01-02T01:04:05Z", false},
		{"empty", "", "", false},
		{"date only", "2023-01-02", "", true},
		{"garbage", "yesterday", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDatetime(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.UTC().Format(time.RFC3339))
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	got, err := ParseTimestamp("1577880000000000")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC), *got)

	got, err = ParseTimestamp("")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = ParseTimestamp("not-usec")
	require.Error(t, err)
}

func TestParseDuration(t *testing.T) {
	got, err := ParseDuration("PT1H2M3S")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, float64(3723), *got)

	got, err = ParseDuration("")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestParseVideoKinds(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Video
	}{
		{
			name: "video resource",
			data: `{
				"kind": "youtube#video",
				"id": "vid11111111",
				"snippet": {
					"title": "A title\u0000",
					"channelId": "UCowner",
					"channelTitle": "Owner",
					"publishedAt": "2023-05-01T10:00:00Z",
					"tags": [" go ", "data"]
				},
				"contentDetails": {"duration": "PT2M10S", "definition": "hd"},
				"statistics": {"viewCount": "100", "likeCount": "7"},
				"status": {"privacyStatus": "public"}
			}`,
			want: Video{
				ID:           "vid11111111",
				Title:        "A title",
				ChannelID:    "UCowner",
				ChannelTitle: "Owner",
				Definition:   "hd",
				Status:       "public",
				Duration:     float64p(130),
				Views:        int64p(100),
				Likes:        int64p(7),
				PublishedAt:  timep(2023, 5, 1, 10),
				Tags:         []string{"go", "data"},
			},
		},
		{
			name: "playlist item resource",
			data: `{
				"kind": "youtube#playlistItem",
				"id": "pli-opaque-id",
				"snippet": {
					"title": "From a playlist",
					"channelId": "UCplaylistowner",
					"channelTitle": "Curator",
					"publishedAt": "2023-06-01T09:00:00Z",
					"videoOwnerChannelId": "UCauthor",
					"videoOwnerChannelTitle": "Author",
					"resourceId": {"kind": "youtube#video", "videoId": "vid22222222"}
				},
				"contentDetails": {"videoPublishedAt": "2023-05-30T08:00:00Z"}
			}`,
			want: Video{
				ID:                   "vid22222222",
				Title:                "From a playlist",
				ChannelID:            "UCauthor",
				ChannelTitle:         "Author",
				PlaylistChannelID:    "UCplaylistowner",
				PlaylistChannelTitle: "Curator",
				AddedToPlaylistAt:    timep(2023, 6, 1, 9),
				PublishedAt:          timep(2023, 5, 30, 8),
			},
		},
		{
			name: "search result resource",
			data: `{
				"kind": "youtube#searchResult",
				"id": {"kind": "youtube#video", "videoId": "vid33333333"},
				"snippet": {
					"title": "Found by search",
					"channelId": "UCfound",
					"channelTitle": "Found",
					"publishedAt": "2023-07-01T12:00:00Z"
				}
			}`,
			want: Video{
				ID:           "vid33333333",
				Title:        "Found by search",
				ChannelID:    "UCfound",
				ChannelTitle: "Found",
				PublishedAt:  timep(2023, 7, 1, 12),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVideo(json.RawMessage(tt.data))
			require.NoError(t, err)
			require.NotEmpty(t, got.ID, "every kind must resolve a video id")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseVideoUnknownKind(t *testing.T) {
	_, err := ParseVideo(json.RawMessage(`{"kind": "youtube#subscription", "id": "x"}`))
	require.Error(t, err)
	var unknown *UnknownKindError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "youtube#subscription", unknown.Kind)
}

func TestParseVideoRejectsForeignPlaylistResource(t *testing.T) {
	_, err := ParseVideo(json.RawMessage(`{
		"kind": "youtube#playlistItem",
		"id": "x",
		"snippet": {"resourceId": {"kind": "youtube#channel"}}
	}`))
	require.Error(t, err)
}

func TestParseChannel(t *testing.T) {
	data := `{
		"id": "UCchannel",
		"snippet": {
			"title": " The Channel ",
			"description": "About\u0000 it",
			"customUrl": "@thechannel",
			"publishedAt": "2020-01-01T00:00:00Z",
			"thumbnails": {"default": {"url": "https://img/a.jpg"}}
		},
		"statistics": {"viewCount": "1234", "subscriberCount": "56", "videoCount": "7"},
		"contentDetails": {"relatedPlaylists": {"uploads": "UUchannel"}}
	}`
	got, err := ParseChannel(json.RawMessage(data))
	require.NoError(t, err)
	assert.Equal(t, Channel{
		ID:             "UCchannel",
		Title:          "The Channel",
		Description:    "About it",
		CustomUsername: "@thechannel",
		PublishedAt:    timep(2020, 1, 1, 0),
		ThumbnailURL:   "https://img/a.jpg",
		Views:          int64p(1234),
		Subscribers:    int64p(56),
		Videos:         int64p(7),
		PlaylistID:     "UUchannel",
	}, got)
}

func TestParseCommentReplyCount(t *testing.T) {
	data := `{
		"id": "c1",
		"snippet": {
			"videoId": "vid11111111",
			"textOriginal": "nice",
			"authorDisplayName": "someone",
			"authorChannelId": {"value": "UCsomeone"},
			"likeCount": 3,
			"publishedAt": "2023-01-01T00:00:00Z",
			"updatedAt": "2023-01-01T00:00:00Z"
		}
	}`
	top, err := ParseComment(json.RawMessage(data), int64p(2))
	require.NoError(t, err)
	require.NotNil(t, top.Replies)
	assert.Equal(t, int64(2), *top.Replies)
	assert.Equal(t, int64(3), *top.Likes)

	reply, err := ParseComment(json.RawMessage(data), nil)
	require.NoError(t, err)
	assert.Nil(t, reply.Replies)
}

func int64p(v int64) *int64       { return &v }
func float64p(v float64) *float64 { return &v }

func timep(year int, month time.Month, day, hour int) *time.Time {
	t := time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
	return &t
}
