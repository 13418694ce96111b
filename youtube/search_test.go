package youtube

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchOptionsParams(t *testing.T) {
	since := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	opts := SearchOptions{
		Term:         "golang",
		RegionCode:   "BR",
		LanguageCode: "pt",
		Since:        &since,
		ChannelID:    "UCabc",
		Topic:        "Technology",
	}
	params, err := opts.params()
	require.NoError(t, err)
	assert.Equal(t, "video", params.Get("type"))
	assert.Equal(t, "snippet", params.Get("part"))
	assert.Equal(t, "date", params.Get("order"), "order defaults to date")
	assert.Equal(t, "golang", params.Get("q"))
	assert.Equal(t, "BR", params.Get("regionCode"))
	assert.Equal(t, "pt", params.Get("relevanceLanguage"))
	assert.Equal(t, "2023-01-01T00:00:00Z", params.Get("publishedAfter"))
	assert.Equal(t, "UCabc", params.Get("channelId"))
	assert.Equal(t, "/m/07c1v", params.Get("topicId"))
}

func TestSearchOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts SearchOptions
	}{
		{"bad order", SearchOptions{Order: "newest"}},
		{"event type without channel type", SearchOptions{EventType: "live"}},
		{"bad event type", SearchOptions{ChannelType: "any", EventType: "finished"}},
		{"unknown topic", SearchOptions{Topic: "Cooking shows"}},
		{"bad video type", SearchOptions{VideoType: "short"}},
		{"location without radius", SearchOptions{Location: &Location{Latitude: 1, Longitude: 2}}},
		{"radius without location", SearchOptions{LocationRadius: "1km"}},
		{"malformed radius", SearchOptions{Location: &Location{}, LocationRadius: "1 kilometer"}},
		{"bad safe search", SearchOptions{SafeSearch: "on"}},
		{"bad caption", SearchOptions{VideoCaption: "subtitles"}},
		{"bad license", SearchOptions{VideoLicense: "gpl"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.opts.params()
			require.Error(t, err)
		})
	}
}

func TestSearchOptionsLocation(t *testing.T) {
	opts := SearchOptions{
		Location:       &Location{Latitude: -23.55, Longitude: -46.63},
		LocationRadius: "1.2km",
	}
	params, err := opts.params()
	require.NoError(t, err)
	assert.Equal(t, "-23.55,-46.63", params.Get("location"))
	assert.Equal(t, "1.2km", params.Get("locationRadius"))
}

func TestVideoSearchInvalidOptionsSurfaceThroughIterator(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for invalid options")
	}, "key")
	it := client.VideoSearch(SearchOptions{Order: "newest"})
	assert.False(t, it.Next())
	require.Error(t, it.Err())
}
