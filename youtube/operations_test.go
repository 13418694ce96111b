package youtube

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelsInfoKeepsPositionalPlaceholders(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// The middle identifier is unknown to the platform.
		fmt.Fprint(w, `{"items": [
			{"id": "UCone", "snippet": {"title": "One"}},
			{"id": "UCthree", "snippet": {"title": "Three"}}
		]}`)
	}, "key")

	got, err := client.ChannelsInfo(slices.Values([]string{"UCone", "UCmissing", "UCthree"})).Collect()
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.NotNil(t, got[0])
	assert.Equal(t, "One", got[0].Title)
	assert.Nil(t, got[1], "unknown ids must keep their slot")
	require.NotNil(t, got[2])
	assert.Equal(t, "Three", got[2].Title)
}

func TestChannelsInfoBatchesRequests(t *testing.T) {
	var idParams []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		idParams = append(idParams, r.URL.Query().Get("id"))
		fmt.Fprint(w, `{"items": []}`)
	}, "key")

	ids := make([]string, 72)
	for i := range ids {
		ids[i] = fmt.Sprintf("UC%02d", i)
	}
	got, err := client.ChannelsInfo(slices.Values(ids)).Collect()
	require.NoError(t, err)
	assert.Len(t, got, 72)
	require.Len(t, idParams, 2)
	assert.Len(t, strings.Split(idParams[0], ","), 50)
	assert.Len(t, strings.Split(idParams[1], ","), 22)
}

func TestChannelsInfoConsumesInputLazily(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items": []}`)
	}, "key")

	consumed := 0
	ids := func(yield func(string) bool) {
		for i := 0; i < 200; i++ {
			consumed++
			if !yield(fmt.Sprintf("UC%03d", i)) {
				return
			}
		}
	}

	it := client.ChannelsInfo(ids)
	assert.Equal(t, 0, consumed, "nothing is consumed before the first Next")
	require.True(t, it.Next())
	assert.Equal(t, 50, consumed, "only the first batch is pulled for the first page")
}

func TestVideosInfoYieldsOnlyFoundVideos(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items": [
			{"kind": "youtube#video", "id": "vid11111111", "snippet": {"title": "Found"}}
		]}`)
	}, "key")

	got, err := client.VideosInfo(slices.Values([]string{"vid11111111", "vidmissing0"})).Collect()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "vid11111111", got[0].ID)
}

func TestVideoCommentsFlattensThreads(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "vid11111111", r.URL.Query().Get("videoId"))
		fmt.Fprint(w, `{"items": [{
			"snippet": {
				"totalReplyCount": 2,
				"topLevelComment": {"id": "top1", "snippet": {"textOriginal": "first!"}}
			},
			"replies": {"comments": [
				{"id": "r1", "snippet": {"parentId": "top1", "textOriginal": "actually second"}},
				{"id": "r2", "snippet": {"parentId": "top1", "textOriginal": "third"}}
			]}
		}]}`)
	}, "key")

	got, err := client.VideoComments("vid11111111").Collect()
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "top1", got[0].ID)
	require.NotNil(t, got[0].Replies)
	assert.Equal(t, int64(2), *got[0].Replies)

	assert.Equal(t, "r1", got[1].ID)
	assert.Equal(t, "top1", got[1].ParentID)
	assert.Nil(t, got[1].Replies, "replies carry no reply count")
	assert.Equal(t, "r2", got[2].ID)
}

func TestChannelIDFromUsername(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "someuser", r.URL.Query().Get("forUsername"))
		fmt.Fprint(w, `{"items": [{"id": "UCresolved"}]}`)
	}, "key")

	id, err := client.ChannelIDFromUsername("someuser")
	require.NoError(t, err)
	assert.Equal(t, "UCresolved", id)
}

func TestChannelIDFromUsernameNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"items": []}`)
	}, "key")

	id, err := client.ChannelIDFromUsername("nobody")
	require.NoError(t, err)
	assert.Equal(t, "", id)
}
