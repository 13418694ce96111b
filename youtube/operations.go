package youtube

import (
	"encoding/json"
	"iter"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// ChannelIDFromUsername resolves an old-style username through the channels
// endpoint's forUsername parameter. It does not work for /c/ or @handle
// usernames; those only resolve by scraping the channel page.
func (c *Client) ChannelIDFromUsername(username string) (string, error) {
	params := url.Values{}
	params.Set("part", "id")
	params.Set("forUsername", username)

	env, err := c.request("channels", params)
	if err != nil {
		return "", err
	}
	if len(env.Items) == 0 {
		return "", nil
	}
	var item struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Items[0], &item); err != nil {
		return "", errors.Wrap(err, "unmarshal channel id")
	}
	return item.ID, nil
}

// Categories fetches the assignable video categories for a region code.
func (c *Client) Categories(regionCode string) ([]Category, error) {
	params := url.Values{}
	params.Set("regionCode", regionCode)

	env, err := c.request("videoCategories", params)
	if err != nil {
		return nil, err
	}
	categories := make([]Category, 0, len(env.Items))
	for _, raw := range env.Items {
		cat, err := ParseCategory(raw)
		if err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	return categories, nil
}

// MostPopular walks the mostPopular chart, optionally narrowed to a region
// and/or category.
func (c *Client) MostPopular(regionCode, categoryID string) *Iterator[Video] {
	params := url.Values{}
	params.Set("part", "contentDetails,statistics,liveStreamingDetails,snippet,status")
	params.Set("chart", "mostPopular")
	if categoryID != "" {
		params.Set("videoCategoryId", categoryID)
	}
	if regionCode != "" {
		params.Set("regionCode", regionCode)
	}
	return paginate(c, "videos", params, ParseVideo)
}

// ChannelsInfo looks channels up in batches of 50, consuming the input
// sequence one batch at a time as the iterator advances. The result sequence
// keeps one-to-one positional correspondence with the input identifiers: an
// identifier the platform does not know yields a nil placeholder.
func (c *Client) ChannelsInfo(channelIDs iter.Seq[string]) *Iterator[*Channel] {
	next, stop := iter.Pull(Partition(channelIDs, maxResults))
	return NewIterator(func() ([]*Channel, bool, error) {
		batch, ok := next()
		if !ok {
			stop()
			return nil, false, nil
		}

		params := url.Values{}
		params.Set("part", "snippet,contentDetails,statistics")
		params.Set("id", strings.Join(batch, ","))

		env, err := c.request("channels", params)
		if err != nil {
			stop()
			return nil, false, err
		}

		byID := make(map[string]*Channel, len(env.Items))
		for _, raw := range env.Items {
			ch, err := ParseChannel(raw)
			if err != nil {
				stop()
				return nil, false, err
			}
			byID[ch.ID] = &ch
		}
		out := make([]*Channel, len(batch))
		for i, id := range batch {
			out[i] = byID[id]
		}
		return out, true, nil
	})
}

// ChannelPlaylists walks the playlists owned by a channel.
func (c *Client) ChannelPlaylists(channelID string) *Iterator[Playlist] {
	params := url.Values{}
	params.Set("part", "contentDetails,snippet")
	params.Set("channelId", channelID)
	return paginate(c, "playlists", params, ParsePlaylist)
}

// PlaylistVideos walks the videos of a playlist. Playlist items carry less
// than the videos resource, so some Video fields stay nil; see ParseVideo.
func (c *Client) PlaylistVideos(playlistID string) *Iterator[Video] {
	params := url.Values{}
	params.Set("part", "contentDetails,snippet,status")
	params.Set("playlistId", playlistID)
	return paginate(c, "playlistItems", params, ParseVideo)
}

// VideosInfo looks videos up in batches of 50, consuming the input sequence
// one batch at a time as the iterator advances and yielding the records the
// platform returned. Unknown identifiers are silently absent.
func (c *Client) VideosInfo(videoIDs iter.Seq[string]) *Iterator[Video] {
	next, stop := iter.Pull(Partition(videoIDs, maxResults))
	return NewIterator(func() ([]Video, bool, error) {
		batch, ok := next()
		if !ok {
			stop()
			return nil, false, nil
		}

		params := url.Values{}
		params.Set("part", "contentDetails,statistics,liveStreamingDetails,snippet,status")
		params.Set("id", strings.Join(batch, ","))

		env, err := c.request("videos", params)
		if err != nil {
			stop()
			return nil, false, err
		}
		videos := make([]Video, 0, len(env.Items))
		for _, raw := range env.Items {
			v, err := ParseVideo(raw)
			if err != nil {
				stop()
				return nil, false, err
			}
			videos = append(videos, v)
		}
		return videos, true, nil
	})
}

// VideoComments walks the comment threads of a video, flattening each thread
// into its top-level comment (carrying the reply count) followed by its
// replies.
func (c *Client) VideoComments(videoID string) *Iterator[Comment] {
	pageToken := ""
	first := true
	return NewIterator(func() ([]Comment, bool, error) {
		params := url.Values{}
		params.Set("part", "id,replies,snippet")
		params.Set("videoId", videoID)
		if !first {
			params.Set("pageToken", pageToken)
		}
		first = false

		env, err := c.request("commentThreads", params)
		if err != nil {
			return nil, false, err
		}

		var comments []Comment
		for _, raw := range env.Items {
			var thread rawCommentThread
			if err := json.Unmarshal(raw, &thread); err != nil {
				return nil, false, errors.Wrap(err, "unmarshal comment thread")
			}
			top, err := ParseComment(thread.Snippet.TopLevelComment, thread.Snippet.TotalReplyCount)
			if err != nil {
				return nil, false, err
			}
			comments = append(comments, top)
			for _, rawReply := range thread.Replies.Comments {
				reply, err := ParseComment(rawReply, nil)
				if err != nil {
					return nil, false, err
				}
				comments = append(comments, reply)
			}
		}
		pageToken = env.NextPageToken
		return comments, pageToken != "", nil
	})
}
