package youtube

import "encoding/json"

// Raw wire shapes for the Data API v3 resources the parsers consume. Numeric
// statistics arrive as JSON strings; counts that the API encodes as numbers use
// pointers so an absent key stays distinguishable from zero.

type rawThumbnails struct {
	Default struct {
		URL string `json:"url"`
	} `json:"default"`
}

type rawCategory struct {
	ID      string `json:"id"`
	Snippet struct {
		Title      string `json:"title"`
		Assignable bool   `json:"assignable"`
		ChannelID  string `json:"channelId"`
	} `json:"snippet"`
}

type rawChannel struct {
	ID      string `json:"id"`
	Snippet struct {
		Title       string        `json:"title"`
		Description string        `json:"description"`
		CustomURL   string        `json:"customUrl"`
		PublishedAt string        `json:"publishedAt"`
		Thumbnails  rawThumbnails `json:"thumbnails"`
	} `json:"snippet"`
	Statistics struct {
		ViewCount       string `json:"viewCount"`
		SubscriberCount string `json:"subscriberCount"`
		VideoCount      string `json:"videoCount"`
	} `json:"statistics"`
	ContentDetails struct {
		RelatedPlaylists struct {
			Uploads string `json:"uploads"`
		} `json:"relatedPlaylists"`
	} `json:"contentDetails"`
}

type rawPlaylist struct {
	ID      string `json:"id"`
	Snippet struct {
		Title        string        `json:"title"`
		Description  string        `json:"description"`
		ChannelID    string        `json:"channelId"`
		ChannelTitle string        `json:"channelTitle"`
		PublishedAt  string        `json:"publishedAt"`
		Thumbnails   rawThumbnails `json:"thumbnails"`
	} `json:"snippet"`
	ContentDetails struct {
		ItemCount *int64 `json:"itemCount"`
	} `json:"contentDetails"`
}

// rawVideo covers the three resource kinds that map to a Video record. The ID
// is either a plain string (videos resource) or an object carrying videoId
// (search results), so it stays raw until the kind is known.
type rawVideo struct {
	Kind    string          `json:"kind"`
	ID      json.RawMessage `json:"id"`
	Snippet struct {
		ChannelID    string   `json:"channelId"`
		ChannelTitle string   `json:"channelTitle"`
		Title        string   `json:"title"`
		Description  string   `json:"description"`
		PublishedAt  string   `json:"publishedAt"`
		Tags         []string `json:"tags"`
		ResourceID   struct {
			Kind    string `json:"kind"`
			VideoID string `json:"videoId"`
		} `json:"resourceId"`
		VideoOwnerChannelID    string `json:"videoOwnerChannelId"`
		VideoOwnerChannelTitle string `json:"videoOwnerChannelTitle"`
	} `json:"snippet"`
	ContentDetails struct {
		Duration         string `json:"duration"`
		Definition       string `json:"definition"`
		VideoPublishedAt string `json:"videoPublishedAt"`
	} `json:"contentDetails"`
	Statistics struct {
		ViewCount     string `json:"viewCount"`
		LikeCount     string `json:"likeCount"`
		DislikeCount  string `json:"dislikeCount"`
		FavoriteCount string `json:"favoriteCount"`
		CommentCount  string `json:"commentCount"`
	} `json:"statistics"`
	LiveStreamingDetails struct {
		ScheduledStartTime string `json:"scheduledStartTime"`
		ActualStartTime    string `json:"actualStartTime"`
		ActualEndTime      string `json:"actualEndTime"`
		ConcurrentViewers  string `json:"concurrentViewers"`
	} `json:"liveStreamingDetails"`
	Status struct {
		PrivacyStatus string `json:"privacyStatus"`
	} `json:"status"`
}

type rawComment struct {
	ID      string `json:"id"`
	Snippet struct {
		ParentID              string `json:"parentId"`
		VideoID               string `json:"videoId"`
		TextOriginal          string `json:"textOriginal"`
		AuthorDisplayName     string `json:"authorDisplayName"`
		AuthorProfileImageURL string `json:"authorProfileImageUrl"`
		AuthorChannelID       struct {
			Value string `json:"value"`
		} `json:"authorChannelId"`
		LikeCount   *int64 `json:"likeCount"`
		PublishedAt string `json:"publishedAt"`
		UpdatedAt   string `json:"updatedAt"`
	} `json:"snippet"`
}

type rawCommentThread struct {
	ID      string `json:"id"`
	Snippet struct {
		TopLevelComment json.RawMessage `json:"topLevelComment"`
		TotalReplyCount *int64          `json:"totalReplyCount"`
	} `json:"snippet"`
	Replies struct {
		Comments []json.RawMessage `json:"comments"`
	} `json:"replies"`
}
