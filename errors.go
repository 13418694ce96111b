package ytharvest

import (
	"ytharvest/livechat"
	"ytharvest/youtube"
)

// Error handling types exported for library users.
//
// Using errors.As() for typed errors:
//
//	var apiErr *ytharvest.APIError
//	if errors.As(err, &apiErr) {
//		fmt.Printf("request rejected: %d %s\n", apiErr.Code, apiErr.Message)
//	}
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, ytharvest.ErrChatUnavailable) {
//		fmt.Println("video has no chat replay")
//	}

// Type aliases for convenient error handling.
type (
	// APIError is the Data API error envelope of a rejected request.
	APIError = youtube.APIError
	// ExhaustedKeysError reports that every configured API key was consumed.
	ExhaustedKeysError = youtube.ExhaustedKeysError
	// UnknownKindError reports a resource payload of an unexpected kind.
	UnknownKindError = youtube.UnknownKindError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrChatUnavailable indicates a video with no live chat replay.
	ErrChatUnavailable = livechat.ErrChatUnavailable
)
