// Package livechat replays the chat of finished live streams. It drives the
// public Innertube live_chat replay endpoint directly: the watch page yields
// an API key and the replay continuation, and each subsequent request returns
// one batch of chat actions plus the next continuation. No API credential is
// involved.
package livechat

import (
	"bytes"
	"context"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	ythttp "ytharvest/http"
	"ytharvest/youtube"
)

const (
	watchURL       = "https://www.youtube.com/watch?v="
	replayEndpoint = "https://www.youtube.com/youtubei/v1/live_chat/get_live_chat_replay"

	clientName    = "WEB"
	clientVersion = "2.20240101.00.00"
)

// ErrChatUnavailable reports a video with no chat replay: chat was disabled,
// the replay was removed, or the video never streamed live.
var ErrChatUnavailable = errors.New("livechat: chat replay unavailable")

var (
	apiKeyRe      = regexp.MustCompile(`"INNERTUBE_API_KEY":"([^"]+)"`)
	initialDataRe = regexp.MustCompile(`(?s)(?:window\s*\[\s*["']ytInitialData["']\s*\]|ytInitialData)\s*=\s*(\{.+?\})\s*;`)
)

// Options configures replay behaviour.
type Options struct {
	// KeepEmojiShortcuts leaves emoji shortcuts (":smile:") in message text
	// instead of replacing them with the emoji itself.
	KeepEmojiShortcuts bool
}

// Client fetches chat replays.
type Client struct {
	httpClient   *ythttp.Client
	expandEmojis bool
}

// NewClient builds a replay client on top of a shared rate-limited HTTP
// client.
func NewClient(httpClient *ythttp.Client, opts Options) *Client {
	return &Client{
		httpClient:   httpClient,
		expandEmojis: !opts.KeepEmojiShortcuts,
	}
}

// Messages iterates the full chat replay of a video in playback order. Text
// and paid messages are emitted; other renderer kinds are skipped. The first
// Next call fetches the watch page; a video without a replay surfaces
// ErrChatUnavailable through Err.
func (c *Client) Messages(ctx context.Context, videoID string) *youtube.Iterator[Message] {
	var key, continuation string
	started := false
	return youtube.NewIterator(func() ([]Message, bool, error) {
		if !started {
			started = true
			var err error
			key, continuation, err = c.openChat(ctx, videoID)
			if err != nil {
				return nil, false, err
			}
		}

		resp, err := c.fetchPage(ctx, key, continuation)
		if err != nil {
			return nil, false, err
		}

		chat := resp.ContinuationContents.LiveChatContinuation
		messages := make([]Message, 0, len(chat.Actions))
		for _, action := range chat.Actions {
			replay := action.ReplayChatItemAction
			for _, inner := range replay.Actions {
				msg, ok := c.parseItem(videoID, inner.AddChatItemAction.Item, replay.VideoOffsetTimeMsec)
				if !ok {
					continue
				}
				messages = append(messages, msg)
			}
		}

		next := ""
		for _, cont := range chat.Continuations {
			if token := cont.LiveChatReplayContinuationData.Continuation; token != "" {
				next = token
				break
			}
		}
		// A repeated token means the replay is exhausted; requesting it
		// again would loop on the final page forever.
		more := next != "" && next != continuation && len(chat.Actions) > 0
		continuation = next
		return messages, more, nil
	})
}

// openChat fetches the watch page and extracts the Innertube API key and the
// unfiltered replay continuation.
func (c *Client) openChat(ctx context.Context, videoID string) (key, continuation string, err error) {
	resp, err := c.httpClient.Get(ctx, watchURL+videoID)
	if err != nil {
		return "", "", errors.Wrapf(err, "fetch watch page for %s", videoID)
	}
	if resp.StatusCode != 200 {
		return "", "", errors.Errorf("livechat: watch page for %s returned status %d", videoID, resp.StatusCode)
	}

	keyMatch := apiKeyRe.FindSubmatch(resp.Body)
	if keyMatch == nil {
		return "", "", errors.Errorf("livechat: no api key on watch page for %s", videoID)
	}

	dataMatch := initialDataRe.FindSubmatch(resp.Body)
	if dataMatch == nil {
		return "", "", errors.Wrapf(ErrChatUnavailable, "video %s", videoID)
	}
	var page watchPageData
	if err := json.Unmarshal(dataMatch[1], &page); err != nil {
		return "", "", errors.Wrapf(err, "parse initial data for %s", videoID)
	}

	items := page.Contents.TwoColumnWatchNextResults.ConversationBar.
		LiveChatRenderer.Header.LiveChatHeaderRenderer.ViewSelector.
		SortFilterSubMenuRenderer.SubMenuItems
	if len(items) == 0 {
		return "", "", errors.Wrapf(ErrChatUnavailable, "video %s", videoID)
	}
	token := items[len(items)-1].Continuation.ReloadContinuationData.Continuation
	if token == "" {
		return "", "", errors.Wrapf(ErrChatUnavailable, "video %s", videoID)
	}

	log.WithFields(log.Fields{
		"video_id": videoID,
	}).Debug("chat replay opened")
	return string(keyMatch[1]), token, nil
}

// fetchPage requests one batch of replay actions.
func (c *Client) fetchPage(ctx context.Context, key, continuation string) (*replayResponse, error) {
	payload, err := json.Marshal(replayRequest{
		Context: clientContext{
			Client: webClient{
				ClientName:    clientName,
				ClientVersion: clientVersion,
				HL:            "en",
				GL:            "US",
			},
		},
		Continuation: continuation,
	})
	if err != nil {
		return nil, errors.Wrap(err, "marshal replay request")
	}

	headers := map[string]string{
		"Content-Type": "application/json",
		"Origin":       "https://www.youtube.com",
		"Referer":      "https://www.youtube.com/",
	}
	resp, err := c.httpClient.Do(ctx, "POST", replayEndpoint+"?key="+key+"&prettyPrint=false", bytes.NewReader(payload), headers)
	if err != nil {
		return nil, errors.Wrap(err, "fetch replay page")
	}
	if resp.StatusCode != 200 {
		return nil, errors.Errorf("livechat: replay endpoint returned status %d", resp.StatusCode)
	}

	var page replayResponse
	if err := json.Unmarshal(resp.Body, &page); err != nil {
		return nil, errors.Wrap(err, "parse replay page")
	}
	return &page, nil
}

// parseItem flattens one chat item into a Message. Renderers other than text
// and paid messages report ok=false.
func (c *Client) parseItem(videoID string, item chatItem, offsetMsec string) (Message, bool) {
	var renderer *messageRenderer
	var msgType string
	switch {
	case item.TextMessage != nil:
		renderer, msgType = item.TextMessage, TypeTextMessage
	case item.PaidMessage != nil:
		renderer, msgType = item.PaidMessage, TypePaidMessage
	default:
		return Message{}, false
	}

	msg := Message{
		ID:        renderer.ID,
		VideoID:   videoID,
		Type:      msgType,
		Action:    actionAddChatItem,
		VideoTime: offsetSeconds(offsetMsec),
		Author:    youtube.Clean(renderer.AuthorName.SimpleText),
		AuthorID:  renderer.AuthorExternalChannelID,
		Text:      youtube.Clean(c.messageText(renderer.Message.Runs)),
	}
	createdAt, err := youtube.ParseTimestamp(renderer.TimestampUsec)
	if err != nil {
		log.WithFields(log.Fields{
			"video_id":   videoID,
			"message_id": renderer.ID,
			"timestamp":  renderer.TimestampUsec,
		}).Warn("unparseable message timestamp")
	} else {
		msg.CreatedAt = createdAt
	}
	if photos := renderer.AuthorPhoto.Thumbnails; len(photos) > 0 {
		// The last thumbnail is the largest, the source image.
		msg.AuthorImageURL = photos[len(photos)-1].URL
	}
	if paid := renderer.PurchaseAmountText.SimpleText; paid != "" {
		currency, amount, err := parseMoney(paid)
		if err != nil {
			log.WithFields(log.Fields{
				"video_id":   videoID,
				"message_id": renderer.ID,
				"amount":     paid,
			}).Warn("unparseable purchase amount")
		} else {
			msg.MoneyCurrency = currency
			msg.MoneyAmount = amount
		}
	}
	return msg, true
}

// messageText joins message runs into plain text. Emoji runs contribute the
// emoji itself or its first shortcut, depending on configuration; custom
// channel emoji have no text form and always contribute their shortcut.
func (c *Client) messageText(runs []messageRun) string {
	var b strings.Builder
	for _, run := range runs {
		switch {
		case run.Emoji == nil:
			b.WriteString(run.Text)
		case c.expandEmojis && !run.Emoji.IsCustomEmoji:
			b.WriteString(run.Emoji.EmojiID)
		case len(run.Emoji.Shortcuts) > 0:
			b.WriteString(run.Emoji.Shortcuts[0])
		default:
			b.WriteString(run.Emoji.EmojiID)
		}
	}
	return b.String()
}

func offsetSeconds(msec string) float64 {
	n, err := strconv.ParseInt(msec, 10, 64)
	if err != nil {
		return 0
	}
	return float64(n) / 1000
}
