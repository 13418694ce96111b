package livechat

// Innertube request and response shapes for the live_chat replay endpoint.
// Only the fields the replay walk reads are declared; everything else in the
// payloads is ignored.

type replayRequest struct {
	Context      clientContext `json:"context"`
	Continuation string        `json:"continuation"`
}

type clientContext struct {
	Client webClient `json:"client"`
}

type webClient struct {
	ClientName    string `json:"clientName"`
	ClientVersion string `json:"clientVersion"`
	HL            string `json:"hl"`
	GL            string `json:"gl"`
}

type replayResponse struct {
	ContinuationContents struct {
		LiveChatContinuation struct {
			Actions       []replayAction     `json:"actions"`
			Continuations []chatContinuation `json:"continuations"`
		} `json:"liveChatContinuation"`
	} `json:"continuationContents"`
}

type replayAction struct {
	ReplayChatItemAction struct {
		Actions             []chatAction `json:"actions"`
		VideoOffsetTimeMsec string       `json:"videoOffsetTimeMsec"`
	} `json:"replayChatItemAction"`
}

type chatAction struct {
	AddChatItemAction struct {
		Item chatItem `json:"item"`
	} `json:"addChatItemAction"`
}

type chatItem struct {
	TextMessage *messageRenderer `json:"liveChatTextMessageRenderer"`
	PaidMessage *messageRenderer `json:"liveChatPaidMessageRenderer"`
}

type messageRenderer struct {
	ID      string `json:"id"`
	Message struct {
		Runs []messageRun `json:"runs"`
	} `json:"message"`
	AuthorName struct {
		SimpleText string `json:"simpleText"`
	} `json:"authorName"`
	AuthorPhoto struct {
		Thumbnails []thumbnail `json:"thumbnails"`
	} `json:"authorPhoto"`
	AuthorExternalChannelID string `json:"authorExternalChannelId"`
	TimestampUsec           string `json:"timestampUsec"`
	PurchaseAmountText      struct {
		SimpleText string `json:"simpleText"`
	} `json:"purchaseAmountText"`
}

type messageRun struct {
	Text  string     `json:"text"`
	Emoji *emojiData `json:"emoji"`
}

type emojiData struct {
	EmojiID       string   `json:"emojiId"`
	Shortcuts     []string `json:"shortcuts"`
	IsCustomEmoji bool     `json:"isCustomEmoji"`
}

type thumbnail struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type chatContinuation struct {
	LiveChatReplayContinuationData struct {
		Continuation string `json:"continuation"`
	} `json:"liveChatReplayContinuationData"`
}

// watchPageData is the slice of the watch page's initial data blob that
// locates the chat replay continuation. The sub-menu lists the replay
// variants ("Top chat replay", "Live chat replay"); the last one is the
// unfiltered replay.
type watchPageData struct {
	Contents struct {
		TwoColumnWatchNextResults struct {
			ConversationBar struct {
				LiveChatRenderer struct {
					Header struct {
						LiveChatHeaderRenderer struct {
							ViewSelector struct {
								SortFilterSubMenuRenderer struct {
									SubMenuItems []subMenuItem `json:"subMenuItems"`
								} `json:"sortFilterSubMenuRenderer"`
							} `json:"viewSelector"`
						} `json:"liveChatHeaderRenderer"`
					} `json:"header"`
				} `json:"liveChatRenderer"`
			} `json:"conversationBar"`
		} `json:"twoColumnWatchNextResults"`
	} `json:"contents"`
}

type subMenuItem struct {
	Title        string `json:"title"`
	Continuation struct {
		ReloadContinuationData struct {
			Continuation string `json:"continuation"`
		} `json:"reloadContinuationData"`
	} `json:"continuation"`
}
