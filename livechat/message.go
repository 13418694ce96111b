package livechat

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// Message types emitted in the Type field.
const (
	TypeTextMessage = "text_message"
	TypePaidMessage = "paid_message"
)

// actionAddChatItem is the only replay action currently surfaced.
const actionAddChatItem = "add_chat_item"

// Message is a single replayed chat entry, flattened. MoneyCurrency and
// MoneyAmount are set only on paid messages; both are empty otherwise.
type Message struct {
	ID             string           `json:"id"`
	VideoID        string           `json:"video_id"`
	CreatedAt      *time.Time       `json:"created_at"`
	Type           string           `json:"type"`
	Action         string           `json:"action"`
	VideoTime      float64          `json:"video_time"`
	Author         string           `json:"author"`
	AuthorID       string           `json:"author_id"`
	AuthorImageURL string           `json:"author_image_url"`
	Text           string           `json:"text"`
	MoneyCurrency  string           `json:"money_currency"`
	MoneyAmount    *decimal.Decimal `json:"money_amount"`
}

// CSVHeader returns the column names for chat message rows.
func (m Message) CSVHeader() []string {
	return []string{
		"id", "video_id", "created_at", "type", "action", "video_time",
		"author", "author_id", "author_image_url", "text",
		"money_currency", "money_amount",
	}
}

// CSVRow returns the message as a row matching CSVHeader.
func (m Message) CSVRow() []string {
	createdAt := ""
	if m.CreatedAt != nil {
		createdAt = m.CreatedAt.UTC().Format(time.RFC3339)
	}
	amount := ""
	if m.MoneyAmount != nil {
		amount = m.MoneyAmount.String()
	}
	return []string{
		m.ID,
		m.VideoID,
		createdAt,
		m.Type,
		m.Action,
		strconv.FormatFloat(m.VideoTime, 'f', -1, 64),
		m.Author,
		m.AuthorID,
		m.AuthorImageURL,
		m.Text,
		m.MoneyCurrency,
		amount,
	}
}
