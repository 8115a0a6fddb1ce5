package model

import "time"

// Sender roles inside an item conversation.
const (
	SenderBuyer  = "buyer"
	SenderSeller = "seller"
)

func ValidSender(s string) bool {
	return s == SenderBuyer || s == SenderSeller
}

// ConversationKey identifies the thread between one buyer and the
// seller of one item. BuyerID is the buyer's stable identity, never a
// mutable display name, so two buyers who happen to share a name get
// separate threads.
type ConversationKey struct {
	ItemID  string
	BuyerID string
}

// Message is one entry in a conversation's append-only log. Seq is the
// order marker assigned by the store at append time; it is strictly
// increasing within a conversation and never reused.
type Message struct {
	ID          string    `json:"id"`
	Seq         int64     `json:"orderMarker"`
	ItemID      string    `json:"itemId"`
	ItemName    string    `json:"itemName"`
	BuyerID     string    `json:"buyerId"`
	BuyerName   string    `json:"buyerName"`
	Sender      string    `json:"sender"`
	Body        string    `json:"message"`
	ClientToken string    `json:"clientToken,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (m Message) Key() ConversationKey {
	return ConversationKey{ItemID: m.ItemID, BuyerID: m.BuyerID}
}

// ChatSummary is a read-only projection over the message log: one row
// per conversation for sellers, one row per item for buyers. LastSeq
// carries the newest order marker in the thread for activity ordering.
type ChatSummary struct {
	ItemID    string `json:"itemId"`
	ItemName  string `json:"itemName"`
	BuyerID   string `json:"buyerId,omitempty"`
	BuyerName string `json:"buyerName,omitempty"`
	LastSeq   int64  `json:"-"`
}
