package dao

import (
	"context"
	"errors"

	"mckart-backend/model"
)

// ErrNotFound is returned by stores when a referenced row is absent.
var ErrNotFound = errors.New("not found")

type ItemStore interface {
	Insert(ctx context.Context, item *model.Item) error
	Update(ctx context.Context, item *model.Item) error
	GetByID(ctx context.Context, id string) (*model.Item, error)
	ListUnsold(ctx context.Context) ([]model.Item, error)
}

type UserStore interface {
	Insert(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// MessageStore is the append-only conversation log. Append assigns the
// order marker atomically and writes it back into msg.Seq; the
// returned value totally orders messages within a conversation. List
// is a fresh read each call, ascending by marker.
type MessageStore interface {
	Append(ctx context.Context, msg *model.Message) (int64, error)
	List(ctx context.Context, key model.ConversationKey) ([]model.Message, error)
	SellerSummaries(ctx context.Context, sellerID string) ([]model.ChatSummary, error)
	BuyerSummaries(ctx context.Context, buyerID string) ([]model.ChatSummary, error)
}
