package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"mckart-backend/apperr"
	"mckart-backend/dao"
	"mckart-backend/model"
)

type ChatUsecase struct {
	items dao.ItemStore
	msgs  dao.MessageStore
	log   *zap.Logger
}

func NewChatUsecase(items dao.ItemStore, msgs dao.MessageStore, log *zap.Logger) *ChatUsecase {
	return &ChatUsecase{items: items, msgs: msgs, log: log}
}

// SendRequest mirrors the wire shape of POST /conversations/send.
// BuyerID is the buyer's stable identity; when a legacy client sends
// only the display name, the name doubles as the identity.
type SendRequest struct {
	ItemID      string `json:"itemId"`
	ItemName    string `json:"itemName"`
	BuyerID     string `json:"buyerId"`
	BuyerName   string `json:"buyerName"`
	Sender      string `json:"sender"`
	Body        string `json:"message"`
	ClientToken string `json:"clientToken"`
}

// Resolve derives the canonical conversation key for an item and buyer
// identity, verifying the item exists before anything is appended.
func (u *ChatUsecase) Resolve(ctx context.Context, itemID, buyerID, buyerName string) (model.ConversationKey, *model.Item, error) {
	if strings.TrimSpace(itemID) == "" {
		return model.ConversationKey{}, nil, apperr.Validation("itemId is required")
	}
	identity := strings.TrimSpace(buyerID)
	if identity == "" {
		identity = strings.TrimSpace(buyerName)
	}
	if identity == "" {
		return model.ConversationKey{}, nil, apperr.Validation("buyer identity is required")
	}

	item, err := u.items.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return model.ConversationKey{}, nil, apperr.NotFound("item not found")
		}
		return model.ConversationKey{}, nil, apperr.Internal(err)
	}
	return model.ConversationKey{ItemID: item.ID, BuyerID: identity}, item, nil
}

// Send appends one message to the conversation's log and returns it
// with the order marker the store assigned, so the caller can
// reconcile its optimistic echo exactly.
func (u *ChatUsecase) Send(ctx context.Context, req SendRequest) (*model.Message, error) {
	if !model.ValidSender(req.Sender) {
		return nil, apperr.Validation("sender must be buyer or seller")
	}
	if strings.TrimSpace(req.Body) == "" {
		return nil, apperr.Validation("message is required")
	}

	key, item, err := u.Resolve(ctx, req.ItemID, req.BuyerID, req.BuyerName)
	if err != nil {
		return nil, err
	}

	buyerName := strings.TrimSpace(req.BuyerName)
	if buyerName == "" {
		buyerName = key.BuyerID
	}

	msg := &model.Message{
		ID:          newID(),
		ItemID:      key.ItemID,
		ItemName:    item.Name, // catalog name wins over whatever the client sent
		BuyerID:     key.BuyerID,
		BuyerName:   buyerName,
		Sender:      req.Sender,
		Body:        req.Body,
		ClientToken: req.ClientToken,
		CreatedAt:   time.Now(),
	}
	seq, err := u.msgs.Append(ctx, msg)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	u.log.Info("message appended",
		zap.String("itemId", key.ItemID),
		zap.String("buyerId", key.BuyerID),
		zap.String("sender", req.Sender),
		zap.Int64("orderMarker", seq))
	return msg, nil
}

// Messages returns the conversation in ascending order-marker order.
// An unopened conversation is valid state: the result is empty, not an
// error.
func (u *ChatUsecase) Messages(ctx context.Context, itemID, buyerIdentity string) ([]model.Message, error) {
	key, _, err := u.Resolve(ctx, itemID, buyerIdentity, "")
	if err != nil {
		return nil, err
	}
	msgs, err := u.msgs.List(ctx, key)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if msgs == nil {
		msgs = []model.Message{}
	}
	return msgs, nil
}

// SellerChats lists one row per (item, buyer) conversation across the
// seller's items. Recomputed from the message log on every call.
func (u *ChatUsecase) SellerChats(ctx context.Context, sellerID string) ([]model.ChatSummary, error) {
	if strings.TrimSpace(sellerID) == "" {
		return nil, apperr.Validation("seller identity is required")
	}
	rows, err := u.msgs.SellerSummaries(ctx, sellerID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if rows == nil {
		rows = []model.ChatSummary{}
	}
	return rows, nil
}

// BuyerChats lists one row per item the buyer has messaged about.
func (u *ChatUsecase) BuyerChats(ctx context.Context, buyerID string) ([]model.ChatSummary, error) {
	if strings.TrimSpace(buyerID) == "" {
		return nil, apperr.Validation("buyer identity is required")
	}
	rows, err := u.msgs.BuyerSummaries(ctx, buyerID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if rows == nil {
		rows = []model.ChatSummary{}
	}
	return rows, nil
}
