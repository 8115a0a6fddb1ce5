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

type ItemUsecase struct {
	items dao.ItemStore
	log   *zap.Logger
}

func NewItemUsecase(items dao.ItemStore, log *zap.Logger) *ItemUsecase {
	return &ItemUsecase{items: items, log: log}
}

type CreateItemRequest struct {
	Name        string `json:"name"`
	Price       int    `json:"price"`
	Category    string `json:"category"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	SellerID    string `json:"sellerId"`
	SellerName  string `json:"sellerName"`
}

func (u *ItemUsecase) CreateItem(ctx context.Context, req CreateItemRequest) (*model.Item, error) {
	if strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Category) == "" ||
		strings.TrimSpace(req.Description) == "" {
		return nil, apperr.Validation("all fields are required")
	}
	if req.Price < 0 {
		return nil, apperr.Validation("price must not be negative")
	}
	if !model.ValidCategory(req.Category) {
		return nil, apperr.Validation("unknown category")
	}
	if strings.TrimSpace(req.SellerID) == "" {
		return nil, apperr.Validation("seller identity is required")
	}

	item := &model.Item{
		ID:          newID(),
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		SellerID:    req.SellerID,
		SellerName:  req.SellerName,
		CreatedAt:   time.Now(),
	}
	if err := u.items.Insert(ctx, item); err != nil {
		return nil, apperr.Internal(err)
	}
	u.log.Info("item created", zap.String("itemId", item.ID), zap.String("sellerId", item.SellerID))
	return item, nil
}

func (u *ItemUsecase) ListItems(ctx context.Context) ([]model.Item, error) {
	items, err := u.items.ListUnsold(ctx)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

func (u *ItemUsecase) GetItem(ctx context.Context, id string) (*model.Item, error) {
	item, err := u.items.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrNotFound) {
			return nil, apperr.NotFound("item not found")
		}
		return nil, apperr.Internal(err)
	}
	return item, nil
}

// Purchase marks an item sold. A sold item is immutable, so a second
// purchase fails.
func (u *ItemUsecase) Purchase(ctx context.Context, itemID, buyerID string) (*model.Item, error) {
	if strings.TrimSpace(buyerID) == "" {
		return nil, apperr.Validation("buyer identity is required")
	}
	item, err := u.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.SellerID == buyerID {
		return nil, apperr.Validation("cannot buy your own item")
	}
	if item.Sold {
		return nil, apperr.Validation("item already sold")
	}

	item.Sold = true
	if err := u.items.Update(ctx, item); err != nil {
		return nil, apperr.Internal(err)
	}
	u.log.Info("item sold", zap.String("itemId", item.ID), zap.String("buyerId", buyerID))
	return item, nil
}
