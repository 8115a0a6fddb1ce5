package usecase

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"mckart-backend/apperr"
	"mckart-backend/dao"
)

func TestCreateItemValidation(t *testing.T) {
	u := NewItemUsecase(dao.NewMemoryStore(), zap.NewNop())

	cases := []struct {
		name string
		req  CreateItemRequest
	}{
		{"missing fields", CreateItemRequest{Name: "lamp", SellerID: "bob"}},
		{"negative price", CreateItemRequest{Name: "lamp", Price: -5, Category: "books", Description: "x", SellerID: "bob"}},
		{"unknown category", CreateItemRequest{Name: "lamp", Price: 5, Category: "weapons", Description: "x", SellerID: "bob"}},
		{"missing seller", CreateItemRequest{Name: "lamp", Price: 5, Category: "books", Description: "x"}},
	}
	for _, tc := range cases {
		if _, err := u.CreateItem(context.Background(), tc.req); apperr.KindOf(err) != apperr.KindValidation {
			t.Fatalf("%s: got %v, want validation error", tc.name, err)
		}
	}
}

func TestPurchaseMarksSoldOnce(t *testing.T) {
	store := dao.NewMemoryStore()
	u := NewItemUsecase(store, zap.NewNop())

	item, err := u.CreateItem(context.Background(), CreateItemRequest{
		Name: "lamp", Price: 5, Category: "books", Description: "a lamp", SellerID: "bob",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := u.Purchase(context.Background(), item.ID, "bob"); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("self-purchase: got %v, want validation error", err)
	}

	bought, err := u.Purchase(context.Background(), item.ID, "alice")
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if !bought.Sold {
		t.Fatalf("item not marked sold")
	}

	if _, err := u.Purchase(context.Background(), item.ID, "dave"); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("double purchase: got %v, want validation error", err)
	}

	// sold items drop out of the listing
	items, err := u.ListItems(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, it := range items {
		if it.ID == item.ID {
			t.Fatalf("sold item still listed")
		}
	}
}

func TestRegisterIsGetOrCreate(t *testing.T) {
	store := dao.NewMemoryStore()
	u := NewUserUsecase(store.Users())

	first, err := u.Register(context.Background(), "Alice", "alice@campus.edu", "buyer")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	again, err := u.Register(context.Background(), "Someone Else", "alice@campus.edu", "seller")
	if err != nil {
		t.Fatalf("re-register: %v", err)
	}
	if first.ID != again.ID {
		t.Fatalf("same email produced two identities: %s vs %s", first.ID, again.ID)
	}

	if _, err := u.Register(context.Background(), "Bob", "bob@campus.edu", "admin"); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("bad role: got %v, want validation error", err)
	}
}
