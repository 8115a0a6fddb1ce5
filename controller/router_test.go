package controller

import (
	"context"
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"

	"mckart-backend/dao"
	"mckart-backend/model"
	"mckart-backend/usecase"
)

// newTestMux wires the controllers over a memory store the same way
// main does.
func newTestMux(store *dao.MemoryStore, provider usecase.Provider) http.Handler {
	log := zap.NewNop()

	itemController := NewItemController(usecase.NewItemUsecase(store, log), log)
	userController := NewUserController(usecase.NewUserUsecase(store.Users()), log)
	chatController := NewChatController(usecase.NewChatUsecase(store, store, log), log)
	assistantController := NewAssistantController(usecase.NewAssistantUsecase(provider, log), log)

	mux := http.NewServeMux()
	mux.HandleFunc("/items", itemController.HandleItems)
	mux.HandleFunc("/items/", itemController.HandleItemDetail)
	mux.HandleFunc("/register", userController.Register)
	mux.HandleFunc("/conversations/send", chatController.HandleSend)
	mux.HandleFunc("/conversations/seller-summary/", chatController.HandleSellerSummary)
	mux.HandleFunc("/conversations/buyer-summary/", chatController.HandleBuyerSummary)
	mux.HandleFunc("/conversations/", chatController.HandleConversation)
	mux.HandleFunc("/assistant/turn", assistantController.HandleTurn)
	return WithCORS(mux)
}

func seedItem(t *testing.T, store *dao.MemoryStore, id, name, sellerID string) {
	t.Helper()
	err := store.Insert(context.Background(), &model.Item{
		ID:        id,
		Name:      name,
		Price:     250,
		Category:  "furniture",
		SellerID:  sellerID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("seed item: %v", err)
	}
}
