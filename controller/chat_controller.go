package controller

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"mckart-backend/apperr"
	"mckart-backend/usecase"
)

type ChatController struct {
	chats *usecase.ChatUsecase
	log   *zap.Logger
}

func NewChatController(chats *usecase.ChatUsecase, log *zap.Logger) *ChatController {
	return &ChatController{chats: chats, log: log}
}

// HandleSend implements POST /conversations/send. The response carries
// the order marker the store assigned so the client can deduplicate
// its optimistic echo exactly.
func (c *ChatController) HandleSend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req usecase.SendRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, c.log, apperr.Validation("invalid JSON body"))
		return
	}

	msg, err := c.chats.Send(r.Context(), req)
	if err != nil {
		writeError(w, c.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"orderMarker": msg.Seq,
		"message":     msg,
	})
}

// HandleConversation serves both forms of the thread read:
//
//	GET /conversations/{itemId}              buyer context from identity headers
//	GET /conversations/{itemId}/{buyerId}    explicit buyer (seller's view)
func (c *ChatController) HandleConversation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/conversations/"), "/")
	parts := strings.Split(rest, "/")
	if rest == "" || len(parts) > 2 {
		writeError(w, c.log, apperr.Validation("invalid conversation path"))
		return
	}

	itemID := parts[0]
	var buyer string
	if len(parts) == 2 {
		buyer = parts[1]
	} else {
		id, name := requestIdentity(r)
		buyer = id
		if buyer == "" {
			buyer = name
		}
	}

	msgs, err := c.chats.Messages(r.Context(), itemID, buyer)
	if err != nil {
		writeError(w, c.log, err)
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

// HandleSellerSummary implements GET /conversations/seller-summary/{sellerId}.
func (c *ChatController) HandleSellerSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	sellerID := strings.TrimPrefix(r.URL.Path, "/conversations/seller-summary/")
	rows, err := c.chats.SellerChats(r.Context(), sellerID)
	if err != nil {
		writeError(w, c.log, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// HandleBuyerSummary implements GET /conversations/buyer-summary/{buyerId}.
func (c *ChatController) HandleBuyerSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	buyerID := strings.TrimPrefix(r.URL.Path, "/conversations/buyer-summary/")
	rows, err := c.chats.BuyerChats(r.Context(), buyerID)
	if err != nil {
		writeError(w, c.log, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}
