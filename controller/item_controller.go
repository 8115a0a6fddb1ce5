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

type ItemController struct {
	items *usecase.ItemUsecase
	log   *zap.Logger
}

func NewItemController(items *usecase.ItemUsecase, log *zap.Logger) *ItemController {
	return &ItemController{items: items, log: log}
}

// HandleItems serves GET /items (unsold listing) and POST /items.
func (c *ItemController) HandleItems(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		items, err := c.items.ListItems(r.Context())
		if err != nil {
			writeError(w, c.log, err)
			return
		}
		writeJSON(w, http.StatusOK, items)
	case http.MethodPost:
		var req usecase.CreateItemRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
			writeError(w, c.log, apperr.Validation("invalid JSON body"))
			return
		}
		if req.SellerID == "" {
			req.SellerID, req.SellerName = requestIdentity(r)
		}
		item, err := c.items.CreateItem(r.Context(), req)
		if err != nil {
			writeError(w, c.log, err)
			return
		}
		writeJSON(w, http.StatusCreated, item)
	default:
		methodNotAllowed(w)
	}
}

// HandleItemDetail serves GET /items/{id} and POST /items/{id}/purchase.
func (c *ItemController) HandleItemDetail(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/items/"), "/")
	parts := strings.Split(rest, "/")

	switch {
	case r.Method == http.MethodGet && len(parts) == 1 && parts[0] != "":
		item, err := c.items.GetItem(r.Context(), parts[0])
		if err != nil {
			writeError(w, c.log, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	case r.Method == http.MethodPost && len(parts) == 2 && parts[1] == "purchase":
		buyerID, _ := requestIdentity(r)
		item, err := c.items.Purchase(r.Context(), parts[0], buyerID)
		if err != nil {
			writeError(w, c.log, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	default:
		methodNotAllowed(w)
	}
}
