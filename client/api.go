// Package client implements the chat-surface side of the conversation
// protocol: an HTTP API wrapper plus the polling sync loop that keeps
// an optimistic local view reconciled against the server's message
// log.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mckart-backend/model"
)

// API calls the marketplace backend over HTTP.
type API struct {
	baseURL    string
	httpClient *http.Client
	userID     string
	userName   string
}

// APIError carries the server's error body.
type APIError struct {
	Status  int
	Kind    string
	Message string
}

func (e *APIError) Error() string { return e.Message }

func NewAPI(baseURL, userID, userName string) *API {
	return &API{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		userID:     userID,
		userName:   userName,
	}
}

// Messages fetches the full conversation for an item and buyer.
func (a *API) Messages(ctx context.Context, itemID, buyerID string) ([]model.Message, error) {
	path := a.baseURL + "/conversations/" + url.PathEscape(itemID)
	if buyerID != "" && buyerID != a.userID {
		path += "/" + url.PathEscape(buyerID)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var msgs []model.Message
	if err := a.do(req, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

type sendRequest struct {
	ItemID      string `json:"itemId"`
	ItemName    string `json:"itemName"`
	BuyerID     string `json:"buyerId"`
	BuyerName   string `json:"buyerName"`
	Sender      string `json:"sender"`
	Message     string `json:"message"`
	ClientToken string `json:"clientToken"`
}

type sendResponse struct {
	OrderMarker int64         `json:"orderMarker"`
	Message     model.Message `json:"message"`
}

// Send appends a message and returns the server-confirmed record with
// its assigned order marker.
func (a *API) Send(ctx context.Context, payload sendRequest) (*model.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/conversations/send", bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	var resp sendResponse
	if err := a.do(req, &resp); err != nil {
		return nil, err
	}
	resp.Message.Seq = resp.OrderMarker
	return &resp.Message, nil
}

func (a *API) do(req *http.Request, out any) error {
	req.Header.Set("X-User-Id", a.userID)
	req.Header.Set("X-User-Name", a.userName)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
			Kind  string `json:"kind"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		if errResp.Error == "" {
			errResp.Error = resp.Status
		}
		return &APIError{Status: resp.StatusCode, Kind: errResp.Kind, Message: errResp.Error}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
