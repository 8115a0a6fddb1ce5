package client

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"mckart-backend/model"
)

// State of one chat surface.
type State int

const (
	StateClosed State = iota
	StateLoading
	StateReady
	StateSending
)

var (
	ErrNotReady    = errors.New("chat is not ready")
	ErrAlreadyOpen = errors.New("chat is already open")
)

// Entry is one row of the rendered conversation: either a
// server-confirmed message (Seq set) or a local optimistic echo still
// waiting for confirmation (Pending; Failed if the send errored).
type Entry struct {
	Seq     int64
	Sender  string
	Body    string
	Token   string
	Pending bool
	Failed  bool
}

type pendingSend struct {
	token  string
	sender string
	body   string
	failed bool
}

// Chat is the sync loop for a single conversation surface. Sends are
// echoed locally before the round trip completes; each echo carries a
// generated correlation token, and the order marker returned by the
// server (also stamped on the durable row) reconciles the echo against
// the next full read. No lock is held while a request is in flight.
type Chat struct {
	api       *API
	itemID    string
	itemName  string
	buyerID   string
	buyerName string
	role      string // model.SenderBuyer or model.SenderSeller

	mu      sync.Mutex
	state   State
	msgs    []model.Message
	pending []pendingSend
}

func NewChat(api *API, itemID, itemName, buyerID, buyerName, role string) *Chat {
	return &Chat{
		api:       api,
		itemID:    itemID,
		itemName:  itemName,
		buyerID:   buyerID,
		buyerName: buyerName,
		role:      role,
	}
}

func (c *Chat) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Open fetches the conversation and transitions Closed → Loading →
// Ready. A failed fetch returns to Closed so the surface can be
// reopened.
func (c *Chat) Open(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateClosed {
		c.mu.Unlock()
		return ErrAlreadyOpen
	}
	c.state = StateLoading
	c.mu.Unlock()

	msgs, err := c.api.Messages(ctx, c.itemID, c.buyerID)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = StateClosed
		return err
	}
	c.msgs = msgs
	c.reconcileLocked()
	c.state = StateReady
	return nil
}

// Send appends an optimistic echo, issues the append call, and on
// success replaces the echo with the server-confirmed record. On
// failure the echo stays visible, flagged, so the user sees what did
// not go through.
func (c *Chat) Send(ctx context.Context, body string) error {
	token := uuid.NewString()

	c.mu.Lock()
	if c.state != StateReady {
		c.mu.Unlock()
		return ErrNotReady
	}
	c.state = StateSending
	c.pending = append(c.pending, pendingSend{token: token, sender: c.role, body: body})
	c.mu.Unlock()

	msg, err := c.api.Send(ctx, sendRequest{
		ItemID:      c.itemID,
		ItemName:    c.itemName,
		BuyerID:     c.buyerID,
		BuyerName:   c.buyerName,
		Sender:      c.role,
		Message:     body,
		ClientToken: token,
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateReady
	if err != nil {
		for i := range c.pending {
			if c.pending[i].token == token {
				c.pending[i].failed = true
			}
		}
		return err
	}
	c.dropPendingLocked(token)
	c.msgs = append(c.msgs, *msg)
	return nil
}

// Refresh re-reads the server log (the polling tick) and drops any
// echo the log now confirms.
func (c *Chat) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateReady {
		c.mu.Unlock()
		return ErrNotReady
	}
	c.mu.Unlock()

	msgs, err := c.api.Messages(ctx, c.itemID, c.buyerID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = msgs
	c.reconcileLocked()
	return nil
}

// Dismiss removes a failed echo after the user has acknowledged it.
func (c *Chat) Dismiss(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dropPendingLocked(token)
}

// Close abandons the surface. In-flight requests finish against the
// store regardless and show up on the next Open.
func (c *Chat) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateClosed
	c.msgs = nil
	c.pending = nil
}

// Entries renders confirmed messages in order-marker order followed by
// unconfirmed echoes.
func (c *Chat) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Entry, 0, len(c.msgs)+len(c.pending))
	for _, m := range c.msgs {
		out = append(out, Entry{
			Seq:    m.Seq,
			Sender: m.Sender,
			Body:   m.Body,
			Token:  m.ClientToken,
		})
	}
	for _, p := range c.pending {
		out = append(out, Entry{
			Sender:  p.sender,
			Body:    p.body,
			Token:   p.token,
			Pending: true,
			Failed:  p.failed,
		})
	}
	return out
}

// reconcileLocked drops echoes whose correlation token appears in the
// confirmed log, covering the case where a send succeeded server-side
// but the response was lost.
func (c *Chat) reconcileLocked() {
	if len(c.pending) == 0 {
		return
	}
	confirmed := make(map[string]bool, len(c.msgs))
	for _, m := range c.msgs {
		if m.ClientToken != "" {
			confirmed[m.ClientToken] = true
		}
	}
	kept := c.pending[:0]
	for _, p := range c.pending {
		if !confirmed[p.token] {
			kept = append(kept, p)
		}
	}
	c.pending = kept
}

func (c *Chat) dropPendingLocked(token string) {
	kept := c.pending[:0]
	for _, p := range c.pending {
		if p.token != token {
			kept = append(kept, p)
		}
	}
	c.pending = kept
}
