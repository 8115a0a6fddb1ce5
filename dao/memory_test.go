package dao

import (
	"context"
	"sync"
	"testing"
	"time"

	"mckart-backend/model"
)

func seedItem(t *testing.T, store *MemoryStore, id, name, sellerID string) {
	t.Helper()
	err := store.Insert(context.Background(), &model.Item{
		ID:        id,
		Name:      name,
		Price:     100,
		Category:  "books",
		SellerID:  sellerID,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("seed item: %v", err)
	}
}

func appendMsg(t *testing.T, store *MemoryStore, itemID, buyerID, sender, body string) *model.Message {
	t.Helper()
	msg := &model.Message{
		ID:       "msg-" + itemID + "-" + buyerID + "-" + body,
		ItemID:   itemID,
		ItemName: "item " + itemID,
		BuyerID:  buyerID,
		Sender:   sender,
		Body:     body,
	}
	if _, err := store.Append(context.Background(), msg); err != nil {
		t.Fatalf("append: %v", err)
	}
	return msg
}

func TestAppendAssignsIncreasingMarkers(t *testing.T) {
	store := NewMemoryStore()
	bodies := []string{"hi", "is this available?", "yes it is", "great"}
	var last int64
	for _, b := range bodies {
		msg := appendMsg(t, store, "item1", "alice", model.SenderBuyer, b)
		if msg.Seq <= last {
			t.Fatalf("marker %d not greater than previous %d", msg.Seq, last)
		}
		last = msg.Seq
	}

	msgs, err := store.List(context.Background(), model.ConversationKey{ItemID: "item1", BuyerID: "alice"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(msgs) != len(bodies) {
		t.Fatalf("got %d messages, want %d", len(msgs), len(bodies))
	}
	for i, m := range msgs {
		if m.Body != bodies[i] {
			t.Fatalf("message %d is %q, want %q", i, m.Body, bodies[i])
		}
		if i > 0 && msgs[i].Seq <= msgs[i-1].Seq {
			t.Fatalf("markers not strictly increasing at %d: %d then %d", i, msgs[i-1].Seq, msgs[i].Seq)
		}
	}
}

func TestConcurrentAppendsNeverShareMarker(t *testing.T) {
	store := NewMemoryStore()
	const perSender = 50

	var wg sync.WaitGroup
	appendAll := func(sender string) {
		defer wg.Done()
		for i := 0; i < perSender; i++ {
			_, err := store.Append(context.Background(), &model.Message{
				ID:      sender + "-" + string(rune('a'+i%26)) + string(rune('0'+i/26)),
				ItemID:  "item1",
				BuyerID: "alice",
				Sender:  sender,
				Body:    "msg",
			})
			if err != nil {
				t.Errorf("append: %v", err)
				return
			}
		}
	}
	wg.Add(2)
	go appendAll(model.SenderBuyer)
	go appendAll(model.SenderSeller)
	wg.Wait()

	msgs, err := store.List(context.Background(), model.ConversationKey{ItemID: "item1", BuyerID: "alice"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(msgs) != 2*perSender {
		t.Fatalf("got %d messages, want %d", len(msgs), 2*perSender)
	}
	seen := make(map[int64]bool)
	for _, m := range msgs {
		if seen[m.Seq] {
			t.Fatalf("duplicate order marker %d", m.Seq)
		}
		seen[m.Seq] = true
	}
}

func TestListEmptyConversationIsValid(t *testing.T) {
	store := NewMemoryStore()
	msgs, err := store.List(context.Background(), model.ConversationKey{ItemID: "nope", BuyerID: "nobody"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("expected empty list, got %d", len(msgs))
	}
}

func TestSellerSummariesGroupByConversation(t *testing.T) {
	store := NewMemoryStore()
	seedItem(t, store, "item1", "lamp", "bob")
	seedItem(t, store, "item2", "desk", "bob")
	seedItem(t, store, "item3", "bike", "carol")

	appendMsg(t, store, "item1", "alice", model.SenderBuyer, "hi")
	appendMsg(t, store, "item1", "alice", model.SenderSeller, "hello")
	appendMsg(t, store, "item1", "dave", model.SenderBuyer, "price?")
	appendMsg(t, store, "item2", "alice", model.SenderBuyer, "still there?")
	appendMsg(t, store, "item3", "alice", model.SenderBuyer, "not bob's item")

	rows, err := store.SellerSummaries(context.Background(), "bob")
	if err != nil {
		t.Fatalf("seller summaries: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	// newest activity first
	if rows[0].ItemID != "item2" || rows[0].BuyerID != "alice" {
		t.Fatalf("unexpected first row %+v", rows[0])
	}
	seen := make(map[model.ConversationKey]bool)
	for _, r := range rows {
		k := model.ConversationKey{ItemID: r.ItemID, BuyerID: r.BuyerID}
		if seen[k] {
			t.Fatalf("duplicate summary row for %+v", k)
		}
		seen[k] = true
	}
}

func TestBuyerSummariesOneRowPerItem(t *testing.T) {
	store := NewMemoryStore()
	seedItem(t, store, "item1", "lamp", "bob")
	seedItem(t, store, "item2", "desk", "carol")

	appendMsg(t, store, "item1", "alice", model.SenderBuyer, "hi")
	appendMsg(t, store, "item1", "alice", model.SenderBuyer, "anyone?")
	appendMsg(t, store, "item2", "alice", model.SenderBuyer, "hello")
	appendMsg(t, store, "item1", "dave", model.SenderBuyer, "other buyer")

	rows, err := store.BuyerSummaries(context.Background(), "alice")
	if err != nil {
		t.Fatalf("buyer summaries: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	again, err := store.BuyerSummaries(context.Background(), "alice")
	if err != nil {
		t.Fatalf("buyer summaries repeat: %v", err)
	}
	if len(again) != len(rows) {
		t.Fatalf("repeated read changed row count: %d vs %d", len(again), len(rows))
	}
	for i := range rows {
		if rows[i] != again[i] {
			t.Fatalf("repeated read changed row %d: %+v vs %+v", i, rows[i], again[i])
		}
	}
}
