package dao

import (
	"context"
	"sort"
	"sync"

	"mckart-backend/model"
)

// MemoryStore keeps everything in-process. It backs the server when no
// MySQL host is configured and is the store the tests run against. The
// mutex serializes seq assignment so concurrent appends can never
// share an order marker.
type MemoryStore struct {
	mu      sync.RWMutex
	nextSeq int64
	items   map[string]model.Item
	order   []string // item insertion order
	users   map[string]model.User
	email   map[string]string // email -> user ID
	msgs    []model.Message
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]model.Item),
		users: make(map[string]model.User),
		email: make(map[string]string),
	}
}

// --- ItemStore ---

func (m *MemoryStore) Insert(ctx context.Context, item *model.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.items[item.ID]; !exists {
		m.order = append(m.order, item.ID)
	}
	m.items[item.ID] = *item
	return nil
}

func (m *MemoryStore) Update(ctx context.Context, item *model.Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.items[item.ID]; !ok {
		return ErrNotFound
	}
	m.items[item.ID] = *item
	return nil
}

func (m *MemoryStore) GetByID(ctx context.Context, id string) (*model.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (m *MemoryStore) ListUnsold(ctx context.Context) ([]model.Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	items := make([]model.Item, 0, len(m.order))
	// newest first, matching the MySQL ORDER BY created_at DESC
	for i := len(m.order) - 1; i >= 0; i-- {
		if item, ok := m.items[m.order[i]]; ok && !item.Sold {
			items = append(items, item)
		}
	}
	return items, nil
}

// --- MessageStore ---

func (m *MemoryStore) Append(ctx context.Context, msg *model.Message) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextSeq++
	msg.Seq = m.nextSeq
	m.msgs = append(m.msgs, *msg)
	return msg.Seq, nil
}

func (m *MemoryStore) List(ctx context.Context, key model.ConversationKey) ([]model.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []model.Message
	for _, msg := range m.msgs {
		if msg.ItemID == key.ItemID && msg.BuyerID == key.BuyerID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *MemoryStore) SellerSummaries(ctx context.Context, sellerID string) ([]model.ChatSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	byKey := make(map[model.ConversationKey]*model.ChatSummary)
	for _, msg := range m.msgs {
		item, ok := m.items[msg.ItemID]
		if !ok || item.SellerID != sellerID {
			continue
		}
		k := msg.Key()
		if s, ok := byKey[k]; ok {
			if msg.Seq > s.LastSeq {
				s.LastSeq = msg.Seq
			}
			continue
		}
		byKey[k] = &model.ChatSummary{
			ItemID:    msg.ItemID,
			ItemName:  msg.ItemName,
			BuyerID:   msg.BuyerID,
			BuyerName: msg.BuyerName,
			LastSeq:   msg.Seq,
		}
	}
	return sortSummaries(byKey), nil
}

func (m *MemoryStore) BuyerSummaries(ctx context.Context, buyerID string) ([]model.ChatSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	byKey := make(map[model.ConversationKey]*model.ChatSummary)
	for _, msg := range m.msgs {
		if msg.BuyerID != buyerID {
			continue
		}
		k := model.ConversationKey{ItemID: msg.ItemID}
		if s, ok := byKey[k]; ok {
			if msg.Seq > s.LastSeq {
				s.LastSeq = msg.Seq
			}
			continue
		}
		byKey[k] = &model.ChatSummary{
			ItemID:   msg.ItemID,
			ItemName: msg.ItemName,
			LastSeq:  msg.Seq,
		}
	}
	return sortSummaries(byKey), nil
}

// --- UserStore ---

func (m *MemoryStore) InsertUser(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = *user
	m.email[user.Email] = user.ID
	return nil
}

func (m *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.email[email]
	if !ok {
		return nil, ErrNotFound
	}
	u := m.users[id]
	return &u, nil
}

// Users returns a UserStore view over the memory store. Item and
// message methods live directly on MemoryStore; user methods need the
// adapter because Insert and GetByID are already taken by items.
func (m *MemoryStore) Users() UserStore { return memoryUsers{m} }

type memoryUsers struct{ m *MemoryStore }

func (u memoryUsers) Insert(ctx context.Context, user *model.User) error {
	return u.m.InsertUser(ctx, user)
}

func (u memoryUsers) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return u.m.GetUserByEmail(ctx, email)
}

func sortSummaries(byKey map[model.ConversationKey]*model.ChatSummary) []model.ChatSummary {
	out := make([]model.ChatSummary, 0, len(byKey))
	for _, s := range byKey {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastSeq != out[j].LastSeq {
			return out[i].LastSeq > out[j].LastSeq
		}
		if out[i].ItemID != out[j].ItemID {
			return out[i].ItemID < out[j].ItemID
		}
		return out[i].BuyerID < out[j].BuyerID
	})
	return out
}
