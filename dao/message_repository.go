package dao

import (
	"context"
	"database/sql"

	"mckart-backend/model"
)

type MessageRepository struct {
	db *sql.DB
}

func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Append inserts the message and returns the seq value MySQL assigned.
// The AUTO_INCREMENT column is what makes concurrent appends safe: two
// near-simultaneous sends can never race to the same marker.
func (r *MessageRepository) Append(ctx context.Context, msg *model.Message) (int64, error) {
	query := `INSERT INTO messages (id, item_id, item_name, buyer_id, buyer_name, sender, body, client_token, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		msg.ID, msg.ItemID, msg.ItemName, msg.BuyerID, msg.BuyerName,
		msg.Sender, msg.Body, msg.ClientToken, msg.CreatedAt)
	if err != nil {
		return 0, err
	}
	seq, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	msg.Seq = seq
	return seq, nil
}

func (r *MessageRepository) List(ctx context.Context, key model.ConversationKey) ([]model.Message, error) {
	query := `SELECT seq, id, item_id, item_name, buyer_id, buyer_name, sender, body, client_token, created_at
	          FROM messages WHERE item_id = ? AND buyer_id = ? ORDER BY seq ASC`
	rows, err := r.db.QueryContext(ctx, query, key.ItemID, key.BuyerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMessages(rows)
}

// SellerSummaries projects one row per (item, buyer) conversation on
// items the seller owns, newest activity first. The seq tiebreak on
// item then buyer keeps the ordering deterministic.
func (r *MessageRepository) SellerSummaries(ctx context.Context, sellerID string) ([]model.ChatSummary, error) {
	query := `SELECT m.item_id, m.item_name, m.buyer_id, m.buyer_name, MAX(m.seq)
	          FROM messages m
	          JOIN items i ON i.id = m.item_id
	          WHERE i.seller_id = ?
	          GROUP BY m.item_id, m.item_name, m.buyer_id, m.buyer_name
	          ORDER BY MAX(m.seq) DESC, m.item_id ASC, m.buyer_id ASC`
	rows, err := r.db.QueryContext(ctx, query, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ChatSummary
	for rows.Next() {
		var s model.ChatSummary
		if err := rows.Scan(&s.ItemID, &s.ItemName, &s.BuyerID, &s.BuyerName, &s.LastSeq); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *MessageRepository) BuyerSummaries(ctx context.Context, buyerID string) ([]model.ChatSummary, error) {
	query := `SELECT item_id, item_name, MAX(seq)
	          FROM messages
	          WHERE buyer_id = ?
	          GROUP BY item_id, item_name
	          ORDER BY MAX(seq) DESC, item_id ASC`
	rows, err := r.db.QueryContext(ctx, query, buyerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ChatSummary
	for rows.Next() {
		var s model.ChatSummary
		if err := rows.Scan(&s.ItemID, &s.ItemName, &s.LastSeq); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanMessages(rows *sql.Rows) ([]model.Message, error) {
	var msgs []model.Message
	for rows.Next() {
		var m model.Message
		var token sql.NullString
		if err := rows.Scan(&m.Seq, &m.ID, &m.ItemID, &m.ItemName, &m.BuyerID, &m.BuyerName,
			&m.Sender, &m.Body, &token, &m.CreatedAt); err != nil {
			return nil, err
		}
		if token.Valid {
			m.ClientToken = token.String
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
