package dao

import (
	"context"
	"database/sql"
	"errors"

	"mckart-backend/model"
)

type ItemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Insert(ctx context.Context, item *model.Item) error {
	query := `INSERT INTO items (id, name, price, category, description, image_url, seller_id, seller_name, sold, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.Name, item.Price, item.Category, item.Description,
		item.ImageURL, item.SellerID, item.SellerName, item.Sold, item.CreatedAt)
	return err
}

func (r *ItemRepository) Update(ctx context.Context, item *model.Item) error {
	query := `UPDATE items SET name = ?, price = ?, category = ?, description = ?, image_url = ?, sold = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		item.Name, item.Price, item.Category, item.Description, item.ImageURL, item.Sold, item.ID)
	return err
}

func (r *ItemRepository) GetByID(ctx context.Context, id string) (*model.Item, error) {
	query := `SELECT id, name, price, category, description, image_url, seller_id, seller_name, sold, created_at
	          FROM items WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var item model.Item
	err := row.Scan(&item.ID, &item.Name, &item.Price, &item.Category, &item.Description,
		&item.ImageURL, &item.SellerID, &item.SellerName, &item.Sold, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *ItemRepository) ListUnsold(ctx context.Context) ([]model.Item, error) {
	query := `SELECT id, name, price, category, description, image_url, seller_id, seller_name, sold, created_at
	          FROM items WHERE sold = FALSE ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		var item model.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.Price, &item.Category, &item.Description,
			&item.ImageURL, &item.SellerID, &item.SellerName, &item.Sold, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
