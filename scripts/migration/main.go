package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/go-sql-driver/mysql"

	"mckart-backend/config"
)

func main() {
	cfg := config.Load()
	if cfg.MySQLHost == "" {
		log.Fatal("MYSQL_HOST is required for migration")
	}

	dsn := fmt.Sprintf("%s:%s@%s/%s?parseTime=true&loc=Local",
		cfg.MySQLUser, cfg.MySQLPwd, cfg.MySQLHost, cfg.MySQLDatabase)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("failed to connect to DB:", err)
	}

	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id CHAR(26) PRIMARY KEY COMMENT 'ULID',
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			role VARCHAR(16) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS items (
			id CHAR(26) PRIMARY KEY COMMENT 'ULID',
			name VARCHAR(255) NOT NULL,
			price INT NOT NULL,
			category VARCHAR(32) NOT NULL,
			description TEXT NOT NULL,
			image_url VARCHAR(512) NOT NULL DEFAULT '',
			seller_id CHAR(26) NOT NULL,
			seller_name VARCHAR(255) NOT NULL DEFAULT '',
			sold BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_items_seller (seller_id)
		)`,
		// seq is the order marker: assigned by the database at insert
		// time, so concurrent sends on one conversation can never
		// collide or reorder.
		`CREATE TABLE IF NOT EXISTS messages (
			seq BIGINT AUTO_INCREMENT PRIMARY KEY,
			id CHAR(26) NOT NULL UNIQUE COMMENT 'ULID',
			item_id CHAR(26) NOT NULL,
			item_name VARCHAR(255) NOT NULL DEFAULT '',
			buyer_id VARCHAR(255) NOT NULL,
			buyer_name VARCHAR(255) NOT NULL DEFAULT '',
			sender VARCHAR(16) NOT NULL,
			body TEXT NOT NULL,
			client_token CHAR(36) NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_messages_conversation (item_id, buyer_id, seq),
			INDEX idx_messages_buyer (buyer_id, seq),
			FOREIGN KEY (item_id) REFERENCES items(id) ON DELETE CASCADE
		)`,
	}

	for _, q := range queries {
		if _, err := db.Exec(q); err != nil {
			log.Printf("error executing query: %v", err)
			continue
		}
	}
	fmt.Println("Migration completed.")
}
