package model

import "time"

type Item struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Price       int       `json:"price"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	SellerID    string    `json:"sellerId"`
	SellerName  string    `json:"sellerName"`
	Sold        bool      `json:"sold"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Categories accepted on item creation.
var ItemCategories = []string{
	"books",
	"electronics",
	"furniture",
	"clothing",
	"sports",
	"other",
}

func ValidCategory(c string) bool {
	for _, v := range ItemCategories {
		if v == c {
			return true
		}
	}
	return false
}
