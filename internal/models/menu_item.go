package models

import (
	"time"
)

type Category string

const (
	CategoryVorspeisen    Category = "Vorspeisen"
	CategoryHauptgerichte Category = "Hauptgerichte"
	CategoryDesserts      Category = "Desserts"
)

func ParseCategory(value string) (Category, bool) {
	switch Category(value) {
	case CategoryVorspeisen, CategoryHauptgerichte, CategoryDesserts:
		return Category(value), true
	}
	return "", false
}

type MenuItem struct {
	ID          string    `bson:"_id" json:"id"`
	Category    Category  `bson:"category" json:"category"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	Price       float64   `bson:"price" json:"price"`
	Image       string    `bson:"image" json:"image"`
	Available   bool      `bson:"available" json:"available"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}
