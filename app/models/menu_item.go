package models

import "time"

// MenuItem is one entry of the restaurant catalog, stored in the Mongo
// "menu_items" collection. IDs are plain strings so the bundled fallback
// catalog and seeded documents share the same shape.
type MenuItem struct {
	ID           string    `bson:"_id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Description  string    `bson:"description" json:"description"`
	Price        float64   `bson:"price" json:"price"`
	Category     string    `bson:"category" json:"category"`
	Image        string    `bson:"image" json:"image"`
	IsVegetarian bool      `bson:"isVegetarian" json:"isVegetarian"`
	IsSpicy      bool      `bson:"isSpicy" json:"isSpicy"`
	IsAvailable  bool      `bson:"isAvailable" json:"isAvailable"`
	CreatedAt    time.Time `bson:"createdAt,omitempty" json:"createdAt"`
}
