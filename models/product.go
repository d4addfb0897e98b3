package models

import "time"

// Product is a catalog entry. Stock is the only field mutated outside the
// admin surface; checkout decrements it after an order is placed.
type Product struct {
	ProductID     string            `json:"productId" bson:"productid"`
	Name          string            `json:"name" bson:"name"`
	Description   string            `json:"description" bson:"description"`
	Images        []string          `json:"images" bson:"images"`
	Price         float64           `json:"price" bson:"price"`
	OriginalPrice float64           `json:"originalPrice,omitempty" bson:"originalPrice,omitempty"`
	Discount      float64           `json:"discount" bson:"discount"`
	Rating        float64           `json:"rating" bson:"rating"`
	ReviewCount   int               `json:"reviewCount" bson:"reviewCount"`
	InStock       bool              `json:"inStock" bson:"inStock"`
	Stock         int               `json:"stock" bson:"stock"`
	Specs         map[string]string `json:"specs,omitempty" bson:"specs,omitempty"`
	CategoryID    string            `json:"categoryId,omitempty" bson:"categoryId,omitempty"`
	IsActive      bool              `json:"isActive" bson:"isActive"`
	CreatedAt     time.Time         `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt" bson:"updatedAt"`
}

// Category groups products. Products keep a weak reference to it; deletion
// is guarded while any product still points here.
type Category struct {
	CategoryID  string `json:"categoryId" bson:"categoryid"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description" bson:"description"`
}
