package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	FieldProduct         = "product"
	FieldProductID       = "product._id"
	FieldProductQuantity = "product.quantity"
)

// CartItem is one cart row: a product snapshot owned by an email.
type CartItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email     string             `bson:"email" json:"email"`
	Product   bson.M             `bson:"product" json:"product"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type AddToCartRequest struct {
	Email   string         `json:"email"`
	Product map[string]any `json:"product"`
}

// ProductID is the snapshot's _id, nil when absent or falsy.
func (r AddToCartRequest) ProductID() any {
	if r.Product == nil {
		return nil
	}
	if id := r.Product[FieldID]; Truthy(id) {
		return id
	}
	return nil
}

// Increment is the quantity to add to an existing row; defaults to 1.
func (r AddToCartRequest) Increment() any {
	if q := r.Product["quantity"]; Truthy(q) {
		return q
	}
	return 1
}

type RemoveCartItemRequest struct {
	Email     string `json:"email"`
	ProductID any    `json:"productId"`
}

type ClearCartRequest struct {
	Email string `json:"email"`
}
