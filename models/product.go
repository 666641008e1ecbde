package models

import (
	"math/rand/v2"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldTags        = "tags"
	FieldRating      = "rating"
	FieldReviewCount = "reviewCount"
	FieldStock       = "stock"
)

// Rand is the randomness used to seed demo product stats.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }

// DefaultRand draws from the process-wide generator.
var DefaultRand Rand = globalRand{}

// ApplyProductDefaults fills rating, reviewCount and stock when they are absent.
// rating lands in [4.0, 5.0), reviewCount in [5, 54], stock in [1, 20].
func ApplyProductDefaults(product bson.M, r Rand) {
	if r == nil {
		r = DefaultRand
	}
	if !Truthy(product[FieldRating]) {
		product[FieldRating] = 4.0 + r.Float64()
	}
	if !Truthy(product[FieldReviewCount]) {
		product[FieldReviewCount] = r.IntN(50) + 5
	}
	if !Truthy(product[FieldStock]) {
		product[FieldStock] = r.IntN(20) + 1
	}
}

// ProductFilter builds the catalogue query: exact category, and a
// case-insensitive pattern over name, description or tags.
func ProductFilter(category, search string) bson.M {
	filter := bson.M{}
	if category != "" {
		filter[FieldCategory] = category
	}
	if search != "" {
		filter["$or"] = bson.A{
			bson.M{FieldName: bson.M{"$regex": search, "$options": "i"}},
			bson.M{FieldDescription: bson.M{"$regex": search, "$options": "i"}},
			bson.M{FieldTags: bson.M{"$regex": search, "$options": "i"}},
		}
	}
	return filter
}
