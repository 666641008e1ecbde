package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	FieldStatus        = "status"
	DefaultOrderStatus = "Placed"
)

// PrepareOrder defaults the status and stamps both timestamps in place.
func PrepareOrder(order bson.M, now time.Time) {
	if !Truthy(order[FieldStatus]) {
		order[FieldStatus] = DefaultOrderStatus
	}
	order[FieldCreatedAt] = now
	order[FieldUpdatedAt] = now
}

// OrderEmail returns the email whose cart is cleared after placement.
func OrderEmail(order bson.M) (any, bool) {
	v := order[FieldEmail]
	return v, Truthy(v)
}
