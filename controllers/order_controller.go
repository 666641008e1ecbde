package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/logging"
	"storefront/models"
)

// PlaceOrder stores the order, then empties the buyer's cart. The two writes
// are independent: if the second fails the order stays placed.
func (h *Controller) PlaceOrder(c *gin.Context) {
	order, err := bindDocument(c)
	if err != nil {
		fail(c, err, msgInternal)
		return
	}
	models.PrepareOrder(order, h.now())

	ctx, cancel := h.dbContext(c)
	defer cancel()

	res, err := h.store.Orders.InsertOne(ctx, order)
	if err != nil {
		fail(c, fmt.Errorf("insert order: %w", err), msgInternal)
		return
	}

	if email, ok := models.OrderEmail(order); ok {
		if _, err := h.store.Cart.DeleteMany(ctx, bson.M{models.FieldEmail: email}); err != nil {
			logging.FromContext(c.Request.Context()).Warn("order placed but cart not cleared",
				"order_id", res.InsertedID, "error", err)
			fail(c, fmt.Errorf("clear cart after order: %w", err), msgInternal)
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "id": res.InsertedID})
}

// GetOrders lists an email's orders, newest first.
func (h *Controller) GetOrders(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		fail(c, ValidationError("Email required"), msgInternal)
		return
	}

	ctx, cancel := h.dbContext(c)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: models.FieldCreatedAt, Value: -1}})
	cursor, err := h.store.Orders.Find(ctx, bson.M{models.FieldEmail: email}, opts)
	if err != nil {
		fail(c, fmt.Errorf("find orders: %w", err), msgInternal)
		return
	}

	orders := []bson.M{}
	if err := cursor.All(ctx, &orders); err != nil {
		fail(c, fmt.Errorf("decode orders: %w", err), msgInternal)
		return
	}
	c.JSON(http.StatusOK, orders)
}
