package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/models"
)

// AddToCart inserts a row for (email, product._id) or bumps the quantity of
// the existing one. Lookup and write are separate, so concurrent adds for the
// same pair may produce two rows.
func (h *Controller) AddToCart(c *gin.Context) {
	var body models.AddToCartRequest
	if err := bindJSON(c, &body); err != nil {
		fail(c, err, msgInternal)
		return
	}
	productID := body.ProductID()
	if body.Email == "" || productID == nil {
		fail(c, ValidationError("Email and product required"), msgInternal)
		return
	}

	ctx, cancel := h.dbContext(c)
	defer cancel()

	var existing struct {
		ID any `bson:"_id"`
	}
	err := h.store.Cart.FindOne(ctx, bson.M{
		models.FieldEmail:     body.Email,
		models.FieldProductID: productID,
	}).Decode(&existing)

	switch {
	case err == nil:
		res, err := h.store.Cart.UpdateOne(ctx,
			bson.M{models.FieldID: existing.ID},
			bson.M{
				"$inc": bson.M{models.FieldProductQuantity: body.Increment()},
				"$set": bson.M{models.FieldUpdatedAt: h.now()},
			},
		)
		if err != nil {
			fail(c, fmt.Errorf("increment cart item: %w", err), msgInternal)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item updated", "result": updateResultBody(res)})

	case errors.Is(err, mongo.ErrNoDocuments):
		now := h.now()
		res, err := h.store.Cart.InsertOne(ctx, models.CartItem{
			Email:     body.Email,
			Product:   bson.M(body.Product),
			CreatedAt: now,
			UpdatedAt: now,
		})
		if err != nil {
			fail(c, fmt.Errorf("insert cart item: %w", err), msgInternal)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Cart item added", "id": res.InsertedID})

	default:
		fail(c, fmt.Errorf("lookup cart item: %w", err), msgInternal)
	}
}

func (h *Controller) RemoveFromCart(c *gin.Context) {
	var body models.RemoveCartItemRequest
	if err := bindJSON(c, &body); err != nil {
		fail(c, err, msgInternal)
		return
	}
	if body.Email == "" || !models.Truthy(body.ProductID) {
		fail(c, ValidationError("Email and productId required"), msgInternal)
		return
	}

	ctx, cancel := h.dbContext(c)
	defer cancel()

	res, err := h.store.Cart.DeleteOne(ctx, bson.M{
		models.FieldEmail:     body.Email,
		models.FieldProductID: body.ProductID,
	})
	if err != nil {
		fail(c, fmt.Errorf("delete cart item: %w", err), msgInternal)
		return
	}
	if res.DeletedCount == 0 {
		fail(c, NotFoundError("Cart item not found"), msgInternal)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
}

// ClearCart empties the cart for an email; an already empty cart is fine.
func (h *Controller) ClearCart(c *gin.Context) {
	var body models.ClearCartRequest
	if err := bindJSON(c, &body); err != nil {
		fail(c, err, msgInternal)
		return
	}
	if body.Email == "" {
		fail(c, ValidationError("Email required"), msgInternal)
		return
	}

	ctx, cancel := h.dbContext(c)
	defer cancel()

	if _, err := h.store.Cart.DeleteMany(ctx, bson.M{models.FieldEmail: body.Email}); err != nil {
		fail(c, fmt.Errorf("clear cart: %w", err), "Error clearing cart")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}

// GetCart lists the product snapshots in an email's cart, in storage order.
func (h *Controller) GetCart(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		fail(c, ValidationError("Email required"), msgInternal)
		return
	}

	ctx, cancel := h.dbContext(c)
	defer cancel()

	cursor, err := h.store.Cart.Find(ctx, bson.M{models.FieldEmail: email})
	if err != nil {
		fail(c, fmt.Errorf("find cart: %w", err), msgInternal)
		return
	}

	var rows []struct {
		Product bson.M `bson:"product"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		fail(c, fmt.Errorf("decode cart: %w", err), msgInternal)
		return
	}

	items := make([]bson.M, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.Product)
	}
	c.JSON(http.StatusOK, items)
}

func updateResultBody(res *mongo.UpdateResult) gin.H {
	return gin.H{
		"acknowledged":  res.Acknowledged,
		"matchedCount":  res.MatchedCount,
		"modifiedCount": res.ModifiedCount,
		"upsertedCount": res.UpsertedCount,
		"upsertedId":    res.UpsertedID,
	}
}
