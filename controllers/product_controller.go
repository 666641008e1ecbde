package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/models"
)

func (h *Controller) CreateProduct(c *gin.Context) {
	product, err := bindDocument(c)
	if err != nil {
		fail(c, err, msgInternal)
		return
	}
	models.ApplyProductDefaults(product, h.rand)
	product[models.FieldCreatedAt] = h.now()

	ctx, cancel := h.dbContext(c)
	defer cancel()

	res, err := h.store.Products.InsertOne(ctx, product)
	if err != nil {
		fail(c, fmt.Errorf("insert product: %w", err), msgInternal)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Product added", "id": res.InsertedID})
}

// ListProducts filters by exact category and by a case-insensitive pattern
// over name, description and tags.
func (h *Controller) ListProducts(c *gin.Context) {
	const msg = "Error fetching products"
	filter := models.ProductFilter(c.Query("category"), c.Query("search"))

	ctx, cancel := h.dbContext(c)
	defer cancel()

	cursor, err := h.store.Products.Find(ctx, filter)
	if err != nil {
		fail(c, fmt.Errorf("find products: %w", err), msg)
		return
	}

	products := []bson.M{}
	if err := cursor.All(ctx, &products); err != nil {
		fail(c, fmt.Errorf("decode products: %w", err), msg)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct matches _id against the raw path string. Store-generated ids are
// ObjectIDs, so only products inserted with a string _id are reachable here.
func (h *Controller) GetProduct(c *gin.Context) {
	ctx, cancel := h.dbContext(c)
	defer cancel()

	var product bson.M
	err := h.store.Products.FindOne(ctx, bson.M{models.FieldID: c.Param("id")}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			fail(c, NotFoundError("Product not found"), msgInternal)
		} else {
			fail(c, fmt.Errorf("find product: %w", err), "Error fetching product")
		}
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Controller) UpdateProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, ValidationError("Invalid ID"), msgInternal)
		return
	}
	fields, err := bindDocument(c)
	if err != nil {
		fail(c, err, msgInternal)
		return
	}
	fields[models.FieldUpdatedAt] = h.now()

	ctx, cancel := h.dbContext(c)
	defer cancel()

	res, err := h.store.Products.UpdateOne(ctx, bson.M{models.FieldID: id}, bson.M{"$set": fields})
	if err != nil {
		fail(c, fmt.Errorf("update product: %w", err), msgInternal)
		return
	}
	if res.MatchedCount == 0 {
		fail(c, NotFoundError("Product not found"), msgInternal)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated"})
}

func (h *Controller) DeleteProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, ValidationError("Invalid ID"), msgInternal)
		return
	}

	ctx, cancel := h.dbContext(c)
	defer cancel()

	res, err := h.store.Products.DeleteOne(ctx, bson.M{models.FieldID: id})
	if err != nil {
		fail(c, fmt.Errorf("delete product: %w", err), msgInternal)
		return
	}
	if res.DeletedCount == 0 {
		fail(c, NotFoundError("Product not found"), msgInternal)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
