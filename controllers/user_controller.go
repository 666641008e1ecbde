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

func (h *Controller) GetUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, ValidationError("Invalid user ID"), msgInternal)
		return
	}

	ctx, cancel := h.dbContext(c)
	defer cancel()

	respondUser(c, h.store.Users.FindOne(ctx, bson.M{models.FieldID: id}))
}

func (h *Controller) GetUserByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		fail(c, ValidationError("Email required"), msgInternal)
		return
	}

	ctx, cancel := h.dbContext(c)
	defer cancel()

	respondUser(c, h.store.Users.FindOne(ctx, bson.M{models.FieldEmail: email}))
}

// UpdateUser merges the body into the stored user and returns the result.
// A truthy password is re-encoded; everything else is applied verbatim.
func (h *Controller) UpdateUser(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, ValidationError("Invalid user ID"), msgInternal)
		return
	}
	fields, err := bindDocument(c)
	if err != nil {
		fail(c, err, msgInternal)
		return
	}

	if pw := fields[models.FieldPassword]; models.Truthy(pw) {
		encoded, err := h.passwords.Encode(fmt.Sprint(pw))
		if err != nil {
			fail(c, err, msgInternal)
			return
		}
		fields[models.FieldPassword] = encoded
	}
	fields[models.FieldUpdatedAt] = h.now()

	ctx, cancel := h.dbContext(c)
	defer cancel()

	res, err := h.store.Users.UpdateOne(ctx, bson.M{models.FieldID: id}, bson.M{"$set": fields})
	if err != nil {
		fail(c, fmt.Errorf("update user: %w", err), msgInternal)
		return
	}
	if res.MatchedCount == 0 {
		fail(c, NotFoundError("User not found"), msgInternal)
		return
	}

	respondUser(c, h.store.Users.FindOne(ctx, bson.M{models.FieldID: id}))
}

func respondUser(c *gin.Context, res *mongo.SingleResult) {
	var user bson.M
	if err := res.Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			fail(c, NotFoundError("User not found"), msgInternal)
		} else {
			fail(c, fmt.Errorf("load user: %w", err), msgInternal)
		}
		return
	}
	c.JSON(http.StatusOK, user)
}
