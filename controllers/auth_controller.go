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

// Signup registers a user. The email check and the insert are separate
// round trips, so two concurrent signups for one email can both land.
func (h *Controller) Signup(c *gin.Context) {
	user, err := bindDocument(c)
	if err != nil {
		fail(c, err, msgInternal)
		return
	}
	if msg := models.SignupProblem(user); msg != "" {
		fail(c, ValidationError(msg), msgInternal)
		return
	}

	ctx, cancel := h.dbContext(c)
	defer cancel()

	err = h.store.Users.FindOne(ctx, bson.M{models.FieldEmail: user[models.FieldEmail]}).Err()
	switch {
	case err == nil:
		fail(c, ConflictError("Email already in use"), msgInternal)
		return
	case !errors.Is(err, mongo.ErrNoDocuments):
		fail(c, fmt.Errorf("lookup user by email: %w", err), msgInternal)
		return
	}

	encoded, err := h.passwords.Encode(user[models.FieldPassword].(string))
	if err != nil {
		fail(c, err, msgInternal)
		return
	}
	user[models.FieldPassword] = encoded
	delete(user, models.FieldConfirmPassword)
	user[models.FieldCreatedAt] = h.now()

	res, err := h.store.Users.InsertOne(ctx, user)
	if err != nil {
		fail(c, fmt.Errorf("insert user: %w", err), msgInternal)
		return
	}

	body := gin.H{
		"message": "User created",
		"userId":  res.InsertedID,
		"email":   user[models.FieldEmail],
	}
	if name := models.DisplayName(user); name != nil {
		body["userName"] = name
	}
	c.JSON(http.StatusCreated, body)
}

func (h *Controller) CheckPassword(c *gin.Context) {
	var input models.Credentials
	if err := bindJSON(c, &input); err != nil {
		fail(c, err, msgInternal)
		return
	}
	if input.Email == "" || input.Password == "" {
		fail(c, ValidationError("Email and password are required"), msgInternal)
		return
	}

	ctx, cancel := h.dbContext(c)
	defer cancel()

	var user bson.M
	err := h.store.Users.FindOne(ctx, bson.M{models.FieldEmail: input.Email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			fail(c, NotFoundError("User not found"), msgInternal)
		} else {
			fail(c, fmt.Errorf("lookup user by email: %w", err), msgInternal)
		}
		return
	}

	stored, _ := user[models.FieldPassword].(string)
	ok, err := h.passwords.Matches(stored, input.Password)
	if err != nil {
		fail(c, err, msgInternal)
		return
	}
	if !ok {
		fail(c, AuthenticationError("Invalid password", gin.H{"valid": false}), msgInternal)
		return
	}

	body := gin.H{
		"message": "Password is correct",
		"valid":   true,
		"email":   user[models.FieldEmail],
		"userId":  user[models.FieldID],
	}
	if name := models.DisplayName(user); name != nil {
		body["userName"] = name
	}
	c.JSON(http.StatusOK, body)
}
