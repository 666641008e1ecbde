package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/logging"
)

const msgInternal = "Internal Server Error"

// APIError is a failure the caller is allowed to see.
type APIError struct {
	Status  int
	Message string
	Extra   gin.H
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) body() gin.H {
	out := gin.H{"message": e.Message}
	for k, v := range e.Extra {
		out[k] = v
	}
	return out
}

func ValidationError(msg string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: msg}
}

// ConflictError shares 400 with validation failures.
func ConflictError(msg string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: msg}
}

func AuthenticationError(msg string, extra gin.H) *APIError {
	return &APIError{Status: http.StatusUnauthorized, Message: msg, Extra: extra}
}

func NotFoundError(msg string) *APIError {
	return &APIError{Status: http.StatusNotFound, Message: msg}
}

// fail writes err. Anything that is not an *APIError is logged and answered
// with internalMsg and a 500.
func fail(c *gin.Context, err error, internalMsg string) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, apiErr.body())
		return
	}
	_ = c.Error(err)
	logging.FromContext(c.Request.Context()).Error("request failed", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": internalMsg})
}
