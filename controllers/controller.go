package controllers

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"storefront/database"
	"storefront/models"
	"storefront/passwords"
)

// Controller serves every route. Handlers talk to the collections directly.
type Controller struct {
	store        *database.Store
	passwords    passwords.Codec
	rand         models.Rand
	queryTimeout time.Duration
	now          func() time.Time
}

type Option func(*Controller)

func WithPasswordCodec(codec passwords.Codec) Option {
	return func(h *Controller) { h.passwords = codec }
}

func WithRand(r models.Rand) Option {
	return func(h *Controller) { h.rand = r }
}

// WithQueryTimeout bounds each store call. Zero leaves only the request context.
func WithQueryTimeout(d time.Duration) Option {
	return func(h *Controller) { h.queryTimeout = d }
}

func WithClock(now func() time.Time) Option {
	return func(h *Controller) { h.now = now }
}

func New(store *database.Store, opts ...Option) *Controller {
	h := &Controller{
		store:        store,
		passwords:    passwords.Base64Codec{},
		rand:         models.DefaultRand,
		queryTimeout: 5 * time.Second,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Controller) dbContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.queryTimeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.queryTimeout)
}

// bindDocument decodes a free-form JSON object. An empty body reads as {}.
func bindDocument(c *gin.Context) (bson.M, error) {
	var doc bson.M
	if err := bindJSON(c, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = bson.M{}
	}
	return doc, nil
}

func bindJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return ValidationError("Invalid request body")
	}
	return nil
}
