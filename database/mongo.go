package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	UsersCollection    = "users"
	CartCollection     = "cart"
	OrdersCollection   = "orders"
	ProductsCollection = "products"
)

const connectTimeout = 10 * time.Second

// Store is the shared database handle. It is created once at startup and
// handed to every controller.
type Store struct {
	Client   *mongo.Client
	DB       *mongo.Database
	Users    *mongo.Collection
	Cart     *mongo.Collection
	Orders   *mongo.Collection
	Products *mongo.Collection
}

// NewStore wires the collections of db.
func NewStore(db *mongo.Database) *Store {
	return &Store{
		Client:   db.Client(),
		DB:       db,
		Users:    db.Collection(UsersCollection),
		Cart:     db.Collection(CartCollection),
		Orders:   db.Collection(OrdersCollection),
		Products: db.Collection(ProductsCollection),
	}
}

// Connect dials MongoDB and pings the primary. Callers treat any error as fatal.
func Connect(ctx context.Context, uri, dbName string, logger *slog.Logger) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	store := NewStore(client.Database(dbName))
	logger.Info("connected to MongoDB", "database", store.DB.Name())
	return store, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}
