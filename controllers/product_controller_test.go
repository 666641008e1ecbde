package controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"storefront/controllers"
)

type countingRand struct {
	floats, ints int
}

func (r *countingRand) Float64() float64 { r.floats++; return 0.5 }
func (r *countingRand) IntN(n int) int   { r.ints++; return n / 2 }

func TestCreateProduct(t *testing.T) {
	mt := mtest.New(t, mockOpts())

	mt.Run("fills missing stats", func(mt *mtest.T) {
		rnd := &countingRand{}
		r := newRouter(mt, controllers.WithRand(rnd))
		mt.AddMockResponses(ok())

		w := do(r, http.MethodPost, "/products", map[string]any{"name": "Phone", "price": 499})

		require.Equal(mt, http.StatusCreated, w.Code, w.Body.String())
		body := decodeObject(mt, w)
		assert.Equal(mt, "Product added", body["message"])
		assert.Len(mt, body["id"], 24)
		assert.Equal(mt, 1, rnd.floats)
		assert.Equal(mt, 2, rnd.ints)
	})

	mt.Run("keeps provided stats", func(mt *mtest.T) {
		rnd := &countingRand{}
		r := newRouter(mt, controllers.WithRand(rnd))
		mt.AddMockResponses(ok())

		w := do(r, http.MethodPost, "/products", map[string]any{"name": "Phone", "rating": 4.2, "reviewCount": 10, "stock": 3})

		require.Equal(mt, http.StatusCreated, w.Code)
		assert.Zero(mt, rnd.floats)
		assert.Zero(mt, rnd.ints)
	})

	mt.Run("insert failure", func(mt *mtest.T) {
		r := newRouter(mt)
		mt.AddMockResponses(failure())

		w := do(r, http.MethodPost, "/products", map[string]any{"name": "Phone"})

		require.Equal(mt, http.StatusInternalServerError, w.Code)
	})
}

func TestListProducts(t *testing.T) {
	mt := mtest.New(t, mockOpts())

	mt.Run("search covers tags", func(mt *mtest.T) {
		r := newRouter(mt)
		mt.AddMockResponses(cursor("products", bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "name", Value: "Earbuds"},
			{Key: "tags", Value: bson.A{"Wireless", "audio"}},
		}))

		w := do(r, http.MethodGet, "/products?category=audio&search=wireless", nil)

		require.Equal(mt, http.StatusOK, w.Code, w.Body.String())
		products := decodeList(mt, w)
		require.Len(mt, products, 1)
		assert.Equal(mt, []any{"Wireless", "audio"}, products[0]["tags"])

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		filter := evt.Command.Lookup("filter")
		assert.Equal(mt, "audio", filter.Document().Lookup("category").StringValue())
		assert.Equal(mt, "wireless", evt.Command.Lookup("filter", "$or", "2", "tags", "$regex").StringValue())
		assert.Equal(mt, "i", evt.Command.Lookup("filter", "$or", "2", "tags", "$options").StringValue())
	})

	mt.Run("no filters", func(mt *mtest.T) {
		r := newRouter(mt)
		mt.AddMockResponses(cursor("products"))

		w := do(r, http.MethodGet, "/products", nil)

		require.Equal(mt, http.StatusOK, w.Code)
		assert.JSONEq(mt, "[]", w.Body.String())
	})

	mt.Run("store failure", func(mt *mtest.T) {
		r := newRouter(mt)
		mt.AddMockResponses(failure())

		w := do(r, http.MethodGet, "/products?search=(", nil)

		require.Equal(mt, http.StatusInternalServerError, w.Code)
		assert.Equal(mt, "Error fetching products", decodeObject(mt, w)["message"])
	})
}

func TestGetProduct(t *testing.T) {
	mt := mtest.New(t, mockOpts())

	mt.Run("looks up the raw path string", func(mt *mtest.T) {
		r := newRouter(mt)
		id := primitive.NewObjectID().Hex()
		mt.AddMockResponses(cursor("products"))

		w := do(r, http.MethodGet, "/products/"+id, nil)

		require.Equal(mt, http.StatusNotFound, w.Code)
		assert.Equal(mt, "Product not found", decodeObject(mt, w)["message"])

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		idVal := evt.Command.Lookup("filter", "_id")
		assert.Equal(mt, bsontype.String, idVal.Type)
		assert.Equal(mt, id, idVal.StringValue())
	})

	mt.Run("string id found", func(mt *mtest.T) {
		r := newRouter(mt)
		mt.AddMockResponses(cursor("products", bson.D{{Key: "_id", Value: "sku-1"}, {Key: "name", Value: "Phone"}}))

		w := do(r, http.MethodGet, "/products/sku-1", nil)

		require.Equal(mt, http.StatusOK, w.Code)
		assert.Equal(mt, "Phone", decodeObject(mt, w)["name"])
	})

	mt.Run("store failure", func(mt *mtest.T) {
		r := newRouter(mt)
		mt.AddMockResponses(failure())

		w := do(r, http.MethodGet, "/products/sku-1", nil)

		require.Equal(mt, http.StatusInternalServerError, w.Code)
		assert.Equal(mt, "Error fetching product", decodeObject(mt, w)["message"])
	})
}

func TestUpdateProduct(t *testing.T) {
	mt := mtest.New(t, mockOpts())
	id := primitive.NewObjectID()

	mt.Run("updated", func(mt *mtest.T) {
		r := newRouter(mt)
		mt.AddMockResponses(written(1))

		w := do(r, http.MethodPut, "/products/"+id.Hex(), map[string]any{"price": 449})

		require.Equal(mt, http.StatusOK, w.Code)
		assert.Equal(mt, "Product updated", decodeObject(mt, w)["message"])
	})

	mt.Run("not found", func(mt *mtest.T) {
		r := newRouter(mt)
		mt.AddMockResponses(written(0))

		w := do(r, http.MethodPut, "/products/"+id.Hex(), map[string]any{"price": 449})

		require.Equal(mt, http.StatusNotFound, w.Code)
	})

	mt.Run("invalid id", func(mt *mtest.T) {
		r := newRouter(mt)

		w := do(r, http.MethodPut, "/products/sku-1", map[string]any{"price": 449})

		require.Equal(mt, http.StatusBadRequest, w.Code)
		assert.Equal(mt, "Invalid ID", decodeObject(mt, w)["message"])
	})
}

func TestDeleteProduct(t *testing.T) {
	mt := mtest.New(t, mockOpts())
	id := primitive.NewObjectID()

	mt.Run("deleted", func(mt *mtest.T) {
		r := newRouter(mt)
		mt.AddMockResponses(written(1))

		w := do(r, http.MethodDelete, "/products/"+id.Hex(), nil)

		require.Equal(mt, http.StatusOK, w.Code)
		assert.Equal(mt, "Product deleted", decodeObject(mt, w)["message"])
	})

	mt.Run("not found", func(mt *mtest.T) {
		r := newRouter(mt)
		mt.AddMockResponses(written(0))

		w := do(r, http.MethodDelete, "/products/"+id.Hex(), nil)

		require.Equal(mt, http.StatusNotFound, w.Code)
		assert.Equal(mt, "Product not found", decodeObject(mt, w)["message"])
	})

	mt.Run("invalid id", func(mt *mtest.T) {
		r := newRouter(mt)

		w := do(r, http.MethodDelete, "/products/zzz", nil)

		require.Equal(mt, http.StatusBadRequest, w.Code)
	})
}
