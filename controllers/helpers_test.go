package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"storefront/controllers"
	"storefront/database"
	"storefront/logging"
	"storefront/routes"
)

var fixedNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func newRouter(mt *mtest.T, opts ...controllers.Option) *gin.Engine {
	gin.SetMode(gin.TestMode)
	opts = append([]controllers.Option{
		controllers.WithClock(func() time.Time { return fixedNow }),
	}, opts...)
	h := controllers.New(database.NewStore(mt.DB), opts...)
	return routes.NewRouter(routes.Deps{
		Controller:  h,
		Logger:      logging.NewWithWriter(io.Discard, "error"),
		CORSOrigins: []string{"http://localhost:5173"},
	})
}

// do sends body as JSON unless it is a string, which is sent verbatim.
func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = strings.NewReader(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			panic(err)
		}
		rdr = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rdr)
	if rdr != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeObject(t testing.TB, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func decodeList(t testing.TB, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func mockOpts() *mtest.Options {
	return mtest.NewOptions().ClientType(mtest.Mock)
}

func cursor(ns string, docs ...bson.D) bson.D {
	return mtest.CreateCursorResponse(0, "storefront."+ns, mtest.FirstBatch, docs...)
}

// written is the reply to an update or delete affecting n documents.
func written(n int32) bson.D {
	return mtest.CreateSuccessResponse(
		bson.E{Key: "n", Value: n},
		bson.E{Key: "nModified", Value: n},
	)
}

func ok() bson.D {
	return mtest.CreateSuccessResponse()
}

func failure() bson.D {
	return mtest.CreateCommandErrorResponse(mtest.CommandError{
		Code:    2,
		Name:    "BadValue",
		Message: "mock failure",
	})
}
