package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"storefront/controllers"
	"storefront/metrics"
	"storefront/middleware"
)

type Deps struct {
	Controller  *controllers.Controller
	Logger      *slog.Logger
	CORSOrigins []string

	// Metrics and Registry are optional; both must be set to expose /metrics.
	Metrics  *metrics.Collector
	Registry prometheus.Gatherer
}

// NewRouter builds the engine with the middleware chain and every route.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies(nil)

	r.Use(middleware.RequestID(), middleware.RequestLogger(d.Logger), middleware.Recovery())
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
	}
	r.Use(middleware.CORS(d.CORSOrigins))

	RegisterRoutes(r, d.Controller)

	r.GET("/healthz", d.Controller.Health)
	if d.Metrics != nil && d.Registry != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler(d.Registry)))
	}
	return r
}

func RegisterRoutes(r gin.IRouter, h *controllers.Controller) {
	r.POST("/signup", h.Signup)
	r.POST("/checkpassword", h.CheckPassword)

	users := r.Group("/users")
	{
		users.GET("", h.GetUserByEmail)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", h.UpdateUser)
	}

	cart := r.Group("/cart")
	{
		cart.GET("", h.GetCart)
		cart.POST("/add", h.AddToCart)
		cart.DELETE("/item", h.RemoveFromCart)
		cart.DELETE("/clear", h.ClearCart)
	}

	orders := r.Group("/orders")
	{
		orders.POST("", h.PlaceOrder)
		orders.GET("", h.GetOrders)
	}

	products := r.Group("/products")
	{
		products.POST("", h.CreateProduct)
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}
}
