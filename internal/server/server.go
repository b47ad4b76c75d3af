package server

import (
	"context"
	"net/http"

	"flower-storefront/internal/handler"
	mw "flower-storefront/internal/middleware"
	"flower-storefront/internal/service"
	"flower-storefront/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

// Services is everything the HTTP surface calls into.
type Services struct {
	Cart     service.CartService
	Checkout service.CheckoutService
	Orders   service.OrderService
	Products service.ProductService
	Auth     service.AuthService

	CartStore *store.CartStore
	Messages  *store.MessageStore
}

type Server struct {
	echo            *echo.Echo
	authService     service.AuthService
	cartHandler     *handler.CartHandler
	cartFeed        *handler.CartFeed
	checkoutHandler *handler.CheckoutHandler
	orderHandler    *handler.OrderHandler
	productHandler  *handler.ProductHandler
	authHandler     *handler.AuthHandler
	messageHandler  *handler.MessageHandler
}

func NewServer(services Services, logger *log.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Logger = logger
	e.Validator = handler.NewValidator()

	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:            e,
		authService:     services.Auth,
		cartHandler:     handler.NewCartHandler(services.Cart, services.Messages),
		cartFeed:        handler.NewCartFeed(services.CartStore),
		checkoutHandler: handler.NewCheckoutHandler(services.Checkout, services.Messages),
		orderHandler:    handler.NewOrderHandler(services.Orders, services.Messages),
		productHandler:  handler.NewProductHandler(services.Products, services.Messages),
		authHandler:     handler.NewAuthHandler(services.Auth, services.Messages),
		messageHandler:  handler.NewMessageHandler(services.Messages),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// -------- cart --------
	api.GET("/cart", s.cartHandler.GetCart)
	api.POST("/cart", s.cartHandler.AddItem)
	api.GET("/cart/ws", s.cartFeed.Serve)
	api.PUT("/cart/:id", s.cartHandler.UpdateItem)
	api.POST("/cart/:id/increment", s.cartHandler.Increment)
	api.POST("/cart/:id/decrement", s.cartHandler.Decrement)
	api.DELETE("/cart/:id", s.cartHandler.RemoveItem)
	api.DELETE("/carts", s.cartHandler.Clear)

	// -------- checkout --------
	api.POST("/checkout", s.checkoutHandler.Submit)
	api.GET("/receipts", s.checkoutHandler.ListReceipts)

	// -------- catalog --------
	api.GET("/products", s.productHandler.ListProducts)
	api.GET("/products/:id", s.productHandler.GetProduct)

	// -------- toasts --------
	api.GET("/messages", s.messageHandler.ListMessages)
	api.DELETE("/messages/:id", s.messageHandler.DismissMessage)

	// -------- admin --------
	api.POST("/admin/signin", s.authHandler.SignIn)
	api.POST("/admin/signout", s.authHandler.SignOut)

	admin := api.Group("/admin", mw.AdminAuth(s.authService))
	admin.GET("/orders", s.orderHandler.ListOrders)
	admin.GET("/orders/:id", s.orderHandler.GetOrder)
	admin.POST("/orders/:id/preview", s.orderHandler.Preview)
	admin.PUT("/orders/:id", s.orderHandler.UpdateOrder)
	admin.DELETE("/orders/:id", s.orderHandler.DeleteOrder)

	admin.GET("/products", s.productHandler.AdminListProducts)
	admin.POST("/products", s.productHandler.CreateProduct)
	admin.POST("/products/upload", s.productHandler.UploadImage)
	admin.PUT("/products/:id", s.productHandler.UpdateProduct)
	admin.DELETE("/products/:id", s.productHandler.DeleteProduct)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
