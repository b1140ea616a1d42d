package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/yourusername/shop-backend/internal/api/handlers"
	"github.com/yourusername/shop-backend/internal/api/middleware"
	"github.com/yourusername/shop-backend/internal/repository"
	"github.com/yourusername/shop-backend/internal/service"
)

type Config struct {
	JWTSecret string
	JWTTTL    time.Duration
}

// NewRouter wires repositories, services, and handlers onto the HTTP
// routes of the shop-backend.
func NewRouter(db *sql.DB, cfg Config) http.Handler {
	txRunner := repository.NewTxRunner(db)
	cartRepo := repository.NewCartRepo(db)
	productRepo := repository.NewProductRepo(db)
	userRepo := repository.NewUserRepo(db)
	orderRepo := repository.NewOrderRepo(db)

	catalogSvc := service.NewCatalogService(productRepo)
	cartSvc := service.NewCartService(txRunner, cartRepo, catalogSvc)
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	orderSvc := service.NewOrderService(txRunner, cartRepo, orderRepo)

	authHandler := handlers.NewAuthHandler(authSvc)
	userHandler := handlers.NewUserHandler(authSvc)
	productHandler := handlers.NewProductHandler(catalogSvc)
	cartHandler := handlers.NewCartHandler(cartSvc)
	orderHandler := handlers.NewOrderHandler(orderSvc)

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	// Public endpoints
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", productHandler.List)
		r.Get("/{productID}", productHandler.Get)
	})

	// Authenticated endpoints
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(authSvc))

		r.Route("/users", func(r chi.Router) {
			r.Get("/{userID}", userHandler.GetUser)
			r.Put("/{userID}", userHandler.UpdateUser)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/", cartHandler.CreateCart)
			r.Get("/items", cartHandler.ListItems)
			r.Post("/items/{productID}", cartHandler.SetItem)
			r.Put("/items/{productID}", cartHandler.SetItem)
			r.Delete("/items/{productID}", cartHandler.RemoveItem)
			r.Post("/checkout", orderHandler.Checkout)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", orderHandler.List)
			r.Get("/{orderID}", orderHandler.Get)
		})
	})

	// health
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
