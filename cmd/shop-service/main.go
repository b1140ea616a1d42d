package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/yourusername/shop-backend/internal/api"
	"github.com/yourusername/shop-backend/internal/api/middleware"
	"github.com/yourusername/shop-backend/pkg/db"
	"github.com/yourusername/shop-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.Init(logger.Options{
		Dev:  os.Getenv("APP_ENV") != "production",
		File: os.Getenv("LOG_FILE"),
	})
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg := db.LoadPostgresConfig()
	conn, err := db.NewPostgresConnection(cfg)
	if err != nil {
		zap.S().Fatalf("db connect: %v", err)
	}
	defer conn.Close()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		zap.S().Warn("JWT_SECRET is not set, tokens will not be secure")
		secret = "dev-secret"
	}

	handler := api.NewRouter(conn, api.Config{
		JWTSecret: secret,
		JWTTTL:    24 * time.Hour,
	})

	addr := ":8080"
	if p := os.Getenv("PORT"); p != "" {
		addr = ":" + p
	}

	srv := &http.Server{
		Addr:         addr,
		Handler:      middleware.Logger(handler),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)
		<-c
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			zap.S().Errorf("HTTP server shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	zap.S().Infof("starting shop-service on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		zap.S().Fatalf("listen: %v", err)
	}

	<-idleConnsClosed
	zap.S().Info("server stopped")
}
