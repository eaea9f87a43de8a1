package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"clinic-management-api/internal/auth"
	"clinic-management-api/internal/files"
	"clinic-management-api/internal/handler"
	"clinic-management-api/internal/logger"
	"clinic-management-api/internal/middleware"
	"clinic-management-api/internal/storage"
	"clinic-management-api/internal/store"
)

func main() {
	_ = godotenv.Load()

	log := logger.New(env("LOG_LEVEL", "info"))

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	port := env("PORT", "8080")

	// storage backend: postgres when a DATABASE_URL is set, local files
	// otherwise. Both hold the same key->JSON layout.
	var (
		kv  storage.Store
		err error
	)
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		kv, err = storage.NewPostgresStore(context.Background(), dbURL)
		if err != nil {
			log.WithError(err).Fatal("postgres storage")
		}
		log.Info("connected to postgres")
	} else {
		kv, err = storage.NewFileStore(env("DATA_DIR", "data"))
		if err != nil {
			log.WithError(err).Fatal("file storage")
		}
		log.Info("using file storage")
	}
	defer kv.Close()

	blobs, err := files.NewBlobStore(env("UPLOAD_DIR", "uploads"))
	if err != nil {
		log.WithError(err).Fatal("blob storage")
	}

	st := store.New(kv, log)
	gate, err := auth.NewGate(st, log)
	if err != nil {
		log.WithError(err).Fatal("auth gate")
	}

	h := handler.New(st, gate, blobs, log, secret)
	loginLimiter := middleware.NewRateLimiter(5, 10)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      middleware.CORS(h.Router(loginLimiter)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("http on :%s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("http server")
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("shutdown")
	}
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
