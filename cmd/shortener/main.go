package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi"
	"go.uber.org/zap"

	"github.com/nurbekov/shortener/config"
	"github.com/nurbekov/shortener/internal/app"
	"github.com/nurbekov/shortener/internal/app/handlers"
	"github.com/nurbekov/shortener/internal/app/storage"
	"github.com/nurbekov/shortener/internal/codec"
	"github.com/nurbekov/shortener/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Println("Error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.ParseFlags(os.Args[1:])

	if err := logger.Initialize(cfg.LogLevel); err != nil {
		return err
	}
	defer logger.Log.Sync()

	idCodec := codec.New(codec.Options{
		UseShuffled: cfg.UseShuffledAlphabet,
		Offset:      cfg.IDOffset,
	})

	var store storage.URLStorage
	var fileStorage *app.Producer

	if cfg.DSN != "" {
		pgStorage, err := storage.NewPostgreSQLStorage(cfg.DSN)
		if err != nil {
			logger.Log.Error("Error in NewPostgreSQLStorage", zap.Error(err))
			return err
		}
		defer pgStorage.Close()

		if err := pgStorage.Migrate("migrations"); err != nil {
			logger.Log.Error("Error applying migrations", zap.Error(err))
			return err
		}
		store = pgStorage
	} else {
		mapStorage := storage.NewMapStorage()
		if cfg.FileStoragePath != "" {
			records, err := app.LoadURLsFromFile(cfg.FileStoragePath)
			if err != nil {
				logger.Log.Error("Error in LoadURLsFromFile", zap.Error(err))
				return err
			}
			mapStorage.Restore(records)

			fileStorage, err = app.NewProducer(cfg.FileStoragePath)
			if err != nil {
				logger.Log.Error("Error in NewProducer", zap.Error(err))
				return err
			}
			defer fileStorage.Close()
		}
		store = mapStorage
	}

	shortener := handlers.NewURLShortener(cfg, store, idCodec, fileStorage)
	r := newRouter(shortener)

	addr := cfg.ServerAddress
	logger.Log.Info("Server is starting", zap.String("address", addr))

	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Log.Error("Failed to start server", zap.Error(err))
		return err
	}

	return nil
}

func newRouter(shortener *handlers.URLShortener) chi.Router {
	r := chi.NewRouter()
	r.Use(logger.LoggerMiddleware)
	r.Use(logger.RecoveryMiddleware)
	r.Use(app.GzipMiddleware)
	r.Use(handlers.AuthMiddleware)

	r.Post("/", shortener.ShortenURLHandler)
	r.Get("/{id}", shortener.RedirectURLHandler)
	r.Post("/api/shorten", shortener.APIShortenerURL)
	r.Post("/api/shorten/batch", shortener.BatchShortenHandler)
	r.Get("/api/user/urls", shortener.UserURLsHandler)
	r.Get("/ping", shortener.PingHandler)

	return r
}
