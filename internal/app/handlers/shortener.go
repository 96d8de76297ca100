package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/nurbekov/shortener/config"
	"github.com/nurbekov/shortener/internal/app"
	"github.com/nurbekov/shortener/internal/app/storage"
	"github.com/nurbekov/shortener/internal/codec"
	"github.com/nurbekov/shortener/internal/logger"
	"github.com/nurbekov/shortener/internal/models"
	"go.uber.org/zap"
)

type URLShortener struct {
	config      *config.Config
	Storage     storage.URLStorage
	codec       *codec.Codec
	fileStorage *app.Producer
}

func NewURLShortener(cfg *config.Config, store storage.URLStorage, c *codec.Codec, fileStorage *app.Producer) *URLShortener {
	return &URLShortener{
		config:      cfg,
		Storage:     store,
		codec:       c,
		fileStorage: fileStorage,
	}
}

// shorten allocates the next id, stores the original URL under it and returns
// the encoded short URL. On a duplicate original URL the id already issued
// for it is re-encoded instead, and created is false.
func (us *URLShortener) shorten(originalURL, userID string) (shortURL string, created bool, err error) {
	id, err := us.Storage.NextID()
	if err != nil {
		return "", false, err
	}

	created = true
	err = us.Storage.SaveURL(models.ShortenURL{ID: id, OriginalURL: originalURL, UserID: userID})
	if errors.Is(err, storage.ErrAlreadyExistURL) {
		id, err = us.Storage.GetByOriginalURL(originalURL)
		if err != nil {
			return "", false, err
		}
		created = false
	} else if err != nil {
		return "", false, err
	} else if us.fileStorage != nil {
		if err := us.fileStorage.WriteEvent(models.ShortenURL{ID: id, OriginalURL: originalURL, UserID: userID}); err != nil {
			logger.Log.Error("error saving URL data in file", zap.Error(err))
			return "", false, err
		}
	}

	return us.config.BaseURL + "/" + us.codec.Encode(id), created, nil
}

func (us *URLShortener) ShortenURLHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	url, err := io.ReadAll(r.Body)
	defer r.Body.Close()
	if err != nil {
		http.Error(w, "error reading request body", http.StatusInternalServerError)
		return
	}
	if len(url) == 0 {
		http.Error(w, "empty request body", http.StatusBadRequest)
		return
	}

	shortenedURL, created, err := us.shorten(string(url), UserIDFromContext(r.Context()))
	if err != nil {
		logger.Log.Error("Error saving URL", zap.Error(err))
		http.Error(w, "error saving URL", http.StatusInternalServerError)
		return
	}

	statusCode := http.StatusCreated
	if !created {
		statusCode = http.StatusConflict
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Header().Set("Content-Length", strconv.Itoa(len(shortenedURL)))
	w.WriteHeader(statusCode)
	if _, err = w.Write([]byte(shortenedURL)); err != nil {
		logger.Log.Error("Error writing response", zap.Error(err))
	}
}

func (us *URLShortener) RedirectURLHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	code := strings.TrimPrefix(r.URL.Path, "/")

	id, err := us.codec.Decode(code)
	if err != nil {
		// символ вне алфавита - такой идентификатор мы выдать не могли
		var invErr *codec.InvalidSymbolError
		if errors.As(err, &invErr) {
			logger.Log.Info("Rejected malformed short code",
				zap.String("code", invErr.Input),
				zap.String("symbol", string(invErr.Symbol)))
		}
		http.Error(w, "URL not found", http.StatusNotFound)
		return
	}

	originalURL, err := us.Storage.GetURL(id)
	if err != nil {
		http.Error(w, "URL not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Location", originalURL)
	w.WriteHeader(http.StatusTemporaryRedirect)
}
