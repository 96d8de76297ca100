package handlers

import (
	"net/http"

	"github.com/nurbekov/shortener/internal/app/storage"
	"github.com/nurbekov/shortener/internal/logger"
	"go.uber.org/zap"
)

// PingHandler проверяет соединение с БД.
func (us *URLShortener) PingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	pgStorage, ok := us.Storage.(*storage.PostgreSQLStorage)
	if !ok {
		http.Error(w, "database is not configured", http.StatusInternalServerError)
		return
	}

	if err := pgStorage.Ping(); err != nil {
		logger.Log.Error("Error connect to DB", zap.Error(err))
		http.Error(w, "Error connect to DB", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
}
