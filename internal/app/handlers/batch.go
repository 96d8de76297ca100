package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/nurbekov/shortener/internal/logger"
	"github.com/nurbekov/shortener/internal/models"
	"go.uber.org/zap"
)

// BatchShortenHandler сокращает пачку URL за один запрос, сохраняя
// correlation_id каждого элемента.
func (us *URLShortener) BatchShortenHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.BatchShortenRequest
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		http.Error(w, "Error decoding JSON", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if len(req) == 0 {
		http.Error(w, "empty batch", http.StatusBadRequest)
		return
	}

	userID := UserIDFromContext(r.Context())

	resp := make(models.BatchShortenResponse, len(req))
	for i, item := range req {
		shortenedURL, _, err := us.shorten(item.OriginalURL, userID)
		if err != nil {
			logger.Log.Error("Error saving URL from batch",
				zap.String("correlation_id", item.CorrelationID), zap.Error(err))
			http.Error(w, "error saving URL", http.StatusInternalServerError)
			return
		}
		resp[i].CorrelationID = item.CorrelationID
		resp[i].ShortURL = shortenedURL
	}

	jsonData, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "error creating JSON response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if _, err = w.Write(jsonData); err != nil {
		logger.Log.Error("Error writing response", zap.Error(err))
	}
}
