package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/nurbekov/shortener/internal/logger"
	"github.com/nurbekov/shortener/internal/models"
	"go.uber.org/zap"
)

func (us *URLShortener) APIShortenerURL(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.Request
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&req); err != nil {
		http.Error(w, "Error decoding JSON", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if req.URL == "" {
		http.Error(w, "url is required", http.StatusBadRequest)
		return
	}

	shortenedURL, created, err := us.shorten(req.URL, UserIDFromContext(r.Context()))
	if err != nil {
		logger.Log.Error("Error saving URL", zap.Error(err))
		http.Error(w, "error saving URL", http.StatusInternalServerError)
		return
	}

	statusCode := http.StatusCreated
	if !created {
		statusCode = http.StatusConflict
	}

	resp := models.Response{
		Result: shortenedURL,
	}
	jsonData, err := json.Marshal(&resp)
	if err != nil {
		http.Error(w, "error creating JSON response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err = w.Write(jsonData); err != nil {
		logger.Log.Error("Error writing response", zap.Error(err))
	}
}
