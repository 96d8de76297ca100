package handlers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/nurbekov/shortener/internal/logger"
	"github.com/nurbekov/shortener/internal/models"
	"go.uber.org/zap"
)

// Выдаем пользователю симметрично подписанную куку с уникальным
// идентификатором, если куки нет или подпись не сходится.

const authCookieName = "auth_token"

var authSecret = []byte("shortener-auth-secret")

type contextKey string

const userIDKey contextKey = "userID"

func signUserID(userID string) string {
	h := hmac.New(sha256.New, authSecret)
	h.Write([]byte(userID))
	return hex.EncodeToString(h.Sum(nil))
}

func verifyCookie(value string) (string, bool) {
	parts := strings.SplitN(value, "|", 2)
	if len(parts) != 2 {
		return "", false
	}
	userID, sig := parts[0], parts[1]
	if userID == "" || !hmac.Equal([]byte(sig), []byte(signUserID(userID))) {
		return "", false
	}
	return userID, true
}

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var userID string

		cookie, err := r.Cookie(authCookieName)
		if err == nil {
			userID, _ = verifyCookie(cookie.Value)
		}
		if userID == "" {
			userID = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     authCookieName,
				Value:    userID + "|" + signUserID(userID),
				Path:     "/",
				HttpOnly: true,
			})
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func UserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey).(string)
	return userID
}

func (us *URLShortener) UserURLsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	userID := UserIDFromContext(r.Context())
	if userID == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	urls, err := us.Storage.UserURLs(userID)
	if err != nil {
		logger.Log.Error("Error get user URLs", zap.Error(err))
		http.Error(w, "error getting user URLs", http.StatusInternalServerError)
		return
	}
	if len(urls) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	resp := make([]models.UserURL, len(urls))
	for i, u := range urls {
		resp[i] = models.UserURL{
			ShortURL:    us.config.BaseURL + "/" + us.codec.Encode(u.ID),
			OriginalURL: u.OriginalURL,
		}
	}

	jsonData, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "error creating JSON response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if _, err = w.Write(jsonData); err != nil {
		logger.Log.Error("Error writing response", zap.Error(err))
	}
}
