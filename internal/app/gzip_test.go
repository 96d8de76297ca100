package app

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Обработчик выставляет Content-Length несжатого тела, как это делает
// ShortenURLHandler.
func lengthSettingHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(body))
	})
}

func TestGzipMiddlewareCompressesFullBody(t *testing.T) {
	const body = "http://localhost:8080/b"
	handler := GzipMiddleware(lengthSettingHandler(body))

	request := httptest.NewRequest(http.MethodPost, "/", nil)
	request.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, request)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Equal(t, "gzip", res.Header.Get("Content-Encoding"))

	// длина несжатого тела не должна попасть в заголовки ответа
	assert.Empty(t, res.Header.Get("Content-Length"))

	gz, err := gzip.NewReader(res.Body)
	require.NoError(t, err)
	decoded, err := io.ReadAll(gz)
	require.NoError(t, err)
	assert.Equal(t, body, string(decoded))
}

func TestGzipMiddlewarePassthrough(t *testing.T) {
	const body = "http://localhost:8080/b"
	handler := GzipMiddleware(lengthSettingHandler(body))

	request := httptest.NewRequest(http.MethodPost, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, request)

	res := w.Result()
	defer res.Body.Close()
	assert.Empty(t, res.Header.Get("Content-Encoding"))
	assert.Equal(t, strconv.Itoa(len(body)), res.Header.Get("Content-Length"))
	assert.Equal(t, body, w.Body.String())
}
