package storage

import (
	"sync"

	"github.com/nurbekov/shortener/internal/models"
)

type MapStorage struct {
	mu         sync.RWMutex
	urls       map[int64]models.ShortenURL
	byOriginal map[string]int64
	counter    int64
}

func NewMapStorage() *MapStorage {
	return &MapStorage{
		urls:       make(map[int64]models.ShortenURL),
		byOriginal: make(map[string]int64),
	}
}

func (ms *MapStorage) NextID() (int64, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.counter++
	return ms.counter, nil
}

func (ms *MapStorage) SaveURL(url models.ShortenURL) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, ok := ms.byOriginal[url.OriginalURL]; ok {
		return ErrAlreadyExistURL
	}
	ms.urls[url.ID] = url
	ms.byOriginal[url.OriginalURL] = url.ID
	return nil
}

func (ms *MapStorage) GetURL(id int64) (string, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	url, ok := ms.urls[id]
	if !ok {
		return "", ErrURLNotFound
	}
	return url.OriginalURL, nil
}

func (ms *MapStorage) GetByOriginalURL(originalURL string) (int64, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	id, ok := ms.byOriginal[originalURL]
	if !ok {
		return 0, ErrURLNotFound
	}
	return id, nil
}

func (ms *MapStorage) UserURLs(userID string) ([]models.ShortenURL, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	var urls []models.ShortenURL
	for _, u := range ms.urls {
		if u.UserID == userID {
			urls = append(urls, u)
		}
	}
	return urls, nil
}

// Restore refills the map from journal records and moves the id counter past
// the largest restored id.
func (ms *MapStorage) Restore(records []models.ShortenURL) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	for _, u := range records {
		ms.urls[u.ID] = u
		ms.byOriginal[u.OriginalURL] = u.ID
		if u.ID > ms.counter {
			ms.counter = u.ID
		}
	}
}
