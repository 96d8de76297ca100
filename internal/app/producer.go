package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/nurbekov/shortener/internal/models"
)

// Producer appends issued URL records to a JSON-lines journal so the
// in-memory storage can be rebuilt after a restart.
type Producer struct {
	mu      sync.Mutex
	file    *os.File
	encoder *json.Encoder
}

func NewProducer(filePath string) (*Producer, error) {
	dir := filepath.Dir(filePath)
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, err
	}
	file, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}

	return &Producer{
		file:    file,
		encoder: json.NewEncoder(file),
	}, nil
}

func (p *Producer) WriteEvent(url models.ShortenURL) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.encoder.Encode(url)
}

func (p *Producer) Close() error {
	if err := p.file.Close(); err != nil {
		return fmt.Errorf("error closing file: %w", err)
	}
	return nil
}

// LoadURLsFromFile reads the journal back. A missing file is not an error:
// the journal simply has not been written yet.
func LoadURLsFromFile(filePath string) ([]models.ShortenURL, error) {
	file, err := os.Open(filePath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	var urls []models.ShortenURL
	for decoder.More() {
		var url models.ShortenURL
		if err := decoder.Decode(&url); err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}

	return urls, nil
}
