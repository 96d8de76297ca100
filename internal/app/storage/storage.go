package storage

import (
	"database/sql"
	"errors"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose"

	"github.com/nurbekov/shortener/internal/logger"
	"github.com/nurbekov/shortener/internal/models"
	"go.uber.org/zap"
)

// URLStorage keeps issued URLs keyed by their integer id. The short string is
// derived from the id by the codec and is never stored.
type URLStorage interface {
	NextID() (int64, error)
	SaveURL(url models.ShortenURL) error
	GetURL(id int64) (string, error)
	GetByOriginalURL(originalURL string) (int64, error)
	UserURLs(userID string) ([]models.ShortenURL, error)
}

var (
	ErrAlreadyExistURL = errors.New("URLAlreadyExist")
	ErrURLNotFound     = errors.New("url not found")
)

type PostgreSQLStorage struct {
	db *sql.DB
}

// NewPostgreSQLStorage открывает соединение с базой по заданному DSN.
func NewPostgreSQLStorage(dsn string) (*PostgreSQLStorage, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		logger.Log.Error("Error open connection to DB", zap.Error(err))
		return nil, err
	}

	return &PostgreSQLStorage{db: db}, nil
}

// Migrate applies the SQL migrations from dir.
func (s *PostgreSQLStorage) Migrate(dir string) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(s.db, dir)
}

func (s *PostgreSQLStorage) NextID() (int64, error) {
	var id int64
	err := s.db.QueryRow(`SELECT nextval('shorten_urls_id_seq');`).Scan(&id)
	if err != nil {
		logger.Log.Error("Error get next id from sequence", zap.Error(err))
		return 0, err
	}
	return id, nil
}

func (s *PostgreSQLStorage) SaveURL(url models.ShortenURL) error {
	result, err := s.db.Exec(
		`INSERT INTO shorten_urls (id, original_url, user_id) VALUES ($1, $2, $3)
		 ON CONFLICT (original_url) DO NOTHING;`,
		url.ID, url.OriginalURL, url.UserID)
	if err != nil {
		logger.Log.Error("Error insert URL to table", zap.Error(err))
		return err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrAlreadyExistURL
	}
	return nil
}

func (s *PostgreSQLStorage) GetURL(id int64) (string, error) {
	var originalURL string
	row := s.db.QueryRow(`SELECT original_url FROM shorten_urls WHERE id = $1;`, id)
	err := row.Scan(&originalURL)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrURLNotFound
	}
	if err != nil {
		logger.Log.Error("No row selected from table", zap.Error(err))
		return "", err
	}

	return originalURL, nil
}

func (s *PostgreSQLStorage) GetByOriginalURL(originalURL string) (int64, error) {
	var id int64
	err := s.db.QueryRow(`SELECT id FROM shorten_urls WHERE original_url = $1;`, originalURL).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrURLNotFound
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *PostgreSQLStorage) UserURLs(userID string) ([]models.ShortenURL, error) {
	rows, err := s.db.Query(`SELECT id, original_url FROM shorten_urls WHERE user_id = $1;`, userID)
	if err != nil {
		logger.Log.Error("Error select user URLs", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var urls []models.ShortenURL
	for rows.Next() {
		var u models.ShortenURL
		if err := rows.Scan(&u.ID, &u.OriginalURL); err != nil {
			return nil, err
		}
		u.UserID = userID
		urls = append(urls, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return urls, nil
}

func (s *PostgreSQLStorage) Ping() error {
	return s.db.Ping()
}

func (s *PostgreSQLStorage) Close() error {
	return s.db.Close()
}
