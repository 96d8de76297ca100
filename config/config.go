package config

import (
	"flag"
	"os"
	"strconv"
)

type Config struct {
	ServerAddress       string
	BaseURL             string
	FileStoragePath     string
	DSN                 string
	LogLevel            string
	IDOffset            int64
	UseShuffledAlphabet bool
}

// ParseFlags reads configuration from command-line flags; environment
// variables override flag values.
func ParseFlags(args []string) *Config {
	config := &Config{}

	fs := flag.NewFlagSet("shortener", flag.ExitOnError)
	fs.StringVar(&config.ServerAddress, "a", "localhost:8080", "HTTP server address")
	fs.StringVar(&config.BaseURL, "b", "http://localhost:8080", "Base URL for shortened URLs")
	fs.StringVar(&config.FileStoragePath, "f", "", "path to the URL journal file")
	fs.StringVar(&config.DSN, "d", "", "PostgreSQL connection string")
	fs.StringVar(&config.LogLevel, "l", "info", "log level")
	fs.Int64Var(&config.IDOffset, "o", 0, "offset added to ids before encoding")
	fs.BoolVar(&config.UseShuffledAlphabet, "s", false, "encode ids with the shuffled alphabet")
	fs.Parse(args)

	if v := os.Getenv("SERVER_ADDRESS"); v != "" {
		config.ServerAddress = v
	}
	if v := os.Getenv("BASE_URL"); v != "" {
		config.BaseURL = v
	}
	if v := os.Getenv("FILE_STORAGE_PATH"); v != "" {
		config.FileStoragePath = v
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		config.DSN = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		config.LogLevel = v
	}
	if v := os.Getenv("ID_OFFSET"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.IDOffset = n
		}
	}
	if v := os.Getenv("USE_SHUFFLED_ALPHABET"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			config.UseShuffledAlphabet = b
		}
	}

	return config
}
