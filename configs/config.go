package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var loadOnce sync.Once

// Config returns the value of an environment key, loading .env the first
// time it is called. A missing .env file is fine in deployed environments.
func Config(key string) string {
	loadOnce.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("Warning: .env file not found, reading from system environment")
		}
	})
	return os.Getenv(key)
}

// ConfigOr returns fallback when the key is unset or empty.
func ConfigOr(key, fallback string) string {
	if value := Config(key); value != "" {
		return value
	}
	return fallback
}
