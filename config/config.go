package config

import (
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	CsvPath       string
	ListenAddr    string
	ReferenceYear int
}

var (
	config *Config
	once   sync.Once
)

// GetConfig returns the singleton configuration instance.
// A missing .env file is not an error, plain environment variables work too.
func GetConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file, using environment variables")
		}

		config = &Config{
			CsvPath:       getEnv("CSV_PATH", "Big_Mart.csv"),
			ListenAddr:    getEnv("LISTEN_ADDR", ":8005"),
			ReferenceYear: getEnvInt("REFERENCE_YEAR", 2025),
		}
	})
	return config
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}
