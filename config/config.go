package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	MySQLUser     string
	MySQLPwd      string
	MySQLHost     string
	MySQLDatabase string
	GeminiAPIKey  string
	GeminiModel   string
	LogMode       string
}

// Load reads a .env file if present and falls back to real environment
// variables. GEMINI_API_KEY is deliberately optional: without it the
// assistant endpoint degrades to configuration errors instead of the
// whole server refusing to start. MYSQL_HOST is optional too; when it
// is unset the server runs on the in-memory store.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:          getEnv("PORT", "8080"),
		MySQLUser:     getEnv("MYSQL_USER", "user"),
		MySQLPwd:      getEnv("MYSQL_PWD", "password"),
		MySQLHost:     os.Getenv("MYSQL_HOST"),
		MySQLDatabase: getEnv("MYSQL_DATABASE", "mckart_db"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.0-flash-001"),
		LogMode:       getEnv("LOG_MODE", "production"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
