package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	DatabaseDSN string
	JWTSecret   string
	CORSOrigins string

	// Object storage (local disk bucket)
	StorageRoot   string
	StorageBucket string

	// Address autocomplete providers, tried in this order
	SmartAddressURL string
	SmartAddressKey string
	GooglePlacesKey string
	GooglePlacesURL string
	AresBaseURL     string

	LogLevel  string
	LogFormat string
}

const defaultDSN = "host=localhost user=postgres password=postgres dbname=pronajem port=5432 sslmode=disable"

func Load() *Config {
	// .env je volitelny, chybejici soubor neni chyba
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:     getEnv("DATABASE_DSN", defaultDSN),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		CORSOrigins:     getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		StorageRoot:     getEnv("STORAGE_ROOT", "./storage"),
		StorageBucket:   getEnv("STORAGE_BUCKET", "documents"),
		SmartAddressURL: getEnv("SMART_ADDRESS_URL", ""),
		SmartAddressKey: getEnv("SMART_ADDRESS_KEY", ""),
		GooglePlacesKey: getEnv("GOOGLE_PLACES_KEY", ""),
		GooglePlacesURL: getEnv("GOOGLE_PLACES_URL", "https://maps.googleapis.com/maps/api/place"),
		AresBaseURL:     getEnv("ARES_BASE_URL", "https://ares.gov.cz/ekonomicke-subjekty-v-be/rest"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("[FATAL] JWT_SECRET neni nastaven, server nelze spustit")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("[FATAL] JWT_SECRET musi mit alespon 32 znaku")
	}
	if cfg.DatabaseDSN == defaultDSN {
		log.Println("[WARN] DATABASE_DSN pouziva vychozi hodnotu, pro produkci nastav vlastni pripojeni")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS pouziva vychozi hodnotu, pro produkci nastav vlastni domenu")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
