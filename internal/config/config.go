package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config contains runtime configuration values.
type Config struct {
	Port               string
	FrontendURL        string
	BaserowAPIURL      string
	BaserowAPIKey      string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string
	ScheduleWebhookURL string
	GeminiAPIKey       string
}

// Load reads configuration from the environment. The Google credentials
// are hard requirements: without them the calendar integration cannot
// work at all, so startup fails.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:               getEnv("PORT", "3001"),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:5173"),
		BaserowAPIURL:      getEnv("BASEROW_API_URL", "https://api.baserow.io"),
		BaserowAPIKey:      os.Getenv("BASEROW_API_KEY"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURI:  os.Getenv("GOOGLE_REDIRECT_URI"),
		ScheduleWebhookURL: os.Getenv("N8N_SCHEDULE_WEBHOOK_URL"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
	}

	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" || cfg.GoogleRedirectURI == "" {
		return Config{}, fmt.Errorf("as credenciais do Google não foram encontradas (GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET, GOOGLE_REDIRECT_URI)")
	}
	if cfg.BaserowAPIKey == "" {
		return Config{}, fmt.Errorf("BASEROW_API_KEY is required")
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
