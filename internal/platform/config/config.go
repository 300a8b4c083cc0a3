package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Gemini text generation
	GeminiAPIKey string
	GeminiModel  string

	// Reference timezone for due-date countdowns.
	TimeZone string

	// CORS
	AllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "24h")
	viper.SetDefault("JWT_ISSUER", "nortis-backend")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("TIME_ZONE", "America/Sao_Paulo")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 24 * time.Hour
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.GeminiAPIKey = viper.GetString("GEMINI_API_KEY")
	if cfg.GeminiAPIKey == "" {
		log.Println("Warning: GEMINI_API_KEY not set. Insight generation will not function.")
	}
	cfg.GeminiModel = viper.GetString("GEMINI_MODEL")

	cfg.TimeZone = viper.GetString("TIME_ZONE")

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.AllowedOrigins = viper.GetStringSlice("ALLOWED_ORIGINS")

	return cfg, nil
}
