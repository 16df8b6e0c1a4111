package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DatabaseURL     string
	JWTSecret       string
	APIKey          string
	HTTPAddress     string
	PasswordPepper  string
	SessionTokenTTL time.Duration
	ResetTokenTTL   time.Duration
	RateLimitMax    int
	RateLimitWindow time.Duration
	AllowedOrigins  []string
	LogLevel        string
}

// Load reads configuration from the environment once at startup. Missing
// required values are a fatal startup condition, never a per-request one.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("json")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	for _, key := range []string{
		"DATABASE_URL",
		"JWT_SECRET",
		"API_KEY",
		"HTTP_ADDRESS",
		"PASSWORD_PEPPER",
		"SESSION_TOKEN_TTL",
		"RESET_TOKEN_TTL",
		"RATE_LIMIT_MAX",
		"RATE_LIMIT_WINDOW",
		"ALLOWED_ORIGINS",
		"LOG_LEVEL",
	} {
		if err := viper.BindEnv(key); err != nil {
			return nil, err
		}
	}

	viper.SetDefault("HTTP_ADDRESS", ":8080")
	viper.SetDefault("SESSION_TOKEN_TTL", "168h")
	viper.SetDefault("RESET_TOKEN_TTL", "15m")
	viper.SetDefault("RATE_LIMIT_MAX", 5)
	viper.SetDefault("RATE_LIMIT_WINDOW", "60s")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		DatabaseURL:     viper.GetString("DATABASE_URL"),
		JWTSecret:       viper.GetString("JWT_SECRET"),
		APIKey:          viper.GetString("API_KEY"),
		HTTPAddress:     viper.GetString("HTTP_ADDRESS"),
		PasswordPepper:  viper.GetString("PASSWORD_PEPPER"),
		SessionTokenTTL: viper.GetDuration("SESSION_TOKEN_TTL"),
		ResetTokenTTL:   viper.GetDuration("RESET_TOKEN_TTL"),
		RateLimitMax:    viper.GetInt("RATE_LIMIT_MAX"),
		RateLimitWindow: viper.GetDuration("RATE_LIMIT_WINDOW"),
		AllowedOrigins:  viper.GetStringSlice("ALLOWED_ORIGINS"),
		LogLevel:        viper.GetString("LOG_LEVEL"),
	}

	for name, val := range map[string]string{
		"DATABASE_URL": cfg.DatabaseURL,
		"JWT_SECRET":   cfg.JWTSecret,
		"API_KEY":      cfg.APIKey,
	} {
		if val == "" {
			return nil, fmt.Errorf("%s is required", name)
		}
	}

	return cfg, nil
}
