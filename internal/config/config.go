package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName                string
	AppEnv                 string
	AppPort                string
	DatabaseURL            string
	RedisURL               string
	JWTSecret              string
	JWTRefreshSecret       string
	AccessTokenTTL         time.Duration
	RefreshTokenTTL        time.Duration
	BcryptCost             int
	DriveCacheTTL          time.Duration
	AnnouncementCacheTTL   time.Duration
	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string
	ResumeMaxSizeMB        int
	TickerMaxEntries       int
	OpenAIAPIKey           string
	OpenAIModel            string
	DemoMode               bool
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("PLACETRACK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "PlaceTrack API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("jwt.access_ttl", "15m")
	v.SetDefault("jwt.refresh_ttl", "168h")
	v.SetDefault("bcrypt.cost", 12)
	v.SetDefault("drive.cache_ttl", "2m")
	v.SetDefault("announcement.cache_ttl", "5m")
	v.SetDefault("cloudinary.folder", "placetrack/resumes")
	v.SetDefault("resume.max_size_mb", 5)
	v.SetDefault("ticker.max_entries", 20)
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("demo.mode", false)

	accessTTL, err := time.ParseDuration(v.GetString("jwt.access_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid access token ttl: %w", err)
	}

	refreshTTL, err := time.ParseDuration(v.GetString("jwt.refresh_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid refresh token ttl: %w", err)
	}

	driveTTL, err := time.ParseDuration(v.GetString("drive.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid drive cache ttl: %w", err)
	}

	announcementTTL, err := time.ParseDuration(v.GetString("announcement.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid announcement cache ttl: %w", err)
	}

	cfg := Config{
		AppName:                v.GetString("app.name"),
		AppEnv:                 v.GetString("app.env"),
		AppPort:                v.GetString("app.port"),
		DatabaseURL:            v.GetString("database.url"),
		RedisURL:               v.GetString("redis.url"),
		JWTSecret:              v.GetString("jwt.secret"),
		JWTRefreshSecret:       v.GetString("jwt.refresh_secret"),
		AccessTokenTTL:         accessTTL,
		RefreshTokenTTL:        refreshTTL,
		BcryptCost:             v.GetInt("bcrypt.cost"),
		DriveCacheTTL:          driveTTL,
		AnnouncementCacheTTL:   announcementTTL,
		CloudinaryCloudName:    v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:       v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret:    v.GetString("cloudinary.api_secret"),
		CloudinaryUploadFolder: v.GetString("cloudinary.folder"),
		ResumeMaxSizeMB:        v.GetInt("resume.max_size_mb"),
		TickerMaxEntries:       v.GetInt("ticker.max_entries"),
		OpenAIAPIKey:           v.GetString("openai.api_key"),
		OpenAIModel:            v.GetString("openai.model"),
		DemoMode:               v.GetBool("demo.mode"),
	}

	if cfg.JWTSecret == "" || cfg.JWTRefreshSecret == "" {
		return Config{}, fmt.Errorf("jwt secrets must be provided")
	}

	if cfg.BcryptCost < 10 || cfg.BcryptCost > 16 {
		cfg.BcryptCost = 12
	}

	if cfg.ResumeMaxSizeMB <= 0 {
		cfg.ResumeMaxSizeMB = 5
	}

	if cfg.TickerMaxEntries <= 0 {
		cfg.TickerMaxEntries = 20
	}

	return cfg, nil
}
