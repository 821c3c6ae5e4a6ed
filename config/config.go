// Package config centralizes configuration loaded from environment
// variables, with an optional .env file for development setups.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the tracker. Credentials for the
// e-mail and Google Drive side channels are opaque to the core: it only
// needs them to reach a durable blob store and an alert channel.
type Config struct {
	// Core settings
	DataDir  string
	LogLevel string
	LogFile  string

	// Feed settings
	FeedURL      string
	FetchTimeout time.Duration
	FetchRetries int

	// Dashboard settings
	DashboardAddr string

	// SMTP alert side-channel
	SMTPServer   string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	AlertTo      string

	// Google Drive backup side-channel
	DriveClientID     string
	DriveClientSecret string
	DriveTokenFile    string
	DriveFolder       string
}

// Load reads configuration from the environment, after loading a .env file
// if one is present next to the working directory. Missing values fall
// back to defaults that keep the tracker usable with zero configuration.
func Load() *Config {
	// a missing .env file is the normal case, not an error
	_ = godotenv.Load()

	home, _ := os.UserHomeDir()
	dataDir := getenv("MFT_DATA_DIR", filepath.Join(home, ".mftracker"))

	return &Config{
		DataDir:  dataDir,
		LogLevel: getenv("MFT_LOG_LEVEL", "info"),
		LogFile:  getenv("MFT_LOG_FILE", filepath.Join(dataDir, "tracker.log")),

		FeedURL:      getenv("MFT_FEED_URL", ""),
		FetchTimeout: getdur("MFT_FETCH_TIMEOUT", 20*time.Second),
		FetchRetries: getint("MFT_FETCH_RETRIES", 3),

		DashboardAddr: getenv("MFT_DASHBOARD_ADDR", "127.0.0.1:8050"),

		SMTPServer:   os.Getenv("MFT_SMTP_SERVER"),
		SMTPPort:     getenv("MFT_SMTP_PORT", "587"),
		SMTPUser:     os.Getenv("MFT_SMTP_USER"),
		SMTPPassword: os.Getenv("MFT_SMTP_PASSWORD"),
		AlertTo:      os.Getenv("MFT_ALERT_TO"),

		DriveClientID:     os.Getenv("MFT_DRIVE_CLIENT_ID"),
		DriveClientSecret: os.Getenv("MFT_DRIVE_CLIENT_SECRET"),
		DriveTokenFile:    getenv("MFT_DRIVE_TOKEN_FILE", filepath.Join(dataDir, "drive_token.json")),
		DriveFolder:       getenv("MFT_DRIVE_FOLDER", "MutualFund"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getdur(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
