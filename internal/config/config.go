package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Database
	DatabaseURL string

	// Admin
	AdminKey      string
	JWTSecret     string
	AdminTokenTTL time.Duration

	// Matching
	MatchLimit int

	// Notification
	NotifyTimeout time.Duration
	SMTPHost      string
	SMTPPort      int
	SMTPUser      string
	SMTPPass      string
	AdminEmail    string
	TwilioSID     string
	TwilioAuth    string
	TwilioPhone   string
	AdminPhone    string

	// Rate Limit（req/min単位）
	RateLimitGeneral int
	RateLimitIntake  int

	// Server
	ServerPort string

	// CORS
	CORSAllowedOrigin string
}

// Load は環境変数からConfigを読み込む。
// 必須環境変数が未設定の場合はエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}

	// Required fields
	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.AdminKey = os.Getenv("ADMIN_KEY")
	if cfg.AdminKey == "" {
		missing = append(missing, "ADMIN_KEY")
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	// Optional fields with defaults
	cfg.AdminTokenTTL = getEnvDuration("ADMIN_TOKEN_TTL", 2*time.Hour)
	cfg.MatchLimit = getEnvInt("MATCH_LIMIT", 5)
	cfg.NotifyTimeout = getEnvDuration("NOTIFY_TIMEOUT", 10*time.Second)
	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.RateLimitIntake = getEnvInt("RATE_LIMIT_INTAKE", 10)
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")

	// Notification channels（未設定のチャネルは無効化されるだけでエラーにしない）
	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.SMTPPort = getEnvInt("SMTP_PORT", 587)
	cfg.SMTPUser = os.Getenv("SMTP_USER")
	cfg.SMTPPass = os.Getenv("SMTP_PASS")
	cfg.AdminEmail = os.Getenv("ADMIN_EMAIL")
	cfg.TwilioSID = os.Getenv("TWILIO_SID")
	cfg.TwilioAuth = os.Getenv("TWILIO_AUTH")
	cfg.TwilioPhone = os.Getenv("TWILIO_PHONE")
	cfg.AdminPhone = os.Getenv("ADMIN_PHONE")

	return cfg, nil
}

// EmailEnabled はメール通知チャネルが有効かを返す。
// SMTP認証情報と宛先がすべて設定されている場合のみ有効。
func (c *Config) EmailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPUser != "" && c.SMTPPass != "" && c.AdminEmail != ""
}

// SMSEnabled はSMS通知チャネルが有効かを返す。
// Twilio認証情報と電話番号がすべて設定されている場合のみ有効。
func (c *Config) SMSEnabled() bool {
	return c.TwilioSID != "" && c.TwilioAuth != "" && c.TwilioPhone != "" && c.AdminPhone != ""
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
