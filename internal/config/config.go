package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	JWT       JWTConfig
	S3        S3Config
	Screening ScreeningConfig
	Extract   ExtractConfig
	Email     EmailConfig
	Admin     AdminConfig
	Log       LogConfig
	CORS      CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret       string        `mapstructure:"secret"`
	AccessExpiry time.Duration `mapstructure:"access_expiry"`
	Issuer       string        `mapstructure:"issuer"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// ScreeningConfig holds settings for the external AI screening service.
type ScreeningConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// ExtractConfig holds text extraction and OCR settings.
type ExtractConfig struct {
	Pdftoppm      string `mapstructure:"pdftoppm"`
	Tesseract     string `mapstructure:"tesseract"`
	TesseractLang string `mapstructure:"tesseract_lang"`
	DPI           int    `mapstructure:"dpi"`
	MaxPages      int    `mapstructure:"max_pages"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

// AdminConfig holds the bootstrap admin credentials.
type AdminConfig struct {
	Email        string `mapstructure:"email"`
	PasswordHash string `mapstructure:"password_hash"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the CIVICFIX_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CIVICFIX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "civicfix")
	v.SetDefault("db.password", "civicfix_secret")
	v.SetDefault("db.name", "civicfix_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "720h")
	v.SetDefault("jwt.issuer", "civicfix")

	// S3 defaults
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "civicfix-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 10)
	v.SetDefault("s3.presign_expiry", 3600)

	// Screening defaults
	v.SetDefault("screening.base_url", "http://localhost:8000")
	v.SetDefault("screening.timeout_secs", 10)

	// Extraction defaults
	v.SetDefault("extract.pdftoppm", "pdftoppm")
	v.SetDefault("extract.tesseract", "tesseract")
	v.SetDefault("extract.tesseract_lang", "eng")
	v.SetDefault("extract.dpi", 300)
	v.SetDefault("extract.max_pages", 10)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "noreply@civicfix.in")
	v.SetDefault("email.from_name", "CivicFix")

	// Admin defaults
	v.SetDefault("admin.email", "")
	v.SetDefault("admin.password_hash", "")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	envBindings := map[string]string{
		"server.port":            "CIVICFIX_SERVER_PORT",
		"server.read_timeout":    "CIVICFIX_SERVER_READ_TIMEOUT",
		"server.write_timeout":   "CIVICFIX_SERVER_WRITE_TIMEOUT",
		"server.environment":     "CIVICFIX_SERVER_ENVIRONMENT",
		"db.host":                "CIVICFIX_DB_HOST",
		"db.port":                "CIVICFIX_DB_PORT",
		"db.user":                "CIVICFIX_DB_USER",
		"db.password":            "CIVICFIX_DB_PASSWORD",
		"db.name":                "CIVICFIX_DB_NAME",
		"db.sslmode":             "CIVICFIX_DB_SSLMODE",
		"db.max_open":            "CIVICFIX_DB_MAX_OPEN",
		"db.max_idle":            "CIVICFIX_DB_MAX_IDLE",
		"jwt.secret":             "CIVICFIX_JWT_SECRET",
		"jwt.access_expiry":      "CIVICFIX_JWT_ACCESS_EXPIRY",
		"jwt.issuer":             "CIVICFIX_JWT_ISSUER",
		"s3.region":              "CIVICFIX_S3_REGION",
		"s3.bucket":              "CIVICFIX_S3_BUCKET",
		"s3.endpoint":            "CIVICFIX_S3_ENDPOINT",
		"s3.access_key":          "CIVICFIX_S3_ACCESS_KEY",
		"s3.secret_key":          "CIVICFIX_S3_SECRET_KEY",
		"s3.max_file_size_mb":    "CIVICFIX_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":      "CIVICFIX_S3_PRESIGN_EXPIRY",
		"screening.base_url":     "CIVICFIX_SCREENING_BASE_URL",
		"screening.timeout_secs": "CIVICFIX_SCREENING_TIMEOUT_SECS",
		"extract.pdftoppm":       "CIVICFIX_EXTRACT_PDFTOPPM",
		"extract.tesseract":      "CIVICFIX_EXTRACT_TESSERACT",
		"extract.tesseract_lang": "CIVICFIX_EXTRACT_TESSERACT_LANG",
		"extract.dpi":            "CIVICFIX_EXTRACT_DPI",
		"extract.max_pages":      "CIVICFIX_EXTRACT_MAX_PAGES",
		"email.provider":         "CIVICFIX_EMAIL_PROVIDER",
		"email.region":           "CIVICFIX_EMAIL_REGION",
		"email.from_address":     "CIVICFIX_EMAIL_FROM_ADDRESS",
		"email.from_name":        "CIVICFIX_EMAIL_FROM_NAME",
		"admin.email":            "CIVICFIX_ADMIN_EMAIL",
		"admin.password_hash":    "CIVICFIX_ADMIN_PASSWORD_HASH",
		"log.level":              "CIVICFIX_LOG_LEVEL",
		"log.format":             "CIVICFIX_LOG_FORMAT",
		"cors.allowed_origins":   "CIVICFIX_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if CIVICFIX_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("CIVICFIX_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:       v.GetString("jwt.secret"),
		AccessExpiry: v.GetDuration("jwt.access_expiry"),
		Issuer:       v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Screening = ScreeningConfig{
		BaseURL:     v.GetString("screening.base_url"),
		TimeoutSecs: v.GetInt("screening.timeout_secs"),
	}
	cfg.Extract = ExtractConfig{
		Pdftoppm:      v.GetString("extract.pdftoppm"),
		Tesseract:     v.GetString("extract.tesseract"),
		TesseractLang: v.GetString("extract.tesseract_lang"),
		DPI:           v.GetInt("extract.dpi"),
		MaxPages:      v.GetInt("extract.max_pages"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
	}
	cfg.Admin = AdminConfig{
		Email:        v.GetString("admin.email"),
		PasswordHash: v.GetString("admin.password_hash"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	return cfg, nil
}
