package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Email    EmailConfig
	Storage  StorageConfig
	Redis    RedisConfig
	QR       QRConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
	// PublicURL is the externally reachable base used in redemption links.
	PublicURL string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
}

type JWTConfig struct {
	Secret        string
	Issuer        string
	ExpiryMinutes int
}

type EmailConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	From      string
	ContactTo string
}

type StorageConfig struct {
	Driver       string // local | s3
	LocalDir     string
	PublicPrefix string
	S3Bucket     string
	S3Region     string
	S3Endpoint   string
	S3AccessKey  string
	S3SecretKey  string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type QRConfig struct {
	Size int
}

// LoadConfig reads path (an optional .env file) and the process environment.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "biz-directory")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("PUBLIC_URL", "http://localhost:8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("JWT_ISSUER", "biz-directory")
	v.SetDefault("JWT_EXPIRY_MINUTES", 30)
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("STORAGE_DRIVER", "local")
	v.SetDefault("STORAGE_LOCAL_DIR", "uploads")
	v.SetDefault("STORAGE_PUBLIC_PREFIX", "/uploads")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("QR_SIZE", 256)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		// no .env file, environment only
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:      v.GetString("APP_NAME"),
			Port:      v.GetString("PORT"),
			Debug:     v.GetBool("DEBUG"),
			LogPath:   v.GetString("LOG_PATH"),
			PublicURL: strings.TrimRight(v.GetString("PUBLIC_URL"), "/"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		JWT: JWTConfig{
			Secret:        v.GetString("JWT_SECRET"),
			Issuer:        v.GetString("JWT_ISSUER"),
			ExpiryMinutes: v.GetInt("JWT_EXPIRY_MINUTES"),
		},
		Email: EmailConfig{
			Host:      v.GetString("SMTP_HOST"),
			Port:      v.GetInt("SMTP_PORT"),
			User:      v.GetString("SMTP_USER"),
			Password:  v.GetString("SMTP_PASS"),
			From:      v.GetString("EMAIL_FROM"),
			ContactTo: v.GetString("CONTACT_EMAIL"),
		},
		Storage: StorageConfig{
			Driver:       v.GetString("STORAGE_DRIVER"),
			LocalDir:     v.GetString("STORAGE_LOCAL_DIR"),
			PublicPrefix: strings.TrimRight(v.GetString("STORAGE_PUBLIC_PREFIX"), "/"),
			S3Bucket:     v.GetString("S3_BUCKET"),
			S3Region:     v.GetString("S3_REGION"),
			S3Endpoint:   v.GetString("S3_ENDPOINT"),
			S3AccessKey:  v.GetString("S3_ACCESS_KEY"),
			S3SecretKey:  v.GetString("S3_SECRET_KEY"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		QR: QRConfig{
			Size: v.GetInt("QR_SIZE"),
		},
	}

	if config.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if config.Storage.Driver != "local" && config.Storage.Driver != "s3" {
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", config.Storage.Driver)
	}

	return config, nil
}
