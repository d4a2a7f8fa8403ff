package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Backends soportados por STORAGE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendDrive    = "drive"
	BackendS3       = "s3"
	BackendGCS      = "gcs"
	BackendRedis    = "redis"
)

type Config struct {
	Port     string
	LogLevel string
	LogFmt   string
	AppName  string
	Timezone string

	AuthJWTSecret string // vacío = modo dev (X-Debug-User-ID)
	AuthJWTIssuer string

	MetricsEnabled bool

	Storage StorageConfig
}

type StorageConfig struct {
	Backend string

	DBDSN      string
	SQLitePath string

	DriveClientID     string
	DriveClientSecret string
	DriveRefreshToken string
	DriveAPIURL       string

	S3Bucket   string
	S3Region   string
	S3Endpoint string
	S3Prefix   string

	GCSBucket string
	GCSPrefix string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

func defaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("APP_NAME", "pet-care-log")
	v.SetDefault("TIMEZONE", "Local")
	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("STORAGE_BACKEND", BackendMemory)
	v.SetDefault("SQLITE_PATH", "petcare.db")
	v.SetDefault("S3_REGION", "us-east-1")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_PREFIX", "petcare:")
}

// keys que viper debe leer del entorno aunque no tengan default.
var envKeys = []string{
	"AUTH_JWT_SECRET", "AUTH_JWT_ISSUER", "DB_DSN",
	"DRIVE_CLIENT_ID", "DRIVE_CLIENT_SECRET", "DRIVE_REFRESH_TOKEN", "DRIVE_API_URL",
	"S3_BUCKET", "S3_ENDPOINT", "S3_PREFIX",
	"GCS_BUCKET", "GCS_PREFIX",
	"REDIS_PASSWORD",
}

// Load lee .env (si existe) y el entorno. envFiles vacío = ".env".
func Load(envFiles ...string) (Config, error) {
	// .env es opcional
	_ = godotenv.Load(envFiles...)

	v := viper.New()
	defaults(v)
	v.AutomaticEnv()
	for _, k := range envKeys {
		_ = v.BindEnv(k)
	}

	cfg := Config{
		Port:           strings.TrimSpace(v.GetString("PORT")),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogFmt:         v.GetString("LOG_FORMAT"),
		AppName:        v.GetString("APP_NAME"),
		Timezone:       strings.TrimSpace(v.GetString("TIMEZONE")),
		AuthJWTSecret:  strings.TrimSpace(v.GetString("AUTH_JWT_SECRET")),
		AuthJWTIssuer:  strings.TrimSpace(v.GetString("AUTH_JWT_ISSUER")),
		MetricsEnabled: v.GetBool("METRICS_ENABLED"),
		Storage: StorageConfig{
			Backend:           strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_BACKEND"))),
			DBDSN:             strings.TrimSpace(v.GetString("DB_DSN")),
			SQLitePath:        v.GetString("SQLITE_PATH"),
			DriveClientID:     strings.TrimSpace(v.GetString("DRIVE_CLIENT_ID")),
			DriveClientSecret: strings.TrimSpace(v.GetString("DRIVE_CLIENT_SECRET")),
			DriveRefreshToken: strings.TrimSpace(v.GetString("DRIVE_REFRESH_TOKEN")),
			DriveAPIURL:       v.GetString("DRIVE_API_URL"),
			S3Bucket:          v.GetString("S3_BUCKET"),
			S3Region:          v.GetString("S3_REGION"),
			S3Endpoint:        v.GetString("S3_ENDPOINT"),
			S3Prefix:          v.GetString("S3_PREFIX"),
			GCSBucket:         v.GetString("GCS_BUCKET"),
			GCSPrefix:         v.GetString("GCS_PREFIX"),
			RedisAddr:         v.GetString("REDIS_ADDR"),
			RedisPassword:     v.GetString("REDIS_PASSWORD"),
			RedisDB:           v.GetInt("REDIS_DB"),
			RedisPrefix:       v.GetString("REDIS_PREFIX"),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Port == "" {
		return errors.New("config: PORT is empty")
	}
	if _, err := c.Location(); err != nil {
		return err
	}

	s := c.Storage
	switch s.Backend {
	case BackendMemory:
	case BackendPostgres:
		if s.DBDSN == "" {
			return errors.New("config: DB_DSN required for postgres backend")
		}
	case BackendSQLite:
		if strings.TrimSpace(s.SQLitePath) == "" {
			return errors.New("config: SQLITE_PATH required for sqlite backend")
		}
	case BackendDrive:
		if s.DriveClientID == "" || s.DriveClientSecret == "" || s.DriveRefreshToken == "" {
			return errors.New("config: DRIVE_CLIENT_ID, DRIVE_CLIENT_SECRET and DRIVE_REFRESH_TOKEN required for drive backend")
		}
	case BackendS3:
		if s.S3Bucket == "" {
			return errors.New("config: S3_BUCKET required for s3 backend")
		}
	case BackendGCS:
		if s.GCSBucket == "" {
			return errors.New("config: GCS_BUCKET required for gcs backend")
		}
	case BackendRedis:
		if s.RedisAddr == "" {
			return errors.New("config: REDIS_ADDR required for redis backend")
		}
	default:
		return fmt.Errorf("config: unknown STORAGE_BACKEND %q", s.Backend)
	}
	return nil
}

// Location resuelve TIMEZONE. "Local" o vacío = zona del proceso.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}
