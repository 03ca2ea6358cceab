package config

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Драйверы хранилища состояния.
const (
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverR2       = "r2"
	DriverMemory   = "memory"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	ServerPort     int
	StoreDriver    string
	DataFile       string
	DatabaseURL    string
	JWTSecretKey   string
	AdminPassHash  string
	AllowedOrigins []string
	LogLevel       slog.Level
	PersistTimeout time.Duration

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string
	R2StateKey        string
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	// Загружаем .env файл, если он есть. Ошибку не считаем фатальной.
	_ = godotenv.Load()
	return fromEnv(os.Getenv)
}

func fromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	jwtKey := get("JWT_SECRET_KEY", "")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	port, err := strconv.Atoi(get("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(get("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL environment variable: %w", err)
	}

	persistTimeout, err := time.ParseDuration(get("PERSIST_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid PERSIST_TIMEOUT environment variable: %w", err)
	}
	if persistTimeout <= 0 {
		return nil, fmt.Errorf("PERSIST_TIMEOUT must be positive, got %s", persistTimeout)
	}

	cfg := &Config{
		ServerPort:     port,
		StoreDriver:    strings.ToLower(get("STORE_DRIVER", DriverFile)),
		DataFile:       get("DATA_FILE", "./tournament_data.json"),
		DatabaseURL:    get("DATABASE_URL", ""),
		JWTSecretKey:   jwtKey,
		AdminPassHash:  get("ADMIN_PASSWORD_HASH", ""),
		AllowedOrigins: splitList(get("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:       level,
		PersistTimeout: persistTimeout,

		R2AccountID:       get("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     get("R2_ACCESS_KEY_ID", ""),
		R2SecretAccessKey: get("R2_SECRET_ACCESS_KEY", ""),
		R2BucketName:      get("R2_BUCKET_NAME", ""),
		R2PublicBaseURL:   get("R2_PUBLIC_BASE_URL", ""),
		R2StateKey:        get("R2_STATE_KEY", "state/tournament_data.json"),
	}

	switch cfg.StoreDriver {
	case DriverFile, DriverMemory:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is required for STORE_DRIVER=%s", DriverPostgres)
		}
	case DriverR2:
		var missing []string
		for key, v := range map[string]string{
			"R2_ACCOUNT_ID":        cfg.R2AccountID,
			"R2_ACCESS_KEY_ID":     cfg.R2AccessKeyID,
			"R2_SECRET_ACCESS_KEY": cfg.R2SecretAccessKey,
			"R2_BUCKET_NAME":       cfg.R2BucketName,
		} {
			if v == "" {
				missing = append(missing, key)
			}
		}
		if len(missing) > 0 {
			slices.Sort(missing)
			return nil, fmt.Errorf("STORE_DRIVER=%s requires %s", DriverR2, strings.Join(missing, ", "))
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q (want file, postgres, r2 or memory)", cfg.StoreDriver)
	}

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
