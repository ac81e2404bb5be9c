package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"draft-order/internal/constants"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	AdminPassword string
	// AdminPasswordHash is a bcrypt hash used instead of AdminPassword when set.
	AdminPasswordHash string
	SecretKey         string
	DBPath            string
	ServerPort        string
	LogLevel          string
	BackupDir         string
	BackupRetention   int
	AdminSessionTTL   time.Duration
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		SecretKey:         getEnv("SECRET_KEY", ""),
		DBPath:            getEnv("DB_PATH", "draft_game.db"),
		ServerPort:        getEnv("SERVER_PORT", "5001"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		BackupDir:         getEnv("BACKUP_DIR", "backups"),
		BackupRetention:   getEnvAsInt("BACKUP_RETENTION", constants.DefaultBackupRetention),
		AdminSessionTTL:   getEnvAsDuration("ADMIN_SESSION_TTL", 12*time.Hour),
	}

	if cfg.AdminPassword == "" && cfg.AdminPasswordHash == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required")
	}
	if cfg.SecretKey == "" {
		cfg.SecretKey = cfg.AdminPassword + cfg.AdminPasswordHash
	}
	if cfg.BackupRetention < 1 {
		return nil, fmt.Errorf("BACKUP_RETENTION must be at least 1, got %d", cfg.BackupRetention)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	zerolog.SetGlobalLevel(level)

	logger.Info().
		Str("db_path", cfg.DBPath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("backup_dir", cfg.BackupDir).
		Int("backup_retention", cfg.BackupRetention).
		Dur("admin_session_ttl", cfg.AdminSessionTTL).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

var Module = fx.Provide(Load)
