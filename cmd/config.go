package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/lib/pq"
)

type Config struct {
	HTTPPort        string        `env:"HTTP_PORT"          env-default:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"   env-default:"10s"`
	DBHost          string        `env:"DB_HOST"            env-default:"localhost"`
	DBPort          string        `env:"DB_PORT"            env-default:"5432"`
	DBUser          string        `env:"DB_USER"            env-default:"postgres"`
	DBPassword      string        `env:"DB_PASSWORD"`
	DBName          string        `env:"DB_NAME"            env-default:"production"`
	DBSslMode       string        `env:"DB_SSLMODE"         env-default:"disable"`
	DatabaseURL     string        `env:"DATABASE_URL"`
	CORSOrigins     []string      `env:"CORS_ORIGINS"       env-separator:","`
	ReconcileCron   string        `env:"RECONCILE_SCHEDULE"`
	LogLevel        string        `env:"LOG_LEVEL"          env-default:"info"`
}

// LoadConfig reads the optional .env file and then the process environment.
func LoadConfig(envFile string) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return cfg, nil
}

// DSN returns the PostgreSQL connection string. DATABASE_URL wins over the DB_* fields.
func (c Config) DSN() (string, error) {
	if c.DatabaseURL != "" {
		dsn, err := pq.ParseURL(c.DatabaseURL)
		if err != nil {
			return "", fmt.Errorf("invalid DATABASE_URL: %w", err)
		}
		return dsn, nil
	}

	parts := []string{
		dsnPair("host", c.DBHost),
		dsnPair("port", c.DBPort),
		dsnPair("user", c.DBUser),
		dsnPair("dbname", c.DBName),
		dsnPair("sslmode", c.DBSslMode),
	}
	if c.DBPassword != "" {
		parts = append(parts, dsnPair("password", c.DBPassword))
	}
	return strings.Join(parts, " "), nil
}

// dsnPair quotes value the way pq.ParseURL does.
func dsnPair(key, value string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(value)
	return key + "='" + escaped + "'"
}

func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
