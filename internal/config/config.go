package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
)

// MovebankConfig holds endpoint and credential settings. Credentials come
// from the environment only, never from the config file.
type MovebankConfig struct {
	BaseURL  string `yaml:"base_url" env:"MOVEBANK_BASE_URL"`
	Username string `yaml:"-" env:"MOVEBANK_USERNAME"`
	Password string `yaml:"-" env:"MOVEBANK_PASSWORD"`
	StudyID  int64  `yaml:"study_id" env:"MOVEBANK_STUDY_ID"`
}

// DecodeConfig selects unit and sensitivity for acceleration decoding.
type DecodeConfig struct {
	Unit        string `yaml:"unit" env:"DECODE_UNIT"`
	Sensitivity string `yaml:"sensitivity" env:"DECODE_SENSITIVITY"`
}

// DatabaseConfig holds the optional Postgres target.
type DatabaseConfig struct {
	DSN string `yaml:"dsn" env:"DATABASE_DSN"`
}

// RedisConfig holds the optional listing cache settings.
type RedisConfig struct {
	Addr       string `yaml:"addr" env:"REDIS_ADDR"`
	Password   string `yaml:"-" env:"REDIS_PASSWORD"`
	TTLSeconds int    `yaml:"ttl_seconds" env:"REDIS_TTL_SECONDS"`
}

// InfluxConfig holds the optional time-series sink settings.
type InfluxConfig struct {
	URL    string `yaml:"url" env:"INFLUXDB_URL"`
	Token  string `yaml:"-" env:"INFLUXDB_TOKEN"`
	Org    string `yaml:"org" env:"INFLUXDB_ORG"`
	Bucket string `yaml:"bucket" env:"INFLUXDB_BUCKET"`
}

// ExportConfig holds the CSV output location.
type ExportConfig struct {
	Dir string `yaml:"dir" env:"EXPORT_DIR"`
}

// LogConfig controls logger verbosity.
type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL"`
}

// Config defines the ingestion pipeline configuration.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Movebank MovebankConfig `yaml:"movebank"`
	Decode   DecodeConfig   `yaml:"decode"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Influx   InfluxConfig   `yaml:"influx"`
	Export   ExportConfig   `yaml:"export"`
}

// Load reads configuration from an optional .env file, an optional YAML file
// and the environment, and validates the required Movebank settings.
func Load() (*Config, error) {
	// .env is a convenience for local runs, absence is fine
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.Decode.Unit = "m/s2"
	cfg.Decode.Sensitivity = "high"
	cfg.Redis.TTLSeconds = 3600
	cfg.Export.Dir = "out"

	if err := LoadConfig(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Movebank.Username) == "" || strings.TrimSpace(cfg.Movebank.Password) == "" {
		return nil, errors.New("config: movebank credentials required")
	}
	if cfg.Movebank.StudyID == 0 {
		return nil, errors.New("config: movebank study id required")
	}
	return cfg, nil
}
