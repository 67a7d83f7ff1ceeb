// Package config resolves runtime settings from defaults, an optional YAML
// file and DATENOVA_* environment variables, in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/db"
	"gopkg.in/yaml.v3"
)

// WriteMode selects how multi-step writes are executed.
type WriteMode string

const (
	// WriteTransactional runs every multi-step write in one transaction.
	WriteTransactional WriteMode = "transactional"
	// WriteSequential issues each step as an independent call.
	WriteSequential WriteMode = "sequential"
)

func ParseWriteMode(s string) (WriteMode, bool) {
	switch WriteMode(strings.ToLower(strings.TrimSpace(s))) {
	case WriteTransactional:
		return WriteTransactional, true
	case WriteSequential:
		return WriteSequential, true
	}
	return "", false
}

type Config struct {
	DBDriver       string
	DBDSN          string
	DataDir        string
	StorageBaseURL string
	AuthSecret     string
	SessionTTL     time.Duration
	WriteMode      WriteMode
	LogCalls       bool
	InviteTTL      time.Duration
	AppURL         string
	FeedPoll       time.Duration
	// MetricsFile, when set, receives a Prometheus text snapshot at exit.
	MetricsFile string
	// MetricsAddr, when set, is where long-running commands serve /metrics.
	MetricsAddr string
}

// StorageDir is where the file store keeps its buckets.
func (c Config) StorageDir() string { return filepath.Join(c.DataDir, "storage") }

// SessionPath is where the CLI persists the session token.
func (c Config) SessionPath() string { return filepath.Join(c.DataDir, "session") }

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig(dataDir string) Config {
	return Config{
		DBDriver:       db.DriverSQLite,
		DBDSN:          filepath.Join(dataDir, "datenova.db"),
		DataDir:        dataDir,
		StorageBaseURL: "file://" + filepath.ToSlash(filepath.Join(dataDir, "storage")),
		AuthSecret:     "datenova-dev-secret",
		SessionTTL:     24 * time.Hour,
		WriteMode:      WriteTransactional,
		InviteTTL:      7 * 24 * time.Hour,
		AppURL:         "http://localhost:5173",
		FeedPoll:       time.Second,
	}
}

// fileConfig mirrors Config for YAML; absent keys keep the previous value.
type fileConfig struct {
	DB struct {
		Driver *string `yaml:"driver"`
		DSN    *string `yaml:"dsn"`
	} `yaml:"db"`
	StorageBaseURL *string `yaml:"storage_base_url"`
	AuthSecret     *string `yaml:"auth_secret"`
	SessionTTL     *string `yaml:"session_ttl"`
	WriteMode      *string `yaml:"write_mode"`
	LogCalls       *bool   `yaml:"log_calls"`
	InviteTTLDays  *int    `yaml:"invite_ttl_days"`
	AppURL         *string `yaml:"app_url"`
	FeedPollMs     *int    `yaml:"feed_poll_ms"`
	MetricsFile    *string `yaml:"metrics_file"`
	MetricsAddr    *string `yaml:"metrics_addr"`
}

// Load builds the configuration. The data directory comes from
// DATENOVA_DATA_DIR or defaults to ~/.datenova; the YAML file from
// DATENOVA_CONFIG or <data-dir>/config.yaml. A missing file is not an error.
func Load() (Config, error) {
	dataDir := os.Getenv("DATENOVA_DATA_DIR")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("finding home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".datenova")
	}
	cfg := DefaultConfig(dataDir)

	path := os.Getenv("DATENOVA_CONFIG")
	if path == "" {
		path = filepath.Join(dataDir, "config.yaml")
	}
	if err := applyFile(&cfg, path); err != nil {
		return Config{}, err
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	var fc fileConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if fc.DB.Driver != nil {
		cfg.DBDriver = db.NormalizeDriver(*fc.DB.Driver)
	}
	if fc.DB.DSN != nil && *fc.DB.DSN != "" {
		cfg.DBDSN = *fc.DB.DSN
	}
	setString(&cfg.StorageBaseURL, fc.StorageBaseURL)
	setString(&cfg.AuthSecret, fc.AuthSecret)
	setString(&cfg.AppURL, fc.AppURL)
	setString(&cfg.MetricsFile, fc.MetricsFile)
	setString(&cfg.MetricsAddr, fc.MetricsAddr)
	if fc.SessionTTL != nil {
		setDuration(&cfg.SessionTTL, *fc.SessionTTL)
	}
	if fc.WriteMode != nil {
		if m, ok := ParseWriteMode(*fc.WriteMode); ok {
			cfg.WriteMode = m
		}
	}
	if fc.LogCalls != nil {
		cfg.LogCalls = *fc.LogCalls
	}
	if fc.InviteTTLDays != nil && *fc.InviteTTLDays >= 0 {
		cfg.InviteTTL = time.Duration(*fc.InviteTTLDays) * 24 * time.Hour
	}
	if fc.FeedPollMs != nil && *fc.FeedPollMs > 0 {
		cfg.FeedPoll = time.Duration(*fc.FeedPollMs) * time.Millisecond
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DATENOVA_DB_DRIVER"); v != "" {
		cfg.DBDriver = db.NormalizeDriver(v)
	}
	if v := os.Getenv("DATENOVA_DB_DSN"); v != "" {
		cfg.DBDSN = v
	}
	if v := os.Getenv("DATENOVA_STORAGE_BASE_URL"); v != "" {
		cfg.StorageBaseURL = v
	}
	if v := os.Getenv("DATENOVA_AUTH_SECRET"); v != "" {
		cfg.AuthSecret = v
	}
	if v := os.Getenv("DATENOVA_SESSION_TTL"); v != "" {
		setDuration(&cfg.SessionTTL, v)
	}
	if v := os.Getenv("DATENOVA_WRITE_MODE"); v != "" {
		if m, ok := ParseWriteMode(v); ok {
			cfg.WriteMode = m
		}
	}
	if v := os.Getenv("DATENOVA_LOG_CALLS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogCalls = b
		}
	}
	if v := os.Getenv("DATENOVA_INVITE_TTL_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.InviteTTL = time.Duration(n) * 24 * time.Hour
		}
	}
	if v := os.Getenv("DATENOVA_APP_URL"); v != "" {
		cfg.AppURL = v
	}
	if v := os.Getenv("DATENOVA_METRICS_FILE"); v != "" {
		cfg.MetricsFile = v
	}
	if v := os.Getenv("DATENOVA_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("DATENOVA_FEED_POLL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FeedPoll = time.Duration(n) * time.Millisecond
		}
	}
}

func setString(dst *string, v *string) {
	if v != nil && *v != "" {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v string) {
	if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil && d > 0 {
		*dst = d
	}
}
