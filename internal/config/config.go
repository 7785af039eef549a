package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/spf13/viper"
)

// Config is the process-wide configuration. It is built once at startup and
// never mutated afterwards.
type Config struct {
	v             *viper.Viper
	allowedGuilds map[int64]struct{}
	Logger        *log.Logger
}

// NewConfig loads the configuration from various sources using viper
func NewConfig() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Try to read config file (don't error if it doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		// Config file can't be read, continue with env vars and defaults
		l := log.New(os.Stderr)
		l.Warnf("error reading config file: %v\nContinuing with envs...", err)
	}

	// Bind environment variables
	if err := bindEnvs(v); err != nil {
		return nil, fmt.Errorf("error binding environment variables: %w", err)
	}

	newLogFile, err := newLogFile(v.GetString("log_dir"))
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	if err := pruneOldLogFiles(v.GetString("log_dir")); err != nil {
		return nil, fmt.Errorf("failed to prune old log files: %w", err)
	}

	// Log both to a file and to stderr
	w := io.MultiWriter(os.Stderr, newLogFile)

	newCfg := &Config{
		v:      v,
		Logger: log.New(w),
	}

	// Validate required fields and parse the guild allowlist. This must
	// happen before any network connection is attempted.
	if err := validateConfig(newCfg); err != nil {
		return nil, err
	}

	return newCfg, nil
}

// newLogFile generates a new log file
func newLogFile(dir string) (*os.File, error) {
	if dir == "" {
		return nil, fmt.Errorf("log directory is not set")
	}

	// Create dir if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Create a new log file with timestamp
	file, err := os.Create(fmt.Sprintf("%s/translatepal_%s.log", dir, time.Now().Format("20060102_150405")))
	if err != nil {
		return nil, err
	}
	return file, nil
}

// RotateAndPruneLogs removes log files past their retention window.
func (c *Config) RotateAndPruneLogs() error {
	return pruneOldLogFiles(c.v.GetString("log_dir"))
}

// pruneOldLogFiles removes log files older than 7 days
func pruneOldLogFiles(dir string) error {
	logFiles, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read log directory: %w", err)
	}

	for _, file := range logFiles {
		if file.IsDir() {
			continue
		}

		// Check if the file is older than 7 days
		info, err := file.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) > 7*24*time.Hour {
			if err := os.Remove(filepath.Join(dir, file.Name())); err != nil {
				return fmt.Errorf("failed to remove old log file %s: %w", file.Name(), err)
			}
		}
	}

	return nil
}

// NewMockConfig creates a mock configuration for testing
func NewMockConfig(kv map[string]interface{}) *Config {
	v := viper.New()
	for k, val := range kv {
		v.Set(k, val)
	}
	cfg := &Config{
		v:      v,
		Logger: log.New(os.Stderr),
	}
	if allowed, err := parseGuildAllowlist(v.GetString("whitelisted_server_ids")); err == nil {
		cfg.allowedGuilds = allowed
	}
	return cfg
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log_dir", "./logs")
}

// bindEnvs binds environment variables to viper keys
func bindEnvs(v *viper.Viper) error {
	bindings := []struct {
		key string
		env string
	}{
		{"bot_token", "DISCORD_TOKEN"},
		{"whitelisted_server_ids", "WHITELISTED_SERVER_IDS"},
		{"log_dir", "TRANSLATEPAL_LOG_DIR"},
	}

	for _, binding := range bindings {
		if err := v.BindEnv(binding.key, binding.env); err != nil {
			return fmt.Errorf("error binding %s environment variable: %w", binding.key, err)
		}
	}
	return nil
}

// validateConfig validates that all required configuration fields are present
func validateConfig(cfg *Config) error {
	if cfg.v.GetString("bot_token") == "" {
		return fmt.Errorf("bot token is required (set the DISCORD_TOKEN environment variable)")
	}

	allowed, err := parseGuildAllowlist(cfg.v.GetString("whitelisted_server_ids"))
	if err != nil {
		return fmt.Errorf("WHITELISTED_SERVER_IDS must be a comma-separated list of numbers: %w", err)
	}
	cfg.allowedGuilds = allowed

	return nil
}

// parseGuildAllowlist parses a comma-separated list of numeric server IDs.
// The allowlist is required: an absent or empty value is an error.
func parseGuildAllowlist(raw string) (map[int64]struct{}, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("no server IDs configured (set WHITELISTED_SERVER_IDS=YOUR_SERVER_ID_1,YOUR_SERVER_ID_2,...)")
	}

	allowed := make(map[int64]struct{})
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		id, err := strconv.ParseInt(tok, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a numeric server ID", tok)
		}
		allowed[id] = struct{}{}
	}
	return allowed, nil
}
