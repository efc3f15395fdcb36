package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the central typed configuration struct.
type Config struct {
	App        AppConfig
	Forms      FormsConfig
	Validation ValidationConfig
	Log        LogConfig
	Metrics    MetricsConfig
}

type AppConfig struct {
	Name  string
	Env   string // local | production | testing
	Debug bool
	Port  string
}

// IsProduction reports whether APP_ENV is "production".
func (a AppConfig) IsProduction() bool { return a.Env == "production" }

type FormsConfig struct {
	Dir string // directory of *.yaml / *.toml form definitions
}

type ValidationConfig struct {
	Charset string
	Trim    bool
}

type LogConfig struct {
	Level      string // debug | info | warn | error
	File       string // empty disables the file sink
	MaxSize    int    // megabytes before rotation
	MaxBackups int
	MaxAge     int // days
}

type MetricsConfig struct {
	Enabled   bool
	Namespace string
}

// Load reads .env (if present) and populates a Config from environment variables.
// Call once at bootstrap: cfg := config.Load()
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	return &Config{
		App: AppConfig{
			Name:  env("APP_NAME", "FormValidation"),
			Env:   env("APP_ENV", "local"),
			Debug: envBool("APP_DEBUG", true),
			Port:  env("APP_PORT", "8000"),
		},
		Forms: FormsConfig{
			Dir: env("FORMS_DIR", "./forms"),
		},
		Validation: ValidationConfig{
			Charset: env("VALIDATION_CHARSET", "UTF-8"),
			Trim:    envBool("VALIDATION_TRIM", true),
		},
		Log: LogConfig{
			Level:      env("LOG_LEVEL", "info"),
			File:       os.Getenv("LOG_FILE"),
			MaxSize:    GetInt("LOG_MAX_SIZE", 50),
			MaxBackups: GetInt("LOG_MAX_BACKUPS", 5),
			MaxAge:     GetInt("LOG_MAX_AGE", 30),
		},
		Metrics: MetricsConfig{
			Enabled:   envBool("METRICS_ENABLED", true),
			Namespace: env("METRICS_NAMESPACE", "formvalidation"),
		},
	}
}

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
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

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	return envBool(key, defaultVal)
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
