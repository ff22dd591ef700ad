package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// API variants served by the HTTP server.
const (
	VariantFull  = "full"
	VariantTyped = "typed"
)

// Config holds all settings read from the environment.
type Config struct {
	HTTPPort   string `envconfig:"HTTP_PORT" default:"5000"`
	APIVariant string `envconfig:"API_VARIANT" default:"full"`
	GinMode    string `envconfig:"GIN_MODE" default:"release"`

	TokenizerDict string `envconfig:"TOKENIZER_DICT" default:"ipa"`
	UserDictPath  string `envconfig:"USER_DICT_PATH"`
	DefaultMode   string `envconfig:"DEFAULT_MODE" default:"A"`

	CORSAllowOrigins []string `envconfig:"CORS_ALLOW_ORIGINS" default:"*"`
	CORSAllowMethods []string `envconfig:"CORS_ALLOW_METHODS" default:"*"`
	CORSAllowHeaders []string `envconfig:"CORS_ALLOW_HEADERS" default:"*"`

	// TemplateDir holds index.html for GET /. The built-in page is used when empty.
	TemplateDir    string `envconfig:"TEMPLATE_DIR"`
	MetricsEnabled bool   `envconfig:"METRICS_ENABLED" default:"true"`

	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat     string `envconfig:"LOG_FORMAT" default:"json"`
	LogFile       string `envconfig:"LOG_FILE"`
	LogMaxSizeMB  int    `envconfig:"LOG_MAX_SIZE_MB" default:"100"`
	LogMaxBackups int    `envconfig:"LOG_MAX_BACKUPS" default:"3"`

	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"30s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"60s"`
	IdleTimeout     time.Duration `envconfig:"IDLE_TIMEOUT" default:"120s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.HTTPPort
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	switch c.APIVariant {
	case VariantFull, VariantTyped:
	default:
		return fmt.Errorf("API_VARIANT must be %q or %q, got %q", VariantFull, VariantTyped, c.APIVariant)
	}
	switch strings.ToLower(c.TokenizerDict) {
	case "ipa", "uni":
	default:
		return fmt.Errorf("TOKENIZER_DICT must be ipa or uni, got %q", c.TokenizerDict)
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("GIN_MODE must be debug, release or test, got %q", c.GinMode)
	}
	switch strings.ToLower(c.LogFormat) {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.LogFormat)
	}
	return nil
}

// Load reads .env (if present) and then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
