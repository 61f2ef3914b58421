// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

var validate = validator.New()

// Config holds the application's configuration, loaded from config/.env and the environment.
type Config struct {
	APIHost string `validate:"required"`
	Port    int    `validate:"required,min=1,max=65535"`

	ProductionBaseURL  string `validate:"required,contains={country}"`
	DevelopmentBaseURL string `validate:"required,url"`
	LocalhostBaseURL   string `validate:"required,url"`

	// Client certificate used for mutual TLS against production hosts
	TLSCertFile string `validate:"required_with=TLSKeyFile"`
	TLSKeyFile  string `validate:"required_with=TLSCertFile"`
	TLSCAFile   string

	RequestTimeout time.Duration `validate:"min=0"`
	DispatchRate   float64       `validate:"min=0"`
	DispatchBurst  int           `validate:"min=1"`

	// StrictRows rejects uploads containing malformed ids or dates
	StrictRows bool
	// LogDeleteErrors logs the underlying error of failed deletions
	LogDeleteErrors bool

	CORSAllowOrigins []string `validate:"required,min=1"`
	MaxUploadBytes   int64    `validate:"min=1"`
}

func parseList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, raw := range parts {
		if item := strings.TrimSpace(raw); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Load loads and validates the full application configuration.
func Load() (*Config, error) {
	return LoadFile("config/.env")
}

// LoadFile loads configuration from the given .env file, which may be absent.
// Environment variables take precedence over the file.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var cfgErr viper.ConfigFileNotFoundError
		if !errors.As(err, &cfgErr) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	appConfig := &Config{
		APIHost:            v.GetString("API_HOST"),
		Port:               v.GetInt("PORT"),
		ProductionBaseURL:  strings.TrimSuffix(v.GetString("PRODUCTION_BASE_URL"), "/"),
		DevelopmentBaseURL: strings.TrimSuffix(v.GetString("DEVELOPMENT_BASE_URL"), "/"),
		LocalhostBaseURL:   strings.TrimSuffix(v.GetString("LOCALHOST_BASE_URL"), "/"),
		TLSCertFile:        v.GetString("TLS_CERT_FILE"),
		TLSKeyFile:         v.GetString("TLS_KEY_FILE"),
		TLSCAFile:          v.GetString("TLS_CA_FILE"),
		RequestTimeout:     v.GetDuration("REQUEST_TIMEOUT"),
		DispatchRate:       v.GetFloat64("DISPATCH_RATE"),
		DispatchBurst:      v.GetInt("DISPATCH_BURST"),
		StrictRows:         v.GetBool("STRICT_ROWS"),
		LogDeleteErrors:    v.GetBool("LOG_DELETE_ERRORS"),
		CORSAllowOrigins:   parseList(v.GetString("CORS_ALLOW_ORIGINS")),
		MaxUploadBytes:     v.GetInt64("MAX_UPLOAD_BYTES"),
	}

	if err := validate.Struct(appConfig); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	return appConfig, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_HOST", "127.0.0.1")
	v.SetDefault("PORT", 5000)
	v.SetDefault("PRODUCTION_BASE_URL", DefaultProductionBaseURL)
	v.SetDefault("DEVELOPMENT_BASE_URL", DefaultDevelopmentBaseURL)
	v.SetDefault("LOCALHOST_BASE_URL", DefaultLocalhostBaseURL)
	v.SetDefault("REQUEST_TIMEOUT", DefaultRequestTimeout)
	v.SetDefault("DISPATCH_RATE", 0)
	v.SetDefault("DISPATCH_BURST", 1)
	v.SetDefault("STRICT_ROWS", true)
	v.SetDefault("LOG_DELETE_ERRORS", true)
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes)
}

// BaseURL returns the base URL template configured for an environment.
func (c Config) BaseURL(env Environment) (string, error) {
	switch env {
	case EnvironmentProduction:
		return c.ProductionBaseURL, nil
	case EnvironmentDevelopment:
		return c.DevelopmentBaseURL, nil
	case EnvironmentLocalhost:
		return c.LocalhostBaseURL, nil
	default:
		return "", fmt.Errorf("base url for '%s': %w", env, ErrInvalidEnvironment)
	}
}

// CreateURLTemplate returns the upsert endpoint template for an environment.
func (c Config) CreateURLTemplate(env Environment) (string, error) {
	base, err := c.BaseURL(env)
	if err != nil {
		return "", err
	}
	return base + CheckInCodePath, nil
}

// DeleteURLTemplate returns the delete-by-group endpoint template for an
// environment. The group id is appended to it.
func (c Config) DeleteURLTemplate(env Environment) (string, error) {
	base, err := c.BaseURL(env)
	if err != nil {
		return "", err
	}
	return base + CheckInCodeDeletePath, nil
}
