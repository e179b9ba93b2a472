package peopledatalabs

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	// DefaultVersion is the API version used when none is configured.
	DefaultVersion = "v5"

	productionBase = "https://api.peopledatalabs.com/"
	sandboxBase    = "https://sandbox.api.peopledatalabs.com/"

	envPrefix = "PDL"
)

var versionPattern = regexp.MustCompile(`^v[0-9]$`)

func init() {
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	if err := validate.RegisterValidation("apiversion", func(fl validator.FieldLevel) bool {
		return versionPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
}

// Config holds the settings a Client needs. It is a plain value: build it
// once, validate it, and pass it to New.
type Config struct {
	// APIKey authenticates every call.
	APIKey string `mapstructure:"api_key" yaml:"api_key" json:"api_key" validate:"required"`

	// BaseURL overrides the API root, version included. When empty the
	// production or sandbox root is derived from Version and Sandbox.
	BaseURL string `mapstructure:"base_url" yaml:"base_url" json:"base_url" validate:"omitempty,url"`

	// Version is the API version, e.g. "v5".
	Version string `mapstructure:"version" yaml:"version" json:"version" validate:"required,apiversion"`

	// Sandbox selects the sandbox environment.
	Sandbox bool `mapstructure:"sandbox" yaml:"sandbox" json:"sandbox"`

	// LogLevel is one of debug, info, warn, error. Empty keeps slog's default logger.
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level" validate:"omitempty,oneof=debug info warn error"`

	// Timeout bounds each HTTP call. Zero disables the timeout.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout" json:"timeout" validate:"gte=0"`
}

// DefaultConfig returns a Config with default values and no API key.
func DefaultConfig() Config {
	return Config{
		Version: DefaultVersion,
	}
}

// Validate checks c and returns an invalid_config error naming every bad field.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fromValidationErrors(CodeInvalidConfig, err)
	}
	return nil
}

// ResolvedBaseURL returns the API root all endpoint paths are joined to.
func (c Config) ResolvedBaseURL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	if c.Sandbox {
		return sandboxBase + c.Version
	}
	return productionBase + c.Version
}

// SlogLevel maps LogLevel to a slog.Level. ok is false when LogLevel is empty.
func (c Config) SlogLevel() (level slog.Level, ok bool) {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}

// LoadConfig builds a Config from defaults, an optional file and the
// environment, in increasing order of precedence.
//
// configPath may name a YAML, JSON or TOML file, or a dotenv file. When it
// is empty, a .env file in the working directory is used if present.
// Environment variables use the PDL_ prefix: PDL_API_KEY, PDL_BASE_URL,
// PDL_VERSION, PDL_SANDBOX, PDL_LOG_LEVEL and PDL_TIMEOUT. Dotenv files use
// the same names.
//
// The result is not validated; call Validate or pass it to New.
func LoadConfig(configPath string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath == "" {
		if _, err := os.Stat(".env"); err == nil {
			configPath = ".env"
		}
	}

	if configPath != "" {
		if isDotenv(configPath) {
			if err := loadDotenv(v, configPath); err != nil {
				return Config{}, err
			}
		} else {
			v.SetConfigFile(configPath)
			if err := v.ReadInConfig(); err != nil {
				return Config{}, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// setDefaults sets the default values for viper. Every key needs a default
// so that AutomaticEnv picks it up during Unmarshal.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("api_key", d.APIKey)
	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("version", d.Version)
	v.SetDefault("sandbox", d.Sandbox)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("timeout", d.Timeout)
}

func isDotenv(path string) bool {
	return filepath.Base(path) == ".env" || filepath.Ext(path) == ".env"
}

// loadDotenv reads PDL_* keys from a dotenv file into v's defaults, so that
// real environment variables still take precedence.
func loadDotenv(v *viper.Viper, path string) error {
	dot := viper.New()
	dot.SetConfigFile(path)
	dot.SetConfigType("env")
	if err := dot.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read env file: %w", err)
	}
	prefix := strings.ToLower(envPrefix) + "_"
	for _, key := range dot.AllKeys() {
		if name, ok := strings.CutPrefix(key, prefix); ok {
			v.SetDefault(name, dot.Get(key))
		}
	}
	return nil
}
