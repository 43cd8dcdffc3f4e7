package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/suiet/guardians/internal/guard/gateways/feed"
)

// AppConfig is the guard's runtime configuration.
type AppConfig struct {
	// Env selects the log encoder: "dev" or "prod".
	Env string `koanf:"env" validate:"required,oneof=dev prod"`

	// LogLevel is the minimum level written.
	LogLevel string `koanf:"log_level" validate:"required,oneof=debug info warn error"`

	DomainURL  string `koanf:"domain_url" validate:"required,list_url"`
	PackageURL string `koanf:"package_url" validate:"required,list_url"`
	ObjectURL  string `koanf:"object_url" validate:"required,list_url"`
	CoinURL    string `koanf:"coin_url" validate:"required,list_url"`

	// Retries is the number of extra attempts per list download.
	Retries int `koanf:"retries" validate:"gte=0,lte=10"`

	HTTPTimeout     time.Duration `koanf:"http_timeout" validate:"min=1s"`
	RefreshInterval time.Duration `koanf:"refresh_interval" validate:"min=1m"`

	// CacheSize bounds the verdict cache; 0 disables it.
	CacheSize int `koanf:"cache_size" validate:"gte=0"`

	BloomFPRate float64 `koanf:"bloom_fp_rate" validate:"gt=0,lt=1"`

	// StorePath is the bbolt file holding the last snapshot; empty disables persistence.
	StorePath string `koanf:"store_path"`

	// BrandsFile is an optional JSON object of brand token to canonical domain.
	BrandsFile string `koanf:"brands_file"`

	LocalAllowlist string `koanf:"local_allowlist"`
	LocalBlocklist string `koanf:"local_blocklist"`
}

// DEFAULT_APP_CONFIG points at the published lists and refreshes every five minutes.
var DEFAULT_APP_CONFIG = AppConfig{
	Env:             "prod",
	LogLevel:        "info",
	DomainURL:       feed.DefaultDomainURL,
	PackageURL:      feed.DefaultPackageURL,
	ObjectURL:       feed.DefaultObjectURL,
	CoinURL:         feed.DefaultCoinURL,
	Retries:         3,
	HTTPTimeout:     feed.DefaultTimeout,
	RefreshInterval: 5 * time.Minute,
	CacheSize:       1000,
	BloomFPRate:     0.01,
}

// validListURL accepts absolute http(s) URLs with a host.
func validListURL(fl validator.FieldLevel) bool {
	u, err := url.Parse(fl.Field().String())
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "https" || u.Scheme == "http"
}

// envPrefix marks the environment variables read by Load.
const envPrefix = "GUARD_"

// envKey maps GUARD_LOG_LEVEL to log_level. Values are trimmed.
func envKey(key, value string) (string, any) {
	return strings.ToLower(strings.TrimPrefix(key, envPrefix)), strings.TrimSpace(value)
}

// envLoader overlays GUARD_* environment variables. Replaced in tests.
var envLoader = func(k *koanf.Koanf) error {
	return k.Load(env.Provider(".", env.Opt{Prefix: envPrefix, TransformFunc: envKey}), nil)
}

// defaultLoader seeds k from DEFAULT_APP_CONFIG.
var defaultLoader = func(k *koanf.Koanf) error {
	return k.Load(structs.Provider(DEFAULT_APP_CONFIG, "koanf"), nil)
}

// registerValidation registers the "list_url" tag.
var registerValidation = func(v *validator.Validate) error {
	return v.RegisterValidation("list_url", validListURL)
}

// Load builds an AppConfig from defaults overlaid with GUARD_* environment
// variables, then validates it.
func Load() (*AppConfig, error) {
	k := koanf.New(".")
	layers := []struct {
		what string
		load func(*koanf.Koanf) error
	}{
		{"default config", defaultLoader},
		{"env", envLoader},
	}
	for _, l := range layers {
		if err := l.load(k); err != nil {
			return nil, fmt.Errorf("error loading %s: %w", l.what, err)
		}
	}

	cfg := new(AppConfig)
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := registerValidation(v); err != nil {
		return fmt.Errorf("error registering validation: %w", err)
	}
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// FeedOptions maps the configuration onto the list client options.
func (c *AppConfig) FeedOptions() feed.Options {
	return feed.Options{
		DomainURL:  c.DomainURL,
		PackageURL: c.PackageURL,
		ObjectURL:  c.ObjectURL,
		CoinURL:    c.CoinURL,
		Retries:    c.Retries,
		Timeout:    c.HTTPTimeout,
	}
}
