package config

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// Store holds the price store configuration.
	Store StoreConfig `mapstructure:",squash"`

	// Ntfy holds the push notification configuration.
	Ntfy NtfyConfig `mapstructure:",squash"`

	// Sources holds per-source fetcher configuration.
	Sources SourcesConfig `mapstructure:",squash"`

	// Tracking holds the tracking engine configuration.
	Tracking TrackingConfig `mapstructure:",squash"`

	// Proxy holds the outbound proxy configuration for browser fetchers.
	Proxy ProxyConfig `mapstructure:",squash"`
}

// StoreConfig selects and configures the price store backend.
type StoreConfig struct {
	// Backend selects the storage implementation: redis or sqlite.
	Backend string `mapstructure:"STORE_BACKEND" default:"redis"`
	// RedisURL is the Redis connection string for the redis backend.
	RedisURL string `mapstructure:"REDIS_URL" default:"redis://localhost:6379/0"`
	// SqlitePath is the database file for the sqlite backend.
	SqlitePath string `mapstructure:"SQLITE_PATH" default:"price-tracker.db"`
}

// NtfyConfig holds the ntfy push notification settings.
type NtfyConfig struct {
	// URL is the ntfy server base URL.
	URL string `mapstructure:"NTFY_URL" default:"https://ntfy.sh"`
	// Topic is the topic price alerts are published to.
	Topic string `mapstructure:"NTFY_TOPIC" required:"true"`
	// Token is an optional access token for protected topics.
	Token string `mapstructure:"NTFY_TOKEN"`
}

// SourcesConfig holds per-source fetcher settings.
type SourcesConfig struct {
	// ShopeeBaseURL is the storefront base URL for the Shopee item API.
	ShopeeBaseURL string `mapstructure:"SHOPEE_BASE_URL" default:"https://shopee.vn"`
	// GoldURL is the vendor page for the daily gold price.
	GoldURL string `mapstructure:"GOLD_URL" default:"https://doji.vn"`
}

// TrackingConfig holds tracking engine settings.
type TrackingConfig struct {
	// Interval is how often the scheduler runs all active items, in seconds.
	Interval int `mapstructure:"TRACK_INTERVAL" default:"3600"`
	// Concurrency bounds the number of items tracked in parallel.
	Concurrency int `mapstructure:"TRACK_CONCURRENCY" default:"4"`
	// FetchTimeout bounds one source fetch, in seconds.
	FetchTimeout int `mapstructure:"FETCH_TIMEOUT" default:"30"`
	// StoreTimeout bounds one storage call, in seconds.
	StoreTimeout int `mapstructure:"STORE_TIMEOUT" default:"5"`
	// NotifyTimeout bounds one alert delivery, in seconds.
	NotifyTimeout int `mapstructure:"NOTIFY_TIMEOUT" default:"5"`
	// DefaultThreshold is the fractional price change that triggers an
	// alert for items without their own threshold.
	DefaultThreshold float64 `mapstructure:"DEFAULT_THRESHOLD" default:"0.01"`
	// SchedulerEnabled turns the in-process periodic runner on and off.
	SchedulerEnabled bool `mapstructure:"SCHEDULER_ENABLED" default:"true"`
}

// ProxyConfig holds the outbound proxy used by browser-based fetchers.
type ProxyConfig struct {
	// Enabled turns proxying on.
	Enabled bool `mapstructure:"PROXY_ENABLED" default:"false"`
	// Hostname is the proxy server hostname.
	Hostname string `mapstructure:"PROXY_HOSTNAME"`
	// Port is the proxy server port.
	Port int `mapstructure:"PROXY_PORT"`
	// Username authenticates against the proxy, if set.
	Username string `mapstructure:"PROXY_USERNAME"`
	// Password authenticates against the proxy, if set.
	Password string `mapstructure:"PROXY_PASSWORD"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			v.BindEnv(key)
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
