package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	Redis    *RedisConfig    `mapstructure:"redis"`
	Razorpay *RazorpayConfig `mapstructure:"razorpay"`
	Raffle   *RaffleConfig   `mapstructure:"raffle"`
}

type APIConfig struct {
	Environment        string `mapstructure:"environment"`
	BaseURL            string `mapstructure:"base_url"`
	Port               string `mapstructure:"port"`
	JWTSigningKey      string `mapstructure:"jwt_signing_key"`
	AllowedCORSDomains string `mapstructure:"allowed_cors_domains"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"db_name"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

// RedisConfig is optional. An empty Addr keeps the token revocation
// store in process memory, which is only correct for a single instance.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type RazorpayConfig struct {
	KeyID     string `mapstructure:"key_id"`
	KeySecret string `mapstructure:"key_secret"`
	BaseURL   string `mapstructure:"base_url"`
}

// placeholderKeyID is what the sample .env ships with. Treat it the same
// as no key at all so a fresh checkout boots straight into demo mode.
const placeholderKeyID = "rzp_test_your_key_id_here"

// IsConfigured reports whether real gateway credentials are present.
// When false the checkout runs in demo mode and confirms entries directly.
func (c *RazorpayConfig) IsConfigured() bool {
	return c != nil && c.KeyID != "" && c.KeyID != placeholderKeyID && c.KeySecret != ""
}

// RaffleConfig seeds the persisted raffle settings row when none exists.
// The persisted row is the source of truth afterwards.
type RaffleConfig struct {
	Active     bool   `mapstructure:"active"`
	EntryPrice int64  `mapstructure:"entry_price"` // minor currency units (paise)
	MaxEntries int64  `mapstructure:"max_entries"` // 0 means uncapped
	EndDate    string `mapstructure:"end_date"`    // RFC3339, empty means open-ended
}

func Load(configPath string) (*AppConfig, error) {
	viper.SetConfigFile(configPath)

	viper.SetEnvPrefix("RAFFLE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("viper.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{}
	if err := viper.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("viper.Unmarshal -> %w", err)
	}

	return conf, nil
}

// Watch re-reads the config file on change and invokes onChange with the
// freshly unmarshalled config. Unmarshal errors keep the previous values.
func Watch(onChange func(conf *AppConfig, e fsnotify.Event)) {
	viper.OnConfigChange(func(e fsnotify.Event) {
		conf := &AppConfig{}
		if err := viper.Unmarshal(conf); err != nil {
			return
		}
		onChange(conf, e)
	})
	viper.WatchConfig()
}
