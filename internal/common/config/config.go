// Package config holds the service configuration loaded via viper.
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Storage StorageConfig `mapstructure:"storage"`
	Bridge  BridgeConfig  `mapstructure:"bridge"`
	Invite  InviteConfig  `mapstructure:"invite"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	ListenAddr      string        `mapstructure:"listen_addr"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// StorageConfig controls the draft store key namespace and expiry policy.
type StorageConfig struct {
	KeyPrefix        string        `mapstructure:"key_prefix"`
	DraftTTL         time.Duration `mapstructure:"draft_ttl"`
	InviteTTL        time.Duration `mapstructure:"invite_ttl"`
	EnvelopeVersion  string        `mapstructure:"envelope_version"`
	AutosaveDebounce time.Duration `mapstructure:"autosave_debounce"`
}

// BridgeConfig configures the compliance provider client.
// An APIKey with the "test-" prefix selects the mocked client.
type BridgeConfig struct {
	APIKey         string        `mapstructure:"api_key"`
	ProductionURL  string        `mapstructure:"production_url"`
	SandboxURL     string        `mapstructure:"sandbox_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// BaseURL selects the endpoint for the configured environment.
func (b BridgeConfig) BaseURL(environment string) string {
	if environment == "production" {
		return b.ProductionURL
	}
	return b.SandboxURL
}

type InviteConfig struct {
	VerifyURL      string        `mapstructure:"verify_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
