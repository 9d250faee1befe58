package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/chilly266futon/futuresBot/internal/domain"
	"github.com/chilly266futon/futuresBot/internal/logger"
)

const (
	DefaultBaseURL = "https://testnet.binancefuture.com"

	EnvAPIKey    = "API_KEY"
	EnvAPISecret = "API_SECRET"
)

// Hosts the bot may talk to. Loopback addresses are accepted as well.
var testnetHosts = map[string]struct{}{
	"testnet.binancefuture.com": {},
}

type Config struct {
	Exchange  ExchangeConfig  `yaml:"exchange"`
	Web       WebConfig       `yaml:"web"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Logger    logger.Config   `yaml:"logger"`
}

type ExchangeConfig struct {
	BaseURL    string        `yaml:"base_url"`
	RecvWindow time.Duration `yaml:"recv_window"`
	// VerifySymbols checks order symbols against the exchange's trading
	// symbols before an order is sent. Nil means enabled.
	VerifySymbols *bool `yaml:"verify_symbols"`
}

func (c ExchangeConfig) SymbolCheckEnabled() bool {
	return c.VerifySymbols == nil || *c.VerifySymbols
}

type WebConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

func (c WebConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RateLimitConfig limits form submissions per client address.
type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads the YAML file at path. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad загружает конфигурацию или паникует
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Exchange.BaseURL == "" {
		c.Exchange.BaseURL = DefaultBaseURL
	}
	if c.Exchange.VerifySymbols == nil {
		enabled := true
		c.Exchange.VerifySymbols = &enabled
	}
	if c.Exchange.RecvWindow == 0 {
		c.Exchange.RecvWindow = 5 * time.Second
	}
	if c.Web.Host == "" {
		c.Web.Host = "127.0.0.1"
	}
	if c.Web.Port == 0 {
		c.Web.Port = 8501
	}
	if c.Web.ShutdownTimeout == 0 {
		c.Web.ShutdownTimeout = 10 * time.Second
	}
	if c.RateLimit.RequestsPerSecond == 0 {
		c.RateLimit.RequestsPerSecond = 5
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 10
	}
	if c.Logger.File == "" {
		c.Logger.File = "futures_trading_bot.log"
	}
}

func (c *Config) Validate() error {
	if err := ValidateBaseURL(c.Exchange.BaseURL); err != nil {
		return err
	}
	if c.Exchange.RecvWindow < 0 || c.Exchange.RecvWindow > time.Minute {
		return fmt.Errorf("exchange.recv_window must be between 0 and 1m, got %s", c.Exchange.RecvWindow)
	}
	if c.Web.Port < 0 || c.Web.Port > 65535 {
		return fmt.Errorf("web.port out of range: %d", c.Web.Port)
	}
	if c.RateLimit.RequestsPerSecond < 0 || c.RateLimit.Burst < 0 {
		return errors.New("rate_limit values must not be negative")
	}
	return nil
}

// ValidateBaseURL accepts http(s) URLs pointing at the futures testnet or a
// loopback address.
func ValidateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid exchange.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("exchange.base_url must be http or https, got %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("exchange.base_url has no host: %q", raw)
	}
	if !allowedHost(u.Hostname()) {
		return fmt.Errorf("%w: %s", domain.ErrProductionEndpoint, u.Host)
	}
	return nil
}

func allowedHost(host string) bool {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	if _, ok := testnetHosts[host]; ok {
		return true
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// LoadDotEnv loads variables from the given .env files, or ./.env when none
// are given. Missing files are not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// LoadCredentials reads the API key pair through getenv. A missing variable
// is a ConfigurationError.
func LoadCredentials(getenv func(string) string) (domain.Credentials, error) {
	var missing []string

	creds := domain.Credentials{
		APIKey:    strings.TrimSpace(getenv(EnvAPIKey)),
		APISecret: strings.TrimSpace(getenv(EnvAPISecret)),
	}
	if creds.APIKey == "" {
		missing = append(missing, EnvAPIKey)
	}
	if creds.APISecret == "" {
		missing = append(missing, EnvAPISecret)
	}

	if len(missing) > 0 {
		return domain.Credentials{}, domain.NewConfigurationError(domain.ErrMissingCredentials,
			"missing required env: %s", strings.Join(missing, ","))
	}
	return creds, nil
}
