// Package config loads server settings from flags, environment and an optional file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. NOTEKEEPER_JWT_KEY.
const EnvPrefix = "NOTEKEEPER"

type HTTP struct {
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type JWT struct {
	Key string `mapstructure:"key"`
}

type OpenAI struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

type Quota struct {
	Tokens int           `mapstructure:"tokens"` // 0 disables the budget
	Window time.Duration `mapstructure:"window"`
}

type AI struct {
	Timeout time.Duration `mapstructure:"timeout"`
	Quota   Quota         `mapstructure:"quota"`
}

type Shutdown struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type Log struct {
	Dev bool `mapstructure:"dev"`
}

type CORS struct {
	Origins []string `mapstructure:"origins"`
}

// Config is the full server configuration.
type Config struct {
	Addr     string   `mapstructure:"addr"`
	DSN      string   `mapstructure:"dsn"`
	JWT      JWT      `mapstructure:"jwt"`
	OpenAI   OpenAI   `mapstructure:"openai"`
	AI       AI       `mapstructure:"ai"`
	HTTP     HTTP     `mapstructure:"http"`
	Shutdown Shutdown `mapstructure:"shutdown"`
	Log      Log      `mapstructure:"log"`
	CORS     CORS     `mapstructure:"cors"`
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("addr", ":8080")
	v.SetDefault("dsn", "")
	v.SetDefault("jwt.key", "")
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.base_url", "")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("ai.quota.tokens", 0)
	v.SetDefault("ai.quota.window", 24*time.Hour)
	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 90*time.Second)
	v.SetDefault("shutdown.timeout", 5*time.Second)
	v.SetDefault("log.dev", false)
	v.SetDefault("cors.origins", []string{})

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file and decodes v. requireAI demands an
// OpenAI key, which only the serve command needs.
func Load(v *viper.Viper, file string, requireAI bool) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := c.validate(requireAI); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate(requireAI bool) error {
	var problems []error
	if c.DSN == "" {
		problems = append(problems, errors.New("dsn is required"))
	}
	if c.JWT.Key == "" {
		problems = append(problems, errors.New("jwt.key is required"))
	}
	if requireAI && c.OpenAI.APIKey == "" {
		problems = append(problems, errors.New("openai.api_key is required"))
	}
	if c.AI.Quota.Tokens > 0 && c.AI.Quota.Window <= 0 {
		problems = append(problems, errors.New("ai.quota.window must be positive"))
	}
	if c.AI.Timeout < 0 || c.Shutdown.Timeout < 0 {
		problems = append(problems, errors.New("timeouts must not be negative"))
	}
	return errors.Join(problems...)
}
