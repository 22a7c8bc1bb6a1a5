package boot

import (
	"context"
	"fmt"
	"strings"

	"github.com/labstack/gommon/log"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Env        string   `env:"ENV,default=dev"`
	LogLevel   string   `env:"LOG_LEVEL,default=info"`
	SeedTokens []string `env:"SEED_TOKENS,default=USD,BTC"`
	Store      struct {
		Driver string `env:"STORE_DRIVER,default=memory"`
	}
}

func Load() (*Config, error) {
	return LoadWith(envconfig.OsLookuper())
}

func LoadWith(lookuper envconfig.Lookuper) (*Config, error) {
	config := &Config{}
	if err := envconfig.ProcessWith(context.Background(), config, lookuper); err != nil {
		return nil, fmt.Errorf("parsing env vars: %w", err)
	}
	return config, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "prod"
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "dev"
}

func (c *Config) StoreDriver() string {
	return c.Store.Driver
}

func (c *Config) DefaultTokens() []string {
	return c.SeedTokens
}

var logLevels = map[string]log.Lvl{
	"debug": log.DEBUG,
	"info":  log.INFO,
	"warn":  log.WARN,
	"error": log.ERROR,
	"off":   log.OFF,
}

func (c *Config) Level() (log.Lvl, error) {
	lvl, ok := logLevels[strings.ToLower(c.LogLevel)]
	if !ok {
		return 0, fmt.Errorf("unknown log level: %s", c.LogLevel)
	}
	return lvl, nil
}

// NewLogger returns a gommon logger prefixed with name at the configured level.
func NewLogger(name string, config *Config) (*log.Logger, error) {
	lvl, err := config.Level()
	if err != nil {
		return nil, err
	}
	logger := log.New(name)
	logger.SetLevel(lvl)
	if config.IsDevelopment() {
		logger.SetHeader("${time_rfc3339} ${level} ${prefix}")
	}
	return logger, nil
}
