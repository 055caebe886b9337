package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"snag/constant"
)

type Config struct {
	Log     Log     `yaml:"log"`
	API     API     `yaml:"api"`
	Fetcher Fetcher `yaml:"fetcher"`
	Archive Archive `yaml:"archive"`
}

func (c *Config) ToDict() *zerolog.Event {
	return zerolog.Dict().
		Dict("log", c.Log.ToDict()).
		Dict("api", c.API.ToDict()).
		Dict("fetcher", c.Fetcher.ToDict()).
		Dict("archive", c.Archive.ToDict())
}

func (c *Config) setDefaults() {
	c.Log.setDefaults()
	c.API.setDefaults()
	c.Fetcher.setDefaults()
	c.Archive.setDefaults()
}

func (c *Config) validate() error {
	if err := c.Log.validate(); nil != err {
		return fmt.Errorf("log config validation failed: %v", err)
	}

	if err := c.API.validate(); nil != err {
		return fmt.Errorf("api config validation failed: %v", err)
	}

	if err := c.Fetcher.validate(); nil != err {
		return fmt.Errorf("fetcher config validation failed: %v", err)
	}

	if err := c.Archive.validate(); nil != err {
		return fmt.Errorf("archive config validation failed: %v", err)
	}

	return nil
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Log) ToDict() *zerolog.Event {
	return zerolog.
		Dict().
		Str("level", c.Level).
		Str("format", c.Format)
}

func (c *Log) setDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}

	if c.Format == "" {
		c.Format = "pretty"
	}
}

func (c *Log) validate() error {
	if _, err := zerolog.ParseLevel(c.Level); nil != err {
		return fmt.Errorf("invalid log level %q: %v", c.Level, err)
	}

	if format := strings.ToLower(c.Format); !slices.Contains([]string{"json", "pretty"}, format) {
		return fmt.Errorf("invalid log format: %q", c.Format)
	}

	return nil
}

type API struct {
	BaseURL   string `yaml:"base_url"`
	AppName   string `yaml:"app_name"`
	PageLimit int    `yaml:"page_limit"`
}

func (c *API) ToDict() *zerolog.Event {
	return zerolog.
		Dict().
		Str("base_url", c.BaseURL).
		Str("app_name", c.AppName).
		Int("page_limit", c.PageLimit)
}

func (c *API) setDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://api.audius.co"
	}

	if c.AppName == "" {
		c.AppName = constant.AppName
	}

	if c.PageLimit == 0 {
		c.PageLimit = 50
	}
}

func (c *API) validate() error {
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("base_url must be an http(s) URL, got: %q", c.BaseURL)
	}

	if c.PageLimit < 1 || c.PageLimit > 500 {
		return fmt.Errorf("page_limit must be within [1, 500], got: %d", c.PageLimit)
	}

	return nil
}

type Fetcher struct {
	Attempts      int `yaml:"attempts"`
	BaseDelaySecs int `yaml:"base_delay_secs"`
	TimeoutSecs   int `yaml:"timeout_secs"`
}

func (c *Fetcher) ToDict() *zerolog.Event {
	return zerolog.
		Dict().
		Int("attempts", c.Attempts).
		Int("base_delay_secs", c.BaseDelaySecs).
		Int("timeout_secs", c.TimeoutSecs)
}

func (c *Fetcher) setDefaults() {
	if c.Attempts == 0 {
		c.Attempts = 3
	}

	if c.BaseDelaySecs == 0 {
		c.BaseDelaySecs = 1
	}

	if c.TimeoutSecs == 0 {
		c.TimeoutSecs = 10
	}
}

func (c *Fetcher) validate() error {
	if c.Attempts < 1 {
		return fmt.Errorf("attempts must be at least 1, got: %d", c.Attempts)
	}

	if c.BaseDelaySecs < 1 {
		return fmt.Errorf("base_delay_secs must be at least 1, got: %d", c.BaseDelaySecs)
	}

	if c.TimeoutSecs < 1 {
		return fmt.Errorf("timeout_secs must be at least 1, got: %d", c.TimeoutSecs)
	}

	return nil
}

type Archive struct {
	CompressionLevel int `yaml:"compression_level"`
}

func (c *Archive) ToDict() *zerolog.Event {
	return zerolog.
		Dict().
		Int("compression_level", c.CompressionLevel)
}

func (c *Archive) setDefaults() {
	if c.CompressionLevel == 0 {
		c.CompressionLevel = 6
	}
}

func (c *Archive) validate() error {
	if c.CompressionLevel < 1 || c.CompressionLevel > 9 {
		return fmt.Errorf("compression_level must be within [1, 9], got: %d", c.CompressionLevel)
	}

	return nil
}

func Load(filePath string) (*Config, error) {
	var conf Config
	if filePath != "" {
		b, err := os.ReadFile(filePath)
		if nil != err {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("config file %q does not exist: %v", filePath, err)
			}

			return nil, fmt.Errorf("failed to read config file %q: %v", filePath, err)
		}

		if err := yaml.Unmarshal(b, &conf); nil != err {
			return nil, fmt.Errorf("failed to parse config file %q: %v", filePath, err)
		}
	}

	if v, ok := os.LookupEnv("SNAG_API_BASE_URL"); ok {
		conf.API.BaseURL = v
	}

	conf.setDefaults()

	if err := conf.validate(); nil != err {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &conf, nil
}
