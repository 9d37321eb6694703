package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port           int      `yaml:"port"`
		MaxInputBytes  int      `yaml:"maxInputBytes"`
		AllowedOrigins []string `yaml:"allowedOrigins"`
		// TrustProxy reads the client address from X-Forwarded-For / X-Real-IP.
		TrustProxy bool `yaml:"trustProxy"`
	} `yaml:"server"`

	Model struct {
		ID          string        `yaml:"id"`
		BaseURL     string        `yaml:"baseURL"`
		Temperature float32       `yaml:"temperature"`
		MaxTokens   int           `yaml:"maxTokens"`
		Timeout     time.Duration `yaml:"timeout"`
	} `yaml:"model"`

	RateLimit struct {
		Capacity        int `yaml:"capacity"`
		RefillPerSecond int `yaml:"refillPerSecond"`
	} `yaml:"rateLimit"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`

	UI struct {
		Title   string `yaml:"title"`
		Icon    string `yaml:"icon"`
		Tagline string `yaml:"tagline"`
	} `yaml:"ui"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var c Config
	c.Server.Port = 8080
	c.Server.MaxInputBytes = 64 << 10
	c.Model.ID = "openai/gpt-oss-20b"
	c.Model.BaseURL = "https://api.groq.com/openai/v1"
	c.Model.Temperature = 0.2
	c.Model.MaxTokens = 2048
	c.RateLimit.Capacity = 10
	c.RateLimit.RefillPerSecond = 1
	c.Logging.Level = "info"
	c.Logging.Format = "text"
	c.UI.Title = "TruthCheck AI"
	c.UI.Icon = "🛡️"
	c.UI.Tagline = "Advanced AI-Powered Fake News Detection"
	return &c
}

// Load reads the YAML file at path over the defaults, then applies
// TRUTHCHECK_* environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("TRUTHCHECK_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TRUTHCHECK_PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("TRUTHCHECK_MODEL"); v != "" {
		c.Model.ID = v
	}
	if v := os.Getenv("TRUTHCHECK_BASE_URL"); v != "" {
		c.Model.BaseURL = v
	}
	if v := os.Getenv("TRUTHCHECK_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Validate checks values that would otherwise fail late at request time.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Model.ID == "" {
		return errors.New("model.id is required")
	}
	u, err := url.Parse(c.Model.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("model.baseURL is not an http(s) URL: %q", c.Model.BaseURL)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}
