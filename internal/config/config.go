// Package config provides configuration management for the application
package config

import (
	"agentplugins/internal/agent/tools"
	"agentplugins/internal/logger"
	"agentplugins/internal/plugins/geocoding"
	"agentplugins/internal/plugins/timeplugin"
	"agentplugins/internal/plugins/weather"
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config contains all configuration for the application
type Config struct {
	// API settings
	AnthropicAPIKey string
	Model           string
	MaxTokens       int64

	// Plugin settings
	ForecastAPIURL  string
	GeocodingAPIURL string
	HTTPTimeout     time.Duration // zero leaves timeouts to the caller's context

	// User interface settings
	GetUserMessage func() (string, bool)

	// Agent settings
	Client   *anthropic.Client
	Registry *tools.Registry
}

// fileConfig is the optional YAML file named by PLUGINS_CONFIG
type fileConfig struct {
	Weather struct {
		ForecastURL string `yaml:"forecast_url"`
	} `yaml:"weather"`
	Geocoding struct {
		URL string `yaml:"url"`
	} `yaml:"geocoding"`
	HTTP struct {
		Timeout string `yaml:"timeout"`
	} `yaml:"http"`
}

// LoadFromEnv loads configuration from a .env file, an optional YAML file and
// environment variables, later sources winning
func LoadFromEnv() (*Config, error) {
	log := logger.Get()
	log.Debug().Msg("Loading configuration from environment")

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("Could not load .env file")
	}

	config := &Config{}

	if path := os.Getenv("PLUGINS_CONFIG"); path != "" {
		if err := config.loadFile(path); err != nil {
			log.Error().Err(err).Str("path", path).Msg("Invalid plugins config file")
			return nil, err
		}
		log.Debug().Str("path", path).Msg("Loaded plugins config file")
	}

	config.AnthropicAPIKey = os.Getenv("ANTHROPIC_API_KEY")
	config.Model = getEnvOrDefault("CLAUDE_MODEL", anthropic.ModelClaude3_5HaikuLatest)
	config.ForecastAPIURL = getEnvOrDefault("FORECAST_API_URL", config.ForecastAPIURL)
	config.GeocodingAPIURL = getEnvOrDefault("GEOCODING_API_URL", config.GeocodingAPIURL)
	log.Debug().Str("model", config.Model).Msg("Loaded model configuration")

	maxTokensStr := getEnvOrDefault("MAX_TOKENS", "1024")
	maxTokens, err := strconv.ParseInt(maxTokensStr, 10, 64)
	if err != nil {
		log.Error().Err(err).Str("value", maxTokensStr).Msg("Invalid MAX_TOKENS value")
		return nil, fmt.Errorf("invalid MAX_TOKENS value: %w", err)
	}
	config.MaxTokens = maxTokens

	if timeoutStr := os.Getenv("HTTP_TIMEOUT"); timeoutStr != "" {
		timeout, err := time.ParseDuration(timeoutStr)
		if err != nil {
			log.Error().Err(err).Str("value", timeoutStr).Msg("Invalid HTTP_TIMEOUT value")
			return nil, fmt.Errorf("invalid HTTP_TIMEOUT value: %w", err)
		}
		config.HTTPTimeout = timeout
	}

	if config.AnthropicAPIKey == "" {
		log.Error().Msg("ANTHROPIC_API_KEY environment variable is not set")
		return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is not set")
	}
	log.Debug().Msg("API key loaded successfully")

	return config, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read plugins config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("failed to parse plugins config: %w", err)
	}

	c.ForecastAPIURL = fc.Weather.ForecastURL
	c.GeocodingAPIURL = fc.Geocoding.URL
	if fc.HTTP.Timeout != "" {
		timeout, err := time.ParseDuration(fc.HTTP.Timeout)
		if err != nil {
			return fmt.Errorf("invalid http.timeout %q: %w", fc.HTTP.Timeout, err)
		}
		c.HTTPTimeout = timeout
	}
	return nil
}

// WithDefaults sets default values for configuration fields that aren't set
func (c *Config) WithDefaults() *Config {
	log := logger.Get()
	log.Debug().Msg("Applying default configuration values")

	if c.Model == "" {
		c.Model = anthropic.ModelClaude3_7SonnetLatest
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = 1024
	}
	if c.ForecastAPIURL == "" {
		c.ForecastAPIURL = weather.DefaultBaseURL
	}
	if c.GeocodingAPIURL == "" {
		c.GeocodingAPIURL = geocoding.DefaultBaseURL
	}

	if c.GetUserMessage == nil {
		scanner := bufio.NewScanner(os.Stdin)
		c.GetUserMessage = func() (string, bool) {
			if !scanner.Scan() {
				return "", false
			}
			return scanner.Text(), true
		}
	}

	if c.Client == nil {
		// The client reads the API key from ANTHROPIC_API_KEY
		client := anthropic.NewClient()
		c.Client = &client
	}

	if c.Registry == nil {
		httpClient := &http.Client{Timeout: c.HTTPTimeout}
		registry, err := tools.GetAllTools(tools.Plugins{
			Clock:    timeplugin.NewClock(),
			Geocoder: geocoding.NewClient(c.GeocodingAPIURL, httpClient),
			Weather:  weather.NewProvider(c.ForecastAPIURL, httpClient),
		})
		if err != nil {
			log.Error().Err(err).Msg("Failed to register plugin tools")
		} else {
			c.Registry = registry
		}
	}

	return c
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	log := logger.Get()
	log.Debug().Msg("Validating configuration")
	if c.Client == nil {
		log.Error().Msg("Claude client is not configured")
		return fmt.Errorf("Claude client is required")
	}

	if c.GetUserMessage == nil {
		log.Error().Msg("GetUserMessage function is not configured")
		return fmt.Errorf("GetUserMessage function is required")
	}

	if c.Registry == nil {
		log.Error().Msg("Tool registry is not configured")
		return fmt.Errorf("tool registry is required")
	}

	if c.HTTPTimeout < 0 {
		return fmt.Errorf("HTTP timeout cannot be negative: %s", c.HTTPTimeout)
	}

	if len(c.Registry.Definitions()) == 0 {
		log.Warn().Msg("No tools configured for the agent")
	}

	return nil
}

// getEnvOrDefault gets an environment variable or returns the default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
