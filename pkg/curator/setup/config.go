package setup

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HarvardApiKey      string
	HarvardApiUrl      string
	HarvardLookupMode  string
	HarvardTimeout     time.Duration
	ClaudeApiKey       string
	ClaudeApiUrl       string
	OpenAiApiKey       string
	OpenAiApiUrl       string
	NarrativeProvider  string
	NarrativeModel     string
	NarrativeMaxTokens int
	NarrativeTheme     string
	NarrativeTimeout   time.Duration
	ApiIpPort          string
}

// LoadDotEnv reads a .env file from the working directory if one exists.
// Variables already present in the environment win.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}

// NewConfigFromEnv reads the process environment without validating it.
// Callers pick Validate or ValidateHarvard depending on what they need.
func NewConfigFromEnv() (*Config, error) {
	config := &Config{
		HarvardApiKey:     os.Getenv(EnvHarvardApiKey),
		HarvardApiUrl:     getEnv(EnvHarvardApiUrl, DefaultHarvardApiUrl),
		HarvardLookupMode: getEnv(EnvHarvardLookupMode, "objectnumber"),
		ClaudeApiKey:      os.Getenv(EnvClaudeApiKey),
		ClaudeApiUrl:      getEnv(EnvClaudeApiUrl, DefaultClaudeApiUrl),
		OpenAiApiKey:      os.Getenv(EnvOpenAiApiKey),
		OpenAiApiUrl:      os.Getenv(EnvOpenAiApiUrl),
		NarrativeProvider: strings.ToLower(getEnv(EnvNarrativeProvider, ProviderAnthropic)),
		NarrativeModel:    os.Getenv(EnvNarrativeModel),
		NarrativeTheme:    getEnv(EnvNarrativeTheme, DefaultNarrativeTheme),
		ApiIpPort:         getEnv(EnvApiIpPort, DefaultApiIpPort),
	}

	var err error
	if config.HarvardTimeout, err = durationEnv(EnvHarvardTimeout); err != nil {
		return nil, err
	}
	if config.NarrativeTimeout, err = durationEnv(EnvNarrativeTimeout); err != nil {
		return nil, err
	}

	config.NarrativeMaxTokens = DefaultNarrativeMaxTokens
	if raw := os.Getenv(EnvNarrativeMaxTokens); raw != "" {
		maxTokens, err := strconv.Atoi(raw)
		if err != nil || maxTokens <= 0 {
			return nil, fmt.Errorf("%s must be a positive integer, got %q", EnvNarrativeMaxTokens, raw)
		}
		config.NarrativeMaxTokens = maxTokens
	}

	return config, nil
}

// Validate checks everything the web server needs.
func (c *Config) Validate() error {
	if err := c.ValidateHarvard(); err != nil {
		return err
	}

	switch c.NarrativeProvider {
	case ProviderAnthropic:
		if c.ClaudeApiKey == "" {
			return errors.New("CLAUDE_API_KEY is required")
		}
	case ProviderOpenAi:
		if c.OpenAiApiKey == "" {
			return errors.New("OPENAI_API_KEY is required")
		}
	default:
		return fmt.Errorf("NARRATIVE_PROVIDER must be %q or %q, got %q", ProviderAnthropic, ProviderOpenAi, c.NarrativeProvider)
	}

	if c.ApiIpPort == "" {
		return errors.New("API_IP_PORT is required")
	}

	return nil
}

// ValidateHarvard checks only what the museum client needs.
func (c *Config) ValidateHarvard() error {
	if c.HarvardApiKey == "" {
		return errors.New("HARVARD_API_KEY is required")
	}
	if c.HarvardApiUrl == "" {
		return errors.New("HARVARD_API_URL is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func durationEnv(key string) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, raw)
	}
	return d, nil
}
