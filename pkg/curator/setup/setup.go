package setup

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/artlens/curator/pkg/curator/debug"
	"github.com/artlens/curator/pkg/curator/harvard"
)

type SetupResult struct {
	HarvardApiKey      string
	HarvardApiUrl      string
	HarvardLookupMode  harvard.LookupMode
	HarvardTimeout     time.Duration
	NarrativeProvider  string
	NarrativeApiKey    string
	NarrativeApiUrl    string
	NarrativeModel     string
	NarrativeMaxTokens int
	NarrativeTheme     string
	NarrativeTimeout   time.Duration
	ApiIpPort          string
}

// LogValue keeps secrets out of debug output.
func (s *SetupResult) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("harvardApiUrl", s.HarvardApiUrl),
		slog.String("harvardLookupMode", string(s.HarvardLookupMode)),
		slog.Duration("harvardTimeout", s.HarvardTimeout),
		slog.String("narrativeProvider", s.NarrativeProvider),
		slog.String("narrativeApiUrl", s.NarrativeApiUrl),
		slog.String("narrativeModel", s.NarrativeModel),
		slog.Int("narrativeMaxTokens", s.NarrativeMaxTokens),
		slog.String("narrativeTheme", s.NarrativeTheme),
		slog.Duration("narrativeTimeout", s.NarrativeTimeout),
		slog.String("apiIpPort", s.ApiIpPort),
	)
}

// Setup loads .env and the environment and validates everything the web
// server needs.
func Setup() (*SetupResult, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}

	config, err := NewConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to get config from env: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	setupResult, err := NewSetupResult(config)
	if err != nil {
		return nil, err
	}

	if debug.IsDebugShowSetup() {
		slog.Info("setup output", "setupOutput", setupResult)
	}

	return setupResult, nil
}

func NewSetupResult(config *Config) (*SetupResult, error) {
	mode, err := harvard.ParseLookupMode(config.HarvardLookupMode)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", EnvHarvardLookupMode, err)
	}

	result := &SetupResult{
		HarvardApiKey:      config.HarvardApiKey,
		HarvardApiUrl:      config.HarvardApiUrl,
		HarvardLookupMode:  mode,
		HarvardTimeout:     config.HarvardTimeout,
		NarrativeProvider:  config.NarrativeProvider,
		NarrativeModel:     config.NarrativeModel,
		NarrativeMaxTokens: config.NarrativeMaxTokens,
		NarrativeTheme:     config.NarrativeTheme,
		NarrativeTimeout:   config.NarrativeTimeout,
		ApiIpPort:          config.ApiIpPort,
	}

	switch config.NarrativeProvider {
	case ProviderOpenAi:
		result.NarrativeApiKey = config.OpenAiApiKey
		result.NarrativeApiUrl = config.OpenAiApiUrl
	default:
		result.NarrativeApiKey = config.ClaudeApiKey
		result.NarrativeApiUrl = config.ClaudeApiUrl
	}

	return result, nil
}
