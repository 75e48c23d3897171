package curator

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/artlens/curator/pkg/curator/harvard"
	"github.com/artlens/curator/pkg/curator/narrative"
	"github.com/artlens/curator/pkg/curator/setup"
)

// ArtworkLookup finds one catalog entry by identifier.
type ArtworkLookup interface {
	Lookup(ctx context.Context, identifier string) (*harvard.ArtworkRecord, error)
}

type Curator struct {
	lookup    ArtworkLookup
	generator narrative.Generator
	apiRouter *gin.Engine

	theme           string
	interestOptions []string
	apiIpPort       string
	listenAddr      string
}

type CuratorConfig struct {
	Lookup    ArtworkLookup
	Generator narrative.Generator

	Theme           string
	InterestOptions []string
	ApiIpPort       string
}

// DefaultInterestOptions are offered on the form when none are configured.
var DefaultInterestOptions = []string{
	"Crusades",
	"Pilgrimage",
	"Warfare and arms",
	"Religious art",
	"Trade and exchange",
	"Manuscripts",
}

func NewCurator(config *CuratorConfig) (*Curator, error) {
	if config == nil {
		return nil, errors.New("config is nil")
	}
	if config.Lookup == nil {
		return nil, errors.New("lookup is nil")
	}
	if config.Generator == nil {
		return nil, errors.New("generator is nil")
	}

	theme := config.Theme
	if theme == "" {
		theme = setup.DefaultNarrativeTheme
	}

	interestOptions := config.InterestOptions
	if len(interestOptions) == 0 {
		interestOptions = DefaultInterestOptions
	}

	curator := &Curator{
		lookup:    config.Lookup,
		generator: config.Generator,

		theme:           theme,
		interestOptions: interestOptions,
		apiIpPort:       config.ApiIpPort,
	}

	router, err := curator.generateRouter()
	if err != nil {
		return nil, err
	}
	curator.apiRouter = router

	return curator, nil
}

func NewCuratorConfigFromSetupResult(setupResult *setup.SetupResult) (*CuratorConfig, error) {
	if setupResult == nil {
		return nil, errors.New("setup result is nil")
	}

	lookup := harvard.NewClient(harvard.Config{
		ApiKey:  setupResult.HarvardApiKey,
		BaseUrl: setupResult.HarvardApiUrl,
		Mode:    setupResult.HarvardLookupMode,
		Timeout: setupResult.HarvardTimeout,
	})

	var generator narrative.Generator
	switch setupResult.NarrativeProvider {
	case setup.ProviderOpenAi:
		generator = narrative.NewOpenAiGenerator(narrative.OpenAiConfig{
			ApiKey:    setupResult.NarrativeApiKey,
			BaseUrl:   setupResult.NarrativeApiUrl,
			Model:     setupResult.NarrativeModel,
			MaxTokens: setupResult.NarrativeMaxTokens,
			Timeout:   setupResult.NarrativeTimeout,
		})
	default:
		generator = narrative.NewAnthropicGenerator(narrative.AnthropicConfig{
			ApiKey:    setupResult.NarrativeApiKey,
			BaseUrl:   setupResult.NarrativeApiUrl,
			Model:     setupResult.NarrativeModel,
			MaxTokens: setupResult.NarrativeMaxTokens,
			Timeout:   setupResult.NarrativeTimeout,
		})
	}

	return &CuratorConfig{
		Lookup:    lookup,
		Generator: generator,
		Theme:     setupResult.NarrativeTheme,
		ApiIpPort: setupResult.ApiIpPort,
	}, nil
}

// Start serves the form until ctx is done.
func (c *Curator) Start(ctx context.Context) error {
	if err := c.StartServer(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	return ctx.Err()
}

func (c *Curator) Theme() string {
	return c.theme
}

// ListenAddr is the address the server is bound to, empty until started.
func (c *Curator) ListenAddr() string {
	return c.listenAddr
}
