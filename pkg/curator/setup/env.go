package setup

const (
	EnvHarvardApiKey      = "HARVARD_API_KEY"
	EnvHarvardApiUrl      = "HARVARD_API_URL"
	EnvHarvardLookupMode  = "HARVARD_LOOKUP_MODE"
	EnvHarvardTimeout     = "HARVARD_TIMEOUT"
	EnvClaudeApiKey       = "CLAUDE_API_KEY"
	EnvClaudeApiUrl       = "CLAUDE_API_URL"
	EnvOpenAiApiKey       = "OPENAI_API_KEY"
	EnvOpenAiApiUrl       = "OPENAI_API_URL"
	EnvNarrativeProvider  = "NARRATIVE_PROVIDER"
	EnvNarrativeModel     = "NARRATIVE_MODEL"
	EnvNarrativeMaxTokens = "NARRATIVE_MAX_TOKENS"
	EnvNarrativeTheme     = "NARRATIVE_THEME"
	EnvNarrativeTimeout   = "NARRATIVE_TIMEOUT"
	EnvApiIpPort          = "API_IP_PORT"
)

const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAi    = "openai"
)

const (
	DefaultHarvardApiUrl      = "https://api.harvardartmuseums.org"
	DefaultClaudeApiUrl       = "https://api.anthropic.com"
	DefaultNarrativeMaxTokens = 1000
	DefaultNarrativeTheme     = "the Crusades"
	DefaultApiIpPort          = "127.0.0.1:5000"
)
