package debug

const (
	Debug = true
)

// IsDebugShowSetup reports whether the resolved setup should be logged at startup.
// Secrets are redacted before logging regardless.
func IsDebugShowSetup() bool {
	return Debug && isDebugShowSetupSet()
}

// IsDebugLogResponses reports whether raw upstream API bodies should be logged.
func IsDebugLogResponses() bool {
	return Debug && isDebugLogResponsesSet()
}
