package debug

import "os"

const (
	DebugShowSetupKey    = "DEBUG_SHOW_SETUP"
	DebugLogResponsesKey = "DEBUG_LOG_RESPONSES"
)

func isDebugShowSetupSet() bool {
	return os.Getenv(DebugShowSetupKey) == "true"
}

func isDebugLogResponsesSet() bool {
	return os.Getenv(DebugLogResponsesKey) == "true"
}
