package narrative

import (
	"context"
	"fmt"
)

// Generator turns a prompt into displayable narrative text. Implementations
// never fail outright; problems come back as a diagnostic Result.
type Generator interface {
	Generate(ctx context.Context, prompt string) Result
}

// Result is always safe to show to a user. Diagnostic is set when Text
// describes a failure instead of a narrative.
type Result struct {
	Text       string
	Diagnostic bool
}

func textResult(text string) Result {
	return Result{Text: text}
}

func errorResult(err error) Result {
	return Result{Text: fmt.Sprintf("Error generating narrative: %v", err), Diagnostic: true}
}

func emptyResult(raw string) Result {
	return Result{Text: fmt.Sprintf("Narrative API responded, but no narrative was returned. Raw content: %s", raw), Diagnostic: true}
}
