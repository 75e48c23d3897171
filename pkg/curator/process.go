package curator

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/artlens/curator/pkg/curator/harvard"
	"github.com/artlens/curator/pkg/curator/narrative"
)

// NotFoundMessage is shown when no usable artwork comes back.
const NotFoundMessage = "Artwork not found or no image available."

// Submission is one POST of the form.
type Submission struct {
	Identifier string
	Interests  []string
}

// PageData is everything the form template renders.
type PageData struct {
	Processed bool

	ImageURL   string
	Title      string
	Artist     string
	Dated      string
	Culture    string
	Medium     string
	Provenance string

	Narrative           string
	NarrativeDiagnostic bool
	Error               string

	ObjectNumber    string
	Interests       []string
	InterestOptions []string
}

// Idle is the page shown before anything was submitted.
func (c *Curator) Idle() PageData {
	return PageData{InterestOptions: c.interestOptions}
}

// Process runs lookup, prompt and narrative for one submission. It never
// fails: lookup problems become NotFoundMessage, generation problems become
// diagnostic narrative text.
func (c *Curator) Process(ctx context.Context, submission Submission) PageData {
	page := PageData{
		Processed:       true,
		ObjectNumber:    submission.Identifier,
		Interests:       submission.Interests,
		InterestOptions: mergeOptions(c.interestOptions, submission.Interests),
	}

	record, err := c.lookup.Lookup(ctx, submission.Identifier)
	if err != nil {
		if errors.Is(err, harvard.ErrNotFound) {
			slog.Info("artwork not found", "identifier", submission.Identifier, "error", err)
		} else {
			slog.Warn("failed to look up artwork", "identifier", submission.Identifier, "error", err)
		}
		page.Error = NotFoundMessage
		return page
	}

	if !record.Usable() {
		slog.Info("artwork has no image", "identifier", submission.Identifier)
		page.Error = NotFoundMessage
		return page
	}

	prompt := narrative.BuildPrompt(*record, c.theme)
	result := c.generator.Generate(ctx, prompt)
	if result.Diagnostic {
		slog.Warn("narrative generation degraded", "identifier", submission.Identifier)
	}

	page.ImageURL = record.ImageURL
	page.Title = record.Title
	page.Artist = record.Artist
	page.Dated = record.Dated
	page.Culture = record.Culture
	page.Medium = record.Medium
	page.Provenance = record.Provenance
	page.Narrative = result.Text
	page.NarrativeDiagnostic = result.Diagnostic

	return page
}

// mergeOptions keeps submitted interests visible even when they are not
// among the configured options.
func mergeOptions(options, submitted []string) []string {
	merged := slices.Clone(options)
	for _, interest := range submitted {
		if !slices.Contains(merged, interest) {
			merged = append(merged, interest)
		}
	}
	return merged
}
