package narrative

import (
	"fmt"

	"github.com/artlens/curator/pkg/curator/harvard"
)

const promptTemplate = `
You are an art historian and expert on %[1]s.

Here is an image of an artwork from the Harvard Art Museums: %[2]s

Title: %[3]s
Artist: %[4]s
Date: %[5]s
Culture: %[6]s
Medium: %[7]s

Provenance: %[8]s

Rate this object on a scale of 1-10 in terms of its relevance to %[1]s, with 1 being least relevant and 10 being most relevant. Explain your reasoning.
`

// BuildPrompt renders the relevance prompt for record. Field values are
// embedded verbatim; absent fields render as empty text.
func BuildPrompt(record harvard.ArtworkRecord, theme string) string {
	return fmt.Sprintf(promptTemplate,
		theme,
		record.ImageURL,
		record.Title,
		record.Artist,
		record.Dated,
		record.Culture,
		record.Medium,
		record.Provenance,
	)
}
