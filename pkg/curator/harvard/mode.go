package harvard

import (
	"fmt"
	"net/url"
	"strings"
)

// LookupMode selects how an identifier is matched against the object endpoint.
type LookupMode string

const (
	// LookupObjectNumber matches the accession number exactly (objectnumber=<id>).
	LookupObjectNumber LookupMode = "objectnumber"
	// LookupId runs a general query on the object id (q=id:<id>).
	LookupId LookupMode = "id"
)

func ParseLookupMode(raw string) (LookupMode, error) {
	switch LookupMode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", LookupObjectNumber:
		return LookupObjectNumber, nil
	case LookupId:
		return LookupId, nil
	default:
		return "", fmt.Errorf("unknown lookup mode %q", raw)
	}
}

func (m LookupMode) apply(params url.Values, identifier string) {
	switch m {
	case LookupId:
		params.Set("q", "id:"+identifier)
	default:
		params.Set("objectnumber", identifier)
	}
}
