package harvard

// UnknownArtist is used when a record has no associated people.
const UnknownArtist = "Unknown"

// ArtworkRecord is the display projection of one catalog entry.
// Empty strings mean the field was absent upstream.
type ArtworkRecord struct {
	Identifier string
	ImageURL   string
	Title      string
	Artist     string
	Dated      string
	Culture    string
	Medium     string
	Provenance string
}

// Usable reports whether the record can be narrated. A record without an
// image is treated the same as a missing one.
func (r *ArtworkRecord) Usable() bool {
	return r != nil && r.ImageURL != ""
}

type Person struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	DisplayDate string `json:"displaydate"`
}

type objectRecord struct {
	PrimaryImageURL string   `json:"primaryimageurl"`
	Title           string   `json:"title"`
	People          []Person `json:"people"`
	Dated           string   `json:"dated"`
	Culture         string   `json:"culture"`
	Medium          string   `json:"medium"`
	Provenance      string   `json:"provenance"`
}

func (o objectRecord) toArtworkRecord(identifier string) ArtworkRecord {
	artist := UnknownArtist
	if len(o.People) > 0 {
		artist = o.People[0].Name
	}

	return ArtworkRecord{
		Identifier: identifier,
		ImageURL:   o.PrimaryImageURL,
		Title:      o.Title,
		Artist:     artist,
		Dated:      o.Dated,
		Culture:    o.Culture,
		Medium:     o.Medium,
		Provenance: o.Provenance,
	}
}

// Info is the paging block of every list response.
type Info struct {
	TotalRecordsPerQuery int    `json:"totalrecordsperquery"`
	TotalRecords         int    `json:"totalrecords"`
	Pages                int    `json:"pages"`
	Page                 int    `json:"page"`
	Next                 string `json:"next"`
}

type listResponse[T any] struct {
	Info    Info `json:"info"`
	Records []T  `json:"records"`
}
