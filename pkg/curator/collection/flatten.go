package collection

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/artlens/curator/pkg/curator/harvard"
)

// Columns is the CSV header, in output order.
var Columns = []string{
	"id", "objectnumber", "title", "artists", "artistsroles", "dated",
	"datebegin", "dateend", "century", "period", "culture",
	"medium", "technique", "dimensions", "provenance",
	"creditline", "classification", "department", "division",
	"gallery", "style", "colors", "url", "primaryimageurl",
	"additional_images", "imagepermissionlevel",
}

// Row is one flattened object keyed by column name.
type Row map[string]string

func Flatten(objects []harvard.CollectionObject) []Row {
	rows := make([]Row, 0, len(objects))
	for _, obj := range objects {
		rows = append(rows, flattenObject(obj))
	}
	return rows
}

func flattenObject(obj harvard.CollectionObject) Row {
	row := make(Row, len(Columns))
	for _, column := range Columns {
		row[column] = scalar(obj[column])
	}

	artists, roles := people(obj["people"])
	row["artists"] = strings.Join(artists, "; ")
	row["artistsroles"] = strings.Join(roles, "; ")
	row["colors"] = strings.Join(colors(obj["colors"]), "; ")
	row["additional_images"] = strings.Join(images(obj["images"]), "; ")

	return row
}

func people(v any) ([]string, []string) {
	var artists, roles []string
	for _, p := range objects(v) {
		name := scalar(p["name"])
		if name == "" {
			continue
		}
		role := scalar(p["role"])
		displayDate := scalar(p["displaydate"])

		artists = append(artists, name)
		switch {
		case role != "" && displayDate != "":
			roles = append(roles, fmt.Sprintf("%s (%s, %s)", name, role, displayDate))
		case role != "":
			roles = append(roles, fmt.Sprintf("%s (%s)", name, role))
		default:
			roles = append(roles, name)
		}
	}
	return artists, roles
}

func colors(v any) []string {
	var out []string
	for _, c := range objects(v) {
		hex := scalar(c["color"])
		percent := scalar(c["percent"])
		if hex != "" && percent != "" {
			out = append(out, fmt.Sprintf("%s (%s%%)", hex, percent))
		}
	}
	return out
}

func images(v any) []string {
	var out []string
	for _, img := range objects(v) {
		if base := scalar(img["baseimageurl"]); base != "" {
			out = append(out, base)
		}
	}
	return out
}

func objects(v any) []map[string]any {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// scalar renders a decoded JSON value as CSV text. Nested values are kept
// as compact JSON.
func scalar(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
