package harvard

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
)

// CollectionFields is the field list requested for every scraped object.
const CollectionFields = "id,objectnumber,title,people,dated,datebegin,dateend,period,culture,technique,medium,dimensions,provenance,department,division,creditline,classification,gallery,century,style,url,primaryimageurl,colors,images,imagepermissionlevel"

const (
	DefaultPageSize   = 100
	DefaultMaxObjects = 75000
)

// CollectionObject is one raw object record, kept loosely typed because the
// API mixes scalars, nested objects and nulls across fields.
type CollectionObject map[string]any

type CollectionQuery struct {
	Division   string
	PageSize   int
	MaxObjects int
}

// FetchCollection pages through the object endpoint for a division. On a page
// failure it returns what was gathered so far along with the error.
func (c *Client) FetchCollection(ctx context.Context, query CollectionQuery) ([]CollectionObject, error) {
	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	maxObjects := query.MaxObjects
	if maxObjects <= 0 {
		maxObjects = DefaultMaxObjects
	}

	var objects []CollectionObject
	for page := 1; ; page++ {
		if page > 1 {
			if err := c.limiter.Wait(ctx); err != nil {
				return objects, err
			}
		}

		params := url.Values{}
		params.Set("size", strconv.Itoa(pageSize))
		params.Set("page", strconv.Itoa(page))
		params.Set("sort", "rank")
		params.Set("sortorder", "desc")
		params.Set("fields", CollectionFields)
		if query.Division != "" {
			params.Set("division", query.Division)
		}

		var resp listResponse[CollectionObject]
		if err := c.getJSON(ctx, "/object", params, &resp); err != nil {
			return objects, fmt.Errorf("failed to fetch page %d: %w", page, err)
		}

		if len(resp.Records) == 0 {
			slog.Info("no more collection data", "page", page)
			break
		}

		objects = append(objects, resp.Records...)
		slog.Info("fetched collection page", "page", page, "added", len(resp.Records), "total", len(objects))

		if len(objects) >= maxObjects {
			objects = objects[:maxObjects]
			slog.Info("reached object limit", "max_objects", maxObjects)
			break
		}

		if len(objects) >= resp.Info.TotalRecords {
			slog.Info("reached end of collection", "total_records", resp.Info.TotalRecords)
			break
		}
	}

	return objects, nil
}

type division struct {
	Name string `json:"name"`
}

// Divisions lists the names of the museum's divisions.
func (c *Client) Divisions(ctx context.Context) ([]string, error) {
	var resp listResponse[division]
	if err := c.getJSON(ctx, "/division", url.Values{}, &resp); err != nil {
		return nil, fmt.Errorf("failed to list divisions: %w", err)
	}

	names := make([]string, 0, len(resp.Records))
	for _, d := range resp.Records {
		names = append(names, d.Name)
	}
	return names, nil
}
