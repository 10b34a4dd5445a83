package shapes

import (
	"encoding/json"
	"fmt"

	"github.com/theoremus-urban-solutions/transit-tracker/coord"
	"github.com/theoremus-urban-solutions/transit-tracker/feed"
)

// Table is a decoded shape table for one static-data version.
type Table map[string]feed.Shape

// Cache holds the shape table for the currently active static-data key.
//
// Cache is not safe for concurrent use; the owning client serializes access.
// There is deliberately no in-flight request deduplication: the caller asks
// for one key at a time, and a repeated Ensure for the same key is a pure
// memory lookup.
type Cache struct {
	fetcher Fetcher
	frame   coord.ReferenceFrame

	key   string
	table Table
}

// NewCache wires a fetcher to the coordinate reference frame shape payloads
// are compressed against.
func NewCache(fetcher Fetcher, frame coord.ReferenceFrame) *Cache {
	return &Cache{fetcher: fetcher, frame: frame}
}

// Ensure returns the shape table for a static-data key, fetching and
// decoding it when the key differs from the cached one. On fetch or decode
// failure the previously cached table stays in place, so a transient error
// does not blank an already rendered route.
func (c *Cache) Ensure(key string) (Table, error) {
	if key == c.key && c.table != nil {
		return c.table, nil
	}

	data, err := c.fetcher.FetchTable(key)
	if err != nil {
		return nil, fmt.Errorf("fetch shape table %s: %w", key, err)
	}

	var payload feed.ShapePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse shape table %s: %w", key, err)
	}
	decoded, err := feed.DecodeShapes(&payload, c.frame)
	if err != nil {
		return nil, fmt.Errorf("decode shape table %s: %w", key, err)
	}

	c.key = key
	c.table = decoded
	return c.table, nil
}

// ActiveKey reports the key of the currently cached table, empty when
// nothing has been loaded yet.
func (c *Cache) ActiveKey() string { return c.key }
