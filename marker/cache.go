package marker

import (
	"fmt"

	"github.com/theoremus-urban-solutions/transit-tracker/surface"
)

// Marker is a cached rendering: the registered image id plus the hit-test
// ellipse for that glyph.
type Marker struct {
	Key     VisualKey
	ImageID string
	Shape   EllipseShape
}

// Cache memoizes rendered marker images by visual key and registers each
// image exactly once with the rendering surface. The key space is small and
// bounded (labels x direction buckets x highlight flag), so there is no
// eviction; entries live for the process lifetime.
//
// Cache is not safe for concurrent use; the owning client serializes access.
type Cache struct {
	renderer *Renderer
	registry surface.ImageRegistry
	byKey    map[VisualKey]Marker
	byImage  map[string]EllipseShape
}

// NewCache wires a renderer to an image registry.
func NewCache(r *Renderer, registry surface.ImageRegistry) *Cache {
	return &Cache{
		renderer: r,
		registry: registry,
		byKey:    map[VisualKey]Marker{},
		byImage:  map[string]EllipseShape{},
	}
}

// GetOrCreate returns the cached marker for a key, rendering and
// registering it on first sight. Re-registering an already-known key never
// happens.
func (c *Cache) GetOrCreate(key VisualKey) (Marker, error) {
	if m, ok := c.byKey[key]; ok {
		return m, nil
	}
	img, shape := c.renderer.Render(key)
	id := key.ImageID()
	if err := c.registry.AddImage(id, img); err != nil {
		return Marker{}, fmt.Errorf("register marker image %s: %w", id, err)
	}
	m := Marker{Key: key, ImageID: id, Shape: shape}
	c.byKey[key] = m
	c.byImage[id] = shape
	return m, nil
}

// ShapeFor looks up the hit-test ellipse of a registered image id.
func (c *Cache) ShapeFor(imageID string) (EllipseShape, bool) {
	s, ok := c.byImage[imageID]
	return s, ok
}

// Len reports the number of distinct cached keys.
func (c *Cache) Len() int { return len(c.byKey) }
