package surface

import "image"

// Nop is a Surface that renders nothing. It remembers registered image ids
// so the marker cache's register-once contract holds in headless runs.
type Nop struct {
	ids map[string]struct{}
}

// NewNop returns an empty headless surface.
func NewNop() *Nop {
	return &Nop{ids: map[string]struct{}{}}
}

func (n *Nop) AddImage(id string, _ image.Image) error {
	n.ids[id] = struct{}{}
	return nil
}

func (n *Nop) HasImage(id string) bool {
	_, ok := n.ids[id]
	return ok
}

func (n *Nop) SetFeatures(string, FeatureCollection) {}

func (n *Nop) Project(float64, float64) Point { return Point{} }

func (n *Nop) FeaturesAt(Point, []string) []Feature { return nil }
