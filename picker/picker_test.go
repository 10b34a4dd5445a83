package picker

import (
	"testing"

	"github.com/theoremus-urban-solutions/transit-tracker/marker"
	"github.com/theoremus-urban-solutions/transit-tracker/surface"
)

// gridProjector maps degrees to pixels linearly; enough for hit math.
type gridProjector struct{ scale float64 }

func (g gridProjector) Project(lat, lon float64) surface.Point {
	return surface.Point{X: lon * g.scale, Y: -lat * g.scale}
}

type shapeMap map[string]marker.EllipseShape

func (m shapeMap) ShapeFor(id string) (marker.EllipseShape, bool) {
	s, ok := m[id]
	return s, ok
}

func feature(imageID string, routeID int, lat, lon float64) surface.Feature {
	return surface.Feature{
		ImageID: imageID,
		RouteID: routeID,
		Lat:     lat,
		Lon:     lon,
		SortKey: -float64(routeID),
	}
}

func TestResolveZOrderTieBreak(t *testing.T) {
	// Two markers on the same spot; both contain the click. Route 5 must
	// win over route 12 regardless of candidate order.
	proj := gridProjector{scale: 1}
	shapes := shapeMap{
		"m5":  {Rx: 14, Ry: 9},
		"m12": {Rx: 14, Ry: 9},
	}
	f5 := feature("m5", 5, -100, 200)
	f12 := feature("m12", 12, -100, 200)
	click := surface.Point{X: 202, Y: 101}

	for name, candidates := range map[string][]surface.Feature{
		"low route first":  {f5, f12},
		"high route first": {f12, f5},
	} {
		t.Run(name, func(t *testing.T) {
			got, ok := Resolve(click, candidates, shapes, proj)
			if !ok {
				t.Fatal("expected a selection")
			}
			if got.RouteID != 5 {
				t.Errorf("selected route %d, want 5", got.RouteID)
			}
		})
	}
}

func TestResolveExactEllipseBeatsBoundingBox(t *testing.T) {
	// The click lands inside the wide marker's bounding box but outside its
	// ellipse, and inside a nearby narrow marker's ellipse. A bbox test
	// would pick the wide one.
	proj := gridProjector{scale: 1}
	shapes := shapeMap{
		"wide":   {Rx: 20, Ry: 8},
		"narrow": {Rx: 9, Ry: 9},
	}
	wide := feature("wide", 3, 0, 0)       // center (0, 0)
	narrow := feature("narrow", 7, 10, 16) // center (16, -10)
	click := surface.Point{X: 17, Y: -7}   // bbox corner of wide, ellipse miss

	got, ok := Resolve(click, []surface.Feature{wide, narrow}, shapes, proj)
	if !ok {
		t.Fatal("expected a selection")
	}
	if got.RouteID != 7 {
		t.Errorf("selected route %d, want 7 (exact ellipse containment)", got.RouteID)
	}
}

func TestResolveMissingShapeSkipped(t *testing.T) {
	proj := gridProjector{scale: 1}
	shapes := shapeMap{"known": {Rx: 10, Ry: 10}}
	unknown := feature("unknown", 1, 0, 0)
	known := feature("known", 9, 0, 0)

	got, ok := Resolve(surface.Point{}, []surface.Feature{unknown, known}, shapes, proj)
	if !ok {
		t.Fatal("expected a selection")
	}
	if got.RouteID != 9 {
		t.Errorf("selected route %d, want 9 (uncached candidate skipped)", got.RouteID)
	}
}

func TestResolveNoContainmentNoSelection(t *testing.T) {
	proj := gridProjector{scale: 1}
	shapes := shapeMap{"m": {Rx: 5, Ry: 5}}
	f := feature("m", 4, 0, 0)

	if _, ok := Resolve(surface.Point{X: 50, Y: 50}, []surface.Feature{f}, shapes, proj); ok {
		t.Error("expected no selection for a distant click")
	}
}

func TestResolveNoCandidates(t *testing.T) {
	if _, ok := Resolve(surface.Point{}, nil, shapeMap{}, gridProjector{scale: 1}); ok {
		t.Error("expected no selection with no candidates")
	}
}
