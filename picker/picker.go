package picker

import (
	"github.com/theoremus-urban-solutions/transit-tracker/marker"
	"github.com/theoremus-urban-solutions/transit-tracker/surface"
)

// ShapeLookup resolves a registered image id to its hit-test ellipse.
// *marker.Cache satisfies it.
type ShapeLookup interface {
	ShapeFor(imageID string) (marker.EllipseShape, bool)
}

// Resolve finds the topmost candidate whose hit ellipse contains the click.
// Candidates without a cached shape are skipped, never an error. Among
// containing candidates the greatest SortKey wins; features carry
// SortKey = -routeID, so the lowest route number sits on top. The second
// return is false when nothing contains the click.
func Resolve(click surface.Point, candidates []surface.Feature, shapes ShapeLookup, proj surface.Projector) (surface.Feature, bool) {
	var best surface.Feature
	found := false
	for _, f := range candidates {
		shape, ok := shapes.ShapeFor(f.ImageID)
		if !ok {
			continue
		}
		center := proj.Project(f.Lat, f.Lon)
		dx := click.X - center.X
		dy := click.Y - center.Y
		if !shape.Contains(dx, dy) {
			continue
		}
		if !found || f.SortKey > best.SortKey {
			best = f
			found = true
		}
	}
	return best, found
}
