package vehiclestate

import (
	"strconv"

	"github.com/theoremus-urban-solutions/transit-tracker/coord"
	"github.com/theoremus-urban-solutions/transit-tracker/feed"
	"github.com/theoremus-urban-solutions/transit-tracker/marker"
	"github.com/theoremus-urban-solutions/transit-tracker/surface"
)

// Store is the single source of truth for the current vehicle set and the
// selection. It is not safe for concurrent use; the owning client
// serializes access.
type Store struct {
	vehicles []feed.Vehicle

	highlightRoute int
	hasHighlight   bool
	selectedShape  string

	directionBucketDeg int
}

// NewStore creates an empty store. directionBucketDeg controls heading
// quantization for marker keys; non-positive uses the marker default.
func NewStore(directionBucketDeg int) *Store {
	return &Store{directionBucketDeg: directionBucketDeg}
}

// Apply replaces the vehicle set wholesale.
func (s *Store) Apply(vehicles []feed.Vehicle) {
	s.vehicles = vehicles
}

// Vehicles returns the current vehicle set.
func (s *Store) Vehicles() []feed.Vehicle { return s.vehicles }

// Select sets the highlight criterion and the selected shape id.
func (s *Store) Select(routeID int, shapeID string) {
	s.highlightRoute = routeID
	s.hasHighlight = true
	s.selectedShape = shapeID
}

// ClearSelection drops both the highlight criterion and the selected shape.
func (s *Store) ClearSelection() {
	s.highlightRoute = 0
	s.hasHighlight = false
	s.selectedShape = ""
}

// Selected reports the current selection, if any.
func (s *Store) Selected() (routeID int, shapeID string, ok bool) {
	return s.highlightRoute, s.selectedShape, s.hasHighlight
}

// Collections derives the base layer (all vehicles) and the highlight
// overlay (vehicles matching the criterion, re-rendered with the highlight
// flag). Vehicles without a position and vehicles whose marker cannot be
// produced are skipped; the frame still renders.
func (s *Store) Collections(cache *marker.Cache) (base, highlight surface.FeatureCollection) {
	for _, v := range s.vehicles {
		if f, ok := s.feature(cache, v, false); ok {
			base.Features = append(base.Features, f)
		}
		if s.hasHighlight && v.RouteID == s.highlightRoute {
			if f, ok := s.feature(cache, v, true); ok {
				highlight.Features = append(highlight.Features, f)
			}
		}
	}
	return base, highlight
}

func (s *Store) feature(cache *marker.Cache, v feed.Vehicle, highlighted bool) (surface.Feature, bool) {
	n := len(v.Lats)
	if n == 0 || len(v.Lons) != n {
		return surface.Feature{}, false
	}

	dir := marker.NoDirection
	if v.DirectionDegrees != nil {
		dir = marker.BucketDirection(*v.DirectionDegrees, s.directionBucketDeg)
	} else if d, ok := coord.TrajectoryDirectionDegrees(v.Lats, v.Lons); ok {
		dir = marker.BucketDirection(d, s.directionBucketDeg)
	}

	label := strconv.Itoa(v.RouteID)
	m, err := cache.GetOrCreate(marker.VisualKey{
		Label:           label,
		DirectionBucket: dir,
		Highlighted:     highlighted,
	})
	if err != nil {
		return surface.Feature{}, false
	}

	return surface.Feature{
		ImageID: m.ImageID,
		Label:   label,
		RouteID: v.RouteID,
		ShapeID: v.ShapeID,
		Lat:     v.Lats[n-1],
		Lon:     v.Lons[n-1],
		SortKey: -float64(v.RouteID),
	}, true
}
