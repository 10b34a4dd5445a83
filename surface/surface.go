package surface

import "image"

// Layer names owned by the tracking client. The highlight layer draws above
// the base vehicle layer; the route shape layer carries the selected route's
// polyline.
const (
	LayerVehicles   = "vehicles"
	LayerHighlight  = "vehicles-highlight"
	LayerRouteShape = "route-shape"
)

// Point is a position in device-independent pixel coordinates, the space
// click events arrive in.
type Point struct {
	X float64
	Y float64
}

// Feature is a point feature placed on a vehicle layer. SortKey encodes
// z-order: greater draws (and selects) on top.
type Feature struct {
	ImageID string
	Label   string
	RouteID int
	ShapeID string
	Lat     float64
	Lon     float64
	SortKey float64
}

// LineFeature is a polyline feature, used for the selected route's shape.
type LineFeature struct {
	ShapeID string
	Lats    []float64
	Lons    []float64
}

// FeatureCollection is the wholesale content of one layer. Layers are
// always replaced as a unit, never patched.
type FeatureCollection struct {
	Features []Feature
	Lines    []LineFeature
}

// ImageRegistry registers raster images under stable ids. Registering the
// same id twice is the caller's bug; implementations may reject it.
type ImageRegistry interface {
	AddImage(id string, img image.Image) error
	HasImage(id string) bool
}

// LayerWriter replaces the full feature content of a named layer.
type LayerWriter interface {
	SetFeatures(layer string, fc FeatureCollection)
}

// Projector maps geographic coordinates to device-independent pixels.
type Projector interface {
	Project(lat, lon float64) Point
}

// FeatureSource queries rendered point features at a pixel position,
// restricted to the named layers. This is the surface's own spatial index;
// exact hit-testing on the result is the client's job.
type FeatureSource interface {
	FeaturesAt(p Point, layers []string) []Feature
}

// Surface bundles everything the tracking client needs from the map.
type Surface interface {
	ImageRegistry
	LayerWriter
	Projector
	FeatureSource
}
