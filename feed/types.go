package feed

// VehicleArrays is the struct-of-arrays body of a vehicle frame. All slices
// are parallel; DirectionDegrees entries are null for vehicles without a
// known heading.
type VehicleArrays struct {
	RouteIDs         []int     `json:"routeIds"`
	ShapeIDs         []string  `json:"shapeIds"`
	Timestamps       []int64   `json:"timestamps"`
	CompressedLats   [][]int64 `json:"compressedLats"`
	CompressedLons   [][]int64 `json:"compressedLons"`
	DirectionDegrees []*int    `json:"directionDegrees"`
}

// VehicleFrame is one streaming update: the complete current vehicle set
// plus the static-data version it was built against. A change in
// ActiveStaticKey across frames signals that cached shape tables are stale.
type VehicleFrame struct {
	Vehicles        VehicleArrays `json:"vehicles"`
	ActiveStaticKey string        `json:"activeStaticKey"`
}

// ShapeArrays is the struct-of-arrays body of a static shape payload,
// compressed identically to vehicle trajectories.
type ShapeArrays struct {
	IDs            []string  `json:"ids"`
	CompressedLats [][]int64 `json:"compressedLats"`
	CompressedLons [][]int64 `json:"compressedLons"`
}

// ShapePayload is the response to a static-data fetch for one version key.
type ShapePayload struct {
	Shapes ShapeArrays `json:"shapes"`
}

// Vehicle is a decoded vehicle. Lats/Lons hold the trajectory with the
// newest position last; both have equal length. DirectionDegrees is nil
// when the producer sent no heading.
type Vehicle struct {
	RouteID          int
	ShapeID          string
	Timestamp        int64
	Lats             []float64
	Lons             []float64
	DirectionDegrees *int
}

// Shape is a decoded route-variant polyline.
type Shape struct {
	ID   string
	Lats []float64
	Lons []float64
}
