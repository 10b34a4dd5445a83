package feed

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/theoremus-urban-solutions/transit-tracker/coord"
)

// ErrLengthMismatch marks parallel arrays of unequal length. The frame (or
// shape payload) carrying them is rejected whole.
var ErrLengthMismatch = errors.New("parallel array length mismatch")

// ParseFrame unmarshals one streaming message into a VehicleFrame.
func ParseFrame(data []byte) (*VehicleFrame, error) {
	var f VehicleFrame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse vehicle frame: %w", err)
	}
	return &f, nil
}

func (a *VehicleArrays) validate() error {
	n := len(a.RouteIDs)
	if len(a.ShapeIDs) != n || len(a.Timestamps) != n ||
		len(a.CompressedLats) != n || len(a.CompressedLons) != n ||
		len(a.DirectionDegrees) != n {
		return fmt.Errorf("%w: routeIds=%d shapeIds=%d timestamps=%d lats=%d lons=%d directions=%d",
			ErrLengthMismatch, n, len(a.ShapeIDs), len(a.Timestamps),
			len(a.CompressedLats), len(a.CompressedLons), len(a.DirectionDegrees))
	}
	return nil
}

// DecodeFrame decompresses a frame's vehicle arrays against the reference
// frame. Decoding carries no state across vehicles. A length mismatch in
// the parallel arrays, or between a vehicle's lat and lon sequences, fails
// the whole frame.
func DecodeFrame(f *VehicleFrame, ref coord.ReferenceFrame) ([]Vehicle, error) {
	a := &f.Vehicles
	if err := a.validate(); err != nil {
		return nil, err
	}
	out := make([]Vehicle, 0, len(a.RouteIDs))
	for i := range a.RouteIDs {
		if len(a.CompressedLats[i]) != len(a.CompressedLons[i]) {
			return nil, fmt.Errorf("vehicle %d: %w: lats=%d lons=%d",
				i, ErrLengthMismatch, len(a.CompressedLats[i]), len(a.CompressedLons[i]))
		}
		out = append(out, Vehicle{
			RouteID:          a.RouteIDs[i],
			ShapeID:          a.ShapeIDs[i],
			Timestamp:        a.Timestamps[i],
			Lats:             ref.DecodeLats(a.CompressedLats[i]),
			Lons:             ref.DecodeLons(a.CompressedLons[i]),
			DirectionDegrees: a.DirectionDegrees[i],
		})
	}
	return out, nil
}

// DecodeShapes decompresses a shape payload into a table keyed by shape id.
func DecodeShapes(p *ShapePayload, ref coord.ReferenceFrame) (map[string]Shape, error) {
	a := &p.Shapes
	n := len(a.IDs)
	if len(a.CompressedLats) != n || len(a.CompressedLons) != n {
		return nil, fmt.Errorf("%w: ids=%d lats=%d lons=%d",
			ErrLengthMismatch, n, len(a.CompressedLats), len(a.CompressedLons))
	}
	out := make(map[string]Shape, n)
	for i, id := range a.IDs {
		if len(a.CompressedLats[i]) != len(a.CompressedLons[i]) {
			return nil, fmt.Errorf("shape %q: %w: lats=%d lons=%d",
				id, ErrLengthMismatch, len(a.CompressedLats[i]), len(a.CompressedLons[i]))
		}
		out[id] = Shape{
			ID:   id,
			Lats: ref.DecodeLats(a.CompressedLats[i]),
			Lons: ref.DecodeLons(a.CompressedLons[i]),
		}
	}
	return out, nil
}
