package feed

import (
	"fmt"
	"strconv"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// ParseFeedMessage unmarshals a raw GTFS-Realtime protobuf feed.
func ParseFeedMessage(data []byte) (*gtfsrtpb.FeedMessage, error) {
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(data, &fm); err != nil {
		return nil, fmt.Errorf("parse gtfs-rt feed: %w", err)
	}
	return &fm, nil
}

// VehiclesFromFeedMessage extracts vehicle positions from a GTFS-Realtime
// feed as single-point trajectories. Entities without a position, a trip,
// or a numeric route id are skipped. The position's bearing, when present,
// becomes the heading; otherwise DirectionDegrees stays nil and headings
// accrue from later frames.
func VehiclesFromFeedMessage(fm *gtfsrtpb.FeedMessage) []Vehicle {
	if fm == nil {
		return nil
	}
	out := make([]Vehicle, 0, len(fm.Entity))
	for _, e := range fm.Entity {
		if e == nil || e.Vehicle == nil {
			continue
		}
		vp := e.Vehicle
		if vp.Position == nil || vp.Position.Latitude == nil || vp.Position.Longitude == nil {
			continue
		}
		if vp.Trip == nil || vp.Trip.RouteId == nil {
			continue
		}
		routeID, err := strconv.Atoi(*vp.Trip.RouteId)
		if err != nil {
			continue
		}
		var ts int64
		if vp.Timestamp != nil {
			ts = int64(*vp.Timestamp)
		}
		var dir *int
		if vp.Position.Bearing != nil {
			d := int(*vp.Position.Bearing)
			dir = &d
		}
		out = append(out, Vehicle{
			RouteID:          routeID,
			Timestamp:        ts,
			Lats:             []float64{float64(*vp.Position.Latitude)},
			Lons:             []float64{float64(*vp.Position.Longitude)},
			DirectionDegrees: dir,
		})
	}
	return out
}
