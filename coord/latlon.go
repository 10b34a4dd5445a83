package coord

import "math"

const earthRadiusMeters = 6371000

// directionThresholdMeters is how far back along a trajectory a point must
// be before it is trusted to define the vehicle's heading. GPS jitter below
// this distance produces meaningless bearings.
const directionThresholdMeters = 20

// HaversineMeters computes the great-circle distance in meters between two
// points given in decimal degrees.
func HaversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := phi2 - phi1
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(0.5*dPhi)*math.Sin(0.5*dPhi) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(0.5*dLambda)*math.Sin(0.5*dLambda)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}

// BearingRadians returns the planar angle of the vector from point 1 to
// point 2, with north as 0 and east as pi/2. The longitude difference is
// shrunk by cos(lat) to approximate local 2D space; the degree-to-radian
// conversion cancels in the ratio.
func BearingRadians(lat1, lon1, lat2, lon2 float64) float64 {
	dx := (lon2 - lon1) * math.Cos(lat1*math.Pi/180)
	dy := lat2 - lat1
	return math.Atan2(dx, dy)
}

// TrajectoryDirectionDegrees derives a heading from a trajectory whose
// newest position is last. It walks backwards to the first point further
// than the jitter threshold from the newest position and returns the
// bearing from that point to the newest one, normalized to [0, 360).
// It reports false when no point is distant enough.
func TrajectoryDirectionDegrees(lats, lons []float64) (int, bool) {
	n := len(lats)
	if n < 2 || len(lons) != n {
		return 0, false
	}
	curLat, curLon := lats[n-1], lons[n-1]
	for i := n - 2; i >= 0; i-- {
		if HaversineMeters(curLat, curLon, lats[i], lons[i]) > directionThresholdMeters {
			rad := BearingRadians(lats[i], lons[i], curLat, curLon)
			deg := int(math.Round(rad * 180 / math.Pi))
			if deg < 0 {
				deg += 360
			}
			return deg % 360, true
		}
	}
	return 0, false
}
