package coord

import "math"

// ReferenceFrame fixes the origin coordinates and decimal precision against
// which delta-compressed sequences are decoded. It is a protocol parameter
// agreed with the producer, not negotiated at runtime.
type ReferenceFrame struct {
	Digits int
	Lat    float64
	Lon    float64
}

// ZagrebFrame is the reference frame used by the ZET feed.
var ZagrebFrame = ReferenceFrame{Digits: 6, Lat: 45.815, Lon: 15.9819}

// Decode expands a delta-compressed sequence into absolute values:
// values[i] = values[i-1] + deltas[i]*10^-digits, with values[-1] = ref.
//
// No validation happens here. Malformed input yields numerically wrong but
// non-crashing output; the schema contract lives with the caller.
func Decode(ref float64, digits int, deltas []int64) []float64 {
	scale := math.Pow(10, -float64(digits))
	out := make([]float64, len(deltas))
	prev := ref
	for i, d := range deltas {
		prev += float64(d) * scale
		out[i] = prev
	}
	return out
}

// Encode is the inverse of Decode: each value becomes a signed, scaled
// delta from the previous one (the first from ref). Rounding matches the
// producer: add 0.5 and truncate toward zero.
func Encode(ref float64, digits int, values []float64) []int64 {
	factor := math.Pow(10, float64(digits))
	out := make([]int64, len(values))
	prev := ref
	for i, v := range values {
		out[i] = int64((v-prev)*factor + 0.5)
		prev = v
	}
	return out
}

// DecodeLats decodes a latitude delta sequence against the frame origin.
func (f ReferenceFrame) DecodeLats(deltas []int64) []float64 {
	return Decode(f.Lat, f.Digits, deltas)
}

// DecodeLons decodes a longitude delta sequence against the frame origin.
func (f ReferenceFrame) DecodeLons(deltas []int64) []float64 {
	return Decode(f.Lon, f.Digits, deltas)
}
