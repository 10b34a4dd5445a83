package marker

import (
	"fmt"
	"math"
)

// NoDirection marks a key whose glyph has no teardrop tip.
const NoDirection = -1

// DefaultDirectionBucketDegrees is the default quantization step for
// headings. Coarse buckets bound the number of distinct rendered images.
const DefaultDirectionBucketDegrees = 12

// VisualKey identifies one rendered marker image. Equal keys share one
// raster and one registration with the rendering surface.
type VisualKey struct {
	Label           string
	DirectionBucket int // NoDirection or a quantized degree in [0, 360)
	Highlighted     bool
}

// BucketDirection quantizes a heading in degrees to the nearest bucket,
// normalized to [0, 360). A non-positive bucket size falls back to the
// default.
func BucketDirection(deg, bucketDeg int) int {
	if bucketDeg <= 0 {
		bucketDeg = DefaultDirectionBucketDegrees
	}
	b := int(math.Round(float64(deg)/float64(bucketDeg))) * bucketDeg
	b %= 360
	if b < 0 {
		b += 360
	}
	return b
}

// ImageID is the deterministic id the raster is registered under.
func (k VisualKey) ImageID() string {
	h := 0
	if k.Highlighted {
		h = 1
	}
	return fmt.Sprintf("marker/%s/%d/%d", k.Label, k.DirectionBucket, h)
}
