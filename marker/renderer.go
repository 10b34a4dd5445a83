package marker

import (
	"image"
	"image/color"
	"math"
	"sort"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// EllipseShape is the hit-test geometry of a glyph: semi-axes of the base
// ellipse in device-independent pixels. The teardrop tip extension is
// deliberately excluded so that clicks select the marker body, not the
// pointer.
type EllipseShape struct {
	Rx float64
	Ry float64
}

// Contains reports whether the offset (dx, dy) from the ellipse center lies
// inside the ellipse: dx^2*ry^2 + dy^2*rx^2 <= rx^2*ry^2.
func (e EllipseShape) Contains(dx, dy float64) bool {
	return dx*dx*e.Ry*e.Ry+dy*dy*e.Rx*e.Rx <= e.Rx*e.Rx*e.Ry*e.Ry
}

// Glyph geometry in device-independent pixels.
const (
	semiMinorPx      = 9.0  // vertical semi-axis of the base ellipse
	labelPaddingPx   = 4.0  // horizontal padding around the label
	tipExtensionPx   = 7.0  // extra radius at the teardrop tip
	tipHalfWindowDeg = 50.0 // half-window of the tip falloff
	shadowOffsetPx   = 2.0
	canvasMarginPx   = 2.0

	// outlineSamples is the number of angular samples of the glyph outline.
	outlineSamples = 90
)

// Fill colors: vehicle category (short label = category A, typically trams;
// longer = category B, buses) crossed with the highlight flag.
var (
	fillCategoryA          = color.RGBA{0x2b, 0x6c, 0xb0, 0xff}
	fillCategoryB          = color.RGBA{0x2f, 0x85, 0x5a, 0xff}
	fillCategoryAHighlight = color.RGBA{0xe5, 0x3e, 0x3e, 0xff}
	fillCategoryBHighlight = color.RGBA{0xdd, 0x6b, 0x20, 0xff}
	shadowColor            = color.RGBA{0x00, 0x00, 0x00, 0x50}
	labelColor             = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

// Renderer turns visual keys into glyph rasters. PixelRatio scales every
// pixel dimension of the raster for high-density displays; the hit-test
// ellipse stays in device-independent units because click coordinates live
// in that space.
type Renderer struct {
	PixelRatio float64
}

type point struct {
	x float64
	y float64
}

// HitShape returns the base-ellipse hit geometry for a key without
// rendering it.
func (r *Renderer) HitShape(key VisualKey) EllipseShape {
	rx, ry := baseSemiAxes(key.Label)
	return EllipseShape{Rx: rx, Ry: ry}
}

// Render rasterizes the glyph for a key: drop shadow, filled body polygon,
// centered label. The returned shape is the base ellipse regardless of any
// directional tip.
func (r *Renderer) Render(key VisualKey) (*image.RGBA, EllipseShape) {
	pr := r.PixelRatio
	if pr <= 0 {
		pr = 1
	}

	rx, ry := baseSemiAxes(key.Label)
	shape := EllipseShape{Rx: rx, Ry: ry}

	// The canvas must fit the widest radius plus tip, shadow and margin in
	// any direction.
	extent := rx + tipExtensionPx + shadowOffsetPx + canvasMarginPx
	size := int(math.Ceil(2 * extent * pr))
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	cx := float64(size) / 2
	cy := float64(size) / 2

	outline := glyphOutline(rx*pr, ry*pr, key.DirectionBucket, tipExtensionPx*pr)

	fillPolygon(img, translate(outline, cx+shadowOffsetPx*pr, cy+shadowOffsetPx*pr), shadowColor)
	fillPolygon(img, translate(outline, cx, cy), fillColor(key))
	drawLabel(img, key.Label, cx, cy, pr)

	return img, shape
}

// baseSemiAxes sizes the plain ellipse to the label length.
func baseSemiAxes(label string) (rx, ry float64) {
	face := basicfont.Face7x13
	textHalf := float64(len(label)*face.Advance) / 2
	rx = textHalf + labelPaddingPx
	if rx < semiMinorPx {
		rx = semiMinorPx
	}
	return rx, semiMinorPx
}

func fillColor(key VisualKey) color.RGBA {
	shortLabel := len(key.Label) < 3
	switch {
	case shortLabel && key.Highlighted:
		return fillCategoryAHighlight
	case shortLabel:
		return fillCategoryA
	case key.Highlighted:
		return fillCategoryBHighlight
	default:
		return fillCategoryB
	}
}

// glyphOutline samples the glyph boundary around the origin. Angles are
// measured from north, clockwise, matching heading degrees. Within the
// +/-50 degree window around the direction the radius eases from the plain
// ellipse radius toward the extended tip radius; elsewhere it is the plain
// ellipse. A NoDirection bucket yields the plain ellipse everywhere.
func glyphOutline(rx, ry float64, directionDeg int, tip float64) []point {
	pts := make([]point, 0, outlineSamples)
	for i := 0; i < outlineSamples; i++ {
		theta := 2 * math.Pi * float64(i) / outlineSamples
		rr := ellipseRadius(rx, ry, theta)
		if directionDeg != NoDirection {
			d := angleDiffDeg(theta*180/math.Pi, float64(directionDeg))
			if d < tipHalfWindowDeg {
				rr += easeInOutSquare(1-d/tipHalfWindowDeg) * tip
			}
		}
		pts = append(pts, point{x: rr * math.Sin(theta), y: -rr * math.Cos(theta)})
	}
	return pts
}

// ellipseRadius is the boundary distance of an axis-aligned ellipse at an
// angle measured from north.
func ellipseRadius(rx, ry, theta float64) float64 {
	s, c := math.Sin(theta), math.Cos(theta)
	return rx * ry / math.Sqrt(ry*ry*s*s+rx*rx*c*c)
}

// angleDiffDeg is the absolute angular distance in degrees, in [0, 180].
func angleDiffDeg(a, b float64) float64 {
	d := math.Mod(a-b, 360)
	if d < 0 {
		d += 360
	}
	if d > 180 {
		d = 360 - d
	}
	return d
}

// easeInOutSquare is a squared ease-in/out: slow at both ends, steepest in
// the middle. t in [0, 1].
func easeInOutSquare(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	u := 1 - t
	return 1 - 2*u*u
}

func translate(pts []point, dx, dy float64) []point {
	out := make([]point, len(pts))
	for i, p := range pts {
		out[i] = point{x: p.x + dx, y: p.y + dy}
	}
	return out
}

// fillPolygon scan-fills a closed polygon with even-odd parity, sampling
// scanlines at pixel centers.
func fillPolygon(img *image.RGBA, pts []point, c color.RGBA) {
	if len(pts) < 3 {
		return
	}
	bounds := img.Bounds()

	minY, maxY := pts[0].y, pts[0].y
	for _, p := range pts {
		minY = math.Min(minY, p.y)
		maxY = math.Max(maxY, p.y)
	}
	y0 := int(math.Floor(minY))
	y1 := int(math.Ceil(maxY))
	if y0 < bounds.Min.Y {
		y0 = bounds.Min.Y
	}
	if y1 >= bounds.Max.Y {
		y1 = bounds.Max.Y - 1
	}

	xs := make([]float64, 0, 8)
	for y := y0; y <= y1; y++ {
		fy := float64(y) + 0.5
		xs = xs[:0]
		for i := range pts {
			a := pts[i]
			b := pts[(i+1)%len(pts)]
			if (a.y <= fy && b.y > fy) || (b.y <= fy && a.y > fy) {
				t := (fy - a.y) / (b.y - a.y)
				xs = append(xs, a.x+t*(b.x-a.x))
			}
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			x0 := int(math.Ceil(xs[i] - 0.5))
			if x0 < bounds.Min.X {
				x0 = bounds.Min.X
			}
			for x := x0; float64(x)+0.5 <= xs[i+1] && x < bounds.Max.X; x++ {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

// drawLabel centers the label at (cx, cy). The bitmap face is drawn at its
// native size and block-upscaled by the rounded pixel ratio so text stays
// crisp on high-density canvases.
func drawLabel(img *image.RGBA, label string, cx, cy float64, pr float64) {
	if label == "" {
		return
	}
	face := basicfont.Face7x13
	scale := int(math.Round(pr))
	if scale < 1 {
		scale = 1
	}

	if scale == 1 {
		d := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(labelColor),
			Face: face,
		}
		w := d.MeasureString(label)
		d.Dot = fixed.Point26_6{
			X: fixed.Int26_6(int(cx*64)) - w/2,
			Y: fixed.Int26_6(int(cy*64)) + fixed.I(face.Ascent-face.Descent)/2,
		}
		d.DrawString(label)
		return
	}

	// Render at 1x into a scratch image, then replicate each pixel as a
	// scale x scale block around the center.
	tw := len(label)*face.Advance + 2
	th := face.Height + 2
	tmp := image.NewRGBA(image.Rect(0, 0, tw, th))
	d := &font.Drawer{
		Dst:  tmp,
		Src:  image.NewUniform(labelColor),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(1),
			Y: fixed.I(1 + face.Ascent),
		},
	}
	d.DrawString(label)

	ox := int(cx) - tw*scale/2
	oy := int(cy) - th*scale/2
	bounds := img.Bounds()
	for ty := 0; ty < th; ty++ {
		for tx := 0; tx < tw; tx++ {
			c := tmp.RGBAAt(tx, ty)
			if c.A == 0 {
				continue
			}
			for sy := 0; sy < scale; sy++ {
				for sx := 0; sx < scale; sx++ {
					x := ox + tx*scale + sx
					y := oy + ty*scale + sy
					if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
						img.SetRGBA(x, y, c)
					}
				}
			}
		}
	}
}
