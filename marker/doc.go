// Package marker synthesizes vehicle glyph rasters and memoizes them.
//
// A glyph is a labeled ellipse; with a known heading it grows an asymmetric
// teardrop tip pointing in the travel direction. Visual attributes are
// collapsed into a VisualKey (label, quantized direction bucket, highlight
// flag) so that vehicles sharing attributes share one rendered image. The
// Cache renders and registers each key exactly once with the rendering
// surface and keeps the glyph's hit-test ellipse for the picker.
package marker
