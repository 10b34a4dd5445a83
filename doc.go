// Package tracker wires the live transit feed to a rendering surface: it
// subscribes to the vehicle stream, decodes delta-compressed frames,
// synthesizes and caches marker images, publishes per-layer feature
// collections, and resolves clicks to vehicles with exact ellipse hit
// testing.
//
// The package is surface-agnostic. Callers provide a surface.Surface
// implementation (image registry, layer writer, projector, feature source)
// and receive layer updates through it; the tracker never draws to a screen
// itself.
package tracker
