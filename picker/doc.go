// Package picker resolves clicks among overlapping point markers.
//
// The rendering surface's spatial index supplies candidates near the click;
// the picker then tests the click against each candidate's exact hit
// ellipse and breaks ties by z-order. Exact containment matters: bounding
// boxes of visually disjoint glyphs overlap, and a box test would select
// the wrong vehicle.
package picker
