// Package vehiclestate holds the latest decoded vehicle set and the
// highlight criterion, and derives the per-layer feature collections the
// rendering surface consumes.
//
// Vehicle sets are replaced wholesale per frame, never patched, so
// out-of-order frames degrade to last-applied-wins. Highlighting duplicates
// the matching vehicles into a separate overlay collection instead of
// restyling them in place, which keeps base-layer updates independent of
// selection state.
package vehiclestate
