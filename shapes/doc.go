// Package shapes fetches and caches route-variant polylines.
//
// Shape tables are versioned by the static-data key the stream advertises
// with every vehicle frame. The cache holds exactly one table, for the
// current key; a key change invalidates the whole table and the next Ensure
// refetches it. Tables are never patched incrementally.
package shapes
