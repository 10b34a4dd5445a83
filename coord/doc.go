// Package coord implements the delta-compressed coordinate codec shared
// with the feed producer, plus the spherical geometry helpers used to
// derive vehicle headings from trajectories.
//
// Coordinates travel as signed integer deltas against a fixed reference
// frame (origin latitude/longitude and decimal precision). Decoding is
// pure and stateless across sequences: each vehicle's or shape's arrays
// decode independently against the same frame.
package coord
