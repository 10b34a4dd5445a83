// Package feed defines the wire format of inbound vehicle frames and shape
// payloads and decodes them into domain types.
//
// Vehicle frames arrive as struct-of-arrays JSON: all vehicle arrays are
// parallel (index i describes vehicle i) and coordinate arrays are
// delta-compressed against the fixed reference frame (see package coord).
// Producer and consumer share a fixed schema, so a length mismatch between
// parallel arrays is out of contract and rejects the whole frame rather
// than being silently patched.
//
// A secondary ingestion path accepts raw GTFS-Realtime FeedMessages for
// deployments that bypass the compressed frame producer.
package feed
