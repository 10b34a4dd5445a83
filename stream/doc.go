// Package stream maintains a websocket subscription to the live vehicle
// feed: dial, read loop, linear-backoff reconnects, and race-free teardown.
//
// The manager owns its connection lifecycle on internal goroutines and
// reports received messages through a single callback. Stop is terminal;
// a stopped manager never dials again.
package stream
