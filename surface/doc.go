// Package surface defines the rendering-surface collaborator consumed by
// the tracking client: image registration, per-layer feature replacement,
// geographic-to-pixel projection and spatial feature queries.
//
// The package is interface-only plus the feature model; the actual map
// rendering implementation lives outside this module. Nop provides a
// do-nothing implementation for headless runs and tests.
package surface
