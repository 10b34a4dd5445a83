// Package config loads and validates the tracker's YAML configuration.
//
// Configuration is read from a single file, validated with struct tags, and
// padded with defaults for every knob left unset.
package config
