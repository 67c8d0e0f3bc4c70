// Package config loads, normalizes, and validates squeeze configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The defaults reproduce the stock encode
// profile, so squeeze runs with no configuration file at all; the file only
// exists to override tool locations, the profile, or logging.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
