// Package config loads, normalizes, and validates condodocs configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the CONDODOCS_LOG_LEVEL
// environment override. The Config type centralizes every knob the organizing
// commands need: input and output folders, identifier positions, bucket names,
// similarity settings, and the conflict policy used when a destination file
// already exists.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical enum values, and clear validation errors.
package config
