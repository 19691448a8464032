// Package config loads, normalizes, and validates speechset configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks loaded via
// a project .env file. Always obtain settings through this package so
// downstream code receives sanitized paths, canonical log formats, and clear
// validation errors.
package config
