// Package config loads and validates the mensural2mei configuration from a
// TOML file, expanding paths and filling defaults so the rest of the
// program never sees an unset directory.
package config
