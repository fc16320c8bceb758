// Package logging constructs the slog logger used across mensural2mei,
// with a human-oriented console handler and a JSON handler for machine
// consumption.
package logging
