// Package main hosts the mensural2mei CLI entrypoint and command graph.
//
// The Cobra-based command tree converts detection files into MEI and
// Humdrum **mens output, lists the conversion catalog, and scaffolds
// configuration. It centralizes configuration resolution and logging setup
// so subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
