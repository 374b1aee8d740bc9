// Package main hosts the hdrgroup CLI entrypoint and command graph.
//
// The Cobra-based command tree resolves configuration, builds the structured
// logger, and hands shoot directories to the workflow runner. Results are
// printed as go-pretty tables or, with --json, as machine-readable documents
// on stdout; diagnostics always go to stderr through slog.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
