// Package output provides the console primitives consumed by the action dispatcher.
//
// ConsoleOutput writes human-readable lines to standard output and standard
// error, while LoggerOutput renders the same messages through a zap logger so
// that dispatch results can share a sink with diagnostic telemetry.
package output
