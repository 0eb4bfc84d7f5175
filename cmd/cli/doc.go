// Package cli constructs the herald command-line interface. It wires the
// Cobra command hierarchy, the configuration loader, structured logging, and
// the action dispatcher populated from inline configuration and catalog files.
package cli
