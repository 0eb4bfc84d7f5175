// Package flags provides the value types and helpers behind herald's command-line flags.
package flags
