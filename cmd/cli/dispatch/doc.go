// Package dispatch contains the cobra commands that invoke and inspect the action dispatcher.
package dispatch
