// Package catalog loads declarative action definitions from YAML files or
// configuration values and registers them with an action dispatcher.
package catalog
