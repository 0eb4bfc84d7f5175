// Package utils exposes reusable helpers consumed by the CLI and the output layer.
//
// It houses the ConfigurationLoader and LoggerFactory abstractions that
// integrate Viper, environment variables, and zap logging, along with a
// flushing writer used for immediate console output.
package utils
