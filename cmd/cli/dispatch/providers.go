package dispatch

import (
	"errors"

	"go.uber.org/zap"

	"github.com/temirov/herald/internal/actions"
)

const dispatcherUnavailableMessageConstant = "action dispatcher is not initialized"

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// DispatcherProvider supplies the dispatcher prepared by the application.
type DispatcherProvider func() *actions.Dispatcher

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func resolveDispatcher(provider DispatcherProvider) (*actions.Dispatcher, error) {
	if provider == nil {
		return nil, errors.New(dispatcherUnavailableMessageConstant)
	}
	dispatcher := provider()
	if dispatcher == nil {
		return nil, errors.New(dispatcherUnavailableMessageConstant)
	}
	return dispatcher, nil
}
