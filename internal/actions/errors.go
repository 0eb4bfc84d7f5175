package actions

import (
	"errors"
	"fmt"
)

const (
	unknownSeverityMessageConstant       = "unknown severity"
	unknownSeverityErrorTemplateConstant = "%w: %q"
	actionPanicErrorTemplateConstant     = "panic: %v"
	fatalErrorEmptyMessageConstant       = "fatal error"
)

// ErrUnknownSeverity indicates a severity name outside the fixed enumeration.
var ErrUnknownSeverity = errors.New(unknownSeverityMessageConstant)

// FatalError is raised by the ERROR severity's output primitive.
type FatalError struct {
	Message string
}

// NewFatalError constructs a FatalError carrying the rendered message.
func NewFatalError(message string) *FatalError {
	return &FatalError{Message: message}
}

// Error implements error.
func (fatalError *FatalError) Error() string {
	if fatalError == nil || len(fatalError.Message) == 0 {
		return fatalErrorEmptyMessageConstant
	}
	return fatalError.Message
}

func newUnknownSeverityError(severityName string) error {
	return fmt.Errorf(unknownSeverityErrorTemplateConstant, ErrUnknownSeverity, severityName)
}
