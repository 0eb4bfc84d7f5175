package actions

import (
	"fmt"
	"strings"
)

const (
	resultSeparatorConstant = " "
	prefixTemplateConstant  = "%s %s:"
)

// Method performs the work of an action and returns the values to print.
type Method func(arguments ...any) ([]any, error)

// Action describes a named unit of work registered with a Dispatcher.
type Action struct {
	// Name holds the normalized name once the action is stored.
	Name string
	// Method is invoked with the invocation arguments.
	Method Method
	// Severity optionally names the severity the action emits through; empty means ACTION.
	Severity string
	// Icon optionally overrides the default icon of the effective severity.
	Icon string
	// SuppressOverwriteWarning silences the ACTION_OVERWRITTEN notice when the name is reused.
	SuppressOverwriteWarning bool
}

// EffectiveSeverity returns the declared severity when valid and ACTION otherwise.
func (action Action) EffectiveSeverity() Severity {
	if len(action.Severity) == 0 {
		return SeverityAction
	}
	severity, exists := ParseSeverity(action.Severity)
	if !exists {
		return SeverityAction
	}
	return severity
}

// EffectiveIcon returns the icon override or the effective severity's default icon.
func (action Action) EffectiveIcon() string {
	if len(action.Icon) > 0 {
		return action.Icon
	}
	return action.EffectiveSeverity().Icon()
}

// FormatPrefix renders the "<icon> <NAME>:" header of a message.
func FormatPrefix(icon string, name string) string {
	return fmt.Sprintf(prefixTemplateConstant, icon, name)
}

// JoinValues renders values separated by single spaces.
func JoinValues(values []any) string {
	renderedValues := make([]string, 0, len(values))
	for _, value := range values {
		renderedValues = append(renderedValues, fmt.Sprint(value))
	}
	return strings.Join(renderedValues, resultSeparatorConstant)
}
