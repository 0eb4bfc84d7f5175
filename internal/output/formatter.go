package output

import (
	"strings"

	"github.com/temirov/herald/internal/actions"
)

const (
	messageSeparatorConstant = " "
	lineTerminatorConstant   = "\n"
)

// MessageFormatter renders dispatcher messages as single lines.
type MessageFormatter struct{}

// Format joins the message text and its values with single spaces.
func (formatter MessageFormatter) Format(text string, values ...any) string {
	trimmedText := strings.TrimSpace(text)
	if len(values) == 0 {
		return trimmedText
	}
	renderedValues := actions.JoinValues(values)
	if len(trimmedText) == 0 {
		return renderedValues
	}
	return trimmedText + messageSeparatorConstant + renderedValues
}

// FormatLine renders the message followed by a newline.
func (formatter MessageFormatter) FormatLine(text string, values ...any) string {
	return formatter.Format(text, values...) + lineTerminatorConstant
}
