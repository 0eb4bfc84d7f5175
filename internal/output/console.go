package output

import (
	"io"
	"os"

	"github.com/temirov/herald/internal/actions"
	"github.com/temirov/herald/internal/utils"
)

// ConsoleOutput writes standard messages and warnings to separate writers.
type ConsoleOutput struct {
	standard  io.Writer
	warning   io.Writer
	formatter MessageFormatter
}

// NewConsoleOutput wraps the writers so every message is flushed immediately.
// Nil writers default to os.Stdout and os.Stderr.
func NewConsoleOutput(standard io.Writer, warning io.Writer) *ConsoleOutput {
	if standard == nil {
		standard = os.Stdout
	}
	if warning == nil {
		warning = os.Stderr
	}
	return &ConsoleOutput{
		standard:  utils.NewFlushingWriter(standard),
		warning:   utils.NewFlushingWriter(warning),
		formatter: MessageFormatter{},
	}
}

// WriteLine implements actions.Output by printing to the standard writer.
func (console *ConsoleOutput) WriteLine(text string, values ...any) {
	if console == nil {
		return
	}
	_, _ = io.WriteString(console.standard, console.formatter.FormatLine(text, values...))
}

// WriteWarning implements actions.Output by printing to the warning writer.
func (console *ConsoleOutput) WriteWarning(text string, values ...any) {
	if console == nil {
		return
	}
	_, _ = io.WriteString(console.warning, console.formatter.FormatLine(text, values...))
}

// RaiseFatal implements actions.Output. The message is returned rather than
// printed so the caller decides how the failure surfaces.
func (console *ConsoleOutput) RaiseFatal(text string) error {
	return actions.NewFatalError(text)
}
