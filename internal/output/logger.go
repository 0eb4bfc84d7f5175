package output

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/temirov/herald/internal/actions"
)

const (
	callbackMessageConstant      = "severity fired"
	logFieldActionNameConstant   = "action_name"
	logFieldSeverityConstant     = "severity"
	logFieldResultsConstant      = "results"
	logFieldSeverityIconConstant = "icon"
)

var severityLogLevels = map[actions.Severity]zapcore.Level{
	actions.SeverityAction:    zapcore.InfoLevel,
	actions.SeverityAlert:     zapcore.InfoLevel,
	actions.SeverityWarn:      zapcore.WarnLevel,
	actions.SeverityBug:       zapcore.WarnLevel,
	actions.SeverityError:     zapcore.ErrorLevel,
	actions.SeverityUndefined: zapcore.WarnLevel,
}

// LoggerOutput renders dispatcher messages using a zap logger configured for human-readable output.
type LoggerOutput struct {
	logger    *zap.Logger
	formatter MessageFormatter
}

// NewLoggerOutput constructs a LoggerOutput backed by the provided zap logger.
func NewLoggerOutput(logger *zap.Logger) *LoggerOutput {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggerOutput{logger: logger, formatter: MessageFormatter{}}
}

// WriteLine implements actions.Output by logging at Info.
func (loggerOutput *LoggerOutput) WriteLine(text string, values ...any) {
	if loggerOutput == nil {
		return
	}
	loggerOutput.logger.Info(loggerOutput.formatter.Format(text, values...))
}

// WriteWarning implements actions.Output by logging at Warn.
func (loggerOutput *LoggerOutput) WriteWarning(text string, values ...any) {
	if loggerOutput == nil {
		return
	}
	loggerOutput.logger.Warn(loggerOutput.formatter.Format(text, values...))
}

// RaiseFatal implements actions.Output by logging at Error and returning a FatalError.
func (loggerOutput *LoggerOutput) RaiseFatal(text string) error {
	if loggerOutput != nil {
		loggerOutput.logger.Error(text)
	}
	return actions.NewFatalError(text)
}

// LogLevelForSeverity maps a severity to the zap level used when forwarding it.
func LogLevelForSeverity(severity actions.Severity) zapcore.Level {
	level, exists := severityLogLevels[severity]
	if !exists {
		return zapcore.WarnLevel
	}
	return level
}

// NewLoggerCallback builds a callback that forwards a severity's results to the logger.
func NewLoggerCallback(logger *zap.Logger, severity actions.Severity) actions.Callback {
	if logger == nil {
		logger = zap.NewNop()
	}
	level := LogLevelForSeverity(severity)
	return func(actionName string, results ...any) {
		if checkedEntry := logger.Check(level, callbackMessageConstant); checkedEntry != nil {
			checkedEntry.Write(
				zap.String(logFieldActionNameConstant, actionName),
				zap.String(logFieldSeverityConstant, severity.String()),
				zap.String(logFieldSeverityIconConstant, severity.Icon()),
				zap.Any(logFieldResultsConstant, results),
			)
		}
	}
}
