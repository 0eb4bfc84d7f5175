package dispatch

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	runCommandUseConstant              = "run NAME [ARGS...]"
	runCommandShortDescriptionConstant = "Dispatch an action or severity by name"
	runCommandLongDescriptionConstant  = "run resolves NAME case-insensitively against the severities and registered actions and prints the result through the matching severity. Unknown names are reported as UNDEFINED; ERROR results exit with a non-zero status."
	runCommandLogMessageConstant       = "dispatching invocation"
	logFieldActionNameConstant         = "action_name"
	logFieldArgumentCountConstant      = "argument_count"
)

// RunCommandBuilder assembles the command that dispatches a single invocation.
type RunCommandBuilder struct {
	LoggerProvider     LoggerProvider
	DispatcherProvider DispatcherProvider
}

// Build constructs the run command.
func (builder *RunCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   runCommandUseConstant,
		Short: runCommandShortDescriptionConstant,
		Long:  runCommandLongDescriptionConstant,
		Args:  cobra.MinimumNArgs(1),
		RunE:  builder.run,
	}
	command.Flags().SetInterspersed(false)
	return command, nil
}

func (builder *RunCommandBuilder) run(command *cobra.Command, arguments []string) error {
	dispatcher, dispatcherError := resolveDispatcher(builder.DispatcherProvider)
	if dispatcherError != nil {
		return dispatcherError
	}

	invocationName := arguments[0]
	invocationArguments := make([]any, 0, len(arguments)-1)
	for _, argument := range arguments[1:] {
		invocationArguments = append(invocationArguments, argument)
	}

	resolveLogger(builder.LoggerProvider).Debug(
		runCommandLogMessageConstant,
		zap.String(logFieldActionNameConstant, invocationName),
		zap.Int(logFieldArgumentCountConstant, len(invocationArguments)),
	)

	return dispatcher.Run(invocationName, invocationArguments...)
}
