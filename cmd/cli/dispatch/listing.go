package dispatch

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/herald/internal/actions"
	"github.com/temirov/herald/internal/utils"
)

const (
	actionsCommandUseConstant                 = "actions"
	actionsCommandShortDescriptionConstant    = "List registered actions"
	severitiesCommandUseConstant              = "severities"
	severitiesCommandShortDescriptionConstant = "List the built-in severities"
	actionLineTemplateConstant                = "%s %s %s\n"
	severityLineTemplateConstant              = "%s %s %s\n"
	actionsListedLogMessageConstant           = "listing actions"
	logFieldCatalogPathsConstant              = "catalogs"
	logFieldConfigFileConstant                = "config_file"
	logFieldActionCountConstant               = "action_count"
)

// ActionsCommandBuilder assembles the command listing registered actions.
type ActionsCommandBuilder struct {
	LoggerProvider     LoggerProvider
	DispatcherProvider DispatcherProvider
}

// Build constructs the actions command.
func (builder *ActionsCommandBuilder) Build() (*cobra.Command, error) {
	return &cobra.Command{
		Use:   actionsCommandUseConstant,
		Short: actionsCommandShortDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}, nil
}

func (builder *ActionsCommandBuilder) run(command *cobra.Command, arguments []string) error {
	dispatcher, dispatcherError := resolveDispatcher(builder.DispatcherProvider)
	if dispatcherError != nil {
		return dispatcherError
	}

	contextAccessor := utils.NewCommandContextAccessor()
	configurationFilePath, _ := contextAccessor.ConfigurationFilePath(command.Context())
	catalogPaths, _ := contextAccessor.CatalogPaths(command.Context())
	resolveLogger(builder.LoggerProvider).Debug(
		actionsListedLogMessageConstant,
		zap.String(logFieldConfigFileConstant, configurationFilePath),
		zap.Strings(logFieldCatalogPathsConstant, catalogPaths),
		zap.Int(logFieldActionCountConstant, len(dispatcher.Actions())),
	)

	return writeActions(command.OutOrStdout(), dispatcher)
}

func writeActions(writer io.Writer, dispatcher *actions.Dispatcher) error {
	for _, actionName := range dispatcher.Actions() {
		action, exists := dispatcher.Resolve(actionName)
		if !exists {
			continue
		}
		if _, writeError := fmt.Fprintf(writer, actionLineTemplateConstant, action.Name, action.EffectiveSeverity(), action.EffectiveIcon()); writeError != nil {
			return writeError
		}
	}
	return nil
}

// SeveritiesCommandBuilder assembles the command listing the severity enumeration.
type SeveritiesCommandBuilder struct{}

// Build constructs the severities command.
func (builder *SeveritiesCommandBuilder) Build() (*cobra.Command, error) {
	return &cobra.Command{
		Use:   severitiesCommandUseConstant,
		Short: severitiesCommandShortDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			for _, severity := range actions.Severities() {
				if _, writeError := fmt.Fprintf(command.OutOrStdout(), severityLineTemplateConstant, severity, severity.Icon(), severity.Channel()); writeError != nil {
					return writeError
				}
			}
			return nil
		},
	}, nil
}
