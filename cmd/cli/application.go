package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/herald/cmd/cli/dispatch"
	"github.com/temirov/herald/internal/actions"
	"github.com/temirov/herald/internal/catalog"
	"github.com/temirov/herald/internal/output"
	"github.com/temirov/herald/internal/utils"
	flagutils "github.com/temirov/herald/internal/utils/flags"
	pathutils "github.com/temirov/herald/internal/utils/path"
)

const (
	applicationNameConstant                 = "herald"
	applicationShortDescriptionConstant     = "Severity-routed action dispatcher"
	applicationLongDescriptionConstant      = "herald resolves named actions, runs them, and prints their results through a fixed set of severities, each with its own icon and output channel."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format (structured or console)."
	catalogFlagNameConstant                 = "catalog"
	catalogFlagUsageConstant                = "Path to an action catalog file (repeatable)."
	outputFlagNameConstant                  = "output"
	outputFlagUsageConstant                 = "Where action messages are written."
	forwardFlagNameConstant                 = "forward"
	forwardFlagUsageConstant                = "Forward every severity to the diagnostic logger."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	outputConfigurationKeyConstant          = "output"
	outputModeConfigKeyConstant             = outputConfigurationKeyConstant + ".mode"
	outputForwardConfigKeyConstant          = outputConfigurationKeyConstant + ".forward"
	outputSuppressConfigKeyConstant         = outputConfigurationKeyConstant + ".suppress_overwrite_warnings"
	outputModeConsoleConstant               = "console"
	outputModeLogConstant                   = "log"
	environmentPrefixConstant               = "HERALD"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	dispatcherReadyMessageConstant          = "dispatcher ready"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	outputModeFieldConstant                 = "output_mode"
	catalogPathsFieldConstant               = "catalogs"
	actionCountFieldConstant                = "action_count"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	unsupportedOutputModeTemplateConstant   = "unsupported output mode: %s"
	catalogLoadErrorTemplateConstant        = "unable to load catalog %s: %w"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common   ApplicationCommonConfiguration `mapstructure:"common"`
	Output   ApplicationOutputConfiguration `mapstructure:"output"`
	Catalogs []string                       `mapstructure:"catalogs"`
	Actions  []any                          `mapstructure:"actions"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationOutputConfiguration controls where dispatched messages are written.
type ApplicationOutputConfiguration struct {
	Mode                      string `mapstructure:"mode"`
	Forward                   bool   `mapstructure:"forward"`
	SuppressOverwriteWarnings bool   `mapstructure:"suppress_overwrite_warnings"`
}

// Application wires the Cobra root command, configuration loader, structured logger, and dispatcher.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	logger                 *zap.Logger
	consoleLogger          *zap.Logger
	dispatcher             *actions.Dispatcher
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	catalogFlagValues      []string
	outputModeFlagValue    string
	forwardFlagValue       bool
	catalogPathSanitizer   *pathutils.CatalogPathSanitizer
	commandContextAccessor utils.CommandContextAccessor
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		utils.DefaultConfigurationSearchPaths(applicationNameConstant),
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader:    configurationLoader,
		logger:                 zap.NewNop(),
		consoleLogger:          zap.NewNop(),
		catalogPathSanitizer:   pathutils.NewCatalogPathSanitizer(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}

	cobraCommand.SetContext(context.Background())
	persistentFlagSet := cobraCommand.PersistentFlags()
	persistentFlagSet.StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	persistentFlagSet.StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	persistentFlagSet.StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)
	persistentFlagSet.StringArrayVar(&application.catalogFlagValues, catalogFlagNameConstant, nil, catalogFlagUsageConstant)
	flagutils.AddChoiceFlag(persistentFlagSet, &application.outputModeFlagValue, outputFlagNameConstant, outputModeConsoleConstant, []string{outputModeConsoleConstant, outputModeLogConstant}, outputFlagUsageConstant)
	flagutils.AddToggleFlag(persistentFlagSet, &application.forwardFlagValue, forwardFlagNameConstant, "", false, forwardFlagUsageConstant)

	runBuilder := dispatch.RunCommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		DispatcherProvider: application.currentDispatcher,
	}
	if runCommand, runBuildError := runBuilder.Build(); runBuildError == nil {
		cobraCommand.AddCommand(runCommand)
	}

	actionsBuilder := dispatch.ActionsCommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		DispatcherProvider: application.currentDispatcher,
	}
	if actionsCommand, actionsBuildError := actionsBuilder.Build(); actionsBuildError == nil {
		cobraCommand.AddCommand(actionsCommand)
	}

	severitiesBuilder := dispatch.SeveritiesCommandBuilder{}
	if severitiesCommand, severitiesBuildError := severitiesBuilder.Build(); severitiesBuildError == nil {
		cobraCommand.AddCommand(severitiesCommand)
	}

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the command hierarchy against the process arguments.
func (application *Application) Execute() error {
	return application.ExecuteWithArguments(os.Args[1:])
}

// ExecuteWithArguments runs the command hierarchy against the provided arguments and flushes the loggers.
func (application *Application) ExecuteWithArguments(arguments []string) error {
	normalizedArguments := flagutils.NormalizeToggleArguments(application.rootCommand.PersistentFlags(), arguments)
	if normalizedArguments == nil {
		normalizedArguments = []string{}
	}
	application.rootCommand.SetArgs(normalizedArguments)
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil && executionError == nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// SetOutputWriters redirects the standard and warning channels used by console output.
func (application *Application) SetOutputWriters(standard io.Writer, warning io.Writer) {
	application.rootCommand.SetOut(standard)
	application.rootCommand.SetErr(warning)
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) currentDispatcher() *actions.Dispatcher {
	return application.dispatcher
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatStructured),
		outputModeConfigKeyConstant:      outputModeConsoleConstant,
		outputForwardConfigKeyConstant:   false,
		outputSuppressConfigKeyConstant:  false,
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration
	application.applyFlagOverrides(command)

	loggerFactory := utils.NewLoggerFactoryWithConsoleWriter(application.rootCommand.OutOrStdout())
	loggerOutputs, loggerCreationError := loggerFactory.CreateLoggerOutputs(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = loggerOutputs.DiagnosticLogger
	application.consoleLogger = loggerOutputs.ConsoleLogger

	catalogPaths := application.catalogPathSanitizer.Sanitize(application.configuration.Catalogs, application.catalogFlagValues)

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
		zap.String(outputModeFieldConstant, application.configuration.Output.Mode),
		zap.Strings(catalogPathsFieldConstant, catalogPaths),
	)

	if command != nil {
		updatedContext := application.commandContextAccessor.WithConfigurationFilePath(command.Context(), application.configurationMetadata.ConfigFileUsed)
		updatedContext = application.commandContextAccessor.WithCatalogPaths(updatedContext, catalogPaths)
		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	dispatcher, dispatcherError := application.buildDispatcher(catalogPaths)
	if dispatcherError != nil {
		return dispatcherError
	}
	application.dispatcher = dispatcher

	application.logger.Debug(dispatcherReadyMessageConstant, zap.Int(actionCountFieldConstant, len(dispatcher.Actions())))
	return nil
}

func (application *Application) applyFlagOverrides(command *cobra.Command) {
	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}
	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}
	if application.persistentFlagChanged(command, outputFlagNameConstant) {
		application.configuration.Output.Mode = application.outputModeFlagValue
	}
	if application.persistentFlagChanged(command, forwardFlagNameConstant) {
		application.configuration.Output.Forward = application.forwardFlagValue
	}
}

func (application *Application) buildDispatcher(catalogPaths []string) (*actions.Dispatcher, error) {
	dispatchOutput, outputError := application.resolveOutput()
	if outputError != nil {
		return nil, outputError
	}

	dispatcher := actions.NewDispatcher(actions.DispatcherDependencies{
		Output: dispatchOutput,
		Logger: application.logger,
	})

	if application.configuration.Output.Forward {
		for _, severity := range actions.Severities() {
			if callbackError := dispatcher.RegisterMethodCallback(severity.String(), output.NewLoggerCallback(application.logger, severity)); callbackError != nil {
				return nil, callbackError
			}
		}
	}

	registrar := catalogRegistrar{
		dispatcher:               dispatcher,
		suppressOverwriteWarning: application.configuration.Output.SuppressOverwriteWarnings,
	}

	if registrationError := catalog.Register(registrar, application.configuration.Actions); registrationError != nil {
		return nil, registrationError
	}

	for _, catalogPath := range catalogPaths {
		entries, loadError := catalog.LoadFile(catalogPath)
		if loadError != nil {
			return nil, fmt.Errorf(catalogLoadErrorTemplateConstant, catalogPath, loadError)
		}
		if registrationError := catalog.Register(registrar, entries); registrationError != nil {
			return nil, registrationError
		}
	}

	return dispatcher, nil
}

func (application *Application) resolveOutput() (actions.Output, error) {
	switch strings.ToLower(strings.TrimSpace(application.configuration.Output.Mode)) {
	case "", outputModeConsoleConstant:
		return output.NewConsoleOutput(application.rootCommand.OutOrStdout(), application.rootCommand.ErrOrStderr()), nil
	case outputModeLogConstant:
		return output.NewLoggerOutput(application.consoleLogger), nil
	default:
		return nil, fmt.Errorf(unsupportedOutputModeTemplateConstant, application.configuration.Output.Mode)
	}
}

func (application *Application) flushLogger() error {
	if syncError := application.syncLoggerInstance(application.logger); syncError != nil {
		return syncError
	}
	return application.syncLoggerInstance(application.consoleLogger)
}

func (application *Application) syncLoggerInstance(logger *zap.Logger) error {
	if logger == nil {
		return nil
	}

	syncError := logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	if rootCommand := command.Root(); rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet != nil && flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}

type catalogRegistrar struct {
	dispatcher               *actions.Dispatcher
	suppressOverwriteWarning bool
}

func (registrar catalogRegistrar) LoadAction(name string, action *actions.Action) error {
	if action != nil && registrar.suppressOverwriteWarning {
		action.SuppressOverwriteWarning = true
	}
	return registrar.dispatcher.LoadAction(name, action)
}

func (registrar catalogRegistrar) Report(severity actions.Severity, name string, values ...any) error {
	return registrar.dispatcher.Report(severity, name, values...)
}
