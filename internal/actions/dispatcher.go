package actions

import (
	"fmt"
	"sort"

	"go.uber.org/zap"
)

const (
	// ActionOverwrittenName identifies the WARN notice emitted when a name is registered twice.
	ActionOverwrittenName = "ACTION_OVERWRITTEN"
	// ActionFailedName identifies the ERROR report emitted when an action method fails.
	ActionFailedName = "ACTION_FAILED"
	// InvalidActionNameName identifies the ERROR report for empty action names.
	InvalidActionNameName = "INVALID_ACTION_NAME"
	// ReservedActionNameName identifies the ERROR report for names colliding with a severity.
	ReservedActionNameName = "RESERVED_ACTION_NAME"
	// InvalidActionName identifies the ERROR report for missing or malformed action records.
	InvalidActionName = "INVALID_ACTION"
	// InvalidActionMethodName identifies the ERROR report for actions without a method.
	InvalidActionMethodName = "INVALID_ACTION_METHOD"
	// InvalidActionSeverityName identifies the ERROR report for unknown action severities.
	InvalidActionSeverityName = "INVALID_ACTION_SEVERITY"
	// InvalidActionIconName identifies the ERROR report for icons that are not strings.
	InvalidActionIconName = "INVALID_ACTION_ICON"

	actionOverwrittenMessageTemplateConstant   = "Action %q was overwritten!"
	actionFailedMessageTemplateConstant        = "Action %q failed to run!"
	actionUndefinedMessageTemplateConstant     = "Action %q is not defined!"
	invalidActionNameMessageConstant           = "Action name must not be empty!"
	reservedActionNameMessageTemplateConstant  = "Action name %q is reserved for a severity!"
	invalidActionMessageTemplateConstant       = "Action %q must be a structured record!"
	invalidActionMethodMessageTemplateConstant = "Action %q must provide a callable method!"
	invalidSeverityMessageTemplateConstant     = "Action %q declares unknown severity %q!"
	nonStringNameTemplateConstant              = "%v"

	actionRegisteredLogMessageConstant  = "action registered"
	actionOverwrittenLogMessageConstant = "action overwritten"
	invocationLogMessageConstant        = "invocation resolved"
	callbackLogMessageConstant          = "severity callback installed"
	logFieldActionNameConstant          = "action_name"
	logFieldSeverityConstant            = "severity"
	logFieldArgumentCountConstant       = "argument_count"
	logFieldRemovedConstant             = "removed"
)

// DispatcherDependencies supplies the collaborators of a Dispatcher.
type DispatcherDependencies struct {
	Output    Output
	Logger    *zap.Logger
	Store     *Store
	Callbacks *CallbackRegistry
}

// Dispatcher resolves invocation names and routes their results to severities.
type Dispatcher struct {
	output    Output
	logger    *zap.Logger
	store     *Store
	callbacks *CallbackRegistry
}

type invocation struct {
	name         string
	originalName any
	severity     Severity
	icon         string
	method       Method
}

// NewDispatcher constructs a Dispatcher, creating empty registries for missing dependencies.
func NewDispatcher(dependencies DispatcherDependencies) *Dispatcher {
	dispatcher := &Dispatcher{
		output:    dependencies.Output,
		logger:    dependencies.Logger,
		store:     dependencies.Store,
		callbacks: dependencies.Callbacks,
	}
	if dispatcher.output == nil {
		dispatcher.output = silentOutput{}
	}
	if dispatcher.logger == nil {
		dispatcher.logger = zap.NewNop()
	}
	if dispatcher.store == nil {
		dispatcher.store = NewStore()
	}
	if dispatcher.callbacks == nil {
		dispatcher.callbacks = NewCallbackRegistry()
	}
	return dispatcher
}

// LoadAction validates and stores an action under the normalized name.
// Validation failures are reported through the ERROR severity and returned.
func (dispatcher *Dispatcher) LoadAction(name string, action *Action) error {
	normalizedName := NormalizeName(name)

	if len(normalizedName) == 0 {
		return dispatcher.Report(SeverityError, InvalidActionNameName, invalidActionNameMessageConstant)
	}
	if isReservedName(normalizedName) {
		return dispatcher.Report(SeverityError, ReservedActionNameName, fmt.Sprintf(reservedActionNameMessageTemplateConstant, normalizedName))
	}
	if action == nil {
		return dispatcher.Report(SeverityError, InvalidActionName, fmt.Sprintf(invalidActionMessageTemplateConstant, normalizedName))
	}
	if action.Method == nil {
		return dispatcher.Report(SeverityError, InvalidActionMethodName, fmt.Sprintf(invalidActionMethodMessageTemplateConstant, normalizedName))
	}
	if len(action.Severity) > 0 {
		if _, validSeverity := ParseSeverity(action.Severity); !validSeverity {
			return dispatcher.Report(SeverityError, InvalidActionSeverityName, fmt.Sprintf(invalidSeverityMessageTemplateConstant, normalizedName, action.Severity))
		}
	}

	storedAction := *action
	storedAction.Name = normalizedName
	if replaced := dispatcher.store.swap(storedAction); replaced {
		dispatcher.logger.Debug(actionOverwrittenLogMessageConstant, zap.String(logFieldActionNameConstant, normalizedName))
		if !action.SuppressOverwriteWarning {
			if reportError := dispatcher.Report(SeverityWarn, ActionOverwrittenName, fmt.Sprintf(actionOverwrittenMessageTemplateConstant, normalizedName)); reportError != nil {
				return reportError
			}
		}
	}

	dispatcher.logger.Debug(
		actionRegisteredLogMessageConstant,
		zap.String(logFieldActionNameConstant, normalizedName),
		zap.String(logFieldSeverityConstant, storedAction.EffectiveSeverity().String()),
	)

	return nil
}

// LoadActions registers every entry in key order and stops at the first failure.
// Registrations completed before the failure remain in place.
func (dispatcher *Dispatcher) LoadActions(actions map[string]*Action) error {
	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if loadError := dispatcher.LoadAction(name, actions[name]); loadError != nil {
			return loadError
		}
	}
	return nil
}

// RegisterMethodCallback installs the callback fired whenever the named severity emits.
// Unknown severity names are rejected immediately with ErrUnknownSeverity.
func (dispatcher *Dispatcher) RegisterMethodCallback(severityName string, callback Callback) error {
	severity, exists := ParseSeverity(severityName)
	if !exists {
		return newUnknownSeverityError(severityName)
	}
	dispatcher.callbacks.Register(severity, callback)
	dispatcher.logger.Debug(
		callbackLogMessageConstant,
		zap.String(logFieldSeverityConstant, severity.String()),
		zap.Bool(logFieldRemovedConstant, callback == nil),
	)
	return nil
}

// Run dispatches an invocation. Non-string names and unregistered names reach
// UNDEFINED, bare severity names pass their arguments through unchanged, and
// registered actions run their method. Only the ERROR severity returns an error.
func (dispatcher *Dispatcher) Run(name any, arguments ...any) error {
	invocationName, isString := name.(string)
	if !isString {
		return dispatcher.execute(undefinedInvocation(name), arguments)
	}

	normalizedName := NormalizeName(invocationName)
	if severity, reserved := severityLookup[normalizedName]; reserved {
		return dispatcher.execute(invocation{
			name:         normalizedName,
			originalName: invocationName,
			severity:     severity,
			icon:         severity.Icon(),
		}, arguments)
	}

	action, exists := dispatcher.store.Resolve(normalizedName)
	if !exists {
		return dispatcher.execute(undefinedInvocation(invocationName), arguments)
	}

	return dispatcher.execute(invocation{
		name:         action.Name,
		originalName: invocationName,
		severity:     action.EffectiveSeverity(),
		icon:         action.EffectiveIcon(),
		method:       action.Method,
	}, arguments)
}

// Report emits an action-less message through the severity under the given name.
func (dispatcher *Dispatcher) Report(severity Severity, name string, values ...any) error {
	if !severity.Valid() {
		severity = SeverityUndefined
	}
	return dispatcher.execute(invocation{
		name:         name,
		originalName: name,
		severity:     severity,
		icon:         severity.Icon(),
	}, values)
}

// Resolve returns the action registered under the case-insensitive name.
func (dispatcher *Dispatcher) Resolve(name string) (Action, bool) {
	return dispatcher.store.Resolve(name)
}

// Actions returns the normalized names of registered actions in sorted order.
func (dispatcher *Dispatcher) Actions() []string {
	return dispatcher.store.Names()
}

func undefinedInvocation(originalName any) invocation {
	return invocation{
		name:         SeverityUndefined.String(),
		originalName: originalName,
		severity:     SeverityUndefined,
		icon:         SeverityUndefined.Icon(),
	}
}

func (dispatcher *Dispatcher) execute(target invocation, arguments []any) error {
	dispatcher.logger.Debug(
		invocationLogMessageConstant,
		zap.String(logFieldActionNameConstant, target.name),
		zap.String(logFieldSeverityConstant, target.severity.String()),
		zap.Int(logFieldArgumentCountConstant, len(arguments)),
	)

	prefix := FormatPrefix(target.icon, target.name)

	results, methodError := callMethod(target.method, arguments)
	if methodError != nil {
		return dispatcher.Report(
			SeverityError,
			ActionFailedName,
			fmt.Sprintf(actionFailedMessageTemplateConstant, target.name),
			methodError.Error(),
		)
	}

	if callback, exists := dispatcher.callbacks.Lookup(target.severity); exists {
		callback(target.callbackName(), results...)
	}

	return dispatcher.emit(target, prefix, results)
}

func (dispatcher *Dispatcher) emit(target invocation, prefix string, results []any) error {
	if target.severity == SeverityUndefined {
		undefinedMessage := fmt.Sprintf(actionUndefinedMessageTemplateConstant, target.callbackName())
		results = append([]any{undefinedMessage}, results...)
	}

	switch target.severity.Channel() {
	case ChannelStandard:
		dispatcher.output.WriteLine(prefix, results...)
		return nil
	case ChannelWarning:
		dispatcher.output.WriteWarning(prefix, results...)
		return nil
	default:
		message := prefix
		if len(results) > 0 {
			message = prefix + resultSeparatorConstant + JoinValues(results)
		}
		return dispatcher.output.RaiseFatal(message)
	}
}

// callbackName reports the original invocation name for UNDEFINED and the normalized name otherwise.
func (target invocation) callbackName() string {
	if target.severity != SeverityUndefined {
		return target.name
	}
	if originalName, isString := target.originalName.(string); isString {
		return originalName
	}
	return fmt.Sprintf(nonStringNameTemplateConstant, target.originalName)
}

func callMethod(method Method, arguments []any) (results []any, methodError error) {
	if method == nil {
		return arguments, nil
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			results = nil
			methodError = fmt.Errorf(actionPanicErrorTemplateConstant, recovered)
		}
	}()

	return method(arguments...)
}
