package actions

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	severityActionNameConstant    = "ACTION"
	severityAlertNameConstant     = "ALERT"
	severityWarnNameConstant      = "WARN"
	severityBugNameConstant       = "BUG"
	severityErrorNameConstant     = "ERROR"
	severityUndefinedNameConstant = "UNDEFINED"
	severityActionIconConstant    = "👍"
	severityAlertIconConstant     = "📢"
	severityWarnIconConstant      = "⚠️"
	severityBugIconConstant       = "🐛"
	severityErrorIconConstant     = "❌"
	severityUndefinedIconConstant = "❓"
	unknownSeverityNameConstant   = "UNKNOWN"
	channelStandardNameConstant   = "standard"
	channelWarningNameConstant    = "warning"
	channelFatalNameConstant      = "fatal"
)

// Severity enumerates the fixed set of message severities.
type Severity int

// Supported severities in declaration order.
const (
	SeverityAction Severity = iota
	SeverityAlert
	SeverityWarn
	SeverityBug
	SeverityError
	SeverityUndefined
)

// Channel identifies the output primitive a severity is bound to.
type Channel int

// Output channels consumed by severities.
const (
	ChannelStandard Channel = iota
	ChannelWarning
	ChannelFatal
)

type severityDescriptor struct {
	name    string
	icon    string
	channel Channel
}

var severityDescriptors = [...]severityDescriptor{
	SeverityAction:    {name: severityActionNameConstant, icon: severityActionIconConstant, channel: ChannelStandard},
	SeverityAlert:     {name: severityAlertNameConstant, icon: severityAlertIconConstant, channel: ChannelStandard},
	SeverityWarn:      {name: severityWarnNameConstant, icon: severityWarnIconConstant, channel: ChannelWarning},
	SeverityBug:       {name: severityBugNameConstant, icon: severityBugIconConstant, channel: ChannelWarning},
	SeverityError:     {name: severityErrorNameConstant, icon: severityErrorIconConstant, channel: ChannelFatal},
	SeverityUndefined: {name: severityUndefinedNameConstant, icon: severityUndefinedIconConstant, channel: ChannelWarning},
}

var severityLookup = buildSeverityLookup()

func buildSeverityLookup() map[string]Severity {
	lookup := make(map[string]Severity, len(severityDescriptors))
	for index, descriptor := range severityDescriptors {
		lookup[descriptor.name] = Severity(index)
	}
	return lookup
}

// Severities returns every severity in declaration order.
func Severities() []Severity {
	severities := make([]Severity, 0, len(severityDescriptors))
	for index := range severityDescriptors {
		severities = append(severities, Severity(index))
	}
	return severities
}

// ParseSeverity resolves a severity name case-insensitively.
func ParseSeverity(name string) (Severity, bool) {
	severity, exists := severityLookup[NormalizeName(name)]
	return severity, exists
}

// Valid reports whether the severity belongs to the fixed enumeration.
func (severity Severity) Valid() bool {
	return severity >= 0 && int(severity) < len(severityDescriptors)
}

// String returns the reserved identifier of the severity.
func (severity Severity) String() string {
	if !severity.Valid() {
		return unknownSeverityNameConstant
	}
	return severityDescriptors[severity].name
}

// Icon returns the default icon of the severity.
func (severity Severity) Icon() string {
	if !severity.Valid() {
		return severityDescriptors[SeverityUndefined].icon
	}
	return severityDescriptors[severity].icon
}

// Channel returns the output primitive the severity emits through.
func (severity Severity) Channel() Channel {
	if !severity.Valid() {
		return ChannelWarning
	}
	return severityDescriptors[severity].channel
}

// String returns a lowercase label for the channel.
func (channel Channel) String() string {
	switch channel {
	case ChannelStandard:
		return channelStandardNameConstant
	case ChannelWarning:
		return channelWarningNameConstant
	case ChannelFatal:
		return channelFatalNameConstant
	default:
		return unknownSeverityNameConstant
	}
}

// NormalizeName folds an invocation or action name to its canonical uppercase form.
func NormalizeName(name string) string {
	return cases.Upper(language.Und).String(name)
}

func isReservedName(normalizedName string) bool {
	_, reserved := severityLookup[normalizedName]
	return reserved
}
