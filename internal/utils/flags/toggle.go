package flags

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

const (
	toggleTrueCanonicalValue      = "true"
	toggleFalseCanonicalValue     = "false"
	toggleTypeNameConstant        = "bool"
	toggleParseErrorTemplate      = "invalid toggle value %q"
	toggleTruePlaceholderConstant = "<YES|no>"
	toggleFalsePlaceholder        = "<yes|NO>"
	longFlagPrefixConstant        = "--"
	shortFlagPrefixConstant       = "-"
	flagValueSeparatorConstant    = "="
)

var toggleLiterals = map[string]bool{
	toggleTrueCanonicalValue:  true,
	"yes":                     true,
	"on":                      true,
	"1":                       true,
	"t":                       true,
	"y":                       true,
	toggleFalseCanonicalValue: false,
	"no":                      false,
	"off":                     false,
	"0":                       false,
	"f":                       false,
	"n":                       false,
}

// AddToggleFlag registers a boolean flag that accepts yes/no style values and
// treats a bare flag as true.
func AddToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, shorthand string, defaultValue bool, usage string) {
	if flagSet == nil || len(name) == 0 {
		return
	}

	value := &toggleFlagValue{target: target}
	value.assign(defaultValue)

	registeredFlag := flagSet.VarPF(value, name, shorthand, formatToggleUsage(usage, defaultValue))
	registeredFlag.NoOptDefVal = toggleTrueCanonicalValue
}

// NormalizeToggleArguments joins "--flag value" into "--flag=value" for toggle
// flags registered on flagSet so pflag does not treat the value as a positional argument.
// Rewriting stops at "--" and at the first positional argument, so everything
// after a subcommand name is left untouched.
func NormalizeToggleArguments(flagSet *pflag.FlagSet, arguments []string) []string {
	if len(arguments) == 0 {
		return nil
	}

	normalized := make([]string, 0, len(arguments))
	for index := 0; index < len(arguments); index++ {
		current := arguments[index]
		if current == longFlagPrefixConstant || !strings.HasPrefix(current, shortFlagPrefixConstant) {
			normalized = append(normalized, arguments[index:]...)
			break
		}

		if index+1 < len(arguments) && expectsSeparateToggleValue(flagSet, current) && isToggleLiteral(arguments[index+1]) {
			normalized = append(normalized, current+flagValueSeparatorConstant+arguments[index+1])
			index++
			continue
		}

		normalized = append(normalized, current)
		if index+1 < len(arguments) && expectsSeparateValue(flagSet, current) {
			index++
			normalized = append(normalized, arguments[index])
		}
	}
	return normalized
}

type toggleFlagValue struct {
	current bool
	target  *bool
}

func (value *toggleFlagValue) assign(parsed bool) {
	value.current = parsed
	if value.target != nil {
		*value.target = parsed
	}
}

func (value *toggleFlagValue) Set(rawValue string) error {
	parsed, parseError := parseToggleValue(rawValue)
	if parseError != nil {
		return parseError
	}
	value.assign(parsed)
	return nil
}

func (value *toggleFlagValue) String() string {
	if value != nil && value.current {
		return toggleTrueCanonicalValue
	}
	return toggleFalseCanonicalValue
}

func (value *toggleFlagValue) Type() string {
	return toggleTypeNameConstant
}

func parseToggleValue(rawValue string) (bool, error) {
	normalizedValue := strings.ToLower(strings.TrimSpace(rawValue))
	if len(normalizedValue) == 0 {
		return true, nil
	}
	parsed, known := toggleLiterals[normalizedValue]
	if !known {
		return false, fmt.Errorf(toggleParseErrorTemplate, rawValue)
	}
	return parsed, nil
}

func isToggleLiteral(candidate string) bool {
	_, known := toggleLiterals[strings.ToLower(strings.TrimSpace(candidate))]
	return known
}

func formatToggleUsage(description string, defaultValue bool) string {
	placeholder := toggleFalsePlaceholder
	if defaultValue {
		placeholder = toggleTruePlaceholderConstant
	}
	trimmed := strings.TrimSpace(description)
	if len(trimmed) == 0 {
		return fmt.Sprintf("`%s`", placeholder)
	}
	return fmt.Sprintf("`%s` %s", placeholder, trimmed)
}

func expectsSeparateToggleValue(flagSet *pflag.FlagSet, argument string) bool {
	candidate := lookupSeparateValueFlag(flagSet, argument)
	if candidate == nil {
		return false
	}
	_, isToggle := candidate.Value.(*toggleFlagValue)
	return isToggle
}

// expectsSeparateValue reports whether argument names a flag that consumes the next token as its value.
func expectsSeparateValue(flagSet *pflag.FlagSet, argument string) bool {
	candidate := lookupSeparateValueFlag(flagSet, argument)
	return candidate != nil && len(candidate.NoOptDefVal) == 0
}

func lookupSeparateValueFlag(flagSet *pflag.FlagSet, argument string) *pflag.Flag {
	if flagSet == nil || strings.Contains(argument, flagValueSeparatorConstant) {
		return nil
	}

	switch {
	case strings.HasPrefix(argument, longFlagPrefixConstant):
		return flagSet.Lookup(strings.TrimPrefix(argument, longFlagPrefixConstant))
	case strings.HasPrefix(argument, shortFlagPrefixConstant) && len(argument) == 2:
		return flagSet.ShorthandLookup(strings.TrimPrefix(argument, shortFlagPrefixConstant))
	default:
		return nil
	}
}
