package flags

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

const (
	choicePlaceholderPrefix  = "<"
	choicePlaceholderSuffix  = ">"
	choiceSeparatorLiteral   = "|"
	choiceUsageEmptyTemplate = "`%s`"
	choiceUsageFullTemplate  = "`%s` %s"
	choiceTypeNameConstant   = "string"
	choiceInvalidTemplate    = "invalid value %q, expected one of %s"
)

// AddChoiceFlag registers a string flag restricted to the provided choices.
// Values are matched case-insensitively and stored in lower case.
func AddChoiceFlag(flagSet *pflag.FlagSet, target *string, name string, defaultChoice string, choices []string, description string) {
	if flagSet == nil || len(name) == 0 {
		return
	}

	value := &choiceFlagValue{target: target, allowed: normalizeChoices(choices)}
	value.assign(strings.ToLower(strings.TrimSpace(defaultChoice)))
	flagSet.Var(value, name, FormatChoiceUsage(defaultChoice, choices, description))
}

// FormatChoiceUsage builds a usage string where the default option is capitalized inside a placeholder.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	placeholder := choicePlaceholderPrefix + strings.Join(highlightDefaultChoice(defaultChoice, choices), choiceSeparatorLiteral) + choicePlaceholderSuffix
	if len(strings.TrimSpace(description)) == 0 {
		return fmt.Sprintf(choiceUsageEmptyTemplate, placeholder)
	}
	return fmt.Sprintf(choiceUsageFullTemplate, placeholder, description)
}

type choiceFlagValue struct {
	current string
	target  *string
	allowed []string
}

func (value *choiceFlagValue) assign(choice string) {
	value.current = choice
	if value.target != nil {
		*value.target = choice
	}
}

func (value *choiceFlagValue) Set(rawValue string) error {
	normalizedValue := strings.ToLower(strings.TrimSpace(rawValue))
	for _, allowedChoice := range value.allowed {
		if allowedChoice == normalizedValue {
			value.assign(normalizedValue)
			return nil
		}
	}
	return fmt.Errorf(choiceInvalidTemplate, rawValue, strings.Join(value.allowed, choiceSeparatorLiteral))
}

func (value *choiceFlagValue) String() string {
	if value == nil {
		return ""
	}
	return value.current
}

func (value *choiceFlagValue) Type() string {
	return choiceTypeNameConstant
}

func normalizeChoices(choices []string) []string {
	normalized := make([]string, 0, len(choices))
	seen := make(map[string]struct{}, len(choices))
	for _, choice := range choices {
		normalizedChoice := strings.ToLower(strings.TrimSpace(choice))
		if len(normalizedChoice) == 0 {
			continue
		}
		if _, exists := seen[normalizedChoice]; exists {
			continue
		}
		seen[normalizedChoice] = struct{}{}
		normalized = append(normalized, normalizedChoice)
	}
	return normalized
}

func highlightDefaultChoice(defaultChoice string, choices []string) []string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))
	highlighted := make([]string, 0, len(choices))
	seen := make(map[string]struct{}, len(choices))

	for _, choice := range choices {
		trimmedChoice := strings.TrimSpace(choice)
		normalizedChoice := strings.ToLower(trimmedChoice)
		if len(normalizedChoice) == 0 {
			continue
		}
		if _, exists := seen[normalizedChoice]; exists {
			continue
		}
		seen[normalizedChoice] = struct{}{}

		if normalizedChoice == normalizedDefault {
			trimmedChoice = strings.ToUpper(trimmedChoice)
		}
		highlighted = append(highlighted, trimmedChoice)
	}
	return highlighted
}
