package catalog

import (
	"fmt"

	mapstructure "github.com/go-viper/mapstructure/v2"

	"github.com/temirov/herald/internal/actions"
)

const (
	definitionFieldIconConstant           = "icon"
	definitionFieldNameConstant           = "name"
	definitionTagNameConstant             = "mapstructure"
	unnamedEntryTemplateConstant          = "#%d"
	entryNotRecordMessageTemplateConstant = "Action %s must be a structured record!"
	entryDecodeMessageTemplateConstant    = "Action %s is malformed: %v"
	iconNotStringMessageTemplateConstant  = "Action %s declares an icon that is not a string!"
)

// Registrar receives decoded actions and validation reports.
type Registrar interface {
	LoadAction(name string, action *actions.Action) error
	Report(severity actions.Severity, name string, values ...any) error
}

// Register decodes every raw entry and loads it into the registrar in order.
// The first failure is reported through the ERROR severity and stops registration;
// entries registered before it remain in place.
func Register(registrar Registrar, entries []any) error {
	for entryIndex, entry := range entries {
		if registrationError := registerEntry(registrar, entryIndex, entry); registrationError != nil {
			return registrationError
		}
	}
	return nil
}

// DecodeDefinition converts a loosely typed entry into a Definition.
func DecodeDefinition(entry map[string]any) (Definition, error) {
	var definition Definition
	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     definitionTagNameConstant,
		Result:      &definition,
		ErrorUnused: true,
	})
	if decoderError != nil {
		return Definition{}, decoderError
	}
	if decodeError := decoder.Decode(entry); decodeError != nil {
		return Definition{}, decodeError
	}
	return definition, nil
}

func registerEntry(registrar Registrar, entryIndex int, entry any) error {
	record, isRecord := normalizeRecord(entry)
	entryLabel := describeEntry(entryIndex, record)
	if !isRecord {
		return registrar.Report(actions.SeverityError, actions.InvalidActionName, fmt.Sprintf(entryNotRecordMessageTemplateConstant, entryLabel))
	}

	if iconValue, iconPresent := record[definitionFieldIconConstant]; iconPresent && iconValue != nil {
		if _, iconIsString := iconValue.(string); !iconIsString {
			return registrar.Report(actions.SeverityError, actions.InvalidActionIconName, fmt.Sprintf(iconNotStringMessageTemplateConstant, entryLabel))
		}
	}

	definition, decodeError := DecodeDefinition(record)
	if decodeError != nil {
		return registrar.Report(actions.SeverityError, actions.InvalidActionName, fmt.Sprintf(entryDecodeMessageTemplateConstant, entryLabel, decodeError))
	}

	return registrar.LoadAction(definition.Name, definition.Action())
}

func normalizeRecord(entry any) (map[string]any, bool) {
	switch typedEntry := entry.(type) {
	case map[string]any:
		return typedEntry, true
	case map[any]any:
		record := make(map[string]any, len(typedEntry))
		for key, value := range typedEntry {
			record[fmt.Sprint(key)] = value
		}
		return record, true
	default:
		return nil, false
	}
}

func describeEntry(entryIndex int, record map[string]any) string {
	if nameValue, isString := record[definitionFieldNameConstant].(string); isString && len(nameValue) > 0 {
		return fmt.Sprintf("%q", nameValue)
	}
	return fmt.Sprintf(unnamedEntryTemplateConstant, entryIndex)
}
