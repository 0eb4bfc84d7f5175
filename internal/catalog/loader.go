package catalog

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/temirov/herald/internal/actions"
)

const (
	catalogPathRequiredMessageConstant = "catalog path must be provided"
	catalogReadErrorTemplateConstant   = "failed to read action catalog: %w"
	catalogParseErrorTemplateConstant  = "failed to parse action catalog: %w"
	catalogEntryNotRecordTemplate      = "failed to parse action catalog: entry %q must be a mapping"
	catalogEntryNameMismatchTemplate   = "failed to parse action catalog: entry %q declares name %q"
	catalogActionsKeyConstant          = "actions"
)

// LoadFile reads raw action entries from a YAML or JSON catalog file.
// The file may hold a top-level list, a mapping with a single "actions" list,
// or a mapping from action name to descriptor.
func LoadFile(filePath string) ([]any, error) {
	trimmedPath := strings.TrimSpace(filePath)
	if len(trimmedPath) == 0 {
		return nil, errors.New(catalogPathRequiredMessageConstant)
	}

	contentBytes, readError := os.ReadFile(trimmedPath)
	if readError != nil {
		return nil, fmt.Errorf(catalogReadErrorTemplateConstant, readError)
	}

	return Parse(contentBytes)
}

// Parse decodes raw action entries from catalog content.
// In the name-keyed layout the key becomes the entry's name and entries are
// returned in key order; a value that is not a mapping is a parse error.
func Parse(contentBytes []byte) ([]any, error) {
	var entries []any
	if listError := yaml.Unmarshal(contentBytes, &entries); listError == nil {
		return entries, nil
	}

	var document map[string]any
	if documentError := yaml.Unmarshal(contentBytes, &document); documentError != nil {
		return nil, fmt.Errorf(catalogParseErrorTemplateConstant, documentError)
	}

	if actionValue, hasActions := document[catalogActionsKeyConstant]; hasActions && len(document) == 1 {
		if actionValue == nil {
			return nil, nil
		}
		if actionList, isActionList := actionValue.([]any); isActionList {
			return actionList, nil
		}
	}

	return namedEntries(document)
}

func namedEntries(document map[string]any) ([]any, error) {
	names := make([]string, 0, len(document))
	for name := range document {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]any, 0, len(names))
	for _, name := range names {
		record, isRecord := normalizeRecord(document[name])
		if !isRecord {
			return nil, fmt.Errorf(catalogEntryNotRecordTemplate, name)
		}

		namedRecord := make(map[string]any, len(record)+1)
		for key, value := range record {
			namedRecord[key] = value
		}
		if declaredName, hasName := namedRecord[definitionFieldNameConstant]; hasName {
			if declaredText, isText := declaredName.(string); !isText || actions.NormalizeName(declaredText) != actions.NormalizeName(name) {
				return nil, fmt.Errorf(catalogEntryNameMismatchTemplate, name, fmt.Sprint(declaredName))
			}
		}
		namedRecord[definitionFieldNameConstant] = name
		entries = append(entries, namedRecord)
	}
	return entries, nil
}
