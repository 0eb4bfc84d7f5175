package catalog

import (
	"fmt"
	"strings"

	"github.com/temirov/herald/internal/actions"
)

const (
	missingArgumentsErrorTemplateConstant = "expected at least %d arguments, received %d"
)

// Definition describes an action declared in a catalog.
type Definition struct {
	Name             string `yaml:"name" mapstructure:"name"`
	Severity         string `yaml:"severity" mapstructure:"severity"`
	Icon             string `yaml:"icon" mapstructure:"icon"`
	Format           string `yaml:"format" mapstructure:"format"`
	Join             string `yaml:"join" mapstructure:"join"`
	MinimumArguments int    `yaml:"min_arguments" mapstructure:"min_arguments"`
	Quiet            bool   `yaml:"quiet" mapstructure:"quiet"`
}

// Action converts the definition into a dispatcher action.
func (definition Definition) Action() *actions.Action {
	return &actions.Action{
		Method:                   definition.method(),
		Severity:                 strings.TrimSpace(definition.Severity),
		Icon:                     definition.Icon,
		SuppressOverwriteWarning: definition.Quiet,
	}
}

func (definition Definition) method() actions.Method {
	return func(arguments ...any) ([]any, error) {
		if len(arguments) < definition.MinimumArguments {
			return nil, fmt.Errorf(missingArgumentsErrorTemplateConstant, definition.MinimumArguments, len(arguments))
		}
		if len(definition.Format) > 0 {
			return []any{fmt.Sprintf(definition.Format, arguments...)}, nil
		}
		if len(definition.Join) > 0 {
			renderedArguments := make([]string, 0, len(arguments))
			for _, argument := range arguments {
				renderedArguments = append(renderedArguments, fmt.Sprint(argument))
			}
			return []any{strings.Join(renderedArguments, definition.Join)}, nil
		}
		return arguments, nil
	}
}
