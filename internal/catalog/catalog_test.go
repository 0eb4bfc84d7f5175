package catalog_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/herald/internal/actions"
	"github.com/temirov/herald/internal/catalog"
	"github.com/temirov/herald/internal/output"
)

const (
	testCatalogFileNameConstant = "actions.yaml"
	testListCatalogConstant     = `
- name: greet
  format: "hi %s"
  min_arguments: 1
- name: deploy
  severity: alert
  icon: "🚀"
  join: ", "
`
	testDocumentCatalogConstant = `
actions:
  - name: audit
    severity: bug
`
	testNamedCatalogConstant = `
greet:
  format: "hi %s"
deploy:
  name: Deploy
  severity: alert
`
)

func newCatalogDispatcher() (*actions.Dispatcher, *bytes.Buffer, *bytes.Buffer) {
	standardBuffer := &bytes.Buffer{}
	warningBuffer := &bytes.Buffer{}
	dispatcher := actions.NewDispatcher(actions.DispatcherDependencies{
		Output: output.NewConsoleOutput(standardBuffer, warningBuffer),
	})
	return dispatcher, standardBuffer, warningBuffer
}

func TestLoadFileAcceptsListAndDocumentLayouts(testInstance *testing.T) {
	testCases := []struct {
		name          string
		content       string
		expectedNames []string
	}{
		{name: "top_level_list", content: testListCatalogConstant, expectedNames: []string{"DEPLOY", "GREET"}},
		{name: "actions_document", content: testDocumentCatalogConstant, expectedNames: []string{"AUDIT"}},
		{name: "name_keyed_mapping", content: testNamedCatalogConstant, expectedNames: []string{"DEPLOY", "GREET"}},
		{name: "empty_actions_document", content: "actions:\n", expectedNames: []string{}},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			catalogPath := filepath.Join(testInstance.TempDir(), testCatalogFileNameConstant)
			require.NoError(testInstance, os.WriteFile(catalogPath, []byte(testCase.content), 0o600))

			entries, loadError := catalog.LoadFile(catalogPath)
			require.NoError(testInstance, loadError)

			dispatcher, _, _ := newCatalogDispatcher()
			require.NoError(testInstance, catalog.Register(dispatcher, entries))
			require.Equal(testInstance, testCase.expectedNames, dispatcher.Actions())
		})
	}
}

func TestLoadFileErrors(testInstance *testing.T) {
	_, emptyPathError := catalog.LoadFile("  ")
	require.Error(testInstance, emptyPathError)

	_, missingFileError := catalog.LoadFile(filepath.Join(testInstance.TempDir(), "missing.yaml"))
	require.Error(testInstance, missingFileError)

	_, parseError := catalog.Parse([]byte("actions: [unterminated"))
	require.Error(testInstance, parseError)
}

func TestParseRejectsEntriesThatWouldBeDropped(testInstance *testing.T) {
	testCases := []struct {
		name            string
		content         string
		expectedMessage string
	}{
		{
			name:            "misspelled_actions_key",
			content:         "greet:\n  format: \"hi %s\"\nactoins:\n  - name: typo\n",
			expectedMessage: "failed to parse action catalog: entry \"actoins\" must be a mapping",
		},
		{
			name:            "actions_list_beside_named_entries",
			content:         "actions:\n  - name: audit\ngreet:\n  format: \"hi %s\"\n",
			expectedMessage: "failed to parse action catalog: entry \"actions\" must be a mapping",
		},
		{
			name:            "scalar_descriptor",
			content:         "greet: hello\n",
			expectedMessage: "failed to parse action catalog: entry \"greet\" must be a mapping",
		},
		{
			name:            "conflicting_declared_name",
			content:         "greet:\n  name: wave\n",
			expectedMessage: "failed to parse action catalog: entry \"greet\" declares name \"wave\"",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			entries, parseError := catalog.Parse([]byte(testCase.content))
			require.EqualError(testInstance, parseError, testCase.expectedMessage)
			require.Nil(testInstance, entries)
		})
	}
}

func TestParseNameKeyedEntriesCarryTheirKey(testInstance *testing.T) {
	entries, parseError := catalog.Parse([]byte(testNamedCatalogConstant))
	require.NoError(testInstance, parseError)
	require.Len(testInstance, entries, 2)

	dispatcher, standardBuffer, _ := newCatalogDispatcher()
	require.NoError(testInstance, catalog.Register(dispatcher, entries))
	require.NoError(testInstance, dispatcher.Run("greet", "Sam"))
	require.NoError(testInstance, dispatcher.Run("deploy", "prod"))
	require.Equal(testInstance, "👍 GREET: hi Sam\n📢 DEPLOY: prod\n", standardBuffer.String())
}

func TestRegisteredDefinitionsRun(testInstance *testing.T) {
	entries, parseError := catalog.Parse([]byte(testListCatalogConstant))
	require.NoError(testInstance, parseError)

	dispatcher, standardBuffer, _ := newCatalogDispatcher()
	require.NoError(testInstance, catalog.Register(dispatcher, entries))

	require.NoError(testInstance, dispatcher.Run("greet", "Sam"))
	require.NoError(testInstance, dispatcher.Run("DEPLOY", "api", "web"))
	require.Equal(testInstance, "👍 GREET: hi Sam\n🚀 DEPLOY: api, web\n", standardBuffer.String())

	runError := dispatcher.Run("greet")
	var fatalError *actions.FatalError
	require.ErrorAs(testInstance, runError, &fatalError)
	require.Equal(testInstance, "❌ ACTION_FAILED: Action \"GREET\" failed to run! expected at least 1 arguments, received 0", fatalError.Message)
}

func TestRegisterReportsMalformedEntries(testInstance *testing.T) {
	testCases := []struct {
		name         string
		entries      []any
		expectedName string
		expectedKept []string
	}{
		{
			name:         "entry_not_record",
			entries:      []any{map[string]any{"name": "first"}, "second"},
			expectedName: actions.InvalidActionName,
			expectedKept: []string{"FIRST"},
		},
		{
			name:         "icon_not_string",
			entries:      []any{map[string]any{"name": "first", "icon": 5}},
			expectedName: actions.InvalidActionIconName,
			expectedKept: []string{},
		},
		{
			name:         "unknown_field",
			entries:      []any{map[any]any{"name": "first", "colour": "red"}},
			expectedName: actions.InvalidActionName,
			expectedKept: []string{},
		},
		{
			name:         "unknown_severity",
			entries:      []any{map[string]any{"name": "first", "severity": "fatal"}},
			expectedName: actions.InvalidActionSeverityName,
			expectedKept: []string{},
		},
		{
			name:         "reserved_name",
			entries:      []any{map[string]any{"name": "bug"}},
			expectedName: actions.ReservedActionNameName,
			expectedKept: []string{},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			dispatcher, _, _ := newCatalogDispatcher()

			var reportedNames []string
			require.NoError(testInstance, dispatcher.RegisterMethodCallback("error", func(actionName string, results ...any) {
				reportedNames = append(reportedNames, actionName)
			}))

			registrationError := catalog.Register(dispatcher, testCase.entries)

			var fatalError *actions.FatalError
			require.ErrorAs(testInstance, registrationError, &fatalError)
			require.Equal(testInstance, []string{testCase.expectedName}, reportedNames)
			require.Equal(testInstance, testCase.expectedKept, dispatcher.Actions())
		})
	}
}

func TestDecodeDefinition(testInstance *testing.T) {
	definition, decodeError := catalog.DecodeDefinition(map[string]any{
		"name":          "notify",
		"severity":      "warn",
		"format":        "%s!",
		"min_arguments": 1,
		"quiet":         true,
	})
	require.NoError(testInstance, decodeError)
	require.Equal(testInstance, catalog.Definition{
		Name:             "notify",
		Severity:         "warn",
		Format:           "%s!",
		MinimumArguments: 1,
		Quiet:            true,
	}, definition)

	action := definition.Action()
	require.True(testInstance, action.SuppressOverwriteWarning)
	require.Equal(testInstance, actions.SeverityWarn, action.EffectiveSeverity())
	results, methodError := action.Method("done")
	require.NoError(testInstance, methodError)
	require.Equal(testInstance, []any{"done!"}, results)
}
