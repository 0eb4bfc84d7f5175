package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/temirov/herald/cmd/cli"
	"github.com/temirov/herald/internal/actions"
)

const (
	testConfigurationFileNameConstant = "config.yaml"
	testCatalogFileNameConstant       = "catalog.yaml"
	testQuietConfigurationConstant    = "common:\n  log_level: error\n"
	testInlineConfigurationConstant   = `common:
  log_level: error
actions:
  - name: greet
    format: "hi %s"
    min_arguments: 1
`
	testCatalogContentConstant = `actions:
  - name: notify
    severity: alert
    icon: "🔔"
    join: ", "
  - name: greet
    severity: warn
`
	testSuppressedConfigurationConstant = `common:
  log_level: error
output:
  suppress_overwrite_warnings: true
actions:
  - name: greet
    format: "hi %s"
`
	testInvalidIconConfigurationConstant = `common:
  log_level: error
actions:
  - name: bad
    icon: 5
`
)

type applicationHarness struct {
	application    *cli.Application
	standardBuffer *bytes.Buffer
	warningBuffer  *bytes.Buffer
	directory      string
}

func newApplicationHarness(testInstance *testing.T) applicationHarness {
	testInstance.Helper()

	isolatedDirectory := testInstance.TempDir()
	testInstance.Setenv("HOME", isolatedDirectory)
	testInstance.Setenv("XDG_CONFIG_HOME", filepath.Join(isolatedDirectory, "xdg"))

	harness := applicationHarness{
		application:    cli.NewApplication(),
		standardBuffer: &bytes.Buffer{},
		warningBuffer:  &bytes.Buffer{},
		directory:      isolatedDirectory,
	}
	harness.application.SetOutputWriters(harness.standardBuffer, harness.warningBuffer)
	return harness
}

func (harness applicationHarness) writeFile(testInstance *testing.T, fileName string, content string) string {
	testInstance.Helper()

	filePath := filepath.Join(harness.directory, fileName)
	require.NoError(testInstance, os.WriteFile(filePath, []byte(content), 0o600))
	return filePath
}

func TestApplicationRunDispatches(testInstance *testing.T) {
	testCases := []struct {
		name             string
		configuration    string
		catalog          string
		arguments        []string
		expectedStandard string
		expectedWarning  string
		expectedFatal    string
	}{
		{
			name:             "inline_action",
			configuration:    testInlineConfigurationConstant,
			arguments:        []string{"run", "Greet", "Sam"},
			expectedStandard: "👍 GREET: hi Sam\n",
		},
		{
			name:             "catalog_action",
			configuration:    testQuietConfigurationConstant,
			catalog:          testCatalogContentConstant,
			arguments:        []string{"run", "notify", "disk", "cpu"},
			expectedStandard: "🔔 NOTIFY: disk, cpu\n",
		},
		{
			name:             "catalog_overwrites_inline_action",
			configuration:    testInlineConfigurationConstant,
			catalog:          testCatalogContentConstant,
			arguments:        []string{"run", "greet", "Sam"},
			expectedWarning:  "⚠️ ACTION_OVERWRITTEN: Action \"GREET\" was overwritten!\n⚠️ GREET: Sam\n",
			expectedStandard: "",
		},
		{
			name:            "overwrite_warning_suppressed",
			configuration:   testSuppressedConfigurationConstant,
			catalog:         testCatalogContentConstant,
			arguments:       []string{"run", "greet", "Sam"},
			expectedWarning: "⚠️ GREET: Sam\n",
		},
		{
			name:            "undefined_action",
			configuration:   testQuietConfigurationConstant,
			arguments:       []string{"run", "missing", "x"},
			expectedWarning: "❓ UNDEFINED: Action \"missing\" is not defined! x\n",
		},
		{
			name:          "method_failure",
			configuration: testInlineConfigurationConstant,
			arguments:     []string{"run", "greet"},
			expectedFatal: "❌ ACTION_FAILED: Action \"GREET\" failed to run! expected at least 1 arguments, received 0",
		},
		{
			name:          "error_severity",
			configuration: testQuietConfigurationConstant,
			arguments:     []string{"run", "error", "boom"},
			expectedFatal: "❌ ERROR: boom",
		},
		{
			name:          "invalid_icon",
			configuration: testInvalidIconConfigurationConstant,
			arguments:     []string{"run", "bad"},
			expectedFatal: "❌ INVALID_ACTION_ICON: Action \"bad\" declares an icon that is not a string!",
		},
		{
			name:            "toggle_literals_after_action_name_pass_through",
			configuration:   testQuietConfigurationConstant,
			arguments:       []string{"run", "warn", "--forward", "no"},
			expectedWarning: "⚠️ WARN: --forward no\n",
		},
		{
			name:            "root_toggle_with_separate_value",
			configuration:   testQuietConfigurationConstant,
			arguments:       []string{"--forward", "no", "run", "bug", "leak"},
			expectedWarning: "🐛 BUG: leak\n",
		},
		{
			name:             "log_output_mode",
			configuration:    testInlineConfigurationConstant,
			arguments:        []string{"--output", "log", "run", "greet", "Sam"},
			expectedStandard: "👍 GREET: hi Sam\n",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			harness := newApplicationHarness(testInstance)

			arguments := []string{"--config", harness.writeFile(testInstance, testConfigurationFileNameConstant, testCase.configuration)}
			if len(testCase.catalog) > 0 {
				arguments = append(arguments, "--catalog", harness.writeFile(testInstance, testCatalogFileNameConstant, testCase.catalog))
			}
			arguments = append(arguments, testCase.arguments...)

			executionError := harness.application.ExecuteWithArguments(arguments)
			if len(testCase.expectedFatal) > 0 {
				var fatalError *actions.FatalError
				require.ErrorAs(testInstance, executionError, &fatalError)
				require.Equal(testInstance, testCase.expectedFatal, fatalError.Message)
				return
			}

			require.NoError(testInstance, executionError)
			require.Equal(testInstance, testCase.expectedStandard, harness.standardBuffer.String())
			require.Equal(testInstance, testCase.expectedWarning, harness.warningBuffer.String())
		})
	}
}

func TestApplicationListsActions(testInstance *testing.T) {
	harness := newApplicationHarness(testInstance)

	arguments := []string{
		"--config", harness.writeFile(testInstance, testConfigurationFileNameConstant, testSuppressedConfigurationConstant),
		"--catalog", harness.writeFile(testInstance, testCatalogFileNameConstant, testCatalogContentConstant),
		"actions",
	}

	require.NoError(testInstance, harness.application.ExecuteWithArguments(arguments))
	require.Equal(testInstance, "GREET WARN ⚠️\nNOTIFY ALERT 🔔\n", harness.standardBuffer.String())
}

func TestApplicationRejectsUnsupportedOutputMode(testInstance *testing.T) {
	harness := newApplicationHarness(testInstance)
	testInstance.Setenv("HERALD_OUTPUT_MODE", "syslog")

	arguments := []string{"--config", harness.writeFile(testInstance, testConfigurationFileNameConstant, testQuietConfigurationConstant), "severities"}

	executionError := harness.application.ExecuteWithArguments(arguments)
	require.EqualError(testInstance, executionError, "unsupported output mode: syslog")
}

func TestApplicationReportsMissingCatalog(testInstance *testing.T) {
	harness := newApplicationHarness(testInstance)

	arguments := []string{
		"--config", harness.writeFile(testInstance, testConfigurationFileNameConstant, testQuietConfigurationConstant),
		"--catalog", filepath.Join(harness.directory, "absent.yaml"),
		"actions",
	}

	executionError := harness.application.ExecuteWithArguments(arguments)
	require.Error(testInstance, executionError)
	require.Contains(testInstance, executionError.Error(), "unable to load catalog")
}

func TestEmbeddedDefaultConfiguration(testInstance *testing.T) {
	configurationData, configurationType := cli.EmbeddedDefaultConfiguration()
	viperInstance := viper.New()
	viperInstance.SetConfigType(configurationType)
	require.NoError(testInstance, viperInstance.ReadConfig(bytes.NewReader(configurationData)))

	var configuration cli.ApplicationConfiguration
	require.NoError(testInstance, viperInstance.Unmarshal(&configuration))

	require.Equal(testInstance, "info", configuration.Common.LogLevel)
	require.Equal(testInstance, "structured", configuration.Common.LogFormat)
	require.Equal(testInstance, "console", configuration.Output.Mode)
	require.False(testInstance, configuration.Output.Forward)
	require.False(testInstance, configuration.Output.SuppressOverwriteWarnings)
	require.Empty(testInstance, configuration.Catalogs)
	require.Empty(testInstance, configuration.Actions)
}
