package output_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/herald/internal/actions"
	"github.com/temirov/herald/internal/output"
)

const (
	testPrefixConstant = "👍 GREET:"
)

func TestMessageFormatterFormat(testInstance *testing.T) {
	testCases := []struct {
		name     string
		text     string
		values   []any
		expected string
	}{
		{name: "text_only", text: testPrefixConstant, values: nil, expected: testPrefixConstant},
		{name: "text_and_values", text: testPrefixConstant, values: []any{"hi", 3}, expected: testPrefixConstant + " hi 3"},
		{name: "values_only", text: "  ", values: []any{true}, expected: "true"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, output.MessageFormatter{}.Format(testCase.text, testCase.values...))
		})
	}
}

func TestConsoleOutputRoutesChannels(testInstance *testing.T) {
	standardBuffer := &bytes.Buffer{}
	warningBuffer := &bytes.Buffer{}
	console := output.NewConsoleOutput(standardBuffer, warningBuffer)

	console.WriteLine(testPrefixConstant, "hi Sam")
	console.WriteWarning("⚠️ WARN:", "careful")

	require.Equal(testInstance, testPrefixConstant+" hi Sam\n", standardBuffer.String())
	require.Equal(testInstance, "⚠️ WARN: careful\n", warningBuffer.String())

	fatalError := console.RaiseFatal("❌ ERROR: x y")
	var typedError *actions.FatalError
	require.ErrorAs(testInstance, fatalError, &typedError)
	require.Equal(testInstance, "❌ ERROR: x y", typedError.Message)
}

func TestConsoleOutputDrivesDispatcher(testInstance *testing.T) {
	standardBuffer := &bytes.Buffer{}
	warningBuffer := &bytes.Buffer{}
	dispatcher := actions.NewDispatcher(actions.DispatcherDependencies{
		Output: output.NewConsoleOutput(standardBuffer, warningBuffer),
	})

	require.NoError(testInstance, dispatcher.LoadAction("greet", &actions.Action{
		Method: func(arguments ...any) ([]any, error) {
			return []any{"hi", arguments[0]}, nil
		},
	}))
	require.NoError(testInstance, dispatcher.Run("Greet", "Sam"))
	require.NoError(testInstance, dispatcher.Run("nobody"))

	require.Equal(testInstance, testPrefixConstant+" hi Sam\n", standardBuffer.String())
	require.Equal(testInstance, "❓ UNDEFINED: Action \"nobody\" is not defined!\n", warningBuffer.String())
}
