package lock_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/manifestlock/internal/lock"
)

func TestDefaultConfigurationValuesUseRootKey(testInstance *testing.T) {
	require.Equal(testInstance, map[string]any{
		"tools.lock.input":     "default.xml",
		"tools.lock.output":    "locked.xml",
		"tools.lock.workspace": "",
		"tools.lock.resolver":  "git",
	}, lock.DefaultConfigurationValues("tools.lock"))
}

func TestCommandConfigurationSanitize(testInstance *testing.T) {
	testCases := []struct {
		name          string
		configuration lock.CommandConfiguration
		expected      lock.CommandConfiguration
	}{
		{
			name:          "empty_restores_defaults",
			configuration: lock.CommandConfiguration{InputPath: "   ", OutputPath: ""},
			expected:      lock.DefaultCommandConfiguration(),
		},
		{
			name: "trims_values",
			configuration: lock.CommandConfiguration{
				InputPath:     " manifests/default.xml ",
				OutputPath:    "\tmanifests/locked.xml\n",
				WorkspacePath: " ~/src ",
				Resolver:      " Native ",
			},
			expected: lock.CommandConfiguration{
				InputPath:     "manifests/default.xml",
				OutputPath:    "manifests/locked.xml",
				WorkspacePath: "~/src",
				Resolver:      lock.ResolverNative,
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expected, testCase.configuration.Sanitize())
		})
	}
}
