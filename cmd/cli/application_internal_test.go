package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/manifestlock/internal/manifest"
)

const (
	testConfigurationFileNameConstant = "config.yaml"
	testConfigurationTemplateConstant = "common:\n  log_level: %s\n  log_format: %s\ntools:\n  lock:\n    input: %s\n    output: %s\n"
	testMissingManifestNameConstant   = "missing.xml"
	testLockedManifestNameConstant    = "locked.xml"
)

func isolateUserConfiguration(testInstance *testing.T) {
	testInstance.Helper()
	isolatedDirectory := testInstance.TempDir()
	testInstance.Setenv("HOME", isolatedDirectory)
	testInstance.Setenv("XDG_CONFIG_HOME", isolatedDirectory)
}

func writeConfiguration(testInstance *testing.T, directory string, logLevel string, logFormat string, inputPath string, outputPath string) string {
	testInstance.Helper()
	configurationPath := filepath.Join(directory, testConfigurationFileNameConstant)
	configurationContent := fmt.Sprintf(testConfigurationTemplateConstant, logLevel, logFormat, inputPath, outputPath)
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(configurationContent), 0o600))
	return configurationPath
}

func TestApplicationLoadsConfigurationFileAndFlagOverrides(testInstance *testing.T) {
	isolateUserConfiguration(testInstance)
	workingDirectory := testInstance.TempDir()

	missingManifestPath := filepath.Join(workingDirectory, testMissingManifestNameConstant)
	lockedManifestPath := filepath.Join(workingDirectory, testLockedManifestNameConstant)
	configurationPath := writeConfiguration(testInstance, workingDirectory, "debug", "console", missingManifestPath, lockedManifestPath)

	application := NewApplication()
	application.rootCommand.SetArgs([]string{"--config", configurationPath, "--log-level", "error"})

	executionError := application.Execute()
	require.Error(testInstance, executionError)
	require.ErrorIs(testInstance, executionError, os.ErrNotExist)

	var manifestParseError *manifest.ParseError
	require.ErrorAs(testInstance, executionError, &manifestParseError)

	require.Equal(testInstance, "error", application.configuration.Common.LogLevel)
	require.Equal(testInstance, "console", application.configuration.Common.LogFormat)
	require.True(testInstance, application.humanReadableLoggingEnabled())
	require.Equal(testInstance, missingManifestPath, application.configuration.Tools.Lock.InputPath)
	require.Equal(testInstance, configurationPath, application.configurationMetadata.ConfigFileUsed)

	configurationFilePath, configurationFileAvailable := application.commandContextAccessor.ConfigurationFilePath(application.rootCommand.Context())
	require.True(testInstance, configurationFileAvailable)
	require.Equal(testInstance, configurationPath, configurationFilePath)

	_, outputError := os.Stat(lockedManifestPath)
	require.True(testInstance, os.IsNotExist(outputError))
}

func TestApplicationEnvironmentOverridesEmbeddedDefaults(testInstance *testing.T) {
	isolateUserConfiguration(testInstance)
	overriddenOutput := filepath.Join(testInstance.TempDir(), "pinned.xml")
	testInstance.Setenv("MANIFESTLOCK_TOOLS_LOCK_OUTPUT", overriddenOutput)
	testInstance.Setenv("MANIFESTLOCK_COMMON_LOG_FORMAT", "console")

	application := NewApplication()
	require.NoError(testInstance, application.initializeConfiguration(application.rootCommand))

	require.Equal(testInstance, overriddenOutput, application.configuration.Tools.Lock.OutputPath)
	require.Equal(testInstance, "default.xml", application.configuration.Tools.Lock.InputPath)
	require.Equal(testInstance, "info", application.configuration.Common.LogLevel)
	require.True(testInstance, application.humanReadableLoggingEnabled())
}

func TestApplicationRejectsUnknownLogLevel(testInstance *testing.T) {
	isolateUserConfiguration(testInstance)

	application := NewApplication()
	application.rootCommand.SetArgs([]string{"--log-level", "verbose"})

	executionError := application.Execute()
	require.Error(testInstance, executionError)
	require.Contains(testInstance, executionError.Error(), "unable to create logger")
}

func TestApplicationRejectsMissingExplicitConfiguration(testInstance *testing.T) {
	isolateUserConfiguration(testInstance)

	application := NewApplication()
	application.rootCommand.SetArgs([]string{"--config", filepath.Join(testInstance.TempDir(), "absent.yaml")})

	executionError := application.Execute()
	require.Error(testInstance, executionError)
	require.Contains(testInstance, executionError.Error(), "unable to load configuration")
}

func TestApplicationReadsEnvironmentFileFromWorkingDirectory(testInstance *testing.T) {
	isolateUserConfiguration(testInstance)
	testInstance.Setenv("MANIFESTLOCK_TOOLS_LOCK_RESOLVER", "")
	require.NoError(testInstance, os.Unsetenv("MANIFESTLOCK_TOOLS_LOCK_RESOLVER"))

	workingDirectory := testInstance.TempDir()
	require.NoError(testInstance, os.WriteFile(filepath.Join(workingDirectory, ".env"), []byte("MANIFESTLOCK_TOOLS_LOCK_RESOLVER=native\n"), 0o600))
	testInstance.Chdir(workingDirectory)

	application := NewApplication()
	require.NoError(testInstance, application.initializeConfiguration(application.rootCommand))

	require.Equal(testInstance, "native", application.configuration.Tools.Lock.Resolver)
	require.Equal(testInstance, []string{".env"}, application.configurationMetadata.EnvironmentFilesUsed)

	metadata, available := application.commandContextAccessor.ExecutionMetadata(application.rootCommand.Context())
	require.True(testInstance, available)
	require.Equal(testInstance, []string{".env"}, metadata.EnvironmentFiles)
	_, configurationFileAvailable := application.commandContextAccessor.ConfigurationFilePath(application.rootCommand.Context())
	require.False(testInstance, configurationFileAvailable)
}
