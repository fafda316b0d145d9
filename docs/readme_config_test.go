package docs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/manifestlock/cmd/cli"
	"github.com/temirov/manifestlock/internal/lock"
	"github.com/temirov/manifestlock/internal/utils"
)

const (
	readmeFileNameConstant           = "README.md"
	yamlFenceStartConstant           = "```yaml"
	yamlFenceEndConstant             = "```"
	configHeaderMarkerConstant       = "# config.yaml"
	readmeSnippetFileNameConstant    = "config.yaml"
	parentDirectoryReferenceConstant = ".."
	missingHeaderMessageConstant     = "README example missing config header marker"
	missingStartFenceMessageConstant = "README example missing yaml fence start"
	missingEndFenceMessageConstant   = "README example missing yaml fence end"
	unexpectedKeyMessageTemplate     = "unexpected configuration key %s"
)

type readmeApplicationConfiguration struct {
	Common map[string]string            `yaml:"common"`
	Tools  map[string]map[string]string `yaml:"tools"`
}

func extractReadmeConfiguration(testInstance *testing.T) string {
	testInstance.Helper()

	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)

	readmePath := filepath.Join(workingDirectory, parentDirectoryReferenceConstant, readmeFileNameConstant)
	contentBytes, readError := os.ReadFile(readmePath)
	require.NoError(testInstance, readError)

	contentText := string(contentBytes)
	headerIndex := strings.Index(contentText, configHeaderMarkerConstant)
	require.NotEqual(testInstance, -1, headerIndex, missingHeaderMessageConstant)

	fenceStartIndex := strings.LastIndex(contentText[:headerIndex], yamlFenceStartConstant)
	require.NotEqual(testInstance, -1, fenceStartIndex, missingStartFenceMessageConstant)

	remainingText := contentText[headerIndex:]
	fenceEndRelativeIndex := strings.Index(remainingText, yamlFenceEndConstant)
	require.NotEqual(testInstance, -1, fenceEndRelativeIndex, missingEndFenceMessageConstant)
	fenceEndIndex := headerIndex + fenceEndRelativeIndex

	return strings.TrimSpace(contentText[fenceStartIndex+len(yamlFenceStartConstant) : fenceEndIndex])
}

func TestReadmeConfigurationUsesKnownKeys(testInstance *testing.T) {
	snippet := extractReadmeConfiguration(testInstance)

	var readmeConfiguration readmeApplicationConfiguration
	require.NoError(testInstance, yaml.Unmarshal([]byte(snippet), &readmeConfiguration))

	embeddedData, _ := cli.EmbeddedDefaultConfiguration()
	var embeddedConfiguration readmeApplicationConfiguration
	require.NoError(testInstance, yaml.Unmarshal(embeddedData, &embeddedConfiguration))

	for key := range readmeConfiguration.Common {
		_, known := embeddedConfiguration.Common[key]
		require.Truef(testInstance, known, unexpectedKeyMessageTemplate, "common."+key)
	}
	for toolName, toolConfiguration := range readmeConfiguration.Tools {
		embeddedTool, knownTool := embeddedConfiguration.Tools[toolName]
		require.Truef(testInstance, knownTool, unexpectedKeyMessageTemplate, "tools."+toolName)
		for key := range toolConfiguration {
			_, known := embeddedTool[key]
			require.Truef(testInstance, known, unexpectedKeyMessageTemplate, "tools."+toolName+"."+key)
		}
	}
}

func TestReadmeConfigurationLoads(testInstance *testing.T) {
	snippet := extractReadmeConfiguration(testInstance)

	configurationPath := filepath.Join(testInstance.TempDir(), readmeSnippetFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(snippet), 0o600))

	loader := utils.NewConfigurationLoader("config", "yaml", "MANIFESTLOCK_DOCS", nil)
	var configuration cli.ApplicationConfiguration
	loadedConfiguration, loadError := loader.LoadConfiguration(configurationPath, nil, &configuration)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, configurationPath, loadedConfiguration.ConfigFileUsed)

	require.Equal(testInstance, "console", configuration.Common.LogFormat)
	require.Equal(testInstance, "manifests/default.xml", configuration.Tools.Lock.InputPath)
	require.Equal(testInstance, "manifests/locked.xml", configuration.Tools.Lock.OutputPath)
	require.Equal(testInstance, "~/src/workspace", configuration.Tools.Lock.WorkspacePath)
	require.Equal(testInstance, lock.ResolverNative, configuration.Tools.Lock.Sanitize().Resolver)
}
