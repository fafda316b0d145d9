package utils

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	environmentKeySeparatorOldConstant              = "."
	environmentKeySeparatorNewConstant              = "_"
	workingDirectorySearchPathConstant              = "."
	configurationReadErrorTemplateConstant          = "failed to read configuration: %w"
	configurationUnmarshalErrorTemplateConstant     = "failed to parse configuration: %w"
	embeddedConfigurationMergeErrorTemplateConstant = "failed to merge embedded configuration: %w"
	environmentFileLoadErrorTemplateConstant        = "failed to load environment file %s: %w"
)

// ConfigurationLoader wraps Viper to load structured configuration files and environment overrides.
type ConfigurationLoader struct {
	configurationName         string
	configurationType         string
	environmentPrefix         string
	searchPaths               []string
	environmentKeyReplacer    *strings.Replacer
	embeddedConfiguration     []byte
	embeddedConfigurationType string
	environmentFiles          []string
}

// LoadedConfiguration surfaces metadata about the resolved configuration.
type LoadedConfiguration struct {
	ConfigFileUsed       string
	EnvironmentFilesUsed []string
}

// NewConfigurationLoader creates a loader that searches known paths and respects an environment prefix.
func NewConfigurationLoader(configurationName string, configurationType string, environmentPrefix string, searchPaths []string) *ConfigurationLoader {
	duplicatedSearchPaths := make([]string, len(searchPaths))
	copy(duplicatedSearchPaths, searchPaths)

	return &ConfigurationLoader{
		configurationName:      configurationName,
		configurationType:      configurationType,
		environmentPrefix:      environmentPrefix,
		searchPaths:            duplicatedSearchPaths,
		environmentKeyReplacer: strings.NewReplacer(environmentKeySeparatorOldConstant, environmentKeySeparatorNewConstant),
	}
}

// DefaultConfigurationSearchPaths lists the working directory followed by the
// application directory under the user configuration directory, when one exists.
func DefaultConfigurationSearchPaths(applicationDirectoryName string) []string {
	searchPaths := []string{workingDirectorySearchPathConstant}
	userConfigurationDirectory, userConfigurationDirectoryError := os.UserConfigDir()
	if userConfigurationDirectoryError != nil || len(userConfigurationDirectory) == 0 {
		return searchPaths
	}
	return append(searchPaths, filepath.Join(userConfigurationDirectory, applicationDirectoryName))
}

// SetEmbeddedConfiguration stores embedded configuration data merged before user-provided configuration files.
func (loader *ConfigurationLoader) SetEmbeddedConfiguration(configurationData []byte, configurationType string) {
	if loader == nil {
		return
	}

	loader.embeddedConfiguration = nil
	loader.embeddedConfigurationType = strings.TrimSpace(configurationType)

	if len(configurationData) == 0 {
		return
	}

	loader.embeddedConfiguration = append([]byte{}, configurationData...)
}

// SetEnvironmentFiles lists dotenv files exported into the process environment before
// environment overrides are read. Files that do not exist are skipped and variables
// already present in the environment are left untouched.
func (loader *ConfigurationLoader) SetEnvironmentFiles(environmentFiles ...string) {
	if loader == nil {
		return
	}
	loader.environmentFiles = append([]string{}, environmentFiles...)
}

// LoadConfiguration populates targetConfiguration using, in increasing precedence,
// defaults, embedded configuration, a configuration file, and environment variables.
// A missing configuration file is not an error unless configurationFilePath names it explicitly.
func (loader *ConfigurationLoader) LoadConfiguration(configurationFilePath string, defaultValues map[string]any, targetConfiguration any) (LoadedConfiguration, error) {
	viperInstance := viper.New()
	viperInstance.SetConfigName(loader.configurationName)
	viperInstance.SetConfigType(loader.configurationType)

	if len(loader.embeddedConfiguration) > 0 {
		configurationType := loader.configurationType
		if len(loader.embeddedConfigurationType) > 0 {
			configurationType = loader.embeddedConfigurationType
		}

		viperInstance.SetConfigType(configurationType)
		if mergeError := viperInstance.MergeConfig(bytes.NewReader(loader.embeddedConfiguration)); mergeError != nil {
			return LoadedConfiguration{}, fmt.Errorf(embeddedConfigurationMergeErrorTemplateConstant, mergeError)
		}
		viperInstance.SetConfigType(loader.configurationType)
	}

	for _, searchPath := range loader.searchPaths {
		viperInstance.AddConfigPath(searchPath)
	}

	environmentFilesUsed, environmentError := loader.loadEnvironmentFiles()
	if environmentError != nil {
		return LoadedConfiguration{}, environmentError
	}

	viperInstance.SetEnvPrefix(loader.environmentPrefix)
	if loader.environmentKeyReplacer != nil {
		viperInstance.SetEnvKeyReplacer(loader.environmentKeyReplacer)
	}
	viperInstance.AutomaticEnv()

	for defaultKey, defaultValue := range defaultValues {
		viperInstance.SetDefault(defaultKey, defaultValue)
	}

	if len(configurationFilePath) > 0 {
		viperInstance.SetConfigFile(configurationFilePath)
	}

	if readError := viperInstance.MergeInConfig(); readError != nil {
		var notFoundError viper.ConfigFileNotFoundError
		if !errors.As(readError, &notFoundError) {
			return LoadedConfiguration{}, fmt.Errorf(configurationReadErrorTemplateConstant, readError)
		}
	}

	if unmarshalError := viperInstance.Unmarshal(targetConfiguration); unmarshalError != nil {
		return LoadedConfiguration{}, fmt.Errorf(configurationUnmarshalErrorTemplateConstant, unmarshalError)
	}

	return LoadedConfiguration{ConfigFileUsed: viperInstance.ConfigFileUsed(), EnvironmentFilesUsed: environmentFilesUsed}, nil
}

func (loader *ConfigurationLoader) loadEnvironmentFiles() ([]string, error) {
	var loadedFiles []string
	for _, environmentFile := range loader.environmentFiles {
		if _, statError := os.Stat(environmentFile); errors.Is(statError, os.ErrNotExist) {
			continue
		}
		if loadError := godotenv.Load(environmentFile); loadError != nil {
			return nil, fmt.Errorf(environmentFileLoadErrorTemplateConstant, environmentFile, loadError)
		}
		loadedFiles = append(loadedFiles, environmentFile)
	}
	return loadedFiles, nil
}
