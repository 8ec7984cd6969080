package utils_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/git-clean-gone/internal/utils"
)

const (
	testEnvironmentPrefixConstant                  = "TESTCLEANGONE"
	testLogLevelKeyConstant                        = "common.log_level"
	testLogLevelEnvironmentVariableConstant        = "TESTCLEANGONE_COMMON_LOG_LEVEL"
	testProtectedBranchesEnvironmentVariable       = "TESTCLEANGONE_TOOLS_CLEAN_GONE_PROTECTED_BRANCHES"
	testDefaultLogLevelConstant                    = "info"
	testConfiguredLogLevelConstant                 = "debug"
	testOverriddenLogLevelConstant                 = "error"
	testFileLogLevelConstant                       = "warn"
	testEmbeddedLogLevelConstant                   = "debug"
	testConfigFileNameConstant                     = "config.yaml"
	testConfigContentTemplateConstant              = "common:\n  log_level: %s\ntools:\n  clean_gone:\n    protected_branches: []\n"
	testCaseEmbeddedMessageConstant                = "embedded configuration merges"
	testCaseDefaultsMessageConstant                = "defaults are applied"
	testCaseFileMessageConstant                    = "config file overrides defaults"
	testCaseEnvironmentMessageConstant             = "environment overrides file"
	testConfigurationNameConstant                  = "config"
	testConfigurationTypeConstant                  = "yaml"
	configurationLoaderSubtestNameTemplateConstant = "%d_%s"
)

type configurationFixture struct {
	Common configurationCommonFixture `mapstructure:"common"`
	Tools  configurationToolsFixture  `mapstructure:"tools"`
}

type configurationCommonFixture struct {
	LogLevel string `mapstructure:"log_level"`
}

type configurationToolsFixture struct {
	CleanGone configurationCleanGoneFixture `mapstructure:"clean_gone"`
}

type configurationCleanGoneFixture struct {
	ProtectedBranches []string `mapstructure:"protected_branches"`
}

func TestConfigurationLoaderLoadConfiguration(testInstance *testing.T) {
	testCases := []struct {
		name                string
		embeddedLogLevel    string
		fileLogLevel        string
		environmentLogLevel string
		expectedLogLevel    string
	}{
		{
			name:             testCaseEmbeddedMessageConstant,
			embeddedLogLevel: testEmbeddedLogLevelConstant,
			expectedLogLevel: testEmbeddedLogLevelConstant,
		},
		{
			name:             testCaseDefaultsMessageConstant,
			embeddedLogLevel: testDefaultLogLevelConstant,
			expectedLogLevel: testDefaultLogLevelConstant,
		},
		{
			name:             testCaseFileMessageConstant,
			embeddedLogLevel: testDefaultLogLevelConstant,
			fileLogLevel:     testConfiguredLogLevelConstant,
			expectedLogLevel: testConfiguredLogLevelConstant,
		},
		{
			name:                testCaseEnvironmentMessageConstant,
			embeddedLogLevel:    testDefaultLogLevelConstant,
			fileLogLevel:        testFileLogLevelConstant,
			environmentLogLevel: testOverriddenLogLevelConstant,
			expectedLogLevel:    testOverriddenLogLevelConstant,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(configurationLoaderSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(testInstance *testing.T) {
			tempDirectory := testInstance.TempDir()
			configurationFilePath := ""
			if len(testCase.fileLogLevel) > 0 {
				configurationFilePath = filepath.Join(tempDirectory, testConfigFileNameConstant)
				configurationContent := fmt.Sprintf(testConfigContentTemplateConstant, testCase.fileLogLevel)
				require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(configurationContent), 0o600))
			}

			if len(testCase.environmentLogLevel) > 0 {
				testInstance.Setenv(testLogLevelEnvironmentVariableConstant, testCase.environmentLogLevel)
			}

			configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, nil)
			configurationLoader.SetEmbeddedConfiguration([]byte(fmt.Sprintf(testConfigContentTemplateConstant, testCase.embeddedLogLevel)), testConfigurationTypeConstant)

			defaultValues := map[string]any{
				testLogLevelKeyConstant: testDefaultLogLevelConstant,
			}

			loadedConfiguration := configurationFixture{}
			metadata, loadError := configurationLoader.LoadConfiguration(configurationFilePath, defaultValues, &loadedConfiguration)
			require.NoError(testInstance, loadError)
			require.Equal(testInstance, testCase.expectedLogLevel, loadedConfiguration.Common.LogLevel)
			require.Equal(testInstance, configurationFilePath, metadata.ConfigFileUsed)
		})
	}
}

func TestConfigurationLoaderIgnoresWorkingDirectoryWithoutSearchPaths(testInstance *testing.T) {
	workingDirectory := testInstance.TempDir()
	configurationContent := fmt.Sprintf(testConfigContentTemplateConstant, testConfiguredLogLevelConstant)
	require.NoError(testInstance, os.WriteFile(filepath.Join(workingDirectory, testConfigFileNameConstant), []byte(configurationContent), 0o600))
	originalWorkingDirectory, getwdError := os.Getwd()
	require.NoError(testInstance, getwdError)
	require.NoError(testInstance, os.Chdir(workingDirectory))
	testInstance.Cleanup(func() {
		require.NoError(testInstance, os.Chdir(originalWorkingDirectory))
	})

	configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, nil)

	loadedConfiguration := configurationFixture{}
	metadata, loadError := configurationLoader.LoadConfiguration("", map[string]any{testLogLevelKeyConstant: testDefaultLogLevelConstant}, &loadedConfiguration)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, testDefaultLogLevelConstant, loadedConfiguration.Common.LogLevel)
	require.Empty(testInstance, metadata.ConfigFileUsed)
}

func TestConfigurationLoaderSearchPaths(testInstance *testing.T) {
	searchDirectory := testInstance.TempDir()
	configurationFilePath := filepath.Join(searchDirectory, testConfigFileNameConstant)
	configurationContent := fmt.Sprintf(testConfigContentTemplateConstant, testConfiguredLogLevelConstant)
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(configurationContent), 0o600))

	configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, []string{searchDirectory})

	loadedConfiguration := configurationFixture{}
	metadata, loadError := configurationLoader.LoadConfiguration("", map[string]any{testLogLevelKeyConstant: testDefaultLogLevelConstant}, &loadedConfiguration)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, testConfiguredLogLevelConstant, loadedConfiguration.Common.LogLevel)
	require.Equal(testInstance, configurationFilePath, metadata.ConfigFileUsed)
}

func TestConfigurationLoaderRejectsMissingExplicitFile(testInstance *testing.T) {
	configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, nil)

	loadedConfiguration := configurationFixture{}
	_, loadError := configurationLoader.LoadConfiguration(filepath.Join(testInstance.TempDir(), testConfigFileNameConstant), nil, &loadedConfiguration)
	require.ErrorContains(testInstance, loadError, "failed to read configuration")
}

func TestConfigurationLoaderSplitsEnvironmentLists(testInstance *testing.T) {
	testInstance.Setenv(testProtectedBranchesEnvironmentVariable, "main, develop,,release/1.x")

	configurationLoader := utils.NewConfigurationLoader(testConfigurationNameConstant, testConfigurationTypeConstant, testEnvironmentPrefixConstant, nil)
	configurationLoader.SetEmbeddedConfiguration([]byte(fmt.Sprintf(testConfigContentTemplateConstant, testDefaultLogLevelConstant)), testConfigurationTypeConstant)

	loadedConfiguration := configurationFixture{}
	_, loadError := configurationLoader.LoadConfiguration("", nil, &loadedConfiguration)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, []string{"main", "develop", "release/1.x"}, loadedConfiguration.Tools.CleanGone.ProtectedBranches)
}
