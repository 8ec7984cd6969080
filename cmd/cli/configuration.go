package cli

import (
	_ "embed"

	"github.com/temirov/git-clean-gone/internal/branches/gone"
	"github.com/temirov/git-clean-gone/internal/utils"
)

const (
	commonConfigurationKeyConstant    = "common"
	commonLogLevelConfigKeyConstant   = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant  = commonConfigurationKeyConstant + ".log_format"
	toolsConfigurationKeyConstant     = "tools"
	cleanGoneConfigurationKeyConstant = toolsConfigurationKeyConstant + ".clean_gone"
	environmentPrefixConstant         = "GITCLEANGONE"
	configurationNameConstant         = "config"
	configurationTypeConstant         = "yaml"
)

// defaultConfigurationDocument is merged first so every key exists for GITCLEANGONE_* overrides.
//
//go:embed default_config.yaml
var defaultConfigurationDocument []byte

// ApplicationConfiguration describes the configuration consumed by the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Tools  ApplicationToolsConfiguration  `mapstructure:"tools"`
}

// ApplicationCommonConfiguration stores logging configuration.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationToolsConfiguration holds per-command configuration.
type ApplicationToolsConfiguration struct {
	CleanGone gone.CommandConfiguration `mapstructure:"clean_gone"`
}

// DefaultConfigurationDocument returns a copy of the built-in YAML configuration, a starting point for --config files.
func DefaultConfigurationDocument() []byte {
	return append([]byte(nil), defaultConfigurationDocument...)
}

// newConfigurationLoader reads only the embedded document, an explicit --config file and the environment.
func newConfigurationLoader() *utils.ConfigurationLoader {
	configurationLoader := utils.NewConfigurationLoader(configurationNameConstant, configurationTypeConstant, environmentPrefixConstant, nil)
	configurationLoader.SetEmbeddedConfiguration(defaultConfigurationDocument, configurationTypeConstant)
	return configurationLoader
}

func defaultConfigurationValues() map[string]any {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelWarn),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatConsole),
	}
	for configurationKey, configurationValue := range gone.DefaultConfigurationValues(cleanGoneConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}
	return defaultValues
}
