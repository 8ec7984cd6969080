package gone

import "strings"

const (
	configurationDryRunKeyConstant            = "dry_run"
	configurationVerboseKeyConstant           = "verbose"
	configurationRemoteKeyConstant            = "remote"
	configurationProtectedBranchesKeyConstant = "protected_branches"
	configurationKeySeparatorConstant         = "."
)

// CommandConfiguration captures configuration values for gone branch cleanup.
type CommandConfiguration struct {
	DryRun            bool     `mapstructure:"dry_run"`
	Verbose           bool     `mapstructure:"verbose"`
	RemoteName        string   `mapstructure:"remote"`
	ProtectedBranches []string `mapstructure:"protected_branches"`
}

// DefaultCommandConfiguration provides baseline configuration values for gone branch cleanup.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		DryRun:            false,
		Verbose:           false,
		RemoteName:        "",
		ProtectedBranches: []string{},
	}
}

// DefaultConfigurationValues produces Viper defaults rooted at rootKey.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + configurationKeySeparatorConstant + configurationDryRunKeyConstant:            defaults.DryRun,
		rootKey + configurationKeySeparatorConstant + configurationVerboseKeyConstant:           defaults.Verbose,
		rootKey + configurationKeySeparatorConstant + configurationRemoteKeyConstant:            defaults.RemoteName,
		rootKey + configurationKeySeparatorConstant + configurationProtectedBranchesKeyConstant: defaults.ProtectedBranches,
	}
}

// Sanitize trims configuration values without applying implicit defaults.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.RemoteName = strings.TrimSpace(configuration.RemoteName)

	sanitized.ProtectedBranches = make([]string, 0, len(configuration.ProtectedBranches))
	for _, branchName := range configuration.ProtectedBranches {
		trimmedName := strings.TrimSpace(branchName)
		if len(trimmedName) == 0 {
			continue
		}
		sanitized.ProtectedBranches = append(sanitized.ProtectedBranches, trimmedName)
	}

	return sanitized
}
