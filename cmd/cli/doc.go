// Package cli constructs the git-clean-gone command-line interface. It mounts
// the gone branch cleanup command as the Cobra root, layers embedded defaults,
// an optional configuration file and environment overrides through the
// configuration loader, and builds the zap logger shared by the command.
package cli
