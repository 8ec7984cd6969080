package gone

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/git-clean-gone/internal/execshell"
	"github.com/temirov/git-clean-gone/internal/ui"
)

const (
	commandUseConstant                    = "git-clean-gone"
	commandShortDescriptionConstant       = "Clean up local Git branches that have been deleted on the remote"
	commandLongDescriptionConstant        = "git-clean-gone fetches with pruning, finds local branches whose upstream is gone, deletes them, and lists the branches that remain."
	commandExecutionErrorTemplateConstant = "gone branch cleanup failed: %w"
	unexpectedArgumentsMessageConstant    = "git-clean-gone does not accept positional arguments"
	flagDryRunNameConstant                = "dry-run"
	flagDryRunShorthandConstant           = "d"
	flagDryRunDescriptionConstant         = "Show which branches would be deleted without deleting them"
	flagVerboseNameConstant               = "verbose"
	flagVerboseShorthandConstant          = "v"
	flagVerboseDescriptionConstant        = "Show output of the git commands"
)

// ErrUnexpectedArguments indicates positional arguments were supplied.
var ErrUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the Cobra command for gone branch cleanup.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  GitExecutor
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
	WorkingDirectory             string
}

// Build constructs the git-clean-gone command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().BoolP(flagDryRunNameConstant, flagDryRunShorthandConstant, false, flagDryRunDescriptionConstant)
	command.Flags().BoolP(flagVerboseNameConstant, flagVerboseShorthandConstant, false, flagVerboseDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return ErrUnexpectedArguments
	}

	options := builder.parseOptions(command)

	logger := builder.resolveLogger()
	executor, executorError := builder.resolveExecutor(logger)
	if executorError != nil {
		return executorError
	}

	service, serviceError := NewService(Dependencies{Logger: logger, GitExecutor: executor})
	if serviceError != nil {
		return serviceError
	}

	if _, cleanError := service.Clean(command.Context(), options); cleanError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, cleanError)
	}

	return nil
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command) Options {
	configuration := builder.resolveConfiguration()

	dryRun := configuration.DryRun
	if command.Flags().Changed(flagDryRunNameConstant) {
		dryRun, _ = command.Flags().GetBool(flagDryRunNameConstant)
	}

	verbose := configuration.Verbose
	if command.Flags().Changed(flagVerboseNameConstant) {
		verbose, _ = command.Flags().GetBool(flagVerboseNameConstant)
	}

	return Options{
		WorkingDirectory:  builder.WorkingDirectory,
		RemoteName:        configuration.RemoteName,
		DryRun:            dryRun,
		Verbose:           verbose,
		ProtectedBranches: configuration.ProtectedBranches,
		Output:            command.OutOrStdout(),
		ErrorOutput:       command.ErrOrStderr(),
	}
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveExecutor(logger *zap.Logger) (GitExecutor, error) {
	if builder.GitExecutor != nil {
		return builder.GitExecutor, nil
	}

	var executorOptions []execshell.ShellExecutorOption
	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		executorOptions = append(executorOptions, execshell.WithCommandEventObserver(ui.NewConsoleCommandEventLogger(logger)))
	}

	shellExecutor, creationError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), executorOptions...)
	if creationError != nil {
		return nil, creationError
	}

	return shellExecutor, nil
}
