package execshell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	loggerNotConfiguredMessageConstant          = "logger not configured"
	commandRunnerNotConfiguredMessageConstant   = "command runner not configured"
	commandFailedTemplateConstant               = "%s %s failed with exit code %d%s"
	commandExecutionFailedTemplateConstant      = "%s %s could not be executed: %v"
	commandFailureStandardErrorTemplateConstant = ": %s"
)

// ErrLoggerNotConfigured indicates the executor was constructed without a logger.
var ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)

// ErrCommandRunnerNotConfigured indicates the executor was constructed without a runner.
var ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)

// CommandFailedError reports a command that ran but exited with a non-zero code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command and its standard error output.
func (failure CommandFailedError) Error() string {
	standardErrorSuffix := ""
	if trimmedStandardError := strings.TrimSpace(failure.Result.StandardError); len(trimmedStandardError) > 0 {
		standardErrorSuffix = fmt.Sprintf(commandFailureStandardErrorTemplateConstant, trimmedStandardError)
	}
	return fmt.Sprintf(commandFailedTemplateConstant, failure.Command.Name, strings.Join(failure.Command.Details.Arguments, " "), failure.Result.ExitCode, standardErrorSuffix)
}

// CommandExecutionError reports a command that could not be started or awaited.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the execution failure.
func (failure CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionFailedTemplateConstant, failure.Command.Name, strings.Join(failure.Command.Details.Arguments, " "), failure.Cause)
}

// Unwrap exposes the underlying execution failure.
func (failure CommandExecutionError) Unwrap() error {
	return failure.Cause
}

// ShellExecutorOption customizes a ShellExecutor.
type ShellExecutorOption func(executor *ShellExecutor)

// WithCommandEventObserver replaces the structured lifecycle logging with the provided observer.
func WithCommandEventObserver(observer CommandEventObserver) ShellExecutorOption {
	return func(executor *ShellExecutor) {
		if observer != nil {
			executor.observer = observer
		}
	}
}

// ShellExecutor runs commands through a CommandRunner and reports their lifecycle.
type ShellExecutor struct {
	runner   CommandRunner
	observer CommandEventObserver
}

// NewShellExecutor constructs a ShellExecutor that logs command lifecycle events through logger.
func NewShellExecutor(logger *zap.Logger, runner CommandRunner, options ...ShellExecutorOption) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if runner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}

	executor := &ShellExecutor{
		runner:   runner,
		observer: newStructuredCommandEventLogger(logger),
	}
	for _, option := range options {
		if option != nil {
			option(executor)
		}
	}

	return executor, nil
}

// Execute runs the command and converts non-zero exit codes into CommandFailedError.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executor.observer.CommandStarted(command)

	executionResult, runError := executor.runner.Run(executionContext, command)
	if runError != nil {
		executor.observer.CommandExecutionFailed(command, runError)
		return ExecutionResult{}, CommandExecutionError{Command: command, Cause: runError}
	}

	executor.observer.CommandCompleted(command, executionResult)
	if executionResult.ExitCode != 0 {
		return ExecutionResult{}, CommandFailedError{Command: command, Result: executionResult}
	}

	return executionResult, nil
}

// ExecuteGit runs git with the provided details.
func (executor *ShellExecutor) ExecuteGit(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandGit, Details: details})
}
