package execshell

import (
	"context"
	"io"
)

const (
	commandGitNameConstant = "git"
)

// CommandName identifies an executable reachable through the shell executor.
type CommandName string

// Supported executables.
const (
	CommandGit CommandName = CommandName(commandGitNameConstant)
)

// CommandDetails describes the arguments and environment of a single invocation.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        []byte
	// StandardOutputStream receives standard output as it is produced, in addition to the captured copy.
	StandardOutputStream io.Writer
	// StandardErrorStream receives standard error as it is produced, in addition to the captured copy.
	StandardErrorStream io.Writer
}

// ShellCommand combines an executable name with invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable results of a finished command.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner runs shell commands to completion.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}
