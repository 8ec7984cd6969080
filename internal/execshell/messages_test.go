package execshell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildStartedMessageForFetchWithoutRemoteUsesAllRemotesLabel(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"fetch", "--all", "--prune"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Fetching from all remotes in /workspace/repo", message)
}

func TestBuildStartedMessageForFetchIncludesRemote(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"fetch", "--prune", "origin"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	require.Equal(t, "Fetching from origin in /workspace/repo", formatter.BuildStartedMessage(command))
	require.Equal(t, "Fetched from origin in /workspace/repo", formatter.BuildSuccessMessage(command))
}

func TestBranchMessagesDescribeOperation(t *testing.T) {
	testCases := []struct {
		name            string
		arguments       []string
		result          ExecutionResult
		failure         error
		stage           messageStage
		expectedMessage string
	}{
		{
			name:            "force_deletion_start",
			arguments:       []string{"branch", "--delete", "--force", "feature/one", "bugfix/two"},
			stage:           messageStageStart,
			expectedMessage: "Force removing local branches feature/one, bugfix/two in /workspace/repo",
		},
		{
			name:            "deletion_failure",
			arguments:       []string{"branch", "-D", "feature/one"},
			result:          ExecutionResult{ExitCode: 1, StandardError: "error: branch 'feature/one' not found.\n"},
			stage:           messageStageFailure,
			expectedMessage: "Failed to remove local branches feature/one in /workspace/repo (exit code 1: error: branch 'feature/one' not found.)",
		},
		{
			name:            "tracking_listing_success",
			arguments:       []string{"branch", "-vv", "--no-color"},
			stage:           messageStageSuccess,
			expectedMessage: "Listed branches with tracking status in /workspace/repo",
		},
		{
			name:            "all_branches_execution_failure",
			arguments:       []string{"branch", "--all", "--no-color"},
			failure:         errors.New("signal: killed"),
			stage:           messageStageExecutionFailure,
			expectedMessage: "Unable to list local and remote branches in /workspace/repo: signal: killed",
		},
		{
			name:            "work_tree_failure",
			arguments:       []string{"rev-parse", "--is-inside-work-tree"},
			result:          ExecutionResult{ExitCode: 128, StandardError: "fatal: not a git repository"},
			stage:           messageStageFailure,
			expectedMessage: "Could not confirm /workspace/repo is a Git repository (exit code 128: fatal: not a git repository)",
		},
		{
			name:            "generic_fallback",
			arguments:       []string{"status"},
			stage:           messageStageStart,
			expectedMessage: "Running git status (in /workspace/repo)",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			formatter := CommandMessageFormatter{}
			command := ShellCommand{
				Name:    CommandGit,
				Details: CommandDetails{Arguments: testCase.arguments, WorkingDirectory: "/workspace/repo"},
			}

			message := formatter.buildMessage(command, testCase.result, testCase.failure, testCase.stage)

			require.Equal(t, testCase.expectedMessage, message)
		})
	}
}

func TestBuildStartedMessageUsesCurrentDirectoryLabel(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"rev-parse", "--is-inside-work-tree"}}}

	require.Equal(t, "Analyzing repository at current directory", formatter.BuildStartedMessage(command))
}
