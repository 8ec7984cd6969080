package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	branchNamesJoinSeparatorConstant        = ", "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
	flagPrefixConstant                      = "-"
)

const (
	gitRevParseSubcommandNameConstant = "rev-parse"
	gitWorkTreeFlagConstant           = "--is-inside-work-tree"
	gitBranchSubcommandNameConstant   = "branch"
	gitDeleteFlagConstant             = "--delete"
	gitDeleteShortFlagConstant        = "-d"
	gitForceDeleteShortFlagConstant   = "-D"
	gitForceFlagConstant              = "--force"
	gitAllFlagConstant                = "--all"
	gitVerboseVerboseFlagConstant     = "-vv"
	gitFetchSubcommandNameConstant    = "fetch"
)

const (
	gitWorkTreeStartTemplateConstant                    = "Analyzing repository at %s"
	gitWorkTreeSuccessTemplateConstant                  = "%s is a Git repository"
	gitWorkTreeFailureTemplateConstant                  = "Could not confirm %s is a Git repository (exit code %d%s)"
	gitWorkTreeExecutionFailureTemplateConstant         = "Could not analyze %s: %s"
	gitTrackingListStartTemplateConstant                = "Listing branches with tracking status in %s"
	gitTrackingListSuccessTemplateConstant              = "Listed branches with tracking status in %s"
	gitTrackingListFailureTemplateConstant              = "Failed to list branches with tracking status in %s (exit code %d%s)"
	gitTrackingListExecutionFailureTemplateConstant     = "Unable to list branches with tracking status in %s: %s"
	gitAllBranchesListStartTemplateConstant             = "Listing local and remote branches in %s"
	gitAllBranchesListSuccessTemplateConstant           = "Listed local and remote branches in %s"
	gitAllBranchesListFailureTemplateConstant           = "Failed to list local and remote branches in %s (exit code %d%s)"
	gitAllBranchesListExecutionFailureTemplateConstant  = "Unable to list local and remote branches in %s: %s"
	gitBranchDeletionStartTemplateConstant              = "Removing local branches %s in %s"
	gitBranchForceDeletionStartTemplateConstant         = "Force removing local branches %s in %s"
	gitBranchDeletionSuccessTemplateConstant            = "Removed local branches %s in %s"
	gitBranchDeletionFailureTemplateConstant            = "Failed to remove local branches %s in %s (exit code %d%s)"
	gitBranchDeletionExecutionFailureTemplateConstant   = "Unable to remove local branches %s in %s: %s"
	gitFetchStartTemplateConstant                       = "Fetching %s from %s in %s"
	gitFetchWithoutRefsStartTemplateConstant            = "Fetching from %s in %s"
	gitFetchSuccessTemplateConstant                     = "Fetched %s from %s in %s"
	gitFetchWithoutRefsSuccessTemplateConstant          = "Fetched from %s in %s"
	gitFetchFailureTemplateConstant                     = "Failed to fetch %s from %s in %s (exit code %d%s)"
	gitFetchWithoutRefsFailureTemplateConstant          = "Failed to fetch from %s in %s (exit code %d%s)"
	gitFetchExecutionFailureTemplateConstant            = "Unable to fetch %s from %s in %s: %s"
	gitFetchWithoutRefsExecutionFailureTemplateConstant = "Unable to fetch from %s in %s: %s"
	gitFetchAllRemotesLabelConstant                     = "all remotes"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name != CommandGit || len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(command.Details.Arguments[0])
	switch subcommand {
	case gitRevParseSubcommandNameConstant:
		return formatter.describeGitRevParseMessage(command, result, failure, stage)
	case gitFetchSubcommandNameConstant:
		return formatter.describeGitFetchMessage(command, result, failure, stage)
	case gitBranchSubcommandNameConstant:
		return formatter.describeGitBranchMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitRevParseMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if !containsArgument(command.Details.Arguments, gitWorkTreeFlagConstant) {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitWorkTreeStartTemplateConstant, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitWorkTreeSuccessTemplateConstant, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitWorkTreeFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitWorkTreeExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitFetchMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	workingDirectory := formatter.describeWorkingDirectory(command)
	remoteName, references := formatter.extractRemoteAndReferences(command.Details.Arguments[1:])
	trimmedRemote := strings.TrimSpace(remoteName)
	if len(trimmedRemote) == 0 {
		trimmedRemote = gitFetchAllRemotesLabelConstant
	}
	joinedReferences := strings.Join(references, branchNamesJoinSeparatorConstant)

	switch stage {
	case messageStageStart:
		if len(joinedReferences) > 0 {
			return fmt.Sprintf(gitFetchStartTemplateConstant, joinedReferences, trimmedRemote, workingDirectory)
		}
		return fmt.Sprintf(gitFetchWithoutRefsStartTemplateConstant, trimmedRemote, workingDirectory)
	case messageStageSuccess:
		if len(joinedReferences) > 0 {
			return fmt.Sprintf(gitFetchSuccessTemplateConstant, joinedReferences, trimmedRemote, workingDirectory)
		}
		return fmt.Sprintf(gitFetchWithoutRefsSuccessTemplateConstant, trimmedRemote, workingDirectory)
	case messageStageFailure:
		if len(joinedReferences) > 0 {
			return fmt.Sprintf(gitFetchFailureTemplateConstant, joinedReferences, trimmedRemote, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		}
		return fmt.Sprintf(gitFetchWithoutRefsFailureTemplateConstant, trimmedRemote, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		if len(joinedReferences) > 0 {
			return fmt.Sprintf(gitFetchExecutionFailureTemplateConstant, joinedReferences, trimmedRemote, workingDirectory, formatter.describeFailure(failure))
		}
		return fmt.Sprintf(gitFetchWithoutRefsExecutionFailureTemplateConstant, trimmedRemote, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitBranchMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)

	switch {
	case containsArgument(arguments, gitDeleteFlagConstant), containsArgument(arguments, gitDeleteShortFlagConstant), containsArgument(arguments, gitForceDeleteShortFlagConstant):
		return formatter.describeGitBranchDeletion(command, result, failure, stage)
	case containsArgument(arguments, gitVerboseVerboseFlagConstant):
		return formatter.selectTemplate(stage, result, failure, workingDirectory,
			gitTrackingListStartTemplateConstant,
			gitTrackingListSuccessTemplateConstant,
			gitTrackingListFailureTemplateConstant,
			gitTrackingListExecutionFailureTemplateConstant,
		)
	case containsArgument(arguments, gitAllFlagConstant):
		return formatter.selectTemplate(stage, result, failure, workingDirectory,
			gitAllBranchesListStartTemplateConstant,
			gitAllBranchesListSuccessTemplateConstant,
			gitAllBranchesListFailureTemplateConstant,
			gitAllBranchesListExecutionFailureTemplateConstant,
		)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitBranchDeletion(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)
	branchNames := formatter.ensureValue(strings.Join(formatter.extractPositionalArguments(arguments[1:]), branchNamesJoinSeparatorConstant))
	forced := containsArgument(arguments, gitForceFlagConstant) || containsArgument(arguments, gitForceDeleteShortFlagConstant)

	switch stage {
	case messageStageStart:
		if forced {
			return fmt.Sprintf(gitBranchForceDeletionStartTemplateConstant, branchNames, workingDirectory)
		}
		return fmt.Sprintf(gitBranchDeletionStartTemplateConstant, branchNames, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitBranchDeletionSuccessTemplateConstant, branchNames, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitBranchDeletionFailureTemplateConstant, branchNames, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitBranchDeletionExecutionFailureTemplateConstant, branchNames, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) selectTemplate(stage messageStage, result ExecutionResult, failure error, workingDirectory string, startTemplate string, successTemplate string, failureTemplate string, executionFailureTemplate string) string {
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(startTemplate, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(successTemplate, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(failureTemplate, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(executionFailureTemplate, workingDirectory, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = commandLabel + commandArgumentsJoinSeparatorConstant + strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant)
	}
	workingDirectorySuffix := emptyStringConstant
	if trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory); len(trimmedWorkingDirectory) > 0 {
		workingDirectorySuffix = fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
	}
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, workingDirectorySuffix)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func (formatter CommandMessageFormatter) extractPositionalArguments(arguments []string) []string {
	positional := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 || strings.HasPrefix(trimmed, flagPrefixConstant) {
			continue
		}
		positional = append(positional, trimmed)
	}
	return positional
}

func (formatter CommandMessageFormatter) extractRemoteAndReferences(arguments []string) (string, []string) {
	positional := formatter.extractPositionalArguments(arguments)
	if len(positional) == 0 {
		return emptyStringConstant, nil
	}
	return positional[0], positional[1:]
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}
