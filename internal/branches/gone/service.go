package gone

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/temirov/git-clean-gone/internal/execshell"
	"github.com/temirov/git-clean-gone/internal/utils"
)

const (
	gitExecutorMissingMessageConstant           = "git executor not configured"
	notGitRepositoryMessageConstant             = "not in a git repository"
	branchListingNotUTF8MessageConstant         = "git branch output is not valid UTF-8"
	branchDeletionFailedMessageConstant         = "failed to delete some branches"
	repositoryCheckFailureTemplateConstant      = "failed to check git repository: %w"
	notGitRepositoryTemplateConstant            = "%w: %w"
	fetchFailureTemplateConstant                = "failed to fetch and prune remote branches: %w"
	branchListingFailureTemplateConstant        = "failed to list branch tracking status: %w"
	branchDeletionFailureTemplateConstant       = "%w: %w"
	remainingBranchesFailureTemplateConstant    = "failed to list remaining branches: %w"
	gitRevParseSubcommandConstant               = "rev-parse"
	gitInsideWorkTreeFlagConstant               = "--is-inside-work-tree"
	gitInsideWorkTreeTrueConstant               = "true"
	gitFetchSubcommandConstant                  = "fetch"
	gitFetchAllFlagConstant                     = "--all"
	gitFetchPruneFlagConstant                   = "--prune"
	gitBranchSubcommandConstant                 = "branch"
	gitBranchVeryVerboseFlagConstant            = "-vv"
	gitBranchAllFlagConstant                    = "--all"
	gitBranchDeleteFlagConstant                 = "--delete"
	gitBranchForceFlagConstant                  = "--force"
	gitNoColorFlagConstant                      = "--no-color"
	gitTerminalPromptEnvironmentNameConstant    = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptEnvironmentDisableConstant = "0"
	localeEnvironmentNameConstant               = "LC_ALL"
	localeEnvironmentUntranslatedConstant       = "C"
	fetchingMessageConstant                     = "Fetching and pruning remote branches...\n"
	branchOutputHeaderConstant                  = "\nBranch output:\n"
	noGoneBranchesMessageConstant               = "No gone branches found.\n"
	goneBranchesHeaderTemplateConstant          = "\nFound %d gone branch(es):\n"
	protectedBranchesHeaderTemplateConstant     = "\nKeeping %d protected branch(es):\n"
	branchEntryTemplateConstant                 = "  - %s\n"
	dryRunMessageTemplateConstant               = "\n[DRY RUN] Would delete %d branch(es)\n"
	deletingMessageConstant                     = "\nDeleting gone branches...\n"
	remainingBranchesHeaderConstant             = "\nRemaining branches:\n"
	goneBranchesLogMessageConstant              = "identified gone branches"
	branchesDeletedLogMessageConstant           = "deleted gone branches"
	logFieldWorkingDirectoryConstant            = "working_directory"
	logFieldGoneBranchesConstant                = "gone_branches"
	logFieldProtectedBranchesConstant           = "protected_branches"
	logFieldDeletedBranchesConstant             = "deleted_branches"
	logFieldDryRunConstant                      = "dry_run"
)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrNotGitRepository indicates the working directory is not inside a git work tree.
var ErrNotGitRepository = errors.New(notGitRepositoryMessageConstant)

// ErrBranchListingNotUTF8 indicates `git branch -vv` produced undecodable output.
var ErrBranchListingNotUTF8 = errors.New(branchListingNotUTF8MessageConstant)

// ErrBranchDeletionFailed indicates git refused to delete at least one branch.
var ErrBranchDeletionFailed = errors.New(branchDeletionFailedMessageConstant)

// GitExecutor runs git commands.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Dependencies enumerates the collaborators required by Service.
type Dependencies struct {
	Logger      *zap.Logger
	GitExecutor GitExecutor
}

// Options configures a cleanup run.
type Options struct {
	WorkingDirectory  string
	RemoteName        string
	DryRun            bool
	Verbose           bool
	ProtectedBranches []string
	Output            io.Writer
	ErrorOutput       io.Writer
}

// Result captures what a cleanup run found and removed.
type Result struct {
	GoneBranches      []string
	DeletedBranches   []string
	ProtectedBranches []string
	DryRun            bool
}

// Service removes local branches whose upstream is gone.
type Service struct {
	logger   *zap.Logger
	executor GitExecutor
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies Dependencies) (*Service, error) {
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger, executor: dependencies.GitExecutor}, nil
}

// Clean validates the repository, prunes remote-tracking branches, deletes local branches whose
// upstream is gone unless running dry, and prints the remaining branches.
func (service *Service) Clean(executionContext context.Context, options Options) (Result, error) {
	progress := newReporter(options.Output)
	workingDirectory := strings.TrimSpace(options.WorkingDirectory)

	if validationError := service.ensureWorkTree(executionContext, workingDirectory); validationError != nil {
		return Result{}, validationError
	}

	progress.printf(fetchingMessageConstant)
	if fetchError := service.fetchAndPrune(executionContext, workingDirectory, options); fetchError != nil {
		return Result{}, fmt.Errorf(fetchFailureTemplateConstant, fetchError)
	}

	branchListing, listingError := service.listTrackingStatus(executionContext, workingDirectory)
	if listingError != nil {
		return Result{}, listingError
	}
	if options.Verbose {
		progress.printf(branchOutputHeaderConstant)
		progress.printBlock(branchListing)
	}

	goneBranches := ParseGoneBranches(branchListing)
	deletableBranches, protectedBranches := partitionProtected(goneBranches, options.ProtectedBranches)
	result := Result{
		GoneBranches:      goneBranches,
		DeletedBranches:   []string{},
		ProtectedBranches: protectedBranches,
		DryRun:            options.DryRun,
	}

	service.logger.Info(goneBranchesLogMessageConstant,
		zap.String(logFieldWorkingDirectoryConstant, workingDirectory),
		zap.Strings(logFieldGoneBranchesConstant, goneBranches),
		zap.Strings(logFieldProtectedBranchesConstant, protectedBranches),
		zap.Bool(logFieldDryRunConstant, options.DryRun),
	)

	if len(goneBranches) == 0 {
		progress.printf(noGoneBranchesMessageConstant)
	} else {
		progress.printf(goneBranchesHeaderTemplateConstant, len(goneBranches))
		for _, branchName := range goneBranches {
			progress.printf(branchEntryTemplateConstant, branchName)
		}
	}

	if len(protectedBranches) > 0 {
		progress.printf(protectedBranchesHeaderTemplateConstant, len(protectedBranches))
		for _, branchName := range protectedBranches {
			progress.printf(branchEntryTemplateConstant, branchName)
		}
	}

	if len(deletableBranches) > 0 {
		if options.DryRun {
			progress.printf(dryRunMessageTemplateConstant, len(deletableBranches))
		} else {
			progress.printf(deletingMessageConstant)
			if deletionError := service.deleteBranches(executionContext, workingDirectory, deletableBranches, options); deletionError != nil {
				return result, deletionError
			}
			result.DeletedBranches = deletableBranches
			service.logger.Info(branchesDeletedLogMessageConstant,
				zap.String(logFieldWorkingDirectoryConstant, workingDirectory),
				zap.Strings(logFieldDeletedBranchesConstant, deletableBranches),
			)
		}
	}

	remainingResult, remainingError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitBranchSubcommandConstant, gitBranchAllFlagConstant, gitNoColorFlagConstant},
		WorkingDirectory: workingDirectory,
	})
	if remainingError != nil {
		return result, fmt.Errorf(remainingBranchesFailureTemplateConstant, remainingError)
	}
	progress.printf(remainingBranchesHeaderConstant)
	progress.printBlock(remainingResult.StandardOutput)

	return result, nil
}

func (service *Service) ensureWorkTree(executionContext context.Context, workingDirectory string) error {
	executionResult, executionError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitInsideWorkTreeFlagConstant},
		WorkingDirectory: workingDirectory,
	})
	if executionError != nil {
		var commandFailure execshell.CommandFailedError
		if errors.As(executionError, &commandFailure) {
			return fmt.Errorf(notGitRepositoryTemplateConstant, ErrNotGitRepository, executionError)
		}
		return fmt.Errorf(repositoryCheckFailureTemplateConstant, executionError)
	}
	if strings.TrimSpace(executionResult.StandardOutput) != gitInsideWorkTreeTrueConstant {
		return ErrNotGitRepository
	}
	return nil
}

func (service *Service) fetchAndPrune(executionContext context.Context, workingDirectory string, options Options) error {
	arguments := []string{gitFetchSubcommandConstant, gitFetchAllFlagConstant, gitFetchPruneFlagConstant}
	if remoteName := strings.TrimSpace(options.RemoteName); len(remoteName) > 0 {
		arguments = []string{gitFetchSubcommandConstant, gitFetchPruneFlagConstant, remoteName}
	}

	details := execshell.CommandDetails{
		Arguments:            arguments,
		WorkingDirectory:     workingDirectory,
		EnvironmentVariables: map[string]string{gitTerminalPromptEnvironmentNameConstant: gitTerminalPromptEnvironmentDisableConstant},
	}
	if options.Verbose {
		streams := utils.NewSubprocessStreams(options.Output, options.ErrorOutput)
		details.StandardOutputStream, details.StandardErrorStream = streams.Output, streams.ErrorOutput
	}

	_, fetchError := service.executor.ExecuteGit(executionContext, details)
	return fetchError
}

func (service *Service) listTrackingStatus(executionContext context.Context, workingDirectory string) (string, error) {
	executionResult, executionError := service.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            []string{gitBranchSubcommandConstant, gitBranchVeryVerboseFlagConstant, gitNoColorFlagConstant},
		WorkingDirectory:     workingDirectory,
		EnvironmentVariables: map[string]string{localeEnvironmentNameConstant: localeEnvironmentUntranslatedConstant},
	})
	if executionError != nil {
		return "", fmt.Errorf(branchListingFailureTemplateConstant, executionError)
	}
	if !utf8.ValidString(executionResult.StandardOutput) {
		return "", ErrBranchListingNotUTF8
	}
	return executionResult.StandardOutput, nil
}

// deleteBranches mirrors git's "Deleted branch" lines as they are printed, so branches removed before a
// failure are still reported.
func (service *Service) deleteBranches(executionContext context.Context, workingDirectory string, branchNames []string, options Options) error {
	arguments := append([]string{gitBranchSubcommandConstant, gitBranchDeleteFlagConstant, gitBranchForceFlagConstant}, branchNames...)
	streams := utils.NewSubprocessStreams(options.Output, options.ErrorOutput)
	details := execshell.CommandDetails{
		Arguments:            arguments,
		WorkingDirectory:     workingDirectory,
		StandardOutputStream: streams.Output,
	}
	if options.Verbose {
		details.StandardErrorStream = streams.ErrorOutput
	}

	if _, deletionError := service.executor.ExecuteGit(executionContext, details); deletionError != nil {
		return fmt.Errorf(branchDeletionFailureTemplateConstant, ErrBranchDeletionFailed, deletionError)
	}
	return nil
}

// partitionProtected splits gone branches into those eligible for deletion and those the user asked to keep.
func partitionProtected(goneBranches []string, protectedNames []string) ([]string, []string) {
	protectedSet := make(map[string]struct{}, len(protectedNames))
	for _, protectedName := range protectedNames {
		if trimmedName := strings.TrimSpace(protectedName); len(trimmedName) > 0 {
			protectedSet[trimmedName] = struct{}{}
		}
	}

	deletableBranches := make([]string, 0, len(goneBranches))
	protectedBranches := []string{}
	for _, branchName := range goneBranches {
		if _, isProtected := protectedSet[branchName]; isProtected {
			protectedBranches = append(protectedBranches, branchName)
			continue
		}
		deletableBranches = append(deletableBranches, branchName)
	}
	return deletableBranches, protectedBranches
}
