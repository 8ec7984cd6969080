package gone_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/temirov/git-clean-gone/internal/branches/gone"
)

const (
	parserNoGoneListingConstant = `
  feature-1    abc1234 [origin/feature-1] Some commit
  feature-2    def5678 [origin/feature-2] Another commit
* main         ghi9012 [origin/main] Latest commit
`
	parserMixedListingConstant = `
  feature-1    abc1234 [origin/feature-1: gone] Some commit
  feature-2    def5678 [origin/feature-2] Another commit
  old-feature  ghi9012 [origin/old-feature: gone] Old commit
* main         jkl3456 [origin/main] Latest commit
`
	parserCurrentGoneListingConstant = `
  feature-1    abc1234 [origin/feature-1: gone] Some commit
* current      def5678 [origin/current: gone] Current branch
`
	parserAheadBehindListingConstant = `
  feature-1    abc1234 [origin/feature-1: ahead 2, gone] Some commit
  feature-2    def5678 [origin/feature-2: behind 3] Another commit
  feature-3    ghi9012 [origin/feature-3: ahead 1, behind 2, gone] Mixed commit
`
	parserSlashedNamesListingConstant = `
  feature/JIRA-123    abc1234 [origin/feature/JIRA-123: gone] Ticket work
  bugfix/fix-thing    def5678 [origin/bugfix/fix-thing: gone] Bug fix
* main                ghi9012 [origin/main] Latest
`
	parserWorktreeListingConstant = `
+ linked       abc1234 (/tmp/linked) [origin/linked: gone] Worktree commit
  feature-1    def5678 [origin/feature-1: gone] Some commit
* main         ghi9012 [origin/main] Latest
`
	parserUntrackedListingConstant = `
  local-only   abc1234 Mention [origin/x: gone] in subject
  scratch      def5678 fix: gone] bracket in subject
`
	parserWindowsListingConstant           = "  feature-1\tabc1234 [origin/feature-1: gone] Some commit\r\n* main\tghi9012 [origin/main] Latest\r\n"
	parserBracketedUpstreamListingConstant = "  feat abc1234 [origin/a]b: gone] m\n"
	parserBracketedSubjectListingConstant  = `
  wip          abc1234 [WIP: gone] s
  local-up     def5678 [main: gone] tracks a deleted local branch
  stale        ghi9012 [origin/stale: gone, pending] unknown status
`
	parserHyphenatedStatusListingConstant = `
  feature-1    abc1234 [origin/feature-1: gone-ish] Not really gone
`
)

func TestParseGoneBranches(testInstance *testing.T) {
	testCases := []struct {
		name             string
		branchListing    string
		expectedBranches []string
	}{
		{
			name:             "empty listing",
			branchListing:    "",
			expectedBranches: []string{},
		},
		{
			name:             "no gone branches",
			branchListing:    parserNoGoneListingConstant,
			expectedBranches: []string{},
		},
		{
			name:             "gone branches in listing order",
			branchListing:    parserMixedListingConstant,
			expectedBranches: []string{"feature-1", "old-feature"},
		},
		{
			name:             "current branch excluded",
			branchListing:    parserCurrentGoneListingConstant,
			expectedBranches: []string{"feature-1"},
		},
		{
			name:             "ahead and behind counts",
			branchListing:    parserAheadBehindListingConstant,
			expectedBranches: []string{"feature-1", "feature-3"},
		},
		{
			name:             "slashed names preserved",
			branchListing:    parserSlashedNamesListingConstant,
			expectedBranches: []string{"feature/JIRA-123", "bugfix/fix-thing"},
		},
		{
			name:             "worktree marker stripped",
			branchListing:    parserWorktreeListingConstant,
			expectedBranches: []string{"linked", "feature-1"},
		},
		{
			name:             "subject text ignored without tracking annotation",
			branchListing:    parserUntrackedListingConstant,
			expectedBranches: []string{},
		},
		{
			name:             "tabs and carriage returns",
			branchListing:    parserWindowsListingConstant,
			expectedBranches: []string{"feature-1"},
		},
		{
			name:             "upstream ref containing a bracket",
			branchListing:    parserBracketedUpstreamListingConstant,
			expectedBranches: []string{"feat"},
		},
		{
			name:             "bracketed subject without remote upstream",
			branchListing:    parserBracketedSubjectListingConstant,
			expectedBranches: []string{},
		},
		{
			name:             "status must match exactly",
			branchListing:    parserHyphenatedStatusListingConstant,
			expectedBranches: []string{},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			goneBranches := gone.ParseGoneBranches(testCase.branchListing)
			require.NotNil(testInstance, goneBranches)
			require.Equal(testInstance, testCase.expectedBranches, goneBranches)
		})
	}
}

func TestParseGoneBranchesMatchesGeneratedListings(testInstance *testing.T) {
	trackingStatuses := []string{"", ": gone", ": ahead 1", ": behind 4", ": ahead 2, gone", ": ahead 1, behind 2, gone"}

	rapid.Check(testInstance, func(propertyTest *rapid.T) {
		lineCount := rapid.IntRange(0, 12).Draw(propertyTest, "lineCount")
		currentIndex := rapid.IntRange(-1, lineCount-1).Draw(propertyTest, "currentIndex")

		listingLines := make([]string, 0, lineCount)
		expectedBranches := []string{}
		for lineIndex := 0; lineIndex < lineCount; lineIndex++ {
			branchName := rapid.StringMatching(`[a-z][a-z0-9_/-]{0,15}`).Draw(propertyTest, fmt.Sprintf("branchName-%d", lineIndex))
			commitHash := rapid.StringMatching(`[0-9a-f]{7}`).Draw(propertyTest, fmt.Sprintf("commitHash-%d", lineIndex))
			subject := rapid.StringMatching(`[A-Za-z0-9 ]{0,20}`).Draw(propertyTest, fmt.Sprintf("subject-%d", lineIndex))
			trackingStatus := rapid.SampledFrom(trackingStatuses).Draw(propertyTest, fmt.Sprintf("trackingStatus-%d", lineIndex))
			tracked := rapid.Bool().Draw(propertyTest, fmt.Sprintf("tracked-%d", lineIndex))

			marker := " "
			if lineIndex == currentIndex {
				marker = "*"
			}

			annotation := ""
			if tracked {
				annotation = fmt.Sprintf("[origin/%s%s] ", branchName, trackingStatus)
			}
			listingLines = append(listingLines, fmt.Sprintf("%s %s %s %s%s", marker, branchName, commitHash, annotation, subject))

			if tracked && lineIndex != currentIndex && strings.HasSuffix(trackingStatus, "gone") {
				expectedBranches = append(expectedBranches, branchName)
			}
		}

		goneBranches := gone.ParseGoneBranches(strings.Join(listingLines, "\n"))
		require.Equal(propertyTest, expectedBranches, goneBranches)
	})
}
