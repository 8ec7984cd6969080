package gone

import (
	"strconv"
	"strings"
	"unicode"
)

const (
	lineSeparatorConstant               = "\n"
	carriageReturnConstant              = "\r"
	currentBranchMarkerConstant         = "*"
	worktreeBranchMarkerConstant        = "+"
	worktreePathOpeningConstant         = "("
	worktreePathClosingConstant         = ")"
	trackingAnnotationOpeningConstant   = "["
	trackingAnnotationClosingConstant   = "]"
	trackingStatusSeparatorConstant     = ": "
	trackingStatusListSeparatorConstant = ", "
	goneStatusConstant                  = "gone"
	aheadStatusPrefixConstant           = "ahead "
	behindStatusPrefixConstant          = "behind "
	remoteRefSeparatorConstant          = "/"
	upstreamTerminatorConstant          = ':'
)

// ParseGoneBranches returns, in listing order, the branches whose upstream annotation reports the
// tracking branch as gone. The checked-out branch is never returned. Only remote upstreams
// ("remote/branch") are recognised, so a bracketed commit subject on an untracked branch is not
// mistaken for an annotation unless it also names a remote ref.
func ParseGoneBranches(branchListing string) []string {
	goneBranches := []string{}
	for _, rawLine := range strings.Split(branchListing, lineSeparatorConstant) {
		branchName, isGone := parseBranchLine(strings.TrimSuffix(rawLine, carriageReturnConstant))
		if isGone {
			goneBranches = append(goneBranches, branchName)
		}
	}
	return goneBranches
}

// parseBranchLine reads one `git branch -vv` line of the form
// "  name hash [upstream: status] subject".
func parseBranchLine(line string) (string, bool) {
	trimmedLine := strings.TrimLeftFunc(line, unicode.IsSpace)
	if strings.HasPrefix(trimmedLine, currentBranchMarkerConstant) {
		return "", false
	}
	trimmedLine = strings.TrimPrefix(trimmedLine, worktreeBranchMarkerConstant)

	branchName, remainder := cutField(trimmedLine)
	if len(branchName) == 0 {
		return "", false
	}
	_, remainder = cutField(remainder)

	if strings.HasPrefix(remainder, worktreePathOpeningConstant) {
		closingIndex := strings.Index(remainder, worktreePathClosingConstant)
		if closingIndex < 0 {
			return "", false
		}
		remainder = strings.TrimLeftFunc(remainder[closingIndex+1:], unicode.IsSpace)
	}

	if !strings.HasPrefix(remainder, trackingAnnotationOpeningConstant) {
		return "", false
	}
	annotation := remainder[len(trackingAnnotationOpeningConstant):]

	// Ref names may contain "]" but never ":" or whitespace, so the upstream ends at the first of those.
	upstreamEnd := strings.IndexFunc(annotation, func(character rune) bool {
		return character == upstreamTerminatorConstant || unicode.IsSpace(character)
	})
	if upstreamEnd < 0 || !strings.Contains(annotation[:upstreamEnd], remoteRefSeparatorConstant) {
		return "", false
	}
	if !strings.HasPrefix(annotation[upstreamEnd:], trackingStatusSeparatorConstant) {
		return "", false
	}
	trackingStatus, _, closed := strings.Cut(annotation[upstreamEnd+len(trackingStatusSeparatorConstant):], trackingAnnotationClosingConstant)
	if !closed {
		return "", false
	}

	isGone := false
	for _, statusEntry := range strings.Split(trackingStatus, trackingStatusListSeparatorConstant) {
		switch {
		case statusEntry == goneStatusConstant:
			isGone = true
		case isDivergenceStatus(statusEntry):
		default:
			return "", false
		}
	}
	if !isGone {
		return "", false
	}
	return branchName, true
}

// isDivergenceStatus matches the "ahead N" and "behind N" entries git prints next to gone.
func isDivergenceStatus(statusEntry string) bool {
	for _, prefix := range []string{aheadStatusPrefixConstant, behindStatusPrefixConstant} {
		if count, hasPrefix := strings.CutPrefix(statusEntry, prefix); hasPrefix {
			_, parseError := strconv.Atoi(count)
			return parseError == nil
		}
	}
	return false
}

// cutField splits off the leading whitespace-delimited token and returns the rest without leading whitespace.
func cutField(text string) (string, string) {
	trimmedText := strings.TrimLeftFunc(text, unicode.IsSpace)
	separatorIndex := strings.IndexFunc(trimmedText, unicode.IsSpace)
	if separatorIndex < 0 {
		return trimmedText, ""
	}
	return trimmedText[:separatorIndex], strings.TrimLeftFunc(trimmedText[separatorIndex:], unicode.IsSpace)
}
