// Package gone finds local branches whose upstream tracking branch was pruned
// from the remote and removes them.
//
// ParseGoneBranches classifies the output of `git branch -vv`, Service runs the
// validate, fetch, list, delete and report sequence through a GitExecutor, and
// CommandBuilder exposes the workflow as a Cobra command.
package gone
