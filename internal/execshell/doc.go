// Package execshell provides structured helpers for invoking git.
//
// It wraps os/exec with lifecycle logging via ShellExecutor, exposes
// OSCommandRunner for default process execution, and defines the abstractions
// git-clean-gone uses to run git in a testable manner.
package execshell
