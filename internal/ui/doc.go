// Package ui renders git lifecycle events for people reading a terminal.
//
// Structured telemetry stays with the execshell structured logger; this
// package is swapped in when the console log format is selected.
package ui
