// Package ui provides styled terminal output for the CLI using lipgloss.
//
// The package holds a shared [Palette] of named styles (title, ok, error,
// warning, help) and small render helpers used by the command layer. The
// summary renderer formats the outcome of a sync run, capping the inline
// unresolved-title list so long runs stay readable in the terminal.
package ui
