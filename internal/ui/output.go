package ui

import "fmt"

// Unicode symbols for status indicators
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
)

// Successf returns a formatted success message with checkmark symbol.
func Successf(format string, args ...any) string {
	return fmt.Sprintf("%s %s", SymbolSuccess, fmt.Sprintf(format, args...))
}

// Errorf returns a formatted error message with X symbol.
func Errorf(format string, args ...any) string {
	return fmt.Sprintf("%s %s", SymbolError, fmt.Sprintf(format, args...))
}

// Warningf returns a formatted warning message with warning symbol.
func Warningf(format string, args ...any) string {
	return fmt.Sprintf("%s %s", SymbolWarning, fmt.Sprintf(format, args...))
}

// FilePath returns an accent-styled file path.
func FilePath(path string) string {
	return Accent.Render(path)
}

// Key returns an accent-styled item key.
func Key(key string) string {
	return Accent.Render(key)
}

// Hint returns muted hint text.
func Hint(msg string) string {
	return Muted.Render(msg)
}
