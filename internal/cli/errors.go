package cli

import (
	"fmt"
	"os"

	"github.com/teoward/zinc/internal/ui"
)

// Error codes for CLI failures. These are stable and appear in error output.
const (
	ErrSourceNotConfigured = "SOURCE_NOT_CONFIGURED"
	ErrSourceUnavailable   = "SOURCE_UNAVAILABLE"
	ErrVaultNotConfigured  = "VAULT_NOT_CONFIGURED"
	ErrVaultNotFound       = "VAULT_NOT_FOUND"
	ErrConfigInvalid       = "CONFIG_INVALID"
	ErrNoteNotFound        = "NOTE_NOT_FOUND"
	ErrSyncFailed          = "SYNC_FAILED"
)

// handledError wraps an error that has already been printed, so Execute
// doesn't print it twice.
type handledError struct{ err error }

func (e *handledError) Error() string { return e.err.Error() }
func (e *handledError) Unwrap() error { return e.err }

func isHandled(err error) bool {
	_, ok := err.(*handledError)
	return ok
}

// handleError prints a coded error (plus an optional hint) to stderr and
// returns it wrapped so the process exits nonzero without reprinting.
func handleError(code string, err error, hint string) error {
	fmt.Fprintln(os.Stderr, ui.Errorf("%v (%s)", err, code))
	if hint != "" {
		fmt.Fprintln(os.Stderr, ui.Hint(hint))
	}
	return &handledError{err: err}
}

// handleErrorMsg is handleError for message-only failures.
func handleErrorMsg(code, msg, hint string) error {
	return handleError(code, fmt.Errorf("%s", msg), hint)
}
