// errors/protection_errors.go
package errors

import "errors"

// The first three mark a settings write that was skipped. Callers treat
// them as a silent no-op rather than a failure.
var (
	ErrInvalidNonce          = errors.New("invalid or expired nonce")
	ErrForbidden             = errors.New("insufficient capability")
	ErrAutosave              = errors.New("autosave request ignored")
	ErrInvalidProtectionData = errors.New("invalid protection data")
	ErrUnauthorized          = errors.New("unauthorized")
)

// IsSkippedWrite reports whether err marks a settings write that was
// rejected by the authenticity or permission checks.
func IsSkippedWrite(err error) bool {
	return errors.Is(err, ErrInvalidNonce) || errors.Is(err, ErrForbidden) || errors.Is(err, ErrAutosave)
}
