package biometric

import "errors"

var (
	ErrUnreadableFile    = errors.New("could not read file")
	ErrNoDataSheet       = errors.New("no data sheet found")
	ErrRosterUnavailable = errors.New("could not reach employee directory")
	ErrFileTooLarge      = errors.New("file exceeds the maximum upload size")
	ErrInvalidFileType   = errors.New("invalid file type: only xls, xlsx allowed")
	ErrStoredFileMissing = errors.New("stored file not found")
)

// ParseError aborts an import. Message is safe to show to the user; Err keeps
// the underlying cause for logs.
type ParseError struct {
	Kind error
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Message returns the user-facing text of the error.
func (e *ParseError) Message() string {
	return e.Kind.Error()
}

func NewParseError(kind, cause error) *ParseError {
	return &ParseError{Kind: kind, Err: cause}
}
