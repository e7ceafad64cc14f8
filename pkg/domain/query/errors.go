package query

import "fmt"

// Error codes surfaced alongside rejection messages where the contract
// defines one.
const (
	CodeNoSample        = "NO_SAMPLE"
	CodeSleepQueryError = "SLEEP_QUERY_ERROR"
)

// ValidationError indicates a malformed or missing request field, detected
// before any provider call is issued.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidationError creates a new ValidationError.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError indicates the provider query succeeded but returned no
// matching record, or a composite record was incomplete.
type NotFoundError struct {
	Msg  string
	Code string
}

func (e *NotFoundError) Error() string { return e.Msg }

// NewNotFoundError creates a new NotFoundError with an optional error code.
func NewNotFoundError(msg, code string) *NotFoundError {
	return &NotFoundError{Msg: msg, Code: code}
}

// ProviderError indicates the provider call itself failed. It wraps the
// underlying error and carries an optional error code.
type ProviderError struct {
	Msg  string
	Code string
	Err  error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ProviderError) Unwrap() error { return e.Err }

// NewProviderError wraps a failed provider call.
func NewProviderError(msg, code string, err error) *ProviderError {
	return &ProviderError{Msg: msg, Code: code, Err: err}
}
