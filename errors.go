package odnoklassniki

import "fmt"

// ErrorKind categorizes the cause of an APIError.
type ErrorKind string

const (
	// ErrKindTransport indicates the HTTP round-trip failed (connection error,
	// timeout, unreadable body or non-2xx status).
	ErrKindTransport ErrorKind = "transport"
	// ErrKindParse indicates the response body was not a non-empty JSON object.
	ErrKindParse ErrorKind = "parse"
	// ErrKindAPI indicates the API answered with an error_code/error_msg pair.
	ErrKindAPI ErrorKind = "api"
	// ErrKindProtocol indicates a well-formed response that lacks a required
	// field, such as access_token in a token exchange.
	ErrKindProtocol ErrorKind = "protocol"
)

// responseParseError is the message carried by every ErrKindParse error.
const responseParseError = "ResponseParseError"

// APIError is the single error type returned by Client operations.
type APIError struct {
	// Kind categorizes the error.
	Kind ErrorKind
	// Message is a human-readable description. For ErrKindAPI it is the
	// error_msg reported by the API.
	Message string
	// Code is the error_code reported by the API, or 0 when none was given.
	Code int
	// Err is the underlying transport error, if any.
	Err error
}

// Error returns the string representation of the error in the format:
//
//	"odnoklassniki kind: message (code N)"
//
// The code suffix is omitted when Code is 0.
func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("odnoklassniki %s: %s (code %d)", e.Kind, e.Message, e.Code)
	}
	return fmt.Sprintf("odnoklassniki %s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *APIError of the same Kind.
// This enables errors.Is to match APIError values against sentinel errors.
func (e *APIError) Is(target error) bool {
	if t, ok := target.(*APIError); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Sentinel errors for use with errors.Is. Each sentinel corresponds to an ErrorKind.
var (
	// ErrTransport matches transport failures.
	ErrTransport = &APIError{Kind: ErrKindTransport}
	// ErrResponseParse matches undecodable or empty response bodies.
	ErrResponseParse = &APIError{Kind: ErrKindParse}
	// ErrAPI matches errors reported by the API itself.
	ErrAPI = &APIError{Kind: ErrKindAPI}
	// ErrProtocol matches responses missing a required field.
	ErrProtocol = &APIError{Kind: ErrKindProtocol}
)

func newAPIError(kind ErrorKind, message string, code int, err error) *APIError {
	return &APIError{
		Kind:    kind,
		Message: message,
		Code:    code,
		Err:     err,
	}
}
