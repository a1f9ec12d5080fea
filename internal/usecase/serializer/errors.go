package serializer

import (
	"errors"
	"fmt"
)

// Kind classifies why a document could not be read or written.
type Kind string

const (
	// KindEmptyInput: the text was empty or whitespace. An argument error.
	KindEmptyInput Kind = "empty_input"
	// KindMalformed: the text is not syntactically valid JSON.
	KindMalformed Kind = "malformed_json"
	// KindSchema: valid JSON that does not conform to the use case schema.
	KindSchema Kind = "schema_violation"
	// KindDecode: schema-valid JSON that still cannot become a domain value,
	// or a domain value that cannot be encoded.
	KindDecode Kind = "decode"
)

// Sentinels matched by errors.Is against an *Error of the same kind.
var (
	ErrEmptyInput      = errors.New("empty input")
	ErrMalformedJSON   = errors.New("malformed json")
	ErrSchemaViolation = errors.New("schema violation")
	ErrDecode          = errors.New("decode failed")
	ErrNilUseCase      = errors.New("use case is nil")
)

var kindSentinels = map[Kind]error{
	KindEmptyInput: ErrEmptyInput,
	KindMalformed:  ErrMalformedJSON,
	KindSchema:     ErrSchemaViolation,
	KindDecode:     ErrDecode,
}

// Error is a serialization failure. Message is human readable and starts
// with a phrase naming the cause ("Invalid JSON format", "Schema validation
// failed", ...). Err is the underlying cause, if any.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrSchemaViolation) and friends match by kind.
func (e *Error) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

func newError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}
