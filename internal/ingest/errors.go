package ingest

// ErrorCode categorizes ingestion errors.
type ErrorCode string

const (
	InputError      ErrorCode = "InputError"
	NetworkError    ErrorCode = "NetworkError"
	ParseError      ErrorCode = "ParseError"
	ValidationError ErrorCode = "ValidationError"
	ConversionError ErrorCode = "ConversionError"
)

// LoadError is a structured error with an optional location and JSON
// Pointer into the source document.
type LoadError struct {
	Code        ErrorCode
	Message     string
	Location    string // file path or URL
	JSONPointer string // e.g. "#/paths/~1pets/get"
	Cause       error
}

func (e *LoadError) Error() string {
	if e.JSONPointer != "" {
		return e.Message + " (at " + e.JSONPointer + ")"
	}
	return e.Message
}

func (e *LoadError) Unwrap() error { return e.Cause }
