package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Stream protocol errors
const (
	// ErrCodeProtocolViolation indicates a source called an observer after it
	// stopped or completed.
	ErrCodeProtocolViolation ErrorCode = "PROTOCOL_VIOLATION"
)

// Input errors
const (
	// ErrCodeInvalidSpec indicates a pipeline description cannot be built.
	ErrCodeInvalidSpec ErrorCode = "INVALID_SPEC"
	// ErrCodeInvalidInput indicates struct validation failed.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Configuration errors
const (
	// ErrCodeConfigLoad indicates configuration could not be read or decoded.
	ErrCodeConfigLoad ErrorCode = "CONFIG_LOAD"
	// ErrCodeInvalidConfig indicates configuration was read but is invalid.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeTelemetry indicates a telemetry provider could not be set up.
	ErrCodeTelemetry ErrorCode = "TELEMETRY_ERROR"
)

// fatalCodes mark errors raised for programming mistakes rather than bad input.
var fatalCodes = map[ErrorCode]bool{
	ErrCodeProtocolViolation: true,
	ErrCodeInternal:          true,
}

// IsFatalCode returns true if the code signals a bug rather than bad input.
func IsFatalCode(code ErrorCode) bool {
	return fatalCodes[code]
}
