// Package errors provides the structured error type used across rxkit.
//
// Errors carry a machine-readable ErrorCode, a human-readable message,
// optional details and an underlying cause. They work with the standard
// library's errors.Is and errors.As: two AppErrors match under errors.Is
// when their codes are equal.
package errors
