package contract

import (
	"errors"
	"fmt"
)

// Code categorizes contract-engine failures.
type Code string

const (
	// CodeMissingArgument: a required input name absent from the
	// execution context. Raised before authorization or build logic
	// runs, always fatal to the current call.
	CodeMissingArgument Code = "MISSING_ARGUMENT"

	// CodeForbidden: an authorization check returned negative and the
	// execution entry point escalated it.
	CodeForbidden Code = "OPERATION_FORBIDDEN"

	// CodeEmptyContract: a contract's operation list was empty at
	// build time. Indicates misconfiguration.
	CodeEmptyContract Code = "EMPTY_CONTRACT"

	// CodeInvalidContract: dispatch requested an unknown contract
	// name. Raised before any context mutation.
	CodeInvalidContract Code = "INVALID_CONTRACT"

	// CodeInvalidAgreement: agreement authenticity verification failed
	// during synchronization. Distinct from the best-effort read
	// failures that follow it in the same call.
	CodeInvalidAgreement Code = "INVALID_AGREEMENT"
)

// Error is a structured contract-engine failure. It propagates to the
// direct caller unchanged: the engine performs no logging, retry, or
// translation on the way up.
type Error struct {
	Code     Code
	Message  string
	Contract string // kebab contract name, when known
	Argument string // offending argument name, for MISSING_ARGUMENT
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Contract != "" && e.Argument != "":
		return fmt.Sprintf("%s: %s (contract=%s, argument=%s)", e.Code, e.Message, e.Contract, e.Argument)
	case e.Contract != "":
		return fmt.Sprintf("%s: %s (contract=%s)", e.Code, e.Message, e.Contract)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// CodeOf extracts the failure code from an error chain.
// Returns "" when the chain carries no contract Error.
func CodeOf(err error) Code {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

// IsMissingArgument reports whether the error chain carries a
// MISSING_ARGUMENT failure.
func IsMissingArgument(err error) bool {
	return CodeOf(err) == CodeMissingArgument
}

// IsForbidden reports whether the error chain carries an
// OPERATION_FORBIDDEN failure.
func IsForbidden(err error) bool {
	return CodeOf(err) == CodeForbidden
}

// IsInvalidAgreement reports whether the error chain carries an
// INVALID_AGREEMENT failure.
func IsInvalidAgreement(err error) bool {
	return CodeOf(err) == CodeInvalidAgreement
}

// NewMissingArgument creates the hard failure for an absent required
// input.
func NewMissingArgument(contract, argument string) *Error {
	return &Error{
		Code:     CodeMissingArgument,
		Message:  fmt.Sprintf("required argument %q not supplied", argument),
		Contract: contract,
		Argument: argument,
	}
}

// NewForbidden escalates a negative allowance result.
func NewForbidden(contract, message string) *Error {
	if message == "" {
		message = "actor is not allowed to execute this contract"
	}
	return &Error{Code: CodeForbidden, Message: message, Contract: contract}
}

// NewEmptyContract creates the hard failure for a zero-operation build.
func NewEmptyContract(contract string) *Error {
	return &Error{
		Code:     CodeEmptyContract,
		Message:  "contract produced no operations",
		Contract: contract,
	}
}

// NewInvalidContract creates the hard failure for an unknown dispatch
// name.
func NewInvalidContract(name string) *Error {
	return &Error{
		Code:    CodeInvalidContract,
		Message: fmt.Sprintf("unknown contract name %q", name),
	}
}

// NewInvalidAgreement creates the hard failure for a failed agreement
// authenticity check.
func NewInvalidAgreement(format string, args ...any) *Error {
	return &Error{
		Code:    CodeInvalidAgreement,
		Message: fmt.Sprintf(format, args...),
	}
}
