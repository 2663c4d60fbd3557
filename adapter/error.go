package adapter

import (
	"errors"
	"fmt"
)

// Code is the error byte that leads every reply. Zero means success.
type Code uint8

const (
	CodeOK Code = iota
	CodeNodeNotFound
	CodeMethodNotFound
	CodeInvalidRequest
	CodeUnknownCommand
	CodeMethodFailed
)

var (
	ErrNodeNotFound    = errors.New("adapter: node not found")
	ErrMethodNotFound  = errors.New("adapter: method not found")
	ErrInvalidRequest  = errors.New("adapter: invalid request")
	ErrUnknownCommand  = errors.New("adapter: unknown command")
	ErrMethodFailed    = errors.New("adapter: method failed")
	ErrPayloadTooLarge = errors.New("adapter: payload too large")
)

// codeErrors is indexed by Code. CodeFromError walks it in order, so an error
// wrapping several sentinels gets the lowest code.
var codeErrors = []error{
	CodeNodeNotFound:   ErrNodeNotFound,
	CodeMethodNotFound: ErrMethodNotFound,
	CodeInvalidRequest: ErrInvalidRequest,
	CodeUnknownCommand: ErrUnknownCommand,
	CodeMethodFailed:   ErrMethodFailed,
}

func sentinel(code Code) error {
	if int(code) < len(codeErrors) {
		return codeErrors[code]
	}
	return nil
}

// CodeError is a non-zero reply code.
type CodeError struct {
	Code Code
}

func (e *CodeError) Error() string {
	if err := sentinel(e.Code); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("adapter: error code %d", uint8(e.Code))
}

func (e *CodeError) Unwrap() error {
	return sentinel(e.Code)
}

// ErrorFromCode returns nil for CodeOK.
func ErrorFromCode(code Code) error {
	if code == CodeOK {
		return nil
	}
	return &CodeError{Code: code}
}

// CodeFromError maps err back to a reply code. Unknown errors become CodeMethodFailed.
func CodeFromError(err error) Code {
	if err == nil {
		return CodeOK
	}

	var codeErr *CodeError
	if errors.As(err, &codeErr) {
		return codeErr.Code
	}
	for code, target := range codeErrors {
		if target != nil && errors.Is(err, target) {
			return Code(code)
		}
	}
	return CodeMethodFailed
}

var (
	ErrFailedLock   = errors.New("adapter: failed lock")
	ErrFailedUnlock = errors.New("adapter: failed unlock")
)
