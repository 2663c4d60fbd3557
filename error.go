package scenecall

import (
	"fmt"

	"github.com/ezraisw/scenecall/adapter"
)

type (
	callError struct {
		category    string
		path        string
		message     string
		previousErr error
	}
)

const (
	categoryLookup = "lookup"
	categoryCall   = "call"
	categoryDecode = "decode"
)

func newCallError(category string, path string, message string, previousErr error) *callError {
	return &callError{
		category:    category,
		path:        path,
		message:     message,
		previousErr: previousErr,
	}
}

func (e callError) Error() string {
	return fmt.Sprintf("%s %s (%s)", e.message, e.path, e.previousErr.Error())
}

func (e callError) Unwrap() error {
	return e.previousErr
}

// Category is one of "lookup", "call" or "decode".
func (e callError) Category() string {
	return e.category
}

func (e *MethodError) Error() string {
	return fmt.Sprintf("scenecall: %s:%s returned code %d", e.Path, e.Method, e.Code)
}

// Unwrap maps the code onto the adapter's sentinel errors.
func (e *MethodError) Unwrap() error {
	return adapter.ErrorFromCode(adapter.Code(e.Code))
}
