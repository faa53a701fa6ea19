package nasc

import (
	"fmt"
	"reflect"

	"github.com/toutaio/toutago-nasc-resolver/registry"
)

// NotFoundError is returned when no binding exists for the requested type and key
// and the request was not optional.
type NotFoundError struct {
	Type reflect.Type
	Key  Key
}

func (e *NotFoundError) Error() string {
	if e.Key.IsSet() {
		return fmt.Sprintf("binding not found for type %v with key %v", e.Type, e.Key)
	}
	return fmt.Sprintf("binding not found for type %v. Did you forget to register it with Bind()?", e.Type)
}

// TypeMismatchError is returned when a resolved value cannot be used as the
// requested type.
type TypeMismatchError struct {
	Want reflect.Type
	Got  reflect.Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("resolved value of type %v is not assignable to %v", e.Got, e.Want)
}

// BindingAlreadyExistsError is returned when attempting to register a duplicate binding.
type BindingAlreadyExistsError = registry.BindingAlreadyExistsError

// InvalidBindingError is returned when a binding has invalid parameters.
type InvalidBindingError struct {
	Reason string
}

func (e *InvalidBindingError) Error() string {
	return fmt.Sprintf("invalid binding: %s", e.Reason)
}

// ResolutionError is returned when instance construction fails.
type ResolutionError struct {
	Type    reflect.Type
	Key     Key
	Cause   error
	Context string
}

func (e *ResolutionError) Error() string {
	typeStr := "unknown"
	if e.Type != nil {
		typeStr = e.Type.String()
	}

	keyStr := ""
	if e.Key.IsSet() {
		keyStr = fmt.Sprintf(" (key=%v)", e.Key)
	}

	contextStr := ""
	if e.Context != "" {
		contextStr = fmt.Sprintf(": %s", e.Context)
	}

	causeStr := ""
	if e.Cause != nil {
		causeStr = fmt.Sprintf(": %v", e.Cause)
	}

	return fmt.Sprintf("failed to resolve %s%s%s%s", typeStr, keyStr, contextStr, causeStr)
}

// Unwrap returns the underlying cause error.
func (e *ResolutionError) Unwrap() error {
	return e.Cause
}
