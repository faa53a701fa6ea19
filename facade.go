package nasc

import (
	"reflect"
)

// TypeOf returns the runtime type of T, including interface types.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Resolve returns the instance bound to T under key.
//
// An optional miss yields the zero T and no error. A resolved value that is not a T
// yields a *TypeMismatchError; resolver errors are returned unchanged.
//
// Example:
//
//	logger, err := nasc.Resolve[Logger](container, nasc.NoKey, false)
func Resolve[T any](r Resolver, key Key, optional bool) (T, error) {
	var zero T
	value, err := r.ResolveKeyed(TypeOf[T](), key, optional)
	if err != nil {
		return zero, err
	}
	return cast[T](value)
}

// MustResolve is like Resolve but panics on failure.
func MustResolve[T any](r Resolver, key Key) T {
	value, err := Resolve[T](r, key, false)
	if err != nil {
		panic(err)
	}
	return value
}

// TryResolve returns the instance bound to T under key and true, or the zero T and
// false when nothing is bound. It panics with a *TypeMismatchError if the bound value
// is not a T.
func TryResolve[T any](r Resolver, key Key) (T, bool) {
	var zero T
	value, ok := r.TryResolve(TypeOf[T](), key)
	if !ok {
		return zero, false
	}
	resolved, err := cast[T](value)
	if err != nil {
		panic(err)
	}
	return resolved, true
}

// ResolveOrDefault is like TryResolve but returns defaultValue when nothing is bound.
func ResolveOrDefault[T any](r Resolver, defaultValue T, key Key) T {
	if value, ok := TryResolve[T](r, key); ok {
		return value
	}
	return defaultValue
}

// ResolveUntyped resolves t under key without any type assertion.
func ResolveUntyped(r Resolver, t reflect.Type, key Key, optional bool) (interface{}, error) {
	return r.ResolveKeyed(t, key, optional)
}

func cast[T any](value interface{}) (T, error) {
	var zero T
	if value == nil {
		return zero, nil
	}
	resolved, ok := value.(T)
	if !ok {
		return zero, &TypeMismatchError{Want: TypeOf[T](), Got: reflect.TypeOf(value)}
	}
	return resolved, nil
}
