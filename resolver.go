package nasc

import (
	"reflect"

	"github.com/toutaio/toutago-nasc-resolver/registry"
)

// Key disambiguates several bindings of the same type.
type Key = registry.Key

// NoKey selects the default, unkeyed binding.
var NoKey = registry.NoKey

// KeyOf wraps a comparable value as a Key. KeyOf(nil) returns NoKey.
func KeyOf(v interface{}) Key {
	return registry.KeyOf(v)
}

// Resolver maps a (type, key) pair to an instance.
// Implementations must allow concurrent calls.
type Resolver interface {
	// ResolveKeyed returns the instance bound to t under key.
	// When nothing is bound it returns a *NotFoundError, or (nil, nil) if optional is set.
	ResolveKeyed(t reflect.Type, key Key, optional bool) (interface{}, error)

	// Resolve is ResolveKeyed with NoKey.
	Resolve(t reflect.Type, optional bool) (interface{}, error)

	// TryResolve returns the instance bound to t under key and true,
	// or nil and false when nothing is bound.
	TryResolve(t reflect.Type, key Key) (interface{}, bool)
}

// ResolveOrParameter resolves one constructor or field parameter.
//
// When overrides are present the first parameter matching (parameterType, parameterName)
// supplies the value, and its error is returned untouched. Otherwise the request falls
// through to r: the keyed form when key is set, the unkeyed form when it is not.
func ResolveOrParameter(r Resolver, parameterType reflect.Type, parameterName string, overrides Overrides, key Key, optional bool) (interface{}, error) {
	if param, ok := MatchOverride(parameterType, parameterName, overrides); ok {
		return param.Value(r)
	}

	if key.IsSet() {
		return r.ResolveKeyed(parameterType, key, optional)
	}
	return r.Resolve(parameterType, optional)
}

// MatchOverride returns the first parameter in overrides matching (t, name).
// Absent and empty overrides never match.
func MatchOverride(t reflect.Type, name string, overrides Overrides) (InjectionParameter, bool) {
	if !overrides.Present() {
		return nil, false
	}
	for _, param := range overrides.params {
		if param.Match(t, name) {
			return param, true
		}
	}
	return nil, false
}
