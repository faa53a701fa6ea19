package registry

import (
	"fmt"
	"reflect"
)

// Key disambiguates several bindings of the same type.
// The zero Key is the unkeyed (default) registration.
type Key struct {
	value interface{}
	set   bool
}

// NoKey selects the default, unkeyed binding.
var NoKey = Key{}

// KeyOf wraps v as a Key. KeyOf(nil) returns NoKey.
// It panics if v is not comparable, including an interface field holding a slice,
// since such a key could never be looked up.
func KeyOf(v interface{}) Key {
	if v == nil {
		return NoKey
	}
	if k, ok := v.(Key); ok {
		return k
	}
	if !reflect.ValueOf(v).Comparable() {
		panic(fmt.Sprintf("key of type %T is not comparable", v))
	}
	return Key{value: v, set: true}
}

// IsSet reports whether k names a keyed binding.
func (k Key) IsSet() bool {
	return k.set
}

// Value returns the wrapped key value, or nil for NoKey.
func (k Key) Value() interface{} {
	return k.value
}

func (k Key) String() string {
	if !k.set {
		return "<default>"
	}
	return fmt.Sprintf("%v", k.value)
}
