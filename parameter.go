package nasc

import (
	"reflect"
)

// InjectionParameter is an explicit value for one parameter of a single construction.
//
// Match decides whether the parameter applies to a (type, name) request; Value produces
// the value and may itself resolve from r.
type InjectionParameter interface {
	Match(t reflect.Type, name string) bool
	Value(r Resolver) (interface{}, error)
}

// Overrides is an ordered list of injection parameters.
// The zero value is absent, which differs from a present but empty list.
type Overrides struct {
	params  []InjectionParameter
	present bool
}

// NoOverrides returns the absent override list.
func NoOverrides() Overrides {
	return Overrides{}
}

// WithOverrides returns a present override list holding a copy of params.
// Earlier parameters shadow later ones. Nil entries are dropped.
func WithOverrides(params ...InjectionParameter) Overrides {
	copied := make([]InjectionParameter, 0, len(params))
	for _, param := range params {
		if param != nil {
			copied = append(copied, param)
		}
	}
	return Overrides{params: copied, present: true}
}

// Present reports whether an override list was supplied at all.
func (o Overrides) Present() bool {
	return o.present
}

// Len returns the number of parameters.
func (o Overrides) Len() int {
	return len(o.params)
}

// Matcher decides whether a parameter applies to a (type, name) request.
type Matcher func(t reflect.Type, name string) bool

// MatchExactType matches requests for exactly t, whatever the name.
func MatchExactType(t reflect.Type) Matcher {
	return func(want reflect.Type, _ string) bool {
		return want == t
	}
}

// MatchAssignable matches requests whose type accepts a value of type t.
func MatchAssignable(t reflect.Type) Matcher {
	return func(want reflect.Type, _ string) bool {
		return t != nil && want != nil && t.AssignableTo(want)
	}
}

// MatchName matches requests for the named parameter, whatever the type.
func MatchName(name string) Matcher {
	return func(_ reflect.Type, got string) bool {
		return got == name
	}
}

// MatchAll matches when every matcher does.
func MatchAll(matchers ...Matcher) Matcher {
	return func(t reflect.Type, name string) bool {
		for _, m := range matchers {
			if !m(t, name) {
				return false
			}
		}
		return true
	}
}

// MatchAny matches when at least one matcher does.
func MatchAny(matchers ...Matcher) Matcher {
	return func(t reflect.Type, name string) bool {
		for _, m := range matchers {
			if m(t, name) {
				return true
			}
		}
		return false
	}
}

// ValueFunc lazily produces a parameter value.
type ValueFunc func(r Resolver) (interface{}, error)

type parameter struct {
	match Matcher
	value ValueFunc
}

func (p *parameter) Match(t reflect.Type, name string) bool {
	return p.match(t, name)
}

func (p *parameter) Value(r Resolver) (interface{}, error) {
	return p.value(r)
}

// Parameter returns a parameter supplying value to requests accepted by m.
func Parameter(m Matcher, value interface{}) InjectionParameter {
	return &parameter{
		match: m,
		value: func(Resolver) (interface{}, error) { return value, nil },
	}
}

// LazyParameter returns a parameter whose value is produced on each use.
func LazyParameter(m Matcher, value ValueFunc) InjectionParameter {
	return &parameter{match: m, value: value}
}

// Typed supplies value to parameters of exactly type T.
//
// Example:
//
//	nasc.Typed[Logger](&ConsoleLogger{})
func Typed[T any](value T) InjectionParameter {
	return Parameter(MatchExactType(TypeOf[T]()), value)
}

// Named supplies value to the parameter called name.
func Named(name string, value interface{}) InjectionParameter {
	return Parameter(MatchName(name), value)
}

// Assignable supplies value to any parameter whose type accepts it.
func Assignable(value interface{}) InjectionParameter {
	return Parameter(MatchAssignable(reflect.TypeOf(value)), value)
}
