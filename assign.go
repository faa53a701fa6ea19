package nasc

import (
	"math"
	"reflect"
)

type kindFamily int

const (
	familyNone kindFamily = iota
	familyNumeric
	familyString
	familyBool
)

func familyOf(k reflect.Kind) kindFamily {
	switch {
	case isSigned(k), isUnsigned(k), isFloat(k):
		return familyNumeric
	case k == reflect.String:
		return familyString
	case k == reflect.Bool:
		return familyBool
	default:
		return familyNone
	}
}

func isSigned(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUnsigned(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

// coerce returns value as a reflect.Value usable where t is expected.
// Assignable values pass through; numbers, strings and bools convert within their
// own family (an int parameter accepts an int64, never a string). Numbers only
// convert when the target represents them without wrapping or truncation.
func coerce(value interface{}, t reflect.Type) (reflect.Value, error) {
	v := reflect.ValueOf(value)
	if v.Type().AssignableTo(t) {
		return v, nil
	}

	switch from := familyOf(v.Kind()); {
	case from == familyNone || from != familyOf(t.Kind()) || !v.Type().ConvertibleTo(t):
	case from == familyNumeric:
		if out, ok := convertNumber(v, t); ok {
			return out, nil
		}
	default:
		return v.Convert(t), nil
	}

	return reflect.Value{}, &TypeMismatchError{Want: t, Got: v.Type()}
}

// convertNumber converts v to the numeric type t, reporting false when the value
// does not fit exactly.
func convertNumber(v reflect.Value, t reflect.Type) (reflect.Value, bool) {
	out := reflect.New(t).Elem()
	to := t.Kind()

	switch k := v.Kind(); {
	case isSigned(k):
		i := v.Int()
		switch {
		case isSigned(to):
			if out.OverflowInt(i) {
				return reflect.Value{}, false
			}
			out.SetInt(i)
		case isUnsigned(to):
			if i < 0 || out.OverflowUint(uint64(i)) {
				return reflect.Value{}, false
			}
			out.SetUint(uint64(i))
		default:
			out.SetFloat(float64(i))
		}

	case isUnsigned(k):
		u := v.Uint()
		switch {
		case isSigned(to):
			if u > math.MaxInt64 || out.OverflowInt(int64(u)) {
				return reflect.Value{}, false
			}
			out.SetInt(int64(u))
		case isUnsigned(to):
			if out.OverflowUint(u) {
				return reflect.Value{}, false
			}
			out.SetUint(u)
		default:
			out.SetFloat(float64(u))
		}

	default:
		f := v.Float()
		switch {
		case isFloat(to):
			if out.OverflowFloat(f) {
				return reflect.Value{}, false
			}
			out.SetFloat(f)
		case math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f):
			return reflect.Value{}, false
		case isSigned(to):
			if f < math.MinInt64 || f >= math.MaxInt64 || out.OverflowInt(int64(f)) {
				return reflect.Value{}, false
			}
			out.SetInt(int64(f))
		default:
			if f < 0 || f >= math.MaxUint64 || out.OverflowUint(uint64(f)) {
				return reflect.Value{}, false
			}
			out.SetUint(uint64(f))
		}
	}

	return out, true
}
