package nasc

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type environment string

func TestCoerce(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		typ   reflect.Type
		want  interface{}
	}{
		{"assignable interface", &ConsoleLogger{}, loggerType, nil},
		{"same type", "dsn", TypeOf[string](), "dsn"},
		{"int to int64", 5, TypeOf[int64](), int64(5)},
		{"int to uint16", 8080, TypeOf[uint16](), uint16(8080)},
		{"float to float32", 1.5, TypeOf[float32](), float32(1.5)},
		{"int to duration", 3, TypeOf[time.Duration](), time.Duration(3)},
		{"whole float to int", 2.0, TypeOf[int](), 2},
		{"uint to int8", uint(127), TypeOf[int8](), int8(127)},
		{"negative int to float", -4, TypeOf[float64](), -4.0},
		{"string to named string", "prod", TypeOf[environment](), environment("prod")},
		{"anything to empty interface", []int{1}, TypeOf[interface{}](), []int{1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := coerce(tt.value, tt.typ)
			require.NoError(t, err)
			assert.True(t, v.Type().AssignableTo(tt.typ))
			if tt.want != nil {
				assert.Equal(t, tt.want, v.Interface())
			}
		})
	}
}

func TestCoerce_Mismatch(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		typ   reflect.Type
	}{
		{"int to string", 65, TypeOf[string]()},
		{"string to int", "65", TypeOf[int]()},
		{"bool to int", true, TypeOf[int]()},
		{"struct to interface it does not implement", &MockDB{}, loggerType},
		{"int overflows uint16", 70000, TypeOf[uint16]()},
		{"int overflows int8", -129, TypeOf[int8]()},
		{"negative int to uint", -1, TypeOf[uint]()},
		{"fractional float to int", 2.9, TypeOf[int]()},
		{"float overflows int32", 1e10, TypeOf[int32]()},
		{"negative float to uint", -1.0, TypeOf[uint]()},
		{"float overflows float32", 1e300, TypeOf[float32]()},
		{"large uint to int64", uint64(math.MaxUint64), TypeOf[int64]()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := coerce(tt.value, tt.typ)
			var mismatch *TypeMismatchError
			require.ErrorAs(t, err, &mismatch)
			assert.Equal(t, tt.typ, mismatch.Want)
		})
	}
}
