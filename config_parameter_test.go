package nasc

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const parametersYAML = `
dsn: postgres://localhost/app
port: 8080
ratio: 0.5
debug: true
timeout: 1500
tags: [a, b]
nothing: ~
`

func TestParseParameters(t *testing.T) {
	params, err := ParseParameters([]byte(parametersYAML))
	require.NoError(t, err)
	require.Len(t, params, 7)

	overrides := WithOverrides(params...)
	resolver := newCountingResolver()

	tests := []struct {
		name string
		typ  interface{}
		want interface{}
	}{
		{"dsn", TypeOf[string](), "postgres://localhost/app"},
		{"port", TypeOf[int](), 8080},
		{"port", TypeOf[uint16](), 8080},
		{"ratio", TypeOf[float64](), 0.5},
		{"debug", TypeOf[bool](), true},
		{"timeout", TypeOf[time.Duration](), 1500},
		{"tags", TypeOf[[]interface{}](), []interface{}{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, err := typeOfToken(tt.typ)
			require.NoError(t, err)
			value, err := ResolveOrParameter(resolver, typ, tt.name, overrides, NoKey, false)
			require.NoError(t, err)
			assert.EqualValues(t, tt.want, value)
		})
	}
	assert.Zero(t, resolver.calls())
}

func TestConfigParameter_Match(t *testing.T) {
	params, err := ParseParameters([]byte(parametersYAML))
	require.NoError(t, err)
	overrides := WithOverrides(params...)

	_, ok := MatchOverride(TypeOf[int](), "dsn", overrides)
	assert.False(t, ok, "a string does not fit an int")

	_, ok = MatchOverride(TypeOf[string](), "port", overrides)
	assert.False(t, ok, "a number does not fit a string")

	_, ok = MatchOverride(loggerType, "nothing", overrides)
	assert.True(t, ok, "null fits nillable types")

	_, ok = MatchOverride(TypeOf[int](), "nothing", overrides)
	assert.False(t, ok)

	_, ok = MatchOverride(TypeOf[uint8](), "port", overrides)
	assert.False(t, ok, "8080 does not fit a uint8")

	_, ok = MatchOverride(TypeOf[int](), "ratio", overrides)
	assert.False(t, ok, "0.5 is not a whole number")
}

func TestConfigParameter_OutOfRangeFallsThrough(t *testing.T) {
	params, err := ParseParameters([]byte("port: 70000\nworkers: 2.9\nretries: -1\n"))
	require.NoError(t, err)
	overrides := WithOverrides(params...)

	tests := []struct {
		name string
		typ  interface{}
	}{
		{"port", TypeOf[uint16]()},
		{"workers", TypeOf[int]()},
		{"retries", TypeOf[uint]()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, err := typeOfToken(tt.typ)
			require.NoError(t, err)

			_, ok := MatchOverride(typ, tt.name, overrides)
			assert.False(t, ok)

			_, err = New().resolveParameter(New(), typ, tt.name, overrides, NoKey, false)
			var notFound *NotFoundError
			assert.ErrorAs(t, err, &notFound)
		})
	}
}

func TestParseParameters_Invalid(t *testing.T) {
	_, err := ParseParameters([]byte("- a\n- b\n"))
	assert.ErrorContains(t, err, "must be a YAML mapping")

	_, err = ParseParameters([]byte("a: [unclosed"))
	assert.ErrorContains(t, err, "failed to parse parameters")

	params, err := ParseParameters(nil)
	assert.NoError(t, err)
	assert.Empty(t, params)
}

func TestLoadParameters_Constructor(t *testing.T) {
	params, err := LoadParameters(strings.NewReader("dsn: postgres://db/app\nport: 5432\n"))
	require.NoError(t, err)

	container := New()
	require.NoError(t, container.Bind((*Logger)(nil), &ConsoleLogger{}))
	require.NoError(t, container.BindConstructor((*Service)(nil), NewServiceWithConfig,
		WithParameterNames("logger", "dsn", "port"),
		WithParameters(params...)))

	svc := MustResolve[Service](container, NoKey).(*ServiceImpl)
	assert.Equal(t, "postgres://db/app", svc.dsn)
	assert.Equal(t, 5432, svc.port)
}
