package nasc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeOf(t *testing.T) {
	assert.Equal(t, "nasc.Logger", TypeOf[Logger]().String())
	assert.Equal(t, "*nasc.MockDB", TypeOf[*MockDB]().String())
	assert.Equal(t, "int", TypeOf[int]().String())
}

func TestResolveTyped(t *testing.T) {
	resolver := newCountingResolver()
	registered := &ConsoleLogger{}
	resolver.register(loggerType, NoKey, registered)

	logger, err := Resolve[Logger](resolver, NoKey, false)
	require.NoError(t, err)
	assert.Same(t, registered, logger)
	assert.Equal(t, int32(1), resolver.keyed.Load())
}

func TestResolveTyped_NotFound(t *testing.T) {
	resolver := newCountingResolver()

	logger, err := Resolve[Logger](resolver, NoKey, false)
	assert.Nil(t, logger)
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)

	var mismatch *TypeMismatchError
	assert.False(t, errors.As(err, &mismatch))
}

func TestResolveTyped_OptionalMissReturnsZero(t *testing.T) {
	resolver := newCountingResolver()

	logger, err := Resolve[Logger](resolver, NoKey, true)
	assert.NoError(t, err)
	assert.Nil(t, logger)

	count, err := Resolve[int](resolver, NoKey, true)
	assert.NoError(t, err)
	assert.Zero(t, count)
}

func TestResolveTyped_TypeMismatch(t *testing.T) {
	resolver := newCountingResolver()
	resolver.register(loggerType, NoKey, "not a logger")

	_, err := Resolve[Logger](resolver, NoKey, false)
	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, loggerType, mismatch.Want)
	assert.Equal(t, TypeOf[string](), mismatch.Got)

	var notFound *NotFoundError
	assert.False(t, errors.As(err, &notFound))
}

func TestMustResolve(t *testing.T) {
	resolver := newCountingResolver()
	resolver.register(loggerType, KeyOf("k"), &ConsoleLogger{})

	assert.NotNil(t, MustResolve[Logger](resolver, KeyOf("k")))
	assert.Panics(t, func() { MustResolve[Logger](resolver, NoKey) })
}

func TestTryResolveTyped(t *testing.T) {
	resolver := newCountingResolver()
	registered := &ConsoleLogger{}
	resolver.register(loggerType, NoKey, registered)

	logger, ok := TryResolve[Logger](resolver, NoKey)
	assert.True(t, ok)
	assert.Same(t, registered, logger)

	db, ok := TryResolve[Database](resolver, NoKey)
	assert.False(t, ok)
	assert.Nil(t, db)

	n, ok := TryResolve[int](resolver, KeyOf("missing"))
	assert.False(t, ok)
	assert.Zero(t, n)
	assert.Equal(t, int32(3), resolver.tried.Load())

	// Where the throwing form fails with NotFoundError, TryResolve does not.
	_, err := Resolve[Database](resolver, NoKey, false)
	var notFound *NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestTryResolveTyped_TypeMismatchPanics(t *testing.T) {
	resolver := newCountingResolver()
	resolver.register(loggerType, NoKey, 42)

	assert.PanicsWithError(t, (&TypeMismatchError{Want: loggerType, Got: TypeOf[int]()}).Error(), func() {
		TryResolve[Logger](resolver, NoKey)
	})
}

func TestResolveOrDefault(t *testing.T) {
	resolver := newCountingResolver()
	registered := &ConsoleLogger{}
	fallback := &FileLogger{}

	assert.Same(t, fallback, ResolveOrDefault[Logger](resolver, fallback, NoKey))

	resolver.register(loggerType, NoKey, registered)
	assert.Same(t, registered, ResolveOrDefault[Logger](resolver, fallback, NoKey))

	assert.Equal(t, 8080, ResolveOrDefault(resolver, 8080, KeyOf("port")))
	resolver.register(TypeOf[int](), KeyOf("port"), 9090)
	assert.Equal(t, 9090, ResolveOrDefault(resolver, 8080, KeyOf("port")))
}

func TestResolveUntyped(t *testing.T) {
	resolver := newCountingResolver()
	resolver.register(loggerType, KeyOf("k"), "anything goes")

	value, err := ResolveUntyped(resolver, loggerType, KeyOf("k"), false)
	require.NoError(t, err)
	assert.Equal(t, "anything goes", value)

	value, err = ResolveUntyped(resolver, loggerType, NoKey, true)
	assert.NoError(t, err)
	assert.Nil(t, value)
}

func TestFacadeOverContainer(t *testing.T) {
	container := New()
	require.NoError(t, container.Bind((*Logger)(nil), &ConsoleLogger{}))

	logger, err := Resolve[Logger](container, NoKey, false)
	require.NoError(t, err)
	assert.IsType(t, &ConsoleLogger{}, logger)

	_, ok := TryResolve[Database](container, NoKey)
	assert.False(t, ok)
}
