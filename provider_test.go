package nasc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type LoggingProvider struct {
	registerCalled bool
}

func (p *LoggingProvider) Register(container *Nasc) error {
	p.registerCalled = true
	return container.Singleton((*Logger)(nil), &ConsoleLogger{})
}

type DatabaseProvider struct {
	bootCalled bool
}

func (p *DatabaseProvider) Register(container *Nasc) error {
	return container.SingletonConstructor((*Database)(nil), func(logger Logger) *MockDB {
		return &MockDB{Logger: logger}
	})
}

func (p *DatabaseProvider) Boot(container *Nasc) error {
	p.bootCalled = true
	db, err := Resolve[Database](container, NoKey, false)
	if err != nil {
		return err
	}
	return db.Connect()
}

type FailingProvider struct{}

func (p *FailingProvider) Register(*Nasc) error {
	return errors.New("registration failed")
}

type FailingBootProvider struct{}

func (p *FailingBootProvider) Register(*Nasc) error { return nil }

func (p *FailingBootProvider) Boot(*Nasc) error {
	return errors.New("boot failed")
}

type DeferredTestProvider struct {
	shouldRegister bool
	registerCalled bool
}

func (p *DeferredTestProvider) ShouldRegister(*Nasc) bool {
	return p.shouldRegister
}

func (p *DeferredTestProvider) Register(*Nasc) error {
	p.registerCalled = true
	return nil
}

func TestRegisterProvider(t *testing.T) {
	container := New()
	provider := &LoggingProvider{}

	require.NoError(t, container.RegisterProvider(provider))
	assert.True(t, provider.registerCalled)
	assert.True(t, container.Has((*Logger)(nil), NoKey))
	assert.Equal(t, []ServiceProvider{provider}, container.Providers())
}

func TestRegisterProvider_OncePerType(t *testing.T) {
	container := New()
	require.NoError(t, container.RegisterProvider(&LoggingProvider{}))

	second := &LoggingProvider{}
	require.NoError(t, container.RegisterProvider(second))
	assert.False(t, second.registerCalled)
	assert.Len(t, container.Providers(), 1)
}

func TestRegisterProvider_Errors(t *testing.T) {
	container := New()
	assert.Error(t, container.RegisterProvider(nil))

	err := container.RegisterProvider(&FailingProvider{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registration failed")
	assert.Empty(t, container.Providers())
}

func TestDeferredProvider(t *testing.T) {
	container := New()
	skipped := &DeferredTestProvider{}
	require.NoError(t, container.RegisterProvider(skipped))
	assert.False(t, skipped.registerCalled)
	assert.Empty(t, container.Providers())

	accepted := &DeferredTestProvider{shouldRegister: true}
	require.NoError(t, container.RegisterProvider(accepted))
	assert.True(t, accepted.registerCalled)
}

func TestBootProviders(t *testing.T) {
	db := &DatabaseProvider{}
	container := New(WithProviders(&LoggingProvider{}, db))

	require.NoError(t, container.BootProviders())
	assert.True(t, db.bootCalled)

	resolved := MustResolve[Database](container, NoKey).(*MockDB)
	assert.True(t, resolved.connected)
	assert.NotNil(t, resolved.Logger)

	db.bootCalled = false
	require.NoError(t, container.BootProviders())
	assert.False(t, db.bootCalled, "providers boot once")
}

func TestBootProviders_Error(t *testing.T) {
	container := New()
	require.NoError(t, container.RegisterProvider(&FailingBootProvider{}))

	err := container.BootProviders()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boot failed")
}

func TestWithProviders_ErrorPanics(t *testing.T) {
	assert.Panics(t, func() { New(WithProviders(&FailingProvider{})) })
}
