package nasc

import (
	"reflect"

	"github.com/pkg/errors"
)

// ServiceProvider groups related registrations.
//
// Example:
//
//	type LoggingProvider struct{}
//
//	func (p *LoggingProvider) Register(container *nasc.Nasc) error {
//	    return container.Singleton((*Logger)(nil), &ConsoleLogger{})
//	}
type ServiceProvider interface {
	Register(container *Nasc) error
}

// BootableProvider is an optional interface for providers that need a boot phase.
// The Boot method is called by BootProviders, after all providers have been registered,
// so it may resolve anything the other providers bound.
type BootableProvider interface {
	ServiceProvider
	Boot(container *Nasc) error
}

// DeferredProvider is an optional interface for providers that register conditionally.
type DeferredProvider interface {
	ServiceProvider
	ShouldRegister(container *Nasc) bool
}

// providerEntry tracks a registered provider.
type providerEntry struct {
	provider ServiceProvider
	booted   bool
}

// RegisterProvider registers a service provider with the container.
// The provider's Register method is called immediately; a provider type is only
// registered once, and a DeferredProvider may decline.
func (n *Nasc) RegisterProvider(provider ServiceProvider) error {
	if provider == nil {
		return errors.New("provider cannot be nil")
	}

	if deferred, ok := provider.(DeferredProvider); ok && !deferred.ShouldRegister(n) {
		n.log.V(1).Info("provider skipped", "provider", reflect.TypeOf(provider).String())
		return nil
	}

	providerType := reflect.TypeOf(provider)
	for _, entry := range n.providers {
		if reflect.TypeOf(entry.provider) == providerType {
			return nil
		}
	}

	if err := provider.Register(n); err != nil {
		return errors.Wrapf(err, "provider %v registration failed", providerType)
	}

	n.providers = append(n.providers, &providerEntry{provider: provider})
	return nil
}

// BootProviders calls Boot on every registered BootableProvider not yet booted.
func (n *Nasc) BootProviders() error {
	for _, entry := range n.providers {
		if entry.booted {
			continue
		}

		if bootable, ok := entry.provider.(BootableProvider); ok {
			if err := bootable.Boot(n); err != nil {
				return errors.Wrapf(err, "provider %T boot failed", entry.provider)
			}
		}
		entry.booted = true
	}

	return nil
}

// Providers returns the registered providers in registration order.
func (n *Nasc) Providers() []ServiceProvider {
	providers := make([]ServiceProvider, len(n.providers))
	for i, entry := range n.providers {
		providers[i] = entry.provider
	}
	return providers
}
