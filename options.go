package nasc

import (
	"github.com/go-logr/logr"
)

// Option is a function that configures a Nasc container.
type Option func(*Nasc) error

// WithLogger sets the logger used for resolution diagnostics.
// Registrations, overrides, optional misses and singleton creation are logged at V(1).
func WithLogger(logger logr.Logger) Option {
	return func(n *Nasc) error {
		n.log = logger.WithName("nasc")
		return nil
	}
}

// WithProviders registers service providers while the container is created.
func WithProviders(providers ...ServiceProvider) Option {
	return func(n *Nasc) error {
		for _, p := range providers {
			if err := n.RegisterProvider(p); err != nil {
				return err
			}
		}
		return nil
	}
}
