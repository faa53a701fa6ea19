package nasc

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/toutaio/toutago-nasc-resolver/registry"
)

// Disposable represents a service that requires cleanup.
// Scoped services implementing this interface will have Dispose called
// when their scope is disposed.
//
// Example:
//
//	type DatabaseConnection struct {}
//	func (d *DatabaseConnection) Dispose() error {
//	    return d.connection.Close()
//	}
type Disposable interface {
	Dispose() error
}

// Scope represents an isolated dependency resolution context.
// Scoped bindings create one instance per scope, allowing for request-scoped
// or transaction-scoped dependencies. Other lifetimes are served by the container,
// with the scope handed to factories and constructors as their Resolver.
//
// Example:
//
//	scope := container.CreateScope()
//	defer scope.Dispose()
//
//	uow := nasc.MustResolve[UnitOfWork](scope, nasc.NoKey)
type Scope struct {
	parent        *Nasc
	instances     *instanceCache
	creationOrder []interface{} // Track order for reverse disposal
	children      []*Scope
	disposed      bool
	mu            sync.RWMutex
}

var _ Resolver = (*Scope)(nil)

// CreateScope creates a new dependency resolution scope.
//
// Example:
//
//	scope := container.CreateScope()
//	defer scope.Dispose()
func (n *Nasc) CreateScope() *Scope {
	return newScope(n)
}

func newScope(parent *Nasc) *Scope {
	return &Scope{
		parent:    parent,
		instances: newInstanceCache(),
	}
}

func (s *Scope) isDisposed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.disposed
}

func (s *Scope) disposedError(t reflect.Type, key Key) error {
	return &ResolutionError{Type: t, Key: key, Context: "cannot resolve from disposed scope"}
}

// ResolveKeyed resolves the binding of t registered under key within this scope.
func (s *Scope) ResolveKeyed(t reflect.Type, key Key, optional bool) (interface{}, error) {
	if s.isDisposed() {
		return nil, s.disposedError(t, key)
	}
	return s.parent.resolve(s, t, key, optional)
}

// Resolve resolves the default binding of t within this scope.
func (s *Scope) Resolve(t reflect.Type, optional bool) (interface{}, error) {
	if s.isDisposed() {
		return nil, s.disposedError(t, NoKey)
	}
	return s.parent.resolve(s, t, NoKey, optional)
}

// TryResolve resolves the binding of t registered under key within this scope,
// reporting false when there is none. It panics when the scope is disposed.
func (s *Scope) TryResolve(t reflect.Type, key Key) (interface{}, bool) {
	if s.isDisposed() {
		panic(s.disposedError(t, key))
	}
	return s.parent.tryResolve(s, t, key)
}

// Construct calls constructor once, resolving its parameters from params and this scope.
func (s *Scope) Construct(constructor ConstructorFunc, params ...InjectionParameter) (interface{}, error) {
	return s.parent.constructWith(s, constructor, WithOverrides(params...))
}

// AutoWire injects the inject-tagged fields of instance from params and this scope.
func (s *Scope) AutoWire(instance interface{}, params ...InjectionParameter) error {
	return s.parent.autoWireWith(s, instance, WithOverrides(params...))
}

// getOrCreate returns the scope's instance of a scoped binding, building it on first use.
func (s *Scope) getOrCreate(binding *registry.Binding) (interface{}, error) {
	return s.instances.getOrCreate(binding.ID(), func() (interface{}, error) {
		instance, err := s.parent.construct(s, binding)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		if !s.disposed {
			s.creationOrder = append(s.creationOrder, instance)
			s.mu.Unlock()
			return instance, nil
		}
		s.mu.Unlock()

		// The scope was disposed while the instance was being built.
		var cause error
		if disposable, ok := instance.(Disposable); ok {
			cause = disposable.Dispose()
		}
		return nil, &ResolutionError{
			Type:    binding.AbstractType,
			Key:     binding.Key,
			Context: "scope disposed during creation",
			Cause:   cause,
		}
	})
}

// CreateChildScope creates a child scope with its own scoped instances.
// Child scopes are disposed when the parent is disposed.
func (s *Scope) CreateChildScope() *Scope {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		panic("cannot create child scope from disposed scope")
	}

	child := newScope(s.parent)
	s.children = append(s.children, child)
	return child
}

// Dispose releases resources held by this scope.
// Child scopes are disposed first, then Disposable instances in reverse
// creation order (dependents before their dependencies).
func (s *Scope) Dispose() error {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return nil
	}
	s.disposed = true
	children, created := s.children, s.creationOrder
	s.children, s.creationOrder = nil, nil
	s.mu.Unlock()

	var errs []error

	for _, child := range children {
		if err := child.Dispose(); err != nil {
			errs = append(errs, fmt.Errorf("child scope disposal error: %w", err))
		}
	}

	for i := len(created) - 1; i >= 0; i-- {
		if disposable, ok := created[i].(Disposable); ok {
			if err := disposable.Dispose(); err != nil {
				errs = append(errs, fmt.Errorf("disposal error for %T: %w", created[i], err))
			}
		}
	}

	s.parent.log.V(1).Info("scope disposed", "instances", len(created), "errors", len(errs))

	if len(errs) > 0 {
		return fmt.Errorf("scope disposal encountered %d error(s): %w", len(errs), errors.Join(errs...))
	}
	return nil
}
