// Package registry provides thread-safe storage and retrieval of dependency bindings.
package registry

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// ID identifies a binding: the abstract type plus an optional key.
type ID struct {
	Type reflect.Type
	Key  Key
}

func (id ID) String() string {
	if !id.Key.IsSet() {
		return fmt.Sprintf("%v", id.Type)
	}
	return fmt.Sprintf("%v[%v]", id.Type, id.Key)
}

// Binding represents a mapping between an abstract type and the way to build it.
type Binding struct {
	// AbstractType is the type being bound (e.g., Logger interface)
	AbstractType reflect.Type

	// Key selects one of several bindings of AbstractType
	Key Key

	// ConcreteType is the implementation type (e.g., *ConsoleLogger)
	// For factory and instance bindings, this may be nil
	ConcreteType reflect.Type

	// Lifetime defines how instances are managed
	// Values: "transient", "singleton", "scoped", "factory"
	Lifetime string

	// Factory is the custom creation function for factory bindings
	Factory interface{}

	// Constructor holds constructor function metadata
	Constructor interface{}

	// Instance is a pre-built value returned as-is
	Instance interface{}

	// Parameters holds the registration-time parameter overrides
	Parameters interface{}
}

// ID returns the identity the binding is stored under.
func (b *Binding) ID() ID {
	return ID{Type: b.AbstractType, Key: b.Key}
}

// Registry provides thread-safe storage for bindings.
// It uses a map keyed by (type, key) for O(1) lookup performance.
type Registry struct {
	mu       sync.RWMutex
	bindings map[ID]*Binding
}

// New creates a new Registry instance.
func New() *Registry {
	return &Registry{
		bindings: make(map[ID]*Binding),
	}
}

// Register stores a binding in the registry.
// Returns an error if a binding for the same type and key already exists.
//
// This method is goroutine-safe.
func (r *Registry) Register(binding *Binding) error {
	if binding == nil {
		return fmt.Errorf("binding cannot be nil")
	}
	if binding.AbstractType == nil {
		return fmt.Errorf("binding must have an abstract type")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := binding.ID()
	if _, exists := r.bindings[id]; exists {
		return &BindingAlreadyExistsError{Type: binding.AbstractType, Key: binding.Key}
	}

	r.bindings[id] = binding
	return nil
}

// Get retrieves a binding by type and key.
//
// This method is goroutine-safe.
func (r *Registry) Get(abstractType reflect.Type, key Key) (*Binding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	binding, exists := r.bindings[ID{Type: abstractType, Key: key}]
	return binding, exists
}

// Has checks if a binding exists for the given type and key.
//
// This method is goroutine-safe.
func (r *Registry) Has(abstractType reflect.Type, key Key) bool {
	_, exists := r.Get(abstractType, key)
	return exists
}

// Keys returns the keys registered for a type, the default key first
// and the remaining keys ordered by their string form.
func (r *Registry) Keys(abstractType reflect.Type) []Key {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var keys []Key
	for id := range r.bindings {
		if id.Type == abstractType {
			keys = append(keys, id.Key)
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].IsSet() != keys[j].IsSet() {
			return !keys[i].IsSet()
		}
		return keys[i].String() < keys[j].String()
	})
	return keys
}

// Types returns all types that have at least one binding, ordered by name.
func (r *Registry) Types() []reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[reflect.Type]bool)
	types := make([]reflect.Type, 0, len(r.bindings))
	for id := range r.bindings {
		if !seen[id.Type] {
			seen[id.Type] = true
			types = append(types, id.Type)
		}
	}

	sort.Slice(types, func(i, j int) bool {
		return types[i].String() < types[j].String()
	})
	return types
}

// Len returns the number of stored bindings.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.bindings)
}

// BindingAlreadyExistsError is returned when attempting to register a duplicate binding.
type BindingAlreadyExistsError struct {
	Type reflect.Type
	Key  Key
}

func (e *BindingAlreadyExistsError) Error() string {
	if e.Key.IsSet() {
		return fmt.Sprintf("binding already exists for type %v with key %v", e.Type, e.Key)
	}
	return fmt.Sprintf("binding already exists for type %v", e.Type)
}
