package nasc

import (
	"fmt"
	"reflect"

	"github.com/go-logr/logr"

	"github.com/toutaio/toutago-nasc-resolver/registry"
)

// Nasc is the main dependency injection container.
// It manages bindings and resolves dependencies in a thread-safe manner,
// and implements Resolver.
type Nasc struct {
	registry   *registry.Registry
	singletons *instanceCache
	fields     *reflectionCache
	providers  []*providerEntry
	log        logr.Logger
}

var _ Resolver = (*Nasc)(nil)

// New creates a new Nasc container instance.
// Options can be provided to configure the container behavior.
//
// Example:
//
//	container := nasc.New()
//	// or with options:
//	container := nasc.New(nasc.WithLogger(logger))
func New(options ...Option) *Nasc {
	n := &Nasc{
		registry:   registry.New(),
		singletons: newInstanceCache(),
		fields:     newReflectionCache(),
		log:        logr.Discard(),
	}

	for _, opt := range options {
		if err := opt(n); err != nil {
			panic(fmt.Sprintf("failed to apply option: %v", err))
		}
	}

	return n
}

// BindOption configures a single registration.
type BindOption func(*bindConfig)

type bindConfig struct {
	key        Key
	parameters Overrides
	names      []string
}

func newBindConfig(opts []BindOption) *bindConfig {
	cfg := &bindConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// rejectNames fails registrations that have no constructor parameters to name.
func (c *bindConfig) rejectNames() error {
	if len(c.names) > 0 {
		return &InvalidBindingError{Reason: "parameter names require a constructor binding"}
	}
	return nil
}

// rejectConstruction fails registrations that never build anything, such as
// factories and instances, when they carry construction options.
func (c *bindConfig) rejectConstruction() error {
	if c.parameters.Present() {
		return &InvalidBindingError{Reason: "parameters require a binding the container constructs"}
	}
	return c.rejectNames()
}

// WithKey registers the binding under key instead of as the default binding.
func WithKey(key interface{}) BindOption {
	return func(c *bindConfig) {
		c.key = KeyOf(key)
	}
}

// WithParameters attaches explicit parameter values used whenever the binding is built.
// They take precedence over the container, in the order given. Repeated options append.
func WithParameters(params ...InjectionParameter) BindOption {
	return func(c *bindConfig) {
		c.parameters = WithOverrides(append(append([]InjectionParameter(nil), c.parameters.params...), params...)...)
	}
}

// WithParameterNames names a constructor's parameters, in order, so that
// Named parameters can target them. Only constructor bindings accept it.
func WithParameterNames(names ...string) BindOption {
	return func(c *bindConfig) {
		c.names = append([]string(nil), names...)
	}
}

// typeOfToken extracts the abstract type from a type token.
// A reflect.Type is used as-is; a pointer such as (*Logger)(nil) yields its element type.
func typeOfToken(token interface{}) (reflect.Type, error) {
	if token == nil {
		return nil, &InvalidBindingError{Reason: "abstract type cannot be nil"}
	}
	if t, ok := token.(reflect.Type); ok {
		return t, nil
	}
	t := reflect.TypeOf(token)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t, nil
}

// Bind registers a transient binding between an abstract type and a concrete implementation.
// The abstractType should be an interface pointer like (*Logger)(nil).
// The concreteType should be a pointer to the concrete struct; a fresh one is built and
// field-injected on every resolution.
//
// Example:
//
//	container.Bind((*Logger)(nil), &ConsoleLogger{})
//
// Returns an error if:
//   - Either parameter is nil
//   - The binding already exists
//   - The types are invalid
func (n *Nasc) Bind(abstractType, concreteType interface{}, opts ...BindOption) error {
	return n.bindConcrete(abstractType, concreteType, LifetimeTransient, opts)
}

// Singleton registers a singleton binding.
// The instance is created lazily on first resolution and reused for all subsequent resolutions.
//
// Example:
//
//	container.Singleton((*Database)(nil), &PostgresDB{})
func (n *Nasc) Singleton(abstractType, concreteType interface{}, opts ...BindOption) error {
	return n.bindConcrete(abstractType, concreteType, LifetimeSingleton, opts)
}

// Scoped registers a scoped binding.
// One instance is created per scope. Scoped bindings must be resolved from a Scope.
//
// Example:
//
//	container.Scoped((*UnitOfWork)(nil), &DbUnitOfWork{})
//	scope := container.CreateScope()
//	uow := nasc.MustResolve[UnitOfWork](scope, nasc.NoKey)
func (n *Nasc) Scoped(abstractType, concreteType interface{}, opts ...BindOption) error {
	return n.bindConcrete(abstractType, concreteType, LifetimeScoped, opts)
}

func (n *Nasc) bindConcrete(abstractType, concreteType interface{}, lifetime Lifetime, opts []BindOption) error {
	abstractT, err := typeOfToken(abstractType)
	if err != nil {
		return err
	}
	if concreteType == nil {
		return &InvalidBindingError{Reason: "concrete type cannot be nil"}
	}

	concreteT := reflect.TypeOf(concreteType)
	if concreteT.Kind() != reflect.Ptr || concreteT.Elem().Kind() != reflect.Struct {
		return &InvalidBindingError{
			Reason: fmt.Sprintf("concrete type must be pointer to struct, got %v", concreteT),
		}
	}
	if !concreteT.AssignableTo(abstractT) {
		return &InvalidBindingError{
			Reason: fmt.Sprintf("concrete type %v is not assignable to %v", concreteT, abstractT),
		}
	}

	cfg := newBindConfig(opts)
	if err := cfg.rejectNames(); err != nil {
		return err
	}
	return n.register(&registry.Binding{
		AbstractType: abstractT,
		Key:          cfg.key,
		ConcreteType: concreteT,
		Lifetime:     string(lifetime),
		Parameters:   cfg.parameters,
	})
}

// Factory registers a factory binding.
// The factory function is called on every resolution to create instances.
//
// Example:
//
//	container.Factory((*Connection)(nil), func(r nasc.Resolver) (interface{}, error) {
//	    config := nasc.MustResolve[*Config](r, nasc.NoKey)
//	    return NewConnection(config.DSN), nil
//	})
func (n *Nasc) Factory(abstractType interface{}, factory FactoryFunc, opts ...BindOption) error {
	abstractT, err := typeOfToken(abstractType)
	if err != nil {
		return err
	}
	if factory == nil {
		return &InvalidBindingError{Reason: "factory function cannot be nil"}
	}

	cfg := newBindConfig(opts)
	if err := cfg.rejectConstruction(); err != nil {
		return err
	}
	return n.register(&registry.Binding{
		AbstractType: abstractT,
		Key:          cfg.key,
		Lifetime:     string(LifetimeFactory),
		Factory:      factory,
	})
}

// Instance registers an already built value. Every resolution returns it.
//
// Example:
//
//	container.Instance(nasc.TypeOf[*Config](), cfg)
func (n *Nasc) Instance(abstractType, value interface{}, opts ...BindOption) error {
	abstractT, err := typeOfToken(abstractType)
	if err != nil {
		return err
	}
	if value == nil {
		return &InvalidBindingError{Reason: "instance cannot be nil"}
	}
	if valueT := reflect.TypeOf(value); !valueT.AssignableTo(abstractT) {
		return &InvalidBindingError{
			Reason: fmt.Sprintf("instance of type %v is not assignable to %v", valueT, abstractT),
		}
	}

	cfg := newBindConfig(opts)
	if err := cfg.rejectConstruction(); err != nil {
		return err
	}
	return n.register(&registry.Binding{
		AbstractType: abstractT,
		Key:          cfg.key,
		ConcreteType: reflect.TypeOf(value),
		Lifetime:     string(LifetimeSingleton),
		Instance:     value,
	})
}

func (n *Nasc) register(binding *registry.Binding) error {
	if err := n.registry.Register(binding); err != nil {
		return err
	}
	n.log.V(1).Info("binding registered", "binding", binding.ID(), "lifetime", binding.Lifetime)
	return nil
}

// Keys returns the keys registered for a type, the default key first.
func (n *Nasc) Keys(abstractType interface{}) []Key {
	abstractT, err := typeOfToken(abstractType)
	if err != nil {
		return nil
	}
	return n.registry.Keys(abstractT)
}

// Types lists every type with at least one binding, ordered by name.
func (n *Nasc) Types() []reflect.Type {
	return n.registry.Types()
}

// Has reports whether a binding exists for the type and key.
func (n *Nasc) Has(abstractType interface{}, key Key) bool {
	abstractT, err := typeOfToken(abstractType)
	if err != nil {
		return false
	}
	return n.registry.Has(abstractT, key)
}

// ResolveKeyed resolves the binding of t registered under key.
//
// The resolution behavior depends on the binding's lifetime:
//   - Transient: Creates a new instance every time
//   - Singleton: Returns the same instance (created lazily on first call)
//   - Factory: Calls the factory function to create an instance
//   - Scoped: Fails (scoped bindings must be resolved from a Scope)
func (n *Nasc) ResolveKeyed(t reflect.Type, key Key, optional bool) (interface{}, error) {
	return n.resolve(n, t, key, optional)
}

// Resolve resolves the default binding of t.
func (n *Nasc) Resolve(t reflect.Type, optional bool) (interface{}, error) {
	return n.resolve(n, t, NoKey, optional)
}

// TryResolve resolves the binding of t registered under key, reporting false when
// there is none. A binding that exists but fails to build panics with a *ResolutionError.
func (n *Nasc) TryResolve(t reflect.Type, key Key) (interface{}, bool) {
	return n.tryResolve(n, t, key)
}

// resolve looks up a binding and builds it, handing r to factories and constructors.
func (n *Nasc) resolve(r Resolver, t reflect.Type, key Key, optional bool) (interface{}, error) {
	if t == nil {
		return nil, &ResolutionError{Key: key, Context: "type cannot be nil"}
	}

	binding, ok := n.registry.Get(t, key)
	if !ok {
		if optional {
			n.log.V(1).Info("optional dependency not bound", "type", t, "key", key)
			return nil, nil
		}
		return nil, &NotFoundError{Type: t, Key: key}
	}

	return n.instantiate(r, binding)
}

func (n *Nasc) tryResolve(r Resolver, t reflect.Type, key Key) (interface{}, bool) {
	if t == nil {
		return nil, false
	}

	binding, ok := n.registry.Get(t, key)
	if !ok {
		return nil, false
	}

	instance, err := n.instantiate(r, binding)
	if err != nil {
		panic(err)
	}
	return instance, true
}

func (n *Nasc) instantiate(r Resolver, binding *registry.Binding) (interface{}, error) {
	switch Lifetime(binding.Lifetime) {
	case LifetimeTransient:
		return n.construct(r, binding)

	case LifetimeSingleton:
		// Singletons only see the root container so they never capture scoped instances.
		return n.singletons.getOrCreate(binding.ID(), func() (interface{}, error) {
			n.log.V(1).Info("creating singleton", "binding", binding.ID())
			return n.construct(n, binding)
		})

	case LifetimeScoped:
		scope, ok := r.(*Scope)
		if !ok {
			return nil, &ResolutionError{
				Type:    binding.AbstractType,
				Key:     binding.Key,
				Context: "scoped binding must be resolved from a Scope, not the container",
			}
		}
		return scope.getOrCreate(binding)

	case LifetimeFactory:
		factory, ok := binding.Factory.(FactoryFunc)
		if !ok {
			return nil, &ResolutionError{Type: binding.AbstractType, Key: binding.Key, Context: "invalid factory function"}
		}
		instance, err := factory(r)
		if err != nil {
			return nil, &ResolutionError{Type: binding.AbstractType, Key: binding.Key, Context: "factory function failed", Cause: err}
		}
		return instance, nil

	default:
		return nil, &ResolutionError{
			Type:    binding.AbstractType,
			Key:     binding.Key,
			Context: fmt.Sprintf("unknown lifetime %s", binding.Lifetime),
		}
	}
}

// construct builds one instance of a binding, resolving its dependencies from r.
func (n *Nasc) construct(r Resolver, binding *registry.Binding) (interface{}, error) {
	if binding.Instance != nil {
		return binding.Instance, nil
	}

	overrides, _ := binding.Parameters.(Overrides)

	if info, ok := binding.Constructor.(*constructorInfo); ok {
		instance, err := n.invokeConstructor(r, info, overrides)
		if err != nil {
			return nil, &ResolutionError{Type: binding.AbstractType, Key: binding.Key, Context: "constructor failed", Cause: err}
		}
		return instance, nil
	}

	instance := reflect.New(binding.ConcreteType.Elem())
	if err := n.autoWire(r, instance, overrides); err != nil {
		return nil, &ResolutionError{Type: binding.AbstractType, Key: binding.Key, Context: "field injection failed", Cause: err}
	}
	return instance.Interface(), nil
}

// resolveParameter resolves one constructor parameter or field through ResolveOrParameter
// and makes the value usable as t. An optional miss returns an invalid reflect.Value.
func (n *Nasc) resolveParameter(r Resolver, t reflect.Type, name string, overrides Overrides, key Key, optional bool) (reflect.Value, error) {
	if n.log.V(1).Enabled() {
		if _, ok := MatchOverride(t, name, overrides); ok {
			n.log.V(1).Info("using parameter override", "type", t, "name", name)
		}
	}

	value, err := ResolveOrParameter(r, t, name, overrides, key, optional)
	if err != nil {
		return reflect.Value{}, err
	}
	if value == nil {
		return reflect.Value{}, nil
	}
	return coerce(value, t)
}
