package nasc

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"

	"github.com/toutaio/toutago-nasc-resolver/registry"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// ConstructorFunc represents a constructor function type.
// Supported signatures:
//   - func() T
//   - func() (T, error)
//   - func(Dep1, Dep2, ...) T
//   - func(Dep1, Dep2, ...) (T, error)
type ConstructorFunc interface{}

// constructorInfo holds metadata about a constructor function.
type constructorInfo struct {
	fn           reflect.Value
	paramTypes   []reflect.Type
	paramNames   []string
	returnsError bool
	returnType   reflect.Type
}

// parseConstructor analyzes a constructor function and extracts metadata.
func parseConstructor(constructor ConstructorFunc) (*constructorInfo, error) {
	if constructor == nil {
		return nil, errors.New("constructor cannot be nil")
	}

	fnValue := reflect.ValueOf(constructor)
	fnType := fnValue.Type()

	if fnType.Kind() != reflect.Func {
		return nil, errors.Errorf("constructor must be a function, got %v", fnType.Kind())
	}
	if fnType.IsVariadic() {
		return nil, errors.New("constructor cannot be variadic")
	}

	numOut := fnType.NumOut()
	if numOut == 0 || numOut > 2 {
		return nil, errors.Errorf("constructor must return (T) or (T, error), got %d return values", numOut)
	}

	returnsError := false
	if numOut == 2 {
		if fnType.Out(1) != errorType {
			return nil, errors.Errorf("constructor's second return value must be error, got %v", fnType.Out(1))
		}
		returnsError = true
	}

	paramTypes := make([]reflect.Type, fnType.NumIn())
	for i := range paramTypes {
		paramTypes[i] = fnType.In(i)
	}

	return &constructorInfo{
		fn:           fnValue,
		paramTypes:   paramTypes,
		returnsError: returnsError,
		returnType:   fnType.Out(0),
	}, nil
}

// withNames returns a copy of info whose parameters carry the given names.
func (info *constructorInfo) withNames(names []string) (*constructorInfo, error) {
	if len(names) > len(info.paramTypes) {
		return nil, errors.Errorf("%d parameter names given for a constructor with %d parameters", len(names), len(info.paramTypes))
	}
	named := *info
	named.paramNames = names
	return &named, nil
}

func (info *constructorInfo) paramName(i int) string {
	if i < len(info.paramNames) {
		return info.paramNames[i]
	}
	return ""
}

// invokeConstructor calls a constructor, resolving each parameter from overrides first
// and r second.
func (n *Nasc) invokeConstructor(r Resolver, info *constructorInfo, overrides Overrides) (interface{}, error) {
	params := make([]reflect.Value, len(info.paramTypes))
	for i, paramType := range info.paramTypes {
		value, err := n.resolveParameter(r, paramType, info.paramName(i), overrides, NoKey, false)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to resolve parameter %d (%v)", i, paramType)
		}
		if !value.IsValid() {
			value = reflect.Zero(paramType)
		}
		params[i] = value
	}

	results := info.fn.Call(params)

	if info.returnsError {
		if err, _ := results[1].Interface().(error); err != nil {
			return nil, errors.Wrap(err, "constructor returned error")
		}
	}

	return results[0].Interface(), nil
}

// Construct calls constructor once, outside any binding. Each parameter is taken from the
// first matching entry of params, or resolved from the container. The parameters are
// unnamed here, so Named parameters never match; use Typed or Assignable ones.
//
// Example:
//
//	svc, err := container.Construct(NewUserService, nasc.Typed[Logger](testLogger))
func (n *Nasc) Construct(constructor ConstructorFunc, params ...InjectionParameter) (interface{}, error) {
	return n.constructWith(n, constructor, WithOverrides(params...))
}

func (n *Nasc) constructWith(r Resolver, constructor ConstructorFunc, overrides Overrides) (interface{}, error) {
	info, err := parseConstructor(constructor)
	if err != nil {
		return nil, &InvalidBindingError{Reason: fmt.Sprintf("invalid constructor: %v", err)}
	}
	instance, err := n.invokeConstructor(r, info, overrides)
	if err != nil {
		return nil, &ResolutionError{Type: info.returnType, Context: "constructor failed", Cause: err}
	}
	return instance, nil
}

// BindConstructor registers a binding using a constructor function.
// The constructor function's parameters are resolved from the binding's parameters
// (see WithParameters) and then from the container.
//
// Example:
//
//	container.BindConstructor((*UserService)(nil), NewUserService,
//	    nasc.WithParameterNames("logger", "dsn"),
//	    nasc.WithParameters(nasc.Named("dsn", "postgres://localhost/app")))
func (n *Nasc) BindConstructor(abstractType interface{}, constructor ConstructorFunc, opts ...BindOption) error {
	return n.bindConstructorWithLifetime(abstractType, constructor, LifetimeTransient, opts)
}

// SingletonConstructor registers a singleton binding using a constructor function.
//
// Example:
//
//	container.SingletonConstructor((*Database)(nil), NewDatabase)
func (n *Nasc) SingletonConstructor(abstractType interface{}, constructor ConstructorFunc, opts ...BindOption) error {
	return n.bindConstructorWithLifetime(abstractType, constructor, LifetimeSingleton, opts)
}

// ScopedConstructor registers a scoped binding using a constructor function.
func (n *Nasc) ScopedConstructor(abstractType interface{}, constructor ConstructorFunc, opts ...BindOption) error {
	return n.bindConstructorWithLifetime(abstractType, constructor, LifetimeScoped, opts)
}

func (n *Nasc) bindConstructorWithLifetime(abstractType interface{}, constructor ConstructorFunc, lifetime Lifetime, opts []BindOption) error {
	abstractT, err := typeOfToken(abstractType)
	if err != nil {
		return err
	}

	info, err := parseConstructor(constructor)
	if err != nil {
		return &InvalidBindingError{Reason: fmt.Sprintf("invalid constructor: %v", err)}
	}
	if !info.returnType.AssignableTo(abstractT) {
		return &InvalidBindingError{
			Reason: fmt.Sprintf("constructor returns %v, which is not assignable to %v", info.returnType, abstractT),
		}
	}

	cfg := newBindConfig(opts)
	if len(cfg.names) > 0 {
		if info, err = info.withNames(cfg.names); err != nil {
			return &InvalidBindingError{Reason: err.Error()}
		}
	}

	return n.register(&registry.Binding{
		AbstractType: abstractT,
		Key:          cfg.key,
		ConcreteType: info.returnType,
		Lifetime:     string(lifetime),
		Constructor:  info,
		Parameters:   cfg.parameters,
	})
}
