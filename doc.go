// Package nasc provides a dependency injection container for Go whose
// constructor and field injection honor explicit parameter overrides.
//
// Nasc (Old Irish: "Link" or "Bond") resolves instances by type and optional key.
// Whenever it builds something, every dependency is first offered to an ordered list
// of InjectionParameter values; the first one that matches wins, and only otherwise
// is the dependency resolved from the container.
//
// # Quick Start
//
//	container := nasc.New()
//	container.Bind((*Logger)(nil), &ConsoleLogger{})
//	logger, err := nasc.Resolve[Logger](container, nasc.NoKey, false)
//
// # Typed Resolution
//
// Resolve, MustResolve, TryResolve and ResolveOrDefault work against any Resolver,
// the container and its scopes included:
//
//	logger := nasc.ResolveOrDefault[Logger](container, nopLogger, nasc.NoKey)
//
// # Overrides
//
// Parameters can be attached to a registration or supplied to a single call:
//
//	container.BindConstructor((*Repo)(nil), NewRepo,
//	    nasc.WithParameterNames("db", "table"),
//	    nasc.WithParameters(nasc.Named("table", "users")))
//
//	repo, err := container.Construct(NewRepo, nasc.Typed[Logger](testLogger))
//
// ResolveOrParameter exposes the decision itself for custom injectors.
//
// # Keys
//
// Several bindings of one type are told apart by key:
//
//	container.Bind((*Logger)(nil), &FileLogger{}, nasc.WithKey("file"))
//	fileLogger, err := nasc.Resolve[Logger](container, nasc.KeyOf("file"), false)
//
// # Lifetimes
//
// Transient, Singleton, Scoped and Factory bindings are supported. Scoped bindings
// are resolved from a Scope:
//
//	scope := container.CreateScope()
//	defer scope.Dispose()
//	uow := nasc.MustResolve[UnitOfWork](scope, nasc.NoKey)
//
// # Thread Safety
//
// Registration and resolution are safe for concurrent use.
package nasc
