package nasc

// Lifetime represents the lifecycle strategy for a bound dependency.
type Lifetime string

const (
	// LifetimeTransient creates a new instance on every resolution.
	// This is the default lifetime for Bind() operations.
	LifetimeTransient Lifetime = "transient"

	// LifetimeSingleton creates a single instance that is reused for all resolutions.
	// The instance is created lazily on first resolution using sync.Once for thread safety.
	LifetimeSingleton Lifetime = "singleton"

	// LifetimeScoped creates one instance per scope.
	// Each scope maintains its own instance cache, isolated from other scopes.
	LifetimeScoped Lifetime = "scoped"

	// LifetimeFactory calls a custom factory function on every resolution.
	LifetimeFactory Lifetime = "factory"
)

// FactoryFunc creates instances dynamically.
// It receives the resolver the request came through (the container or a scope).
//
// Example:
//
//	factory := func(r nasc.Resolver) (interface{}, error) {
//	    config, err := nasc.Resolve[*Config](r, nasc.NoKey, false)
//	    if err != nil {
//	        return nil, err
//	    }
//	    return NewConnection(config.DSN), nil
//	}
//	container.Factory((*Connection)(nil), factory)
type FactoryFunc func(r Resolver) (interface{}, error)
