package nasc

import (
	"sync"

	"github.com/toutaio/toutago-nasc-resolver/registry"
)

// cachedInstance holds a value and ensures it's created only once.
type cachedInstance struct {
	value interface{}
	err   error
	once  sync.Once
}

// instanceCache holds lazily created instances per binding.
// The container uses one for singletons, every Scope one for its scoped instances.
type instanceCache struct {
	instances map[registry.ID]*cachedInstance
	mu        sync.RWMutex
}

func newInstanceCache() *instanceCache {
	return &instanceCache{
		instances: make(map[registry.ID]*cachedInstance),
	}
}

// getOrCreate retrieves an existing instance or creates it using the provided factory.
// The factory is called exactly once per binding, even under concurrent access, and
// runs outside the cache lock so it may resolve other bindings.
//
// This method is goroutine-safe.
func (c *instanceCache) getOrCreate(id registry.ID, factory func() (interface{}, error)) (interface{}, error) {
	c.mu.RLock()
	instance, exists := c.instances[id]
	c.mu.RUnlock()

	if !exists {
		c.mu.Lock()
		instance, exists = c.instances[id]
		if !exists {
			instance = &cachedInstance{}
			c.instances[id] = instance
		}
		c.mu.Unlock()
	}

	instance.once.Do(func() {
		instance.value, instance.err = factory()
	})

	return instance.value, instance.err
}

// len returns the number of cached entries.
func (c *instanceCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.instances)
}
