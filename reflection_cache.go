package nasc

import (
	"reflect"
	"sync"
)

// reflectionCache caches the injectable fields of struct types so tags are
// parsed once per type.
type reflectionCache struct {
	mu     sync.RWMutex
	fields map[reflect.Type][]fieldInfo
}

// fieldInfo stores metadata about an injectable struct field.
type fieldInfo struct {
	index   int
	name    string
	typ     reflect.Type
	options tagOptions
}

func newReflectionCache() *reflectionCache {
	return &reflectionCache{
		fields: make(map[reflect.Type][]fieldInfo),
	}
}

// getFieldInfo retrieves or computes the injectable fields of a struct type.
func (rc *reflectionCache) getFieldInfo(typ reflect.Type) []fieldInfo {
	rc.mu.RLock()
	fields, exists := rc.fields[typ]
	rc.mu.RUnlock()

	if exists {
		return fields
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if fields, exists = rc.fields[typ]; exists {
		return fields
	}

	if typ.Kind() != reflect.Struct {
		rc.fields[typ] = nil
		return nil
	}

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		tag, hasInjectTag := field.Tag.Lookup("inject")
		if !hasInjectTag || field.PkgPath != "" {
			continue
		}
		opts := parseInjectTag(tag)
		if opts.skip {
			continue
		}

		fields = append(fields, fieldInfo{
			index:   i,
			name:    field.Name,
			typ:     field.Type,
			options: opts,
		})
	}

	rc.fields[typ] = fields
	return fields
}
