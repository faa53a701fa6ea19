package nasc

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// tagOptions represents parsed options from an inject tag.
type tagOptions struct {
	skip     bool   // Don't inject this field
	optional bool   // Leave the field untouched if nothing is bound
	key      Key    // Keyed binding to use
	name     string // Parameter name used for overrides, defaults to the field name
}

// parseInjectTag parses an inject struct tag and returns options.
// Supported formats:
//   - `inject:""` - basic injection
//   - `inject:"-"` - never injected
//   - `inject:"optional"` - optional injection
//   - `inject:"key=foo"` - keyed binding
//   - `inject:"name=dsn"` - parameter name seen by overrides
//   - `inject:"optional,key=foo"` - combined options
func parseInjectTag(tag string) tagOptions {
	opts := tagOptions{}

	if tag == "-" {
		opts.skip = true
		return opts
	}

	for _, part := range strings.Split(tag, ",") {
		part = strings.TrimSpace(part)

		switch {
		case part == "optional":
			opts.optional = true
		case strings.HasPrefix(part, "key="):
			opts.key = KeyOf(strings.TrimPrefix(part, "key="))
		case strings.HasPrefix(part, "name="):
			opts.name = strings.TrimPrefix(part, "name=")
		}
	}

	return opts
}

// AutoWire injects dependencies into the inject-tagged fields of a struct.
// Each field is taken from the first matching entry of params, matched by field type
// and field name, or resolved from the container.
//
// Example:
//
//	type Service struct {
//	    Logger  Logger `inject:""`
//	    Cache   Cache  `inject:"optional"`
//	    FileLog Logger `inject:"key=file"`
//	    DSN     string `inject:""`
//	}
//
//	service := &Service{}
//	err := container.AutoWire(service, nasc.Named("DSN", "postgres://localhost/app"))
func (n *Nasc) AutoWire(instance interface{}, params ...InjectionParameter) error {
	return n.autoWireWith(n, instance, WithOverrides(params...))
}

func (n *Nasc) autoWireWith(r Resolver, instance interface{}, overrides Overrides) error {
	if instance == nil {
		return errors.New("cannot auto-wire nil instance")
	}

	value := reflect.ValueOf(instance)
	if value.Kind() != reflect.Ptr || value.IsNil() || value.Elem().Kind() != reflect.Struct {
		return errors.Errorf("AutoWire requires a non-nil pointer to struct, got %T", instance)
	}

	return n.autoWire(r, value, overrides)
}

// autoWire injects the fields of the struct pointed to by value.
func (n *Nasc) autoWire(r Resolver, value reflect.Value, overrides Overrides) error {
	elem := value.Elem()

	for _, field := range n.fields.getFieldInfo(elem.Type()) {
		name := field.options.name
		if name == "" {
			name = field.name
		}

		resolved, err := n.resolveParameter(r, field.typ, name, overrides, field.options.key, field.options.optional)
		if err != nil {
			return errors.Wrapf(err, "failed to inject field %s", field.name)
		}
		if !resolved.IsValid() {
			continue
		}

		elem.Field(field.index).Set(resolved)
	}

	return nil
}
