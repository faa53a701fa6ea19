package nasc

import (
	"io"
	"reflect"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// configParameter is a named parameter whose value came from configuration.
type configParameter struct {
	name  string
	value interface{}
}

// Match accepts the named parameter when the configured value fits its type.
func (p *configParameter) Match(t reflect.Type, name string) bool {
	if name != p.name {
		return false
	}
	if p.value == nil {
		return isNillable(t)
	}
	_, err := coerce(p.value, t)
	return err == nil
}

func (p *configParameter) Value(Resolver) (interface{}, error) {
	return p.value, nil
}

func isNillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}

// ParseParameters reads a YAML mapping of parameter names to values, keeping
// document order so earlier entries win.
//
// Example:
//
//	dsn: postgres://localhost/app
//	port: 8080
//	debug: true
func ParseParameters(data []byte) ([]InjectionParameter, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to parse parameters")
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.Errorf("parameters must be a YAML mapping, got line %d", root.Line)
	}

	params := make([]InjectionParameter, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valueNode := root.Content[i], root.Content[i+1]

		var value interface{}
		if err := valueNode.Decode(&value); err != nil {
			return nil, errors.Wrapf(err, "failed to decode parameter %q", keyNode.Value)
		}
		params = append(params, &configParameter{name: keyNode.Value, value: value})
	}

	return params, nil
}

// LoadParameters reads parameters from r, see ParseParameters.
func LoadParameters(r io.Reader) ([]InjectionParameter, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read parameters")
	}
	return ParseParameters(data)
}
