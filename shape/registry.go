package shape

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownType is returned when a shape type name is not registered.
var ErrUnknownType = errors.New("unknown shape type")

// Registry maps type names to shape types.
type Registry struct {
	types map[string]Type
}

// NewRegistry creates a registry holding types.
func NewRegistry(types ...Type) *Registry {
	r := new(Registry)
	r.types = make(map[string]Type)
	for _, t := range types {
		r.Register(t)
	}
	return r
}

// DefaultRegistry creates a registry with the built in shapes.
func DefaultRegistry() *Registry {
	return NewRegistry(NewLine(), NewRectangle(), NewEllipse(), NewArrow(), NewText())
}

// Register adds or replaces t under its name.
func (r *Registry) Register(t Type) {
	r.types[t.Name()] = t
}

// Lookup finds a type by name.
func (r *Registry) Lookup(name string) (Type, error) {
	t, ok := r.types[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return t, nil
}

// Names lists registered type names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
