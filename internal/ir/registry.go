package ir

import (
	"io"
	"sort"

	"localopts/internal/errors"
)

// PassFactory creates a fresh instance of a pass
type PassFactory func() Pass

// Registry maps pass names to factories. It is built explicitly and
// handed to the pipeline.
type Registry struct {
	factories map[string]PassFactory
	order     []string
}

// NewRegistry returns a registry holding the built-in passes. Report
// passes write to out.
func NewRegistry(out io.Writer) *Registry {
	r := &Registry{factories: make(map[string]PassFactory)}
	r.mustRegister(AlgebraicIdentityName, func() Pass { return &AlgebraicIdentity{} })
	r.mustRegister(StrengthReductionName, func() Pass { return &StrengthReduction{} })
	r.mustRegister(ConstFoldName, func() Pass { return &ConstFold{} })
	r.mustRegister(FunctionInfoName, func() Pass { return &FunctionInfo{Out: out} })
	return r
}

// Register adds a pass under name
func (r *Registry) Register(name string, factory PassFactory) error {
	if _, exists := r.factories[name]; exists {
		return errors.DuplicatePass(name)
	}
	r.factories[name] = factory
	r.order = append(r.order, name)
	return nil
}

func (r *Registry) mustRegister(name string, factory PassFactory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// Lookup instantiates the pass registered under name
func (r *Registry) Lookup(name string) (Pass, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, errors.UnknownPass(name, r.Names())
	}
	return factory(), nil
}

// Names returns the registered pass names in registration order
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// SortedNames returns the registered pass names alphabetically
func (r *Registry) SortedNames() []string {
	names := r.Names()
	sort.Strings(names)
	return names
}
