package ir

import "fmt"

// Module is an ordered collection of function definitions and declarations
type Module struct {
	Name string

	functions []*Function
	byName    map[string]*Function
}

// NewModule creates an empty module
func NewModule(name string) *Module {
	return &Module{Name: name, byName: make(map[string]*Function)}
}

// AddFunction attaches fn; names must be unique within the module
func (m *Module) AddFunction(fn *Function) error {
	if _, exists := m.byName[fn.Name]; exists {
		return fmt.Errorf("function @%s already defined", fn.Name)
	}
	fn.module = m
	m.functions = append(m.functions, fn)
	m.byName[fn.Name] = fn
	return nil
}

// Functions returns the functions in source order
func (m *Module) Functions() []*Function { return m.functions }

// Function looks up a function by name
func (m *Module) Function(name string) *Function { return m.byName[name] }

// FunctionNames returns the names of all functions in source order
func (m *Module) FunctionNames() []string {
	names := make([]string, len(m.functions))
	for i, fn := range m.functions {
		names[i] = fn.Name
	}
	return names
}

// Uses returns every instruction in the module that references fn, once
// per operand slot, whether as callee or as an argument.
func (m *Module) Uses(fn *Function) []*Instruction {
	var users []*Instruction
	for _, g := range m.functions {
		id, ok := g.consts[constKey{kind: KindGlobal, typ: Ptr, lit: fn.Name}]
		if !ok {
			continue
		}
		for _, u := range g.values[id].Users() {
			if inst := g.Instruction(u); inst != nil {
				users = append(users, inst)
			}
		}
	}
	return users
}
