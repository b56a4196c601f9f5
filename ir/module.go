package ir

// Module represents one compilation unit: an ordered collection of named
// functions.
type Module struct {
	Name   string
	Funcs  []*Function
	byName map[string]*Function
}

// NewModule creates an empty module.
func NewModule(name string) *Module {
	return &Module{
		Name:   name,
		byName: make(map[string]*Function),
	}
}

// Func returns the function with the given name, or nil.
func (m *Module) Func(name string) *Function {
	return m.byName[name]
}

// NewFunc creates a function with an empty body and registers it in the
// module. If the name is already taken the existing function is returned
// unchanged; callers that need a fresh body must pick a fresh name.
func (m *Module) NewFunc(name string, params ...string) *Function {
	if f, ok := m.byName[name]; ok {
		return f
	}
	f := &Function{
		Name:   name,
		Module: m,
		Params: params,
		Entry:  NoBlock,
	}
	m.Funcs = append(m.Funcs, f)
	m.byName[name] = f
	return f
}

// Declare registers a body-less function, typically an external symbol or
// a compiler intrinsic. Declaring an already-known function only upgrades
// its intrinsic flag; it never discards a body.
func (m *Module) Declare(name string, intrinsic bool) *Function {
	f := m.NewFunc(name)
	if intrinsic {
		f.Intrinsic = true
	}
	return f
}
