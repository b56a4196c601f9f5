package irtext

import (
	"github.com/tachyonhpc/tachyon/ir"
)

// Info is the classification side table of a textual module: the names
// collected from kernel and splitter attribute words plus the barrier
// directive, if present. It feeds annotation.NewSet.
type Info struct {
	Kernels   []string
	Splitters []string
	Barrier   string
}

// Parse reads a textual module. Every parsed function body is validated
// before returning.
func Parse(source string) (*ir.Module, *Info, error) {
	p := newParser(source)
	m, info, err := p.parse()
	if err != nil {
		return nil, nil, err
	}
	for _, f := range m.Funcs {
		if err := ir.Validate(f); err != nil {
			return nil, nil, err
		}
	}
	return m, info, nil
}

// Print renders a module back to its textual form. info may be nil, in
// which case no attribute words or barrier directive are emitted.
func Print(m *ir.Module, info *Info) string {
	return print(m, info)
}
