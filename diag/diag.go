package diag

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where in the compilation pipeline the diagnostic arose
type Phase string

const (
	PhaseParse     Phase = "parse"     // textual IR front end
	PhaseAnalyze   Phase = "analyze"   // call graph / loop analysis
	PhaseTransform Phase = "transform" // CFG mutation
	PhaseVerify    Phase = "verify"    // IR consistency checks
)

// Kind categorizes the diagnostic
type Kind string

const (
	KindRecursion       Kind = "recursion"          // cycle in the analyzed call graph
	KindUndefinedCallee Kind = "undefined_callee"   // body-less, non-intrinsic callee
	KindNotWorkItemLoop Kind = "not_work_item_loop" // canonical loop lacks the work-item marker
	KindMalformedIR     Kind = "malformed_ir"       // structurally invalid function
	KindUnknownSymbol   Kind = "unknown_symbol"     // reference to a name the module does not define
	KindInvalidInput    Kind = "invalid_input"
)

// Sentinel errors for errors.Is matching across package boundaries.
var (
	// ErrRecursiveCallGraph is reported when the transitive caller walk
	// re-enters a function it is still visiting.
	ErrRecursiveCallGraph = errors.New("recursive call graph")

	// ErrDeclaration is reported when a transformation needs a function
	// body and the target is declaration-only.
	ErrDeclaration = errors.New("function is a declaration")
)

// Error is the structured diagnostic type used throughout the compiler
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Func   string // enclosing or offending function name, if known
	Block  string // basic block label, if known
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Func != "" {
		b.WriteString(" in @")
		b.WriteString(e.Func)
		if e.Block != "" {
			b.WriteString(", block ")
			b.WriteString(e.Block)
		}
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// New creates a diagnostic with a formatted detail message.
func New(phase Phase, kind Kind, detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{Phase: phase, Kind: kind, Detail: detail}
}

// Wrap attaches a cause to a diagnostic.
func Wrap(phase Phase, kind Kind, cause error, detail string, args ...any) *Error {
	e := New(phase, kind, detail, args...)
	e.Cause = cause
	return e
}

// InFunc sets the enclosing function name.
func (e *Error) InFunc(name string) *Error {
	e.Func = name
	return e
}

// InBlock sets the basic block label.
func (e *Error) InBlock(label string) *Error {
	e.Block = label
	return e
}

// Convenience constructors for common diagnostics

// UndefinedCallee reports a call to a function without a body that is not
// an intrinsic. Analysis treats such callees conservatively.
func UndefinedCallee(callee string) *Error {
	return &Error{
		Phase:  PhaseAnalyze,
		Kind:   KindUndefinedCallee,
		Func:   callee,
		Detail: "function is not defined",
	}
}

// Recursion reports a cycle in the call graph entered at fn.
func Recursion(fn string) *Error {
	return &Error{
		Phase: PhaseAnalyze,
		Kind:  KindRecursion,
		Func:  fn,
		Cause: ErrRecursiveCallGraph,
	}
}
