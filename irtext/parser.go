package irtext

import (
	"sort"
	"strings"

	"github.com/tachyonhpc/tachyon/diag"
	"github.com/tachyonhpc/tachyon/ir"
)

type parser struct {
	lines   []string
	ln      int
	callees map[string]bool
}

func newParser(source string) *parser {
	return &parser{
		lines:   strings.Split(source, "\n"),
		callees: make(map[string]bool),
	}
}

func (p *parser) errf(format string, args ...any) error {
	return diag.New(diag.PhaseParse, diag.KindInvalidInput,
		"line %d: "+format, append([]any{p.ln + 1}, args...)...)
}

// clean strips the comment and surrounding whitespace from a line.
func clean(line string) string {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

// name strips the leading '@' from a function reference.
func name(tok string) (string, bool) {
	if !strings.HasPrefix(tok, "@") || len(tok) < 2 {
		return "", false
	}
	return tok[1:], true
}

func (p *parser) parse() (*ir.Module, *Info, error) {
	m := ir.NewModule("module")
	info := &Info{}

	for p.ln < len(p.lines) {
		line := clean(p.lines[p.ln])
		if line == "" {
			p.ln++
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "module":
			if len(fields) != 2 {
				return nil, nil, p.errf("module directive wants a name")
			}
			m.Name = fields[1]
			p.ln++

		case "func":
			if err := p.parseFunc(m, info, line); err != nil {
				return nil, nil, err
			}

		case "declare":
			if err := p.parseDeclare(m, info, fields[1:]); err != nil {
				return nil, nil, err
			}
			p.ln++

		case "barrier":
			if len(fields) != 2 {
				return nil, nil, p.errf("barrier directive wants a function name")
			}
			n, ok := name(fields[1])
			if !ok {
				return nil, nil, p.errf("barrier name must start with @")
			}
			info.Barrier = n
			p.ln++

		default:
			return nil, nil, p.errf("unexpected %q at top level", fields[0])
		}
	}

	// External symbols referenced only at call sites, in stable order.
	missing := make([]string, 0, len(p.callees))
	for callee := range p.callees {
		if m.Func(callee) == nil {
			missing = append(missing, callee)
		}
	}
	sort.Strings(missing)
	for _, callee := range missing {
		m.Declare(callee, false)
	}
	return m, info, nil
}

func (p *parser) parseDeclare(m *ir.Module, info *Info, fields []string) error {
	if len(fields) == 0 {
		return p.errf("declare wants a function name")
	}
	n, ok := name(fields[0])
	if !ok {
		return p.errf("declared name must start with @")
	}
	f := m.NewFunc(n)
	if !f.IsDecl() {
		return p.errf("@%s already has a body", n)
	}
	for _, attr := range fields[1:] {
		switch attr {
		case "intrinsic":
			f.Intrinsic = true
		case "splitter":
			info.Splitters = append(info.Splitters, n)
		case "kernel":
			return p.errf("a declaration cannot be a kernel")
		default:
			return p.errf("unknown attribute %q", attr)
		}
	}
	return nil
}

func (p *parser) parseFunc(m *ir.Module, info *Info, header string) error {
	rest := strings.TrimSpace(strings.TrimPrefix(header, "func"))
	if !strings.HasSuffix(rest, "{") {
		return p.errf("func header must end with '{'")
	}
	rest = strings.TrimSpace(strings.TrimSuffix(rest, "{"))

	var params []string
	var attrs []string
	nameTok := rest
	if i := strings.IndexByte(rest, '('); i >= 0 {
		j := strings.IndexByte(rest, ')')
		if j < i {
			return p.errf("unbalanced parameter list")
		}
		nameTok = strings.TrimSpace(rest[:i])
		for _, prm := range strings.Split(rest[i+1:j], ",") {
			if prm = strings.TrimSpace(prm); prm != "" {
				params = append(params, prm)
			}
		}
		attrs = strings.Fields(rest[j+1:])
	} else {
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			return p.errf("func wants a name")
		}
		nameTok, attrs = fields[0], fields[1:]
	}

	n, ok := name(nameTok)
	if !ok {
		return p.errf("function name must start with @")
	}
	f := m.NewFunc(n, params...)
	if !f.IsDecl() {
		return p.errf("@%s defined twice", n)
	}
	f.Params = params
	for _, attr := range attrs {
		switch attr {
		case "kernel":
			info.Kernels = append(info.Kernels, n)
		case "splitter":
			info.Splitters = append(info.Splitters, n)
		case "intrinsic":
			f.Intrinsic = true
		default:
			return p.errf("unknown attribute %q", attr)
		}
	}

	// Collect body lines up to the closing brace.
	start := p.ln + 1
	end := -1
	for i := start; i < len(p.lines); i++ {
		if clean(p.lines[i]) == "}" {
			end = i
			break
		}
	}
	if end < 0 {
		return p.errf("missing '}' for @%s", n)
	}

	// First pass: create blocks in definition order. The first defined
	// label becomes the entry block.
	blocks := make(map[string]*ir.BasicBlock)
	for i := start; i < end; i++ {
		line := clean(p.lines[i])
		if line == "" || !strings.HasSuffix(line, ":") {
			continue
		}
		p.ln = i
		label, anns, err := p.parseLabel(line)
		if err != nil {
			return err
		}
		if _, dup := blocks[label]; dup {
			return p.errf("duplicate label %q", label)
		}
		b := f.NewBlock(label)
		b.Annotations = anns
		blocks[label] = b
	}

	// Second pass: instructions and terminators.
	var cur *ir.BasicBlock
	for i := start; i < end; i++ {
		p.ln = i
		line := clean(p.lines[i])
		if line == "" {
			continue
		}
		if strings.HasSuffix(line, ":") {
			label, _, _ := p.parseLabel(line)
			cur = blocks[label]
			continue
		}
		if cur == nil {
			return p.errf("instruction outside a block")
		}
		if cur.Term.Op != ir.OpNone {
			return p.errf("block %q already terminated", cur.Label)
		}
		if err := p.parseInstr(f, cur, blocks, line); err != nil {
			return err
		}
	}

	p.ln = end + 1
	return nil
}

func (p *parser) parseLabel(line string) (string, []string, error) {
	line = strings.TrimSuffix(line, ":")
	var anns []string
	if i := strings.IndexByte(line, '['); i >= 0 {
		j := strings.IndexByte(line, ']')
		if j < i {
			return "", nil, p.errf("unbalanced annotation list")
		}
		for _, a := range strings.Split(line[i+1:j], ",") {
			if a = strings.TrimSpace(a); a != "" {
				anns = append(anns, a)
			}
		}
		line = line[:i]
	}
	label := strings.TrimSpace(line)
	if label == "" {
		return "", nil, p.errf("empty label")
	}
	return label, anns, nil
}

func (p *parser) parseInstr(f *ir.Function, bb *ir.BasicBlock, blocks map[string]*ir.BasicBlock, line string) error {
	result := ""
	if i := strings.Index(line, " = "); i >= 0 {
		result = strings.TrimSpace(line[:i])
		line = strings.TrimSpace(line[i+3:])
	}

	word := line
	rest := ""
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		word = line[:i]
		rest = strings.TrimSpace(line[i+1:])
	}

	target := func(label string) (ir.BlockID, error) {
		b, ok := blocks[label]
		if !ok {
			return ir.NoBlock, p.errf("unknown label %q", label)
		}
		return b.ID, nil
	}

	switch word {
	case "op":
		if rest == "" {
			return p.errf("empty op")
		}
		bb.Instrs = append(bb.Instrs, ir.Compute(result, rest))

	case "call":
		callee, args, err := p.parseCallOperands(rest)
		if err != nil {
			return err
		}
		n, ok := name(callee)
		if !ok {
			return p.errf("call target must start with @")
		}
		p.callees[n] = true
		bb.Instrs = append(bb.Instrs, ir.Call(result, n, args...))

	case "call_indirect":
		ptr, args, err := p.parseCallOperands(rest)
		if err != nil {
			return err
		}
		bb.Instrs = append(bb.Instrs, ir.Instruction{
			Op:  ir.OpCallIndirect,
			Imm: ir.CallIndirectImm{Ptr: ptr, Args: args, Result: result},
		})

	case "br":
		if result != "" {
			return p.errf("br produces no result")
		}
		to, err := target(rest)
		if err != nil {
			return err
		}
		bb.Term = ir.Br(to)

	case "condbr":
		if result != "" {
			return p.errf("condbr produces no result")
		}
		ops := strings.FieldsFunc(rest, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
		if len(ops) != 3 {
			return p.errf("condbr wants cond, then, else")
		}
		then, err := target(ops[1])
		if err != nil {
			return err
		}
		els, err := target(ops[2])
		if err != nil {
			return err
		}
		bb.Term = ir.CondBr(ops[0], then, els)

	case "ret":
		if result != "" {
			return p.errf("ret produces no result")
		}
		bb.Term = ir.Ret(rest)

	default:
		return p.errf("unknown instruction %q", word)
	}
	return nil
}

// parseCallOperands splits "callee(a, b)" or a bare "callee" into the
// callee token and its argument list.
func (p *parser) parseCallOperands(s string) (string, []string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil, p.errf("call wants a target")
	}
	i := strings.IndexByte(s, '(')
	if i < 0 {
		return s, nil, nil
	}
	j := strings.LastIndexByte(s, ')')
	if j < i {
		return "", nil, p.errf("unbalanced argument list")
	}
	var args []string
	for _, a := range strings.Split(s[i+1:j], ",") {
		if a = strings.TrimSpace(a); a != "" {
			args = append(args, a)
		}
	}
	return strings.TrimSpace(s[:i]), args, nil
}
