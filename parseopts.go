package deriv

// ParseOption is an option for lexing and parsing text.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	constsopt struct{}
	funcsopt  []string
)

// parsectx holds general data for scanning text.
type parsectx struct {
	// noconsts disables the reserved constant names.
	noconsts bool
	// nofuncs is the set of function names to scan as variables instead.
	nofuncs map[string]bool
}

// DisableConstants makes the lexer treat e and pi as variable names.
func DisableConstants() ParseOption {
	return constsopt{}
}

func (constsopt) parseOption(p parsectx) parsectx {
	p.noconsts = true
	return p
}

// DisableFuncs makes the lexer treat the given function names as variable
// names. Names that are not functions are ignored.
func DisableFuncs(names ...string) ParseOption {
	return funcsopt(names)
}

func (o funcsopt) parseOption(p parsectx) parsectx {
	m := make(map[string]bool, len(p.nofuncs)+len(o))
	for k := range p.nofuncs {
		m[k] = true
	}
	for _, k := range o {
		m[k] = true
	}
	p.nofuncs = m
	return p
}

func newparsectx(opts []ParseOption) parsectx {
	var p parsectx
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		p = opt.parseOption(p)
	}
	return p
}

// function returns the function named by an identifier, or FuncNone.
func (p *parsectx) function(name string) Func {
	if p.nofuncs[name] {
		return FuncNone
	}
	return globalfuncs[name]
}

// constant returns the value of a reserved constant name.
func (p *parsectx) constant(name string) (float64, bool) {
	if p.noconsts {
		return 0, false
	}
	return Constant(name)
}
