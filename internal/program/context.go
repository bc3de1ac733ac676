package program

import (
	"mltlc/internal/diag"
	"mltlc/internal/ir"
)

// Context bundles a Program with its Config and a diagnostics sink. It is
// the single object threaded through type checking and the pass pipeline,
// replacing ad hoc global lookups.
type Context struct {
	Program *Program
	Config  *Config
	Log     *diag.Logger
	Workdir *Workdir

	Errors []*diag.CompilerError

	// nextAtomicID is allocated by the compute_atomics pass (C5 step 6).
	nextAtomicID int
	// atomicByPrefix shares one atomic id across syntactically equal
	// subtrees (invariant I5).
	atomicByPrefix map[string]int
}

func NewContext(p *Program, cfg *Config, log *diag.Logger) *Context {
	return &Context{
		Program:        p,
		Config:         cfg,
		Log:            log,
		atomicByPrefix: map[string]int{},
	}
}

func (c *Context) AddError(e *diag.CompilerError) {
	c.Errors = append(c.Errors, e)
}

func (c *Context) HasErrors() bool { return len(c.Errors) > 0 }

// AtomicIDFor returns the stable atomic id for a node, allocating a fresh
// one the first time a given prefix string is seen and reusing it for
// every syntactically equal node thereafter (I5).
func (c *Context) AtomicIDFor(e ir.Expression) int {
	key := e.Prefix()
	if id, ok := c.atomicByPrefix[key]; ok {
		return id
	}
	id := c.nextAtomicID
	c.nextAtomicID++
	c.atomicByPrefix[key] = id
	return id
}

// LookupSymbol resolves a bare identifier against definitions, then
// specifications, then signals, in that order -- the order
// expand_definitions relies on when inlining a Variable (C5 step 1).
func (c *Context) LookupSymbol(symbol string) (ir.Expression, bool) {
	if def, ok := c.Program.Defines[symbol]; ok {
		return def, true
	}
	for _, f := range c.Program.AllFormulas() {
		if f.Symbol == symbol {
			return f.Body(), true
		}
	}
	if sig, ok := c.Program.Signals[symbol]; ok {
		return sig, true
	}
	return nil, false
}
