package ir

// Postorder returns every node reachable from root exactly once, children
// before parents, de-duplicated by identity (§4.1).
func Postorder(root Expression) []Expression {
	var order []Expression
	visited := make(map[uint64]bool)
	var visit func(Expression)
	visit = func(e Expression) {
		if e == nil || visited[e.ID()] {
			return
		}
		visited[e.ID()] = true
		for _, c := range e.Children() {
			visit(c)
		}
		order = append(order, e)
	}
	visit(root)
	return order
}

// Preorder returns every node reachable from root exactly once, parents
// before children, de-duplicated by identity.
func Preorder(root Expression) []Expression {
	var order []Expression
	visited := make(map[uint64]bool)
	var visit func(Expression)
	visit = func(e Expression) {
		if e == nil || visited[e.ID()] {
			return
		}
		visited[e.ID()] = true
		order = append(order, e)
		for _, c := range e.Children() {
			visit(c)
		}
	}
	visit(root)
	return order
}

// Replace substitutes new for old in every parent's child slots, preserving
// position and multiplicity, and unions new's parent set with old's (I1).
// Parents of old that are snapshotted before mutation begins, since old's
// parent slice will be cleared as each parent is rewired.
func Replace(old, new Expression) {
	if old == new {
		return
	}
	parents := append([]Expression(nil), old.Parents()...)
	for _, p := range parents {
		for i, c := range p.Children() {
			if c != nil && c.ID() == old.ID() {
				p.SetChild(i, new)
				new.AddParent(p)
			}
		}
		old.RemoveParent(p)
	}
}

// Rename produces a structural copy of body in which every Variable whose
// symbol equals varSymbol is replaced by value; every other node is
// rebuilt with a fresh identity so the copy shares no nodes with body.
func Rename(varSymbol string, value Expression, body Expression) Expression {
	memo := make(map[uint64]Expression)
	var walk func(Expression) Expression
	walk = func(e Expression) Expression {
		if e == nil {
			return nil
		}
		if cached, ok := memo[e.ID()]; ok {
			return cached
		}
		if v, ok := e.(*Variable); ok && v.Symbol == varSymbol {
			memo[e.ID()] = value
			return value
		}
		clone := shallowClone(e, walk)
		memo[e.ID()] = clone
		return clone
	}
	return walk(body)
}

// shallowClone rebuilds e with freshly cloned children (via walk), a new
// identity, and the same payload fields.
func shallowClone(e Expression, walk func(Expression) Expression) Expression {
	cloneChildren := func(kids []Expression) []Expression {
		out := make([]Expression, len(kids))
		for i, k := range kids {
			out[i] = walk(k)
		}
		return out
	}

	switch n := e.(type) {
	case *Constant:
		c := *n
		c.Base = newBase(n.Pos())
		return &c
	case *Signal:
		s := *n
		s.Base = newBase(n.Pos())
		return &s
	case *Variable:
		v := *n
		v.Base = newBase(n.Pos())
		return &v
	case *AtomicRef:
		def := walk(n.Def)
		out := NewAtomicRef(n.Pos(), n.Symbol, def)
		out.SetType(n.Type())
		return out
	case *Operator:
		out := NewOperator(n.Pos(), n.OpKind, cloneChildren(n.kids)...)
		out.SetType(n.Type())
		return out
	case *TemporalOperator:
		out := NewTemporalOperator(n.Pos(), n.TKind, n.Interval, cloneChildren(n.kids)...)
		out.SetType(n.Type())
		return out
	case *ProbabilityOperator:
		out := NewProbabilityOperator(n.Pos(), n.Bound, walk(n.kids[0]))
		out.SetType(n.Type())
		return out
	case *SetExpression:
		out := NewSetExpression(n.Pos(), cloneChildren(n.kids)...)
		out.SetType(n.Type())
		return out
	case *Struct:
		out := NewStruct(n.Pos(), n.Symbol, append([]string(nil), n.Members...), cloneChildren(n.kids))
		out.SetType(n.Type())
		return out
	case *StructAccess:
		out := NewStructAccess(n.Pos(), walk(n.kids[0]), n.Member)
		out.SetType(n.Type())
		return out
	case *FunctionCall:
		out := NewFunctionCall(n.Pos(), n.Symbol, cloneChildren(n.kids)...)
		return out
	case *SetAggregation:
		out := NewSetAggregation(n.Pos(), n.AggKind, n.BoundVar, walk(n.kids[0]), walk(n.kids[1]), n.N)
		return out
	case *Formula:
		out := NewFormula(n.Pos(), n.Symbol, n.FormulaNumber, walk(n.kids[0]))
		return out
	case *Contract:
		out := NewContract(n.Pos(), n.Symbol, n.FormulaNumber, walk(n.kids[0]), walk(n.kids[1]))
		return out
	default:
		return e
	}
}

// Clone produces a full structural copy of root with fresh node identities
// and no shared nodes, used by expand_definitions to give every inlining
// site of a definition its own IR subtree.
func Clone(root Expression) Expression {
	memo := make(map[uint64]Expression)
	var walk func(Expression) Expression
	walk = func(e Expression) Expression {
		if e == nil {
			return nil
		}
		if cached, ok := memo[e.ID()]; ok {
			return cached
		}
		clone := shallowClone(e, walk)
		memo[e.ID()] = clone
		return clone
	}
	return walk(root)
}

// StructurallyEqual reports whether a and b have identical prefix-notation
// strings (§4.1). This is the sole equality notion used by CSE and atomic
// id assignment.
func StructurallyEqual(a, b Expression) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Prefix() == b.Prefix()
}

// Reachable reports whether node is reachable from root.
func Reachable(root, node Expression) bool {
	for _, e := range Preorder(root) {
		if e.ID() == node.ID() {
			return true
		}
	}
	return false
}
