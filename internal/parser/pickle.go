package parser

import (
	"encoding/gob"
	"fmt"
	"os"

	"mltlc/internal/ir"
	"mltlc/internal/program"
	"mltlc/internal/types"
)

// pickleDoc is the flat, gob-encodable shadow of a Program: every IR node
// becomes one pickleNode keyed by its original id, referencing children by
// id rather than by pointer, since gob cannot walk the interface-typed,
// cyclic-by-parent-backref Expression graph directly.
type pickleDoc struct {
	Nodes    []pickleNode
	Sections []program.Section
	Signals  map[string]uint64
	Defines  map[string]uint64
	Atomics  map[string]uint64
	Structs  map[string]pickleStruct
	FTSpecs  []uint64
	PTSpecs  []uint64
}

type pickleStruct struct {
	Symbol      string
	Members     []string
	MemberTypes []typeDTO
}

type pickleNode struct {
	ID    uint64
	Kind  string
	Type  typeDTO
	Engine int
	AtomicID int
	BPD, WPD int
	SCQSize, TotalSCQSize, SCQStart, SCQEnd int

	Symbol        string
	ConstKind     int
	BoolVal       bool
	IntVal        int64
	FltVal        float64
	SignalID      int
	OpKind        int
	TKind         int
	IntervalLB    int
	IntervalUB    int
	ProbBound     float64
	Members       []string
	Member        string
	AggKind       int
	BoundVar      string
	N             int
	FormulaNumber int
	Children      []uint64
}

type typeDTO struct {
	Tag          string
	Const        bool
	Width        int
	Signed       bool
	StructSymbol string
	Member       *typeDTO
}

func toTypeDTO(t types.Type) typeDTO {
	switch v := t.(type) {
	case types.NoType:
		return typeDTO{Tag: "none"}
	case types.BoolType:
		return typeDTO{Tag: "bool", Const: v.Const}
	case types.IntType:
		return typeDTO{Tag: "int", Const: v.Const, Width: v.Width, Signed: v.Signed}
	case types.FloatType:
		return typeDTO{Tag: "float", Const: v.Const, Width: v.Width}
	case types.SetType:
		m := toTypeDTO(v.Member)
		return typeDTO{Tag: "set", Const: v.Const, Member: &m}
	case types.StructType:
		return typeDTO{Tag: "struct", Const: v.Const, StructSymbol: v.Symbol}
	case types.ContractValueType:
		return typeDTO{Tag: "contract"}
	default:
		return typeDTO{Tag: "none"}
	}
}

func fromTypeDTO(d typeDTO) types.Type {
	switch d.Tag {
	case "bool":
		return types.BoolType{Const: d.Const}
	case "int":
		return types.IntType{Width: d.Width, Signed: d.Signed, Const: d.Const}
	case "float":
		return types.FloatType{Width: d.Width, Const: d.Const}
	case "set":
		member := types.Type(types.NoType{})
		if d.Member != nil {
			member = fromTypeDTO(*d.Member)
		}
		return types.SetType{Member: member, Const: d.Const}
	case "struct":
		return types.StructType{Symbol: d.StructSymbol, Const: d.Const}
	case "contract":
		return types.ContractValueType{}
	default:
		return types.NoType{}
	}
}

// SavePickle writes p, in its current (possibly post-pipeline) state, to an
// opaque gob-encoded file (§6, `--write-pickle`).
func SavePickle(path string, p *program.Program) error {
	doc := toPickleDoc(p)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(doc); err != nil {
		return fmt.Errorf("encoding pickle: %w", err)
	}
	return nil
}

// LoadPickle reads back a program saved by SavePickle, bypassing the
// parser entirely (§6, `.pickle` input).
func LoadPickle(path string) (*program.Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var doc pickleDoc
	if err := gob.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding pickle: %w", err)
	}
	return fromPickleDoc(&doc)
}

func toPickleDoc(p *program.Program) *pickleDoc {
	doc := &pickleDoc{
		Sections: p.Sections,
		Signals:  map[string]uint64{},
		Defines:  map[string]uint64{},
		Atomics:  map[string]uint64{},
		Structs:  map[string]pickleStruct{},
	}
	seen := map[uint64]bool{}

	visit := func(e ir.Expression) {
		visitNode(e, seen, &doc.Nodes)
	}

	for name, s := range p.Signals {
		visit(s)
		doc.Signals[name] = s.ID()
	}
	for name, e := range p.Defines {
		visit(e)
		doc.Defines[name] = e.ID()
	}
	for name, a := range p.Atomics {
		visit(a)
		doc.Atomics[name] = a.ID()
	}
	for name, sd := range p.Structs {
		mts := make([]typeDTO, len(sd.MemberTypes))
		for i, mt := range sd.MemberTypes {
			mts[i] = toTypeDTO(mt)
		}
		doc.Structs[name] = pickleStruct{Symbol: sd.Symbol, Members: sd.Members, MemberTypes: mts}
	}
	for _, f := range p.FTSpecs {
		visit(f)
		doc.FTSpecs = append(doc.FTSpecs, f.ID())
	}
	for _, f := range p.PTSpecs {
		visit(f)
		doc.PTSpecs = append(doc.PTSpecs, f.ID())
	}

	return doc
}

func visitNode(e ir.Expression, seen map[uint64]bool, out *[]pickleNode) {
	if e == nil || seen[e.ID()] {
		return
	}
	seen[e.ID()] = true
	for _, c := range e.Children() {
		visitNode(c, seen, out)
	}

	n := pickleNode{
		ID:           e.ID(),
		Kind:         e.Kind(),
		Type:         toTypeDTO(e.Type()),
		Engine:       int(e.Engine()),
		AtomicID:     e.AtomicID(),
		BPD:          e.BPD(),
		WPD:          e.WPD(),
		SCQSize:      e.SCQSize(),
		TotalSCQSize: e.TotalSCQSize(),
	}
	n.SCQStart, n.SCQEnd = e.SCQOffset()
	for _, c := range e.Children() {
		n.Children = append(n.Children, c.ID())
	}

	switch t := e.(type) {
	case *ir.Constant:
		n.ConstKind = int(t.CKind)
		n.BoolVal, n.IntVal, n.FltVal = t.BoolVal, t.IntVal, t.FltVal
	case *ir.Signal:
		n.Symbol, n.SignalID = t.Symbol, t.SignalID
	case *ir.Variable:
		n.Symbol = t.Symbol
	case *ir.AtomicRef:
		n.Symbol = t.Symbol
	case *ir.Operator:
		n.OpKind = int(t.OpKind)
	case *ir.TemporalOperator:
		n.TKind = int(t.TKind)
		n.IntervalLB, n.IntervalUB = t.Interval.LB, t.Interval.UB
	case *ir.ProbabilityOperator:
		n.ProbBound = t.Bound
	case *ir.Struct:
		n.Symbol, n.Members = t.Symbol, t.Members
	case *ir.StructAccess:
		n.Member = t.Member
	case *ir.FunctionCall:
		n.Symbol = t.Symbol
	case *ir.SetAggregation:
		n.AggKind, n.BoundVar, n.N = int(t.AggKind), t.BoundVar, t.N
	case *ir.Formula:
		n.Symbol, n.FormulaNumber = t.Symbol, t.FormulaNumber
	case *ir.Contract:
		n.Symbol, n.FormulaNumber = t.Symbol, t.FormulaNumber
	}

	*out = append(*out, n)
}

func fromPickleDoc(doc *pickleDoc) (*program.Program, error) {
	byID := make(map[uint64]pickleNode, len(doc.Nodes))
	for _, n := range doc.Nodes {
		byID[n.ID] = n
	}
	built := make(map[uint64]ir.Expression, len(doc.Nodes))

	var build func(id uint64) (ir.Expression, error)
	build = func(id uint64) (ir.Expression, error) {
		if e, ok := built[id]; ok {
			return e, nil
		}
		n, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("pickle: dangling node reference %d", id)
		}

		children := make([]ir.Expression, len(n.Children))
		for i, cid := range n.Children {
			c, err := build(cid)
			if err != nil {
				return nil, err
			}
			children[i] = c
		}

		e, err := buildOne(n, children)
		if err != nil {
			return nil, err
		}
		e.SetType(fromTypeDTO(n.Type))
		e.SetEngine(types.R2U2Engine(n.Engine))
		e.SetAtomicID(n.AtomicID)
		e.SetPD(n.BPD, n.WPD)
		e.SetSCQSize(n.SCQSize)
		e.SetTotalSCQSize(n.TotalSCQSize)
		e.SetSCQOffset(n.SCQStart, n.SCQEnd)

		built[id] = e
		return e, nil
	}

	p := program.New()
	p.Sections = doc.Sections

	for name, id := range doc.Signals {
		e, err := build(id)
		if err != nil {
			return nil, err
		}
		sig, ok := e.(*ir.Signal)
		if !ok {
			return nil, fmt.Errorf("pickle: signal %s did not decode as *ir.Signal", name)
		}
		p.Signals[name] = sig
	}
	for name, id := range doc.Defines {
		e, err := build(id)
		if err != nil {
			return nil, err
		}
		p.Defines[name] = e
	}
	for name, id := range doc.Atomics {
		e, err := build(id)
		if err != nil {
			return nil, err
		}
		a, ok := e.(*ir.AtomicRef)
		if !ok {
			return nil, fmt.Errorf("pickle: atomic %s did not decode as *ir.AtomicRef", name)
		}
		p.Atomics[name] = a
	}
	for name, sd := range doc.Structs {
		mts := make([]types.Type, len(sd.MemberTypes))
		for i, mt := range sd.MemberTypes {
			mts[i] = fromTypeDTO(mt)
		}
		p.Structs[name] = &program.StructDef{Symbol: sd.Symbol, Members: sd.Members, MemberTypes: mts}
	}
	for _, id := range doc.FTSpecs {
		e, err := build(id)
		if err != nil {
			return nil, err
		}
		f, ok := e.(*ir.Formula)
		if !ok {
			return nil, fmt.Errorf("pickle: FT spec %d did not decode as *ir.Formula", id)
		}
		p.FTSpecs = append(p.FTSpecs, f)
	}
	for _, id := range doc.PTSpecs {
		e, err := build(id)
		if err != nil {
			return nil, err
		}
		f, ok := e.(*ir.Formula)
		if !ok {
			return nil, fmt.Errorf("pickle: PT spec %d did not decode as *ir.Formula", id)
		}
		p.PTSpecs = append(p.PTSpecs, f)
	}

	return p, nil
}

func buildOne(n pickleNode, children []ir.Expression) (ir.Expression, error) {
	switch n.Kind {
	case "Constant":
		switch ir.ConstKind(n.ConstKind) {
		case ir.ConstBool:
			return ir.NewConstantBool(noPos, n.BoolVal), nil
		case ir.ConstInt:
			return ir.NewConstantInt(noPos, n.IntVal), nil
		default:
			return ir.NewConstantFloat(noPos, n.FltVal), nil
		}
	case "Signal":
		s := ir.NewSignal(noPos, n.Symbol)
		s.SignalID = n.SignalID
		return s, nil
	case "Variable":
		return ir.NewVariable(noPos, n.Symbol), nil
	case "AtomicRef":
		if len(children) != 1 {
			return nil, fmt.Errorf("pickle: AtomicRef %s missing its definition child", n.Symbol)
		}
		return ir.NewAtomicRef(noPos, n.Symbol, children[0]), nil
	case "Operator":
		return ir.NewOperator(noPos, ir.OperatorKind(n.OpKind), children...), nil
	case "TemporalOperator":
		return ir.NewTemporalOperator(noPos, ir.TemporalKind(n.TKind), types.NewInterval(n.IntervalLB, n.IntervalUB), children...), nil
	case "ProbabilityOperator":
		if len(children) != 1 {
			return nil, fmt.Errorf("pickle: ProbabilityOperator missing its body child")
		}
		return ir.NewProbabilityOperator(noPos, n.ProbBound, children[0]), nil
	case "SetExpression":
		return ir.NewSetExpression(noPos, children...), nil
	case "Struct":
		return ir.NewStruct(noPos, n.Symbol, n.Members, children), nil
	case "StructAccess":
		if len(children) != 1 {
			return nil, fmt.Errorf("pickle: StructAccess missing its base child")
		}
		return ir.NewStructAccess(noPos, children[0], n.Member), nil
	case "FunctionCall":
		return ir.NewFunctionCall(noPos, n.Symbol, children...), nil
	case "SetAggregation":
		if len(children) != 2 {
			return nil, fmt.Errorf("pickle: SetAggregation needs exactly 2 children, got %d", len(children))
		}
		return ir.NewSetAggregation(noPos, ir.SetAggKind(n.AggKind), n.BoundVar, children[0], children[1], n.N), nil
	case "Formula":
		if len(children) != 1 {
			return nil, fmt.Errorf("pickle: Formula %s missing its body child", n.Symbol)
		}
		return ir.NewFormula(noPos, n.Symbol, n.FormulaNumber, children[0]), nil
	case "Contract":
		if len(children) != 2 {
			return nil, fmt.Errorf("pickle: Contract %s needs exactly 2 children", n.Symbol)
		}
		return ir.NewContract(noPos, n.Symbol, n.FormulaNumber, children[0], children[1]), nil
	default:
		return nil, fmt.Errorf("pickle: unknown node kind %q", n.Kind)
	}
}
