// Package ir implements the formula intermediate representation: a tagged
// expression DAG with parent back-references, structural traversal, and
// structural replacement (C2).
package ir

import (
	"fmt"

	"mltlc/internal/types"
)

// Expression is the common interface implemented by every IR node kind.
// Nodes are compared and hashed only by structural (prefix-string) equality;
// identity equality (==) is reserved for parent/child bookkeeping.
type Expression interface {
	fmt.Stringer

	ID() uint64
	Pos() types.Position
	Kind() string

	Type() types.Type
	SetType(types.Type)

	Children() []Expression
	SetChild(i int, e Expression)

	Parents() []Expression
	AddParent(e Expression)
	RemoveParent(e Expression)

	// BPD/WPD is the best/worst-case propagation delay computed by the
	// pass pipeline and consumed by the SCQ sizer.
	BPD() int
	WPD() int
	SetPD(bpd, wpd int)

	// Engine reports which R2U2 engine evaluates this node. It is set by
	// the atomics pass (C5 step 6) and consulted by the SCQ sizer.
	Engine() types.R2U2Engine
	SetEngine(types.R2U2Engine)

	// AtomicID is -1 until the atomics pass assigns a stable id to nodes
	// below the temporal-logic frontier (invariant I5).
	AtomicID() int
	SetAtomicID(int)

	SCQSize() int
	SetSCQSize(int)
	TotalSCQSize() int
	SetTotalSCQSize(int)
	SCQOffset() (start, end int)
	SetSCQOffset(start, end int)

	// Prefix renders the node's structural prefix-notation string, used
	// for equality, hashing, CSE keys, and atomic-id assignment.
	Prefix() string
}

var nextID uint64

func freshID() uint64 {
	nextID++
	return nextID
}

// Base is embedded by every concrete node type and carries the fields
// common to all expressions (§3): position, type, parent set, propagation
// delay, and SCQ accounting.
type Base struct {
	id       uint64
	pos      types.Position
	typ      types.Type
	parents  []Expression
	bpd, wpd int
	engine   types.R2U2Engine
	atomicID int

	scqSize      int
	totalSCQSize int
	scqStart     int
	scqEnd       int
}

func newBase(pos types.Position) Base {
	return Base{id: freshID(), pos: pos, typ: types.NoType{}, atomicID: -1}
}

func (b *Base) ID() uint64             { return b.id }
func (b *Base) Pos() types.Position    { return b.pos }
func (b *Base) Type() types.Type       { return b.typ }
func (b *Base) SetType(t types.Type)   { b.typ = t }
func (b *Base) Parents() []Expression  { return b.parents }

func (b *Base) AddParent(e Expression) {
	for _, p := range b.parents {
		if p == e {
			return
		}
	}
	b.parents = append(b.parents, e)
}

func (b *Base) RemoveParent(e Expression) {
	out := b.parents[:0]
	for _, p := range b.parents {
		if p != e {
			out = append(out, p)
		}
	}
	b.parents = out
}

func (b *Base) BPD() int          { return b.bpd }
func (b *Base) WPD() int          { return b.wpd }
func (b *Base) SetPD(bpd, wpd int) { b.bpd, b.wpd = bpd, wpd }

func (b *Base) Engine() types.R2U2Engine     { return b.engine }
func (b *Base) SetEngine(e types.R2U2Engine) { b.engine = e }

func (b *Base) AtomicID() int     { return b.atomicID }
func (b *Base) SetAtomicID(i int) { b.atomicID = i }

func (b *Base) SCQSize() int           { return b.scqSize }
func (b *Base) SetSCQSize(n int)       { b.scqSize = n }
func (b *Base) TotalSCQSize() int      { return b.totalSCQSize }
func (b *Base) SetTotalSCQSize(n int)  { b.totalSCQSize = n }
func (b *Base) SCQOffset() (int, int)  { return b.scqStart, b.scqEnd }
func (b *Base) SetSCQOffset(s, e int)  { b.scqStart, b.scqEnd = s, e }
