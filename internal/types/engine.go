package types

// R2U2Engine identifies which R2U2 runtime engine a program targets, which
// governs whether atomics, Booleanized signals, or raw Signals are the
// legal frontend for temporal formulas (C1, C3).
type R2U2Engine int

const (
	EngineNone R2U2Engine = iota
	EngineAtomicChecker
	EngineBooleanizer
	EngineTemporalLogic
)

func (e R2U2Engine) String() string {
	switch e {
	case EngineNone:
		return "none"
	case EngineAtomicChecker:
		return "atomic_checker"
	case EngineBooleanizer:
		return "booleanizer"
	case EngineTemporalLogic:
		return "temporal_logic"
	default:
		return "unknown"
	}
}

// R2U2Implementation identifies the target backend, which affects which
// arithmetic and bitwise operators type checking will accept (C3).
type R2U2Implementation int

const (
	ImplC R2U2Implementation = iota
	ImplCPP
	ImplVHDL
)

func (i R2U2Implementation) String() string {
	switch i {
	case ImplC:
		return "c"
	case ImplCPP:
		return "cpp"
	case ImplVHDL:
		return "vhdl"
	default:
		return "unknown"
	}
}

func ParseR2U2Implementation(s string) (R2U2Implementation, bool) {
	switch s {
	case "c":
		return ImplC, true
	case "cpp":
		return ImplCPP, true
	case "vhdl":
		return ImplVHDL, true
	default:
		return ImplC, false
	}
}

// SignalMapping assigns each named input signal a stable integer id, the
// index R2U2's trace-reading engine uses to locate the signal's column.
type SignalMapping map[string]int

func (m SignalMapping) IDOf(name string) (int, bool) {
	id, ok := m[name]
	return id, ok
}

// Add assigns the next unused id to name if it is not already mapped and
// returns the id it now maps to.
func (m SignalMapping) Add(name string) int {
	if id, ok := m[name]; ok {
		return id
	}
	id := len(m)
	m[name] = id
	return id
}
