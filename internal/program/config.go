// Package program implements the compilation container: ordered sections,
// symbol tables, and the immutable per-compile Config (C3).
package program

import "mltlc/internal/types"

// Config is the immutable record of everything a single compilation run was
// invoked with. It replaces the global mutable configuration state noted
// in DESIGN.md's Open Questions: every consumer receives it explicitly
// rather than reading a package-level singleton.
type Config struct {
	InputPath  string
	OutputPath string
	Workdir    string
	KeepWorkdir bool

	Impl        types.R2U2Implementation
	Frontend    types.R2U2Engine
	MissionTime int // -1 means "infer from trace"

	IntWidth   int
	IntSigned  bool
	FloatWidth int

	ByteOrder string // "native", "network", "big", "little"

	SignalMapping types.SignalMapping

	TimeoutEgglogSeconds int
	TimeoutSATSeconds    int

	// MaxPredictionHorizon bounds how far ahead the runtime's SCQ
	// bookkeeping can look; it caps the min(q, H) term of the SCQ sizing
	// formula (§4.6). 16 matches the depth R2U2's reference queue
	// configuration ships with.
	MaxPredictionHorizon int

	EnabledPasses map[string]bool

	DebugLevel int
	Stats      bool
	Quiet      bool

	WritePaths map[string]string // output kind -> path ("." or absent means disabled, "" means the default path beside the input)
}

// DefaultConfig mirrors the original CLI's defaults.
func DefaultConfig() *Config {
	return &Config{
		OutputPath:           "spec.bin",
		Impl:                 types.ImplC,
		Frontend:             types.EngineNone,
		MissionTime:          -1,
		IntWidth:             32,
		IntSigned:            true,
		FloatWidth:           32,
		ByteOrder:            "native",
		SignalMapping:        types.SignalMapping{},
		TimeoutEgglogSeconds: 3600,
		TimeoutSATSeconds:    3600,
		MaxPredictionHorizon: 16,
		EnabledPasses:        DefaultPassList(),
		WritePaths:           map[string]string{},
	}
}

// PassEnabled reports whether the named pass should run for this compile.
func (c *Config) PassEnabled(name string) bool {
	enabled, ok := c.EnabledPasses[name]
	return ok && enabled
}

// DefaultPassList enumerates every optional pass name from §4.3. Equality
// saturation (mutually exclusive with several others), NNF, BNF and the
// satisfiability check are off by default; the rest are on.
func DefaultPassList() map[string]bool {
	return map[string]bool{
		PassComputeAtomics:       true,
		PassRewriteOptimize:      true,
		PassEqualitySaturation:   false,
		PassToNNF:                false,
		PassToBNF:                false,
		PassRemoveExtendedOps:    true,
		PassMultiArityToBinary:   true,
		PassCSE:                  true,
		PassCheckSat:             false,
	}
}

// Pass name constants, used as EnabledPasses keys and in diagnostics.
const (
	PassComputeAtomics     = "compute_atomics"
	PassRewriteOptimize    = "optimize_rewrite_rules"
	PassEqualitySaturation = "optimize_eqsat"
	PassToNNF              = "to_nnf"
	PassToBNF              = "to_bnf"
	PassRemoveExtendedOps  = "remove_extended_operators"
	PassMultiArityToBinary = "multi_operators_to_binary"
	PassCSE                = "optimize_cse"
	PassCheckSat           = "check_sat"
)
