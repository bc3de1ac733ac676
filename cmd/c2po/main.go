// Command c2po compiles a structured-C2PO or plain-MLTL specification file
// into a binary spec R2U2 can load, running the optimization pipeline
// described in DESIGN.md along the way.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"mltlc/internal/assemble"
	"mltlc/internal/diag"
	"mltlc/internal/parser"
	"mltlc/internal/passes"
	"mltlc/internal/program"
	"mltlc/internal/serialize"
	"mltlc/internal/tracefile"
	"mltlc/internal/typecheck"
	"mltlc/internal/types"
)

// Exit codes, per the CLI's documented taxonomy.
const (
	exitSuccess = 0
	exitGeneric = 1
	exitParse   = 2
	exitType    = 3
	exitAssembly = 4
	exitInvalid = 5
	exitFileIO  = 6
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, inputPath, stopAfter, quiet, err := parseFlags(args)
	if err != nil {
		color.Red("c2po: %s", err)
		return exitInvalid
	}

	log := diag.NewLogger(cfg.DebugLevel, cfg.Stats)
	if quiet {
		log = diag.NewLogger(-1, false)
	}

	if inputPath == "" {
		color.Red("c2po: no input file given")
		return exitInvalid
	}
	cfg.InputPath = inputPath

	wd, err := program.AcquireWorkdir(cfg.Workdir, cfg.KeepWorkdir)
	if err != nil {
		color.Red("c2po: %s", err)
		return exitFileIO
	}
	defer wd.Close()

	p, err := parser.ParseFile(inputPath)
	if err != nil {
		color.Red("c2po: %s", err)
		return exitParse
	}
	if stopAfter == stageParse {
		return exitSuccess
	}

	ctx := program.NewContext(p, cfg, log)
	ctx.Workdir = wd

	if !typecheck.Check(ctx) {
		reportErrors(ctx, inputPath)
		return exitType
	}
	if stopAfter == stageTypeCheck {
		return exitSuccess
	}

	if err := passes.Run(ctx); err != nil {
		reportErrors(ctx, inputPath)
		color.Red("c2po: pipeline failed: %s", err)
		return exitGeneric
	}
	if ctx.HasErrors() {
		reportErrors(ctx, inputPath)
		return exitType
	}
	if stopAfter == stagePasses {
		return exitSuccess
	}

	if err := serialize.WriteOutputs(ctx); err != nil {
		color.Red("c2po: writing outputs: %s", err)
		return exitFileIO
	}

	data, err := assemble.Assemble(ctx)
	if err != nil {
		color.Red("c2po: assembling: %s", err)
		return exitAssembly
	}
	if err := os.WriteFile(cfg.OutputPath, data, 0o644); err != nil {
		color.Red("c2po: %s", err)
		return exitFileIO
	}

	if !quiet {
		color.Green("wrote %s", cfg.OutputPath)
	}
	return exitSuccess
}

type stage int

const (
	stageNone stage = iota
	stageParse
	stageTypeCheck
	stagePasses
)

func reportErrors(ctx *program.Context, path string) {
	source := ""
	if data, err := os.ReadFile(path); err == nil {
		source = string(data)
	}
	reporter := diag.NewReporter(path, source)
	for _, e := range ctx.Errors {
		fmt.Fprintln(os.Stderr, reporter.Format(e))
	}
}

func parseFlags(args []string) (*program.Config, string, stage, bool, error) {
	fs := flag.NewFlagSet("c2po", flag.ContinueOnError)
	cfg := program.DefaultConfig()

	var (
		tracePath     string
		mapPath       string
		implName      string
		atomicChecker bool
		booleanizer   bool
		outputPath    string
		intWidth      int
		intSigned     bool
		floatWidth    int
		missionTime   int
		endian        string
		stopParse     bool
		stopTypeCheck bool
		stopPasses    bool
		disableCSE    bool
		disableRewrite bool
		enableEqSat   bool
		keepExtOps    bool
		toNNF         bool
		toBNF         bool
		checkSat      bool
		timeoutEgglog int
		timeoutSAT    int
		writeC2PO     string
		writeMLTL     string
		writePrefix   string
		writePickle   string
		writeSMT      string
		keep          bool
		workdir       string
		debugLevel    int
		stats         bool
		quiet         bool
	)

	fs.StringVar(&tracePath, "trace", "", "trace CSV path, used to infer mission time and signal mapping")
	fs.StringVar(&mapPath, "map", "", "signal map file path")
	fs.StringVar(&implName, "impl", "c", "target implementation: c, cpp, vhdl")
	fs.BoolVar(&atomicChecker, "at", false, "target the AtomicChecker frontend")
	fs.BoolVar(&booleanizer, "bz", false, "target the Booleanizer frontend")
	fs.StringVar(&outputPath, "o", "spec.bin", "output spec file path")
	fs.IntVar(&intWidth, "int-width", 32, "configured integer bit width")
	fs.BoolVar(&intSigned, "int-signed", true, "configured integers are signed")
	fs.IntVar(&floatWidth, "float-width", 32, "configured float bit width")
	fs.IntVar(&missionTime, "mission-time", -1, "mission time, or -1 to infer from the trace file")
	fs.StringVar(&endian, "endian", "native", "output byte order: native, network, big, little")
	fs.BoolVar(&stopParse, "p", false, "stop after parsing")
	fs.BoolVar(&stopTypeCheck, "tc", false, "stop after type checking")
	fs.BoolVar(&stopPasses, "c", false, "stop after the pass pipeline, without assembling")
	fs.BoolVar(&disableCSE, "dc", false, "disable common-subexpression elimination")
	fs.BoolVar(&disableRewrite, "dr", false, "disable the rewrite optimizer")
	fs.BoolVar(&enableEqSat, "eq", false, "enable the equality-saturation optimizer")
	fs.BoolVar(&keepExtOps, "extops", false, "retain extended operators instead of rewriting to not/and/until")
	fs.BoolVar(&toNNF, "nnf", false, "convert to negation normal form")
	fs.BoolVar(&toBNF, "bnf", false, "convert to Boolean normal form")
	fs.BoolVar(&checkSat, "sat", false, "run the satisfiability check on every FT spec")
	fs.IntVar(&timeoutEgglog, "timeout-egglog", cfg.TimeoutEgglogSeconds, "saturation engine timeout, seconds")
	fs.IntVar(&timeoutSAT, "timeout-sat", cfg.TimeoutSATSeconds, "SMT solver timeout, seconds")
	fs.StringVar(&writeC2PO, "write-c2po", ".", "write source reconstruction to PATH ('' for default, '.' to disable)")
	fs.StringVar(&writeMLTL, "write-mltl", ".", "write MLTL standard format to PATH")
	fs.StringVar(&writePrefix, "write-prefix", ".", "write prefix-notation dump to PATH")
	fs.StringVar(&writePickle, "write-pickle", ".", "write opaque pickled program to PATH")
	fs.StringVar(&writeSMT, "write-smt", ".", "write per-spec SMT-LIB2 files to directory PATH")
	fs.BoolVar(&keep, "keep", false, "keep the working directory after the run")
	fs.StringVar(&workdir, "workdir", "", "explicit working directory path")
	fs.IntVar(&debugLevel, "debug", 0, "debug verbosity level")
	fs.BoolVar(&stats, "stats", false, "emit key=value stat lines")
	fs.BoolVar(&quiet, "q", false, "suppress non-error output")

	if err := fs.Parse(args); err != nil {
		return nil, "", stageNone, false, err
	}

	impl, ok := types.ParseR2U2Implementation(implName)
	if !ok {
		return nil, "", stageNone, false, fmt.Errorf("unrecognized --impl %q", implName)
	}
	cfg.Impl = impl

	if atomicChecker && booleanizer {
		return nil, "", stageNone, false, fmt.Errorf("-at and -bz are mutually exclusive")
	}
	switch {
	case atomicChecker:
		cfg.Frontend = types.EngineAtomicChecker
	case booleanizer:
		cfg.Frontend = types.EngineBooleanizer
	default:
		cfg.Frontend = types.EngineNone
	}

	cfg.OutputPath = outputPath
	cfg.IntWidth = intWidth
	cfg.IntSigned = intSigned
	cfg.FloatWidth = floatWidth
	cfg.MissionTime = missionTime
	cfg.ByteOrder = endian
	cfg.TimeoutEgglogSeconds = timeoutEgglog
	cfg.TimeoutSATSeconds = timeoutSAT
	cfg.Workdir = workdir
	cfg.KeepWorkdir = keep
	cfg.DebugLevel = debugLevel
	cfg.Stats = stats
	cfg.Quiet = quiet

	cfg.EnabledPasses[program.PassCSE] = !disableCSE
	cfg.EnabledPasses[program.PassRewriteOptimize] = !disableRewrite
	cfg.EnabledPasses[program.PassEqualitySaturation] = enableEqSat
	cfg.EnabledPasses[program.PassRemoveExtendedOps] = !keepExtOps
	cfg.EnabledPasses[program.PassToNNF] = toNNF
	cfg.EnabledPasses[program.PassToBNF] = toBNF
	cfg.EnabledPasses[program.PassCheckSat] = checkSat

	cfg.WritePaths[serialize.KindC2PO] = writeC2PO
	cfg.WritePaths[serialize.KindMLTL] = writeMLTL
	cfg.WritePaths[serialize.KindPrefix] = writePrefix
	cfg.WritePaths[serialize.KindPickle] = writePickle
	cfg.WritePaths[serialize.KindSMT] = writeSMT

	if mapPath != "" {
		smap, err := tracefile.ProcessMapFile(diag.NewLogger(debugLevel, stats), mapPath)
		if err != nil {
			return nil, "", stageNone, false, err
		}
		cfg.SignalMapping = smap
	}
	if tracePath != "" {
		mt, tmap, err := tracefile.ProcessTraceFile(diag.NewLogger(debugLevel, stats), tracePath, mapPath != "")
		if err != nil {
			return nil, "", stageNone, false, err
		}
		if cfg.MissionTime < 0 {
			cfg.MissionTime = mt
		}
		if mapPath == "" && tmap != nil {
			cfg.SignalMapping = tmap
		}
	}

	stopAfter := stageNone
	switch {
	case stopParse:
		stopAfter = stageParse
	case stopTypeCheck:
		stopAfter = stageTypeCheck
	case stopPasses:
		stopAfter = stagePasses
	}

	rest := fs.Args()
	if len(rest) < 1 {
		return nil, "", stageNone, false, fmt.Errorf("no input file given")
	}
	inputPath := rest[0]
	if _, err := os.Stat(inputPath); err != nil {
		return nil, "", stageNone, false, fmt.Errorf("input file %s: %w", filepath.Clean(inputPath), err)
	}

	return cfg, inputPath, stopAfter, quiet, nil
}
