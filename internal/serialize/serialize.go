// Package serialize implements the five output write-paths (§6): prefix
// notation, source-language reconstruction, MLTL-standard format, an
// opaque pickled Program, and per-spec SMT-LIB2 queries. Each path is
// gated by its own configured filename, with "." meaning disabled.
package serialize

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mltlc/internal/diag"
	"mltlc/internal/ir"
	"mltlc/internal/parser"
	"mltlc/internal/program"
	"mltlc/internal/smt"
)

const disabled = "."

// Output kind keys, looked up in Config.WritePaths.
const (
	KindC2PO   = "c2po"
	KindPrefix = "prefix"
	KindMLTL   = "mltl"
	KindPickle = "pickle"
	KindSMT    = "smt"
)

// resolvePath mirrors the original write_* helpers' three-way rule: the
// kind absent from WritePaths or set to "." means disabled; set to "" means
// write next to the input with defaultSuffix; anything else is used as an
// explicit output path.
func resolvePath(writePaths map[string]string, kind, inputPath, defaultSuffix string) (string, bool) {
	filename, ok := writePaths[kind]
	if !ok || filename == disabled {
		return "", false
	}
	if filename == "" {
		return withSuffix(inputPath, defaultSuffix), true
	}
	return filename, true
}

func withSuffix(inputPath, suffix string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + suffix
}

// WriteOutputs emits every enabled output kind for ctx.Program, grounded
// in the input path whenever a kind's configured filename is empty (as
// opposed to disabled outright with ".").
func WriteOutputs(ctx *program.Context) error {
	if path, ok := resolvePath(ctx.Config.WritePaths, KindC2PO, ctx.Config.InputPath, ".out.c2po"); ok {
		if err := writeC2PO(ctx, path); err != nil {
			return err
		}
	}
	if path, ok := resolvePath(ctx.Config.WritePaths, KindPrefix, ctx.Config.InputPath, ".prefix.c2po"); ok {
		if err := writePrefix(ctx, path); err != nil {
			return err
		}
	}
	if path, ok := resolvePath(ctx.Config.WritePaths, KindMLTL, ctx.Config.InputPath, ".mltl"); ok {
		if err := writeMLTL(ctx, path); err != nil {
			return err
		}
	}
	if path, ok := resolvePath(ctx.Config.WritePaths, KindPickle, ctx.Config.InputPath, ".pickle"); ok {
		if err := writePickle(ctx, path); err != nil {
			return err
		}
	}
	if path, ok := resolvePath(ctx.Config.WritePaths, KindSMT, ctx.Config.InputPath, ".smt"); ok {
		if err := writeSMT(ctx, path); err != nil {
			return err
		}
	}
	return nil
}

func writeC2PO(ctx *program.Context, path string) error {
	ctx.Log.Debug(diag.CodeSerialize, 1, fmt.Sprintf("writing source reconstruction to %s", path))
	return os.WriteFile(path, []byte(renderSource(ctx.Program)), 0o644)
}

func writePrefix(ctx *program.Context, path string) error {
	ctx.Log.Debug(diag.CodeSerialize, 1, fmt.Sprintf("writing prefix format to %s", path))
	return os.WriteFile(path, []byte(renderPrefix(ctx.Program)), 0o644)
}

func writeMLTL(ctx *program.Context, path string) error {
	ctx.Log.Debug(diag.CodeSerialize, 1, fmt.Sprintf("dumping MLTL standard format to %s", path))
	return os.WriteFile(path, []byte(renderMLTLStandard(ctx.Program)), 0o644)
}

func writePickle(ctx *program.Context, path string) error {
	ctx.Log.Debug(diag.CodeSerialize, 1, fmt.Sprintf("writing pickled program to %s", path))
	return parser.SavePickle(path, ctx.Program)
}

func writeSMT(ctx *program.Context, dirPath string) error {
	ctx.Log.Debug(diag.CodeSerialize, 1, fmt.Sprintf("writing SMT encoding to %s", dirPath))

	if err := os.RemoveAll(dirPath); err != nil {
		return fmt.Errorf("clearing %s: %w", dirPath, err)
	}
	if err := os.MkdirAll(dirPath, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dirPath, err)
	}

	for _, f := range ctx.Program.FTSpecs {
		query, err := smt.EncodeSatQuery(f.Body())
		if err != nil {
			if _, ok := err.(smt.ErrReleaseUnsupported); ok {
				ctx.Log.Warning(diag.CodeSerialize, fmt.Sprintf("%s: skipping SMT dump, Release is unsupported", f.Symbol))
				continue
			}
			return err
		}
		outPath := filepath.Join(dirPath, f.Symbol+".smt")
		if err := os.WriteFile(outPath, []byte(query), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func sectionHeader(kind program.SectionKind) string {
	switch kind {
	case program.SectionSignals:
		return "INPUT"
	case program.SectionDefines:
		return "DEFINE"
	case program.SectionAtomics:
		return "ATOMIC"
	case program.SectionFTSpecs:
		return "FTSPEC"
	case program.SectionPTSpecs:
		return "PTSPEC"
	default:
		return ""
	}
}

// renderSource reconstructs the input program's source-language text from
// its sections and symbol tables, in declaration order.
func renderSource(p *program.Program) string {
	var b strings.Builder
	for _, sec := range p.Sections {
		header := sectionHeader(sec.Kind)
		if header == "" {
			continue
		}
		fmt.Fprintf(&b, "%s\n", header)
		for _, name := range sec.Symbols {
			switch sec.Kind {
			case program.SectionSignals:
				fmt.Fprintf(&b, "  %s: %s;\n", name, p.Signals[name].Type())
			case program.SectionDefines:
				fmt.Fprintf(&b, "  %s := %s;\n", name, p.Defines[name])
			case program.SectionAtomics:
				fmt.Fprintf(&b, "  %s := %s;\n", name, p.Atomics[name].Def)
			case program.SectionFTSpecs:
				if f := findFormula(p.FTSpecs, name); f != nil {
					fmt.Fprintf(&b, "  %s\n", f)
				}
			case program.SectionPTSpecs:
				if f := findFormula(p.PTSpecs, name); f != nil {
					fmt.Fprintf(&b, "  %s\n", f)
				}
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func findFormula(specs []*ir.Formula, symbol string) *ir.Formula {
	for _, f := range specs {
		if f.Symbol == symbol {
			return f
		}
	}
	return nil
}

// renderPrefix dumps every formula's structural prefix-notation string
// (the same representation used internally for CSE keys and atomic-id
// assignment, per §4.2).
func renderPrefix(p *program.Program) string {
	var b strings.Builder
	for _, f := range p.AllFormulas() {
		fmt.Fprintf(&b, "%s: %s\n", f.Symbol, f.Prefix())
	}
	return b.String()
}

// renderMLTLStandard emits each formula as a numbered line in the MLTL
// standard linear format, `pN: <formula>;` for FT specs followed by
// `qN: <formula>;` for PT specs, the convention R2U2's toolchain and most
// MLTL reference implementations share.
func renderMLTLStandard(p *program.Program) string {
	var b strings.Builder
	for i, f := range p.FTSpecs {
		fmt.Fprintf(&b, "p%d: %s;\n", i, f.Body())
	}
	for i, f := range p.PTSpecs {
		fmt.Fprintf(&b, "q%d: %s;\n", i, f.Body())
	}
	return b.String()
}
