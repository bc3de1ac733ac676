// Package parser implements the concrete-syntax front end: a participle
// grammar shared by the plain-MLTL and structured-C2PO surface syntaxes,
// dispatch by file extension, and gob-based pickle deserialization for the
// `.pickle` bypass format (§6).
package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"

	"mltlc/internal/program"
)

var buildParser = participle.MustBuild[SourceFile](
	participle.Lexer(MLTLLexer),
	participle.Elide("Whitespace", "Comment"),
	participle.UseLookahead(3),
)

// ParseFile dispatches on extension: `.mltl` and `.c2po` go through the
// shared grammar, `.pickle` bypasses parsing entirely (§6).
func ParseFile(path string) (*program.Program, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mltl", ".c2po":
		return parseSource(path)
	case ".pickle":
		return LoadPickle(path)
	default:
		return nil, fmt.Errorf("unrecognized input extension %q", filepath.Ext(path))
	}
}

func parseSource(path string) (*program.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	sf, err := buildParser.ParseString(path, string(data))
	if err != nil {
		reportParseError(path, string(data), err)
		return nil, err
	}

	return ToProgram(sf)
}

func reportParseError(path, src string, err error) {
	pe, ok := err.(participle.Error)
	if !ok {
		color.Red("%s: %s", path, err)
		return
	}

	pos := pe.Position()
	lines := strings.Split(src, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		color.Red("%s: syntax error at unknown location: %s", path, err)
		return
	}

	line := lines[pos.Line-1]
	caret := strings.Repeat(" ", max(pos.Column-1, 0)) + "^"

	color.Red("%s:%d:%d: syntax error: %s", path, pos.Line, pos.Column, pe.Message())
	fmt.Println(line)
	color.HiRed(caret)
}
