package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Reporter formats CompilerErrors against a known source file, the way a
// rustc-style frontend does: the offending line plus a caret span under it.
type Reporter struct {
	filename string
	lines    []string
}

func NewReporter(filename, source string) *Reporter {
	return &Reporter{filename: filename, lines: strings.Split(source, "\n")}
}

func levelColor(l Level) *color.Color {
	switch l {
	case LevelError, LevelInternal:
		return color.New(color.FgRed, color.Bold)
	case LevelWarning:
		return color.New(color.FgYellow, color.Bold)
	case LevelNote, LevelStat:
		return color.New(color.FgCyan, color.Bold)
	case LevelHelp:
		return color.New(color.FgGreen, color.Bold)
	default:
		return color.New(color.FgWhite)
	}
}

func lineNumberWidth(line int) int {
	w := 1
	for line >= 10 {
		line /= 10
		w++
	}
	return w
}

func marker(column, length int) string {
	if length < 1 {
		length = 1
	}
	return strings.Repeat(" ", column-1) + strings.Repeat("^", length)
}

// Format renders e as a multi-line diagnostic message.
func (r *Reporter) Format(e *CompilerError) string {
	var b strings.Builder
	lc := levelColor(e.Level)

	header := fmt.Sprintf("%s[%s]: %s", e.Level, e.Code, e.Message)
	b.WriteString(lc.Sprint(header))
	b.WriteString("\n")

	if !e.HasPosition {
		r.writeTrailer(&b, e)
		return b.String()
	}

	pos := e.Position
	width := lineNumberWidth(pos.Line)
	pad := strings.Repeat(" ", width)

	fmt.Fprintf(&b, "%s--> %s\n", pad, pos.String())
	fmt.Fprintf(&b, "%s |\n", pad)

	if pos.Line-1 >= 1 && pos.Line-1 <= len(r.lines) {
		fmt.Fprintf(&b, "%*d | %s\n", width, pos.Line-1, r.lines[pos.Line-2])
	}
	if pos.Line >= 1 && pos.Line <= len(r.lines) {
		fmt.Fprintf(&b, "%*d | %s\n", width, pos.Line, r.lines[pos.Line-1])
	}
	fmt.Fprintf(&b, "%s | %s\n", pad, lc.Sprint(marker(pos.Column, e.Length)))
	if pos.Line+1 >= 1 && pos.Line+1 <= len(r.lines) {
		fmt.Fprintf(&b, "%*d | %s\n", width, pos.Line+1, r.lines[pos.Line])
	}

	r.writeTrailer(&b, e)
	return b.String()
}

func (r *Reporter) writeTrailer(b *strings.Builder, e *CompilerError) {
	for _, s := range e.Suggestions {
		fmt.Fprintf(b, "help: %s\n", s.Message)
		if s.Replacement != "" {
			fmt.Fprintf(b, "    | %s\n", s.Replacement)
		}
	}
	for _, n := range e.Notes {
		fmt.Fprintf(b, "note: %s\n", n)
	}
	if e.HelpText != "" {
		fmt.Fprintf(b, "help: %s\n", e.HelpText)
	}
}
