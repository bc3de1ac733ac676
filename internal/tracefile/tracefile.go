// Package tracefile implements the two input readers the compiler consults
// for mission-time inference and signal-to-index resolution: the CSV trace
// file (optionally self-describing via a `#`-prefixed header) and the
// plain-text signal map file.
package tracefile

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"mltlc/internal/diag"
	"mltlc/internal/types"
)

// ProcessTraceFile reads a CSV trace file and returns the inferred mission
// time (number of data rows) and, if the file carries a `#`-prefixed
// header, the signal mapping it describes. mapFileProvided controls
// whether a header is warned about as redundant rather than silently
// accepted.
func ProcessTraceFile(log *diag.Logger, path string, mapFileProvided bool) (int, types.SignalMapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return -1, nil, fmt.Errorf("reading trace file %s: %w", path, err)
	}

	lines := splitLines(string(data))
	if len(lines) < 1 {
		return -1, nil, nil
	}

	if !strings.HasPrefix(lines[0], "#") {
		return len(lines), nil, nil
	}

	if mapFileProvided {
		log.Warning(diag.CodeTrace, "map file given and header included in trace file; header will be ignored")
	}

	header := lines[0][1:]
	mapping := types.SignalMapping{}
	count := 0
	for _, id := range strings.Split(header, ",") {
		id = strings.TrimSpace(id)
		if _, ok := mapping[id]; ok {
			log.Warning(diag.CodeTrace, fmt.Sprintf("signal id %q found multiple times in csv, using right-most value", id))
		}
		mapping[id] = count
		count++
	}

	return len(lines) - 1, mapping, nil
}

var mapLineRE = regexp.MustCompile(`^[a-zA-Z_]\w*:\d+$`)

// ProcessMapFile reads a `SYMBOL:INDEX` per line signal map file. A
// malformed line is a hard error: the original format gives the reader no
// way to recover a sensible mapping from it.
func ProcessMapFile(log *diag.Logger, path string) (types.SignalMapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map file %s: %w", path, err)
	}

	mapping := types.SignalMapping{}
	for i, line := range splitLines(string(data)) {
		if line == "" {
			continue
		}
		if !mapLineRE.MatchString(line) {
			return nil, fmt.Errorf("map file %s:%d: invalid format (found %q), should be SYMBOL:NUMBER", path, i+1, line)
		}

		parts := strings.SplitN(line, ":", 2)
		id := parts[0]
		sid, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("map file %s:%d: %w", path, i+1, err)
		}

		if _, ok := mapping[id]; ok {
			log.Warning(diag.CodeTrace, fmt.Sprintf("signal id %q found multiple times in map file, using latest value", id))
		}
		mapping[id] = sid
	}

	return mapping, nil
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
