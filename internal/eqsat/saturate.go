package eqsat

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// DefaultEngine is the saturation engine binary probed when eqsat is
// requested. The original drives egglog as a subprocess the same way.
const DefaultEngine = "egglog"

// EngineAvailable mirrors smt.SolverAvailable's absence check for the
// saturation engine.
func EngineAvailable(binary string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	cmd := exec.CommandContext(ctx, binary, "--version")
	return cmd.Run() == nil
}

// Saturate writes eggSource to eggPath, invokes the engine with
// --to-json against it, and reads back the companion JSON file (§4.7,
// "Subprocess contracts"). jsonPath is eggPath with its extension swapped.
func Saturate(binary, eggPath, eggSource string, timeoutSeconds int) (*EGraph, error) {
	if err := os.WriteFile(eggPath, []byte(eggSource), 0o644); err != nil {
		return nil, fmt.Errorf("eqsat: writing egg file: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSeconds)*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, binary, "--to-json", eggPath)
	out, err := cmd.CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return nil, ErrTimeout{Output: string(out)}
	}
	if err != nil {
		return nil, fmt.Errorf("eqsat: saturation engine failed: %w (%s)", err, strings.TrimSpace(string(out)))
	}

	jsonPath := strings.TrimSuffix(eggPath, ".egg") + ".json"
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("eqsat: reading e-graph JSON: %w", err)
	}
	return ParseEGraph(data)
}

// ErrTimeout marks a saturation run that exceeded its configured timeout;
// per §7 this never fails the compile on its own.
type ErrTimeout struct{ Output string }

func (e ErrTimeout) Error() string { return "eqsat: saturation engine timed out" }
