package program

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"
)

// Workdir is the scoped-acquisition handle for the pipeline's scratch
// directory: created once at pipeline start, torn down on Close unless the
// compile was run with --keep (§5).
type Workdir struct {
	Path string
	keep bool
}

// AcquireWorkdir creates a fresh working directory. When explicit is empty,
// a unique name is generated with ksuid rather than the process id, which
// both avoids collisions between concurrent compiler invocations sharing a
// temp directory and removes the process-id-derived global state noted in
// DESIGN.md.
func AcquireWorkdir(explicit string, keep bool) (*Workdir, error) {
	path := explicit
	if path == "" {
		path = filepath.Join(os.TempDir(), "mltlc-"+ksuid.New().String())
	}
	if err := os.RemoveAll(path); err != nil {
		return nil, errors.Wrapf(err, "clearing working directory %q", path)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating working directory %q", path)
	}
	return &Workdir{Path: path, keep: keep}, nil
}

// Close removes the working directory unless it was requested to be kept.
func (w *Workdir) Close() error {
	if w.keep {
		return nil
	}
	return os.RemoveAll(w.Path)
}

// File returns path joined under the working directory.
func (w *Workdir) File(name string) string {
	return filepath.Join(w.Path, name)
}
