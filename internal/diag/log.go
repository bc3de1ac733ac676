package diag

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus with the module-coded, level-gated logging the
// original compiler's command line exposes via --debug and --stats.
type Logger struct {
	entry      *logrus.Logger
	debugLevel int
	stats      bool
}

func NewLogger(debugLevel int, stats bool) *Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if debugLevel > 0 {
		l.Level = logrus.DebugLevel
	}
	return &Logger{entry: l, debugLevel: debugLevel, stats: stats}
}

// Debug logs a diagnostic message when the configured debug level is at
// least `level`, tagged with the emitting module's code.
func (l *Logger) Debug(code Code, level int, msg string) {
	if level > l.debugLevel {
		return
	}
	l.entry.WithField("module", string(code)).Debug(msg)
}

func (l *Logger) Warning(code Code, msg string) {
	l.entry.WithField("module", string(code)).Warning(msg)
}

func (l *Logger) Error(code Code, msg string) {
	l.entry.WithField("module", string(code)).Error(msg)
}

// Stat emits a key=value performance or size measurement, gated by
// --stats, mirroring the original's timing/SCQ-size report lines.
func (l *Logger) Stat(code Code, key string, value interface{}) {
	if !l.stats {
		return
	}
	fmt.Fprintf(os.Stdout, "%s=%v\n", key, value)
}
