// Package logging configures the process-wide logrus logger used by the
// command line tools. Entries returned by For satisfy calculation.Logger.
package logging

import (
	"fmt"
	"io"
	"sort"

	"github.com/sirupsen/logrus"
)

var levels = map[string]logrus.Level{
	"trace":    logrus.TraceLevel,
	"debug":    logrus.DebugLevel,
	"info":     logrus.InfoLevel,
	"warn":     logrus.WarnLevel,
	"error":    logrus.ErrorLevel,
	"critical": logrus.FatalLevel,
	"off":      logrus.PanicLevel,
}

// LevelNames returns the accepted --log-level values, sorted.
func LevelNames() []string {
	names := make([]string, 0, len(levels))
	for name := range levels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Setup sets the global level, formatter and output. A nil writer keeps the
// current output.
func Setup(level string, out io.Writer) error {
	lvl, ok := levels[level]
	if !ok {
		return fmt.Errorf("log level must be one of %v, got %q", LevelNames(), level)
	}
	logrus.SetLevel(lvl)
	logrus.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		FullTimestamp:   true,
	})
	if out != nil {
		logrus.SetOutput(out)
	}
	return nil
}

// DebugEnabled reports whether the configured level lets debug entries
// through. The engine only traces intermediate figures when it does.
func DebugEnabled() bool {
	return logrus.IsLevelEnabled(logrus.DebugLevel)
}

// For returns a log entry tagged with the module name.
func For(module string) *logrus.Entry {
	return logrus.WithField("module", module)
}
