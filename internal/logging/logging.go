package logging

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// New builds a logger writing to out at the given level and format ("text" or "json")
func New(out io.Writer, level, format string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)
	if format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	SetLevel(log, level)
	return log
}

// SetLevel maps a level name onto the logger. Unknown names fall back to info.
func SetLevel(log *logrus.Logger, level string) {
	// trace and panic levels are not used
	switch strings.ToLower(level) {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "warning", "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	case "fatal":
		log.SetLevel(logrus.FatalLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}
}

// Discard returns a logger that drops everything, for tests
func Discard() *logrus.Logger {
	return New(io.Discard, "error", "text")
}
