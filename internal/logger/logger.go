// Package logger holds the process-wide logrus logger used by the commands.
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.Out = os.Stderr
	log.Formatter = &logrus.TextFormatter{FullTimestamp: true}
}

// Get returns the shared logger.
func Get() *logrus.Logger {
	return log
}

// SetLevel sets the level of the shared logger by name. Unknown names fall
// back to info.
func SetLevel(level string) {
	switch strings.ToLower(level) {
	case "error":
		log.Level = logrus.ErrorLevel
	case "warn":
		log.Level = logrus.WarnLevel
	case "debug":
		log.Level = logrus.DebugLevel
	default:
		log.Level = logrus.InfoLevel
	}
}
