package observability

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger creates a logrus logger at the given level.
// JSON output suits the server; the text formatter suits the CLI.
// An unknown level falls back to info.
func NewLogger(level string, out io.Writer, json bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	if json {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:          true,
			DisableLevelTruncation: true,
		})
	}
	return logger
}
