// Package logging sets up the engine's single shared logger instance.
// Every package that needs to report a soft failure (malformed FEN,
// an illegal UCI move) calls GetLog() and logs through
// the returned *logging.Logger rather than fmt.Println, so that the
// engine's wire protocol (stdout) is never polluted by diagnostics.
package logging

import (
	"os"

	"github.com/op/go-logging"

	"github.com/kophouse/corvid/internal/config"
)

var log *logging.Logger

// GetLog returns the engine's shared logger, creating it on first use.
// Diagnostics go to stderr so they never interleave with UCI protocol
// output on stdout.
func GetLog() *logging.Logger {
	if log == nil {
		log = logging.MustGetLogger("corvid")
		backend := logging.NewLogBackend(os.Stderr, "", 0)
		format := logging.MustStringFormatter(
			`%{time:15:04:05.000} %{shortfile}:%{shortfunc} %{level:7s}:  %{message}`,
		)
		backendFormatter := logging.NewBackendFormatter(backend, format)
		leveled := logging.AddModuleLevel(backendFormatter)
		leveled.SetLevel(levelFor(config.LogLevel), "")
		logging.SetBackend(leveled)
	}
	return log
}

func levelFor(n int) logging.Level {
	switch n {
	case -1:
		return logging.CRITICAL + 1 // effectively off
	case 0:
		return logging.CRITICAL
	case 1:
		return logging.ERROR
	case 2:
		return logging.WARNING
	case 3:
		return logging.NOTICE
	case 4:
		return logging.INFO
	default:
		return logging.DEBUG
	}
}
