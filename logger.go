package cfgkit

import "github.com/go-logr/logr"

// globalLogger is the logr sink used by the file-facing layer (load, save,
// watch). The pure core (detection, sniffing, diffing) never logs.
var globalLogger logr.Logger

// SetLogger installs a logger implementation. Any logr-backed logger
// works (zapr, stdr, zerologr, ...). Without one, logging is discarded.
func SetLogger(l logr.Logger) {
	globalLogger = l
}

func logger() logr.Logger {
	if globalLogger.IsZero() {
		return logr.Discard()
	}
	return globalLogger
}
