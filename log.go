package boombox

import "log"

var logger = log.Default()

// SetLogger redirects the package's warning output. Passing nil restores
// the standard logger.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.Default()
	}
	logger = l
}

func logf(format string, args ...any) {
	logger.Printf(format, args...)
}
