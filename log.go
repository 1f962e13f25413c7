package bigint

import (
	"go.uber.org/zap"

	"github.com/DK318/bigint/internal/digits"
)

// Logger returns the logger shared by this package and its limb storage.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	return digits.Logger()
}

// SetLogger configures the package logger.
// Debug entries report rejected input, division by zero,
// and copy-on-write activity of long magnitudes.
// This must be called before any Int operations.
func SetLogger(l *zap.Logger) {
	digits.SetLogger(l)
}
