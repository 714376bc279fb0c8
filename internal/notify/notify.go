package notify

import (
	"github.com/kenziemed/medclient/internal/logging"
	"go.uber.org/zap"
)

// Notifier is the fire-and-forget user-visible message channel. Every
// store operation reports its outcome here; there is no acknowledgment.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// LogNotifier reports notifications through the structured logger
type LogNotifier struct {
	logger *logging.SafeLogger
}

// NewLogNotifier creates a logger-backed notifier
func NewLogNotifier(logger *logging.SafeLogger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Success reports a success notification
func (n *LogNotifier) Success(message string) {
	n.logger.Info("notification", zap.String("severity", "success"), zap.String("message", message))
}

// Error reports an error notification
func (n *LogNotifier) Error(message string) {
	n.logger.Warn("notification", zap.String("severity", "error"), zap.String("message", message))
}
