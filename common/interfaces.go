package common

// Logger defines the interface for leveled logging.
// *AppLogger implements it; tests substitute a recorder.
type Logger interface {
	// Debug logs a debug message.
	Debug(msg string, args ...interface{})
	// Info logs an informational message.
	Info(msg string, args ...interface{})
	// Warn logs a warning message.
	Warn(msg string, args ...interface{})
	// Error logs an error message.
	Error(msg string, args ...interface{})
}

// Urgency mirrors the freedesktop notification urgency levels.
type Urgency byte

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification with the given title and message.
	Notify(title, message string, urgency Urgency) error
}
