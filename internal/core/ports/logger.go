package ports

// Logger is the minimal logging surface used across the runner.
type Logger interface {
	// Info logs an informational message.
	Info(msg string)

	// Warn logs a warning message.
	Warn(msg string)

	// Error logs an error.
	Error(err error)
}
