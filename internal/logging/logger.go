// Package logging keeps the batch driver decoupled from logrus. The encoding
// packages never log; commands, the container and the I/O layer do, through
// the Logger interface.
package logging

// Logger is the structured logger injected into every component that logs.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError returns a logger that attaches err to every entry
	WithError(err error) Logger

	// WithField returns a logger that attaches one field to every entry
	WithField(key string, value interface{}) Logger

	// WithFields returns a logger that attaches fields to every entry
	WithFields(fields ...Field) Logger
}

// Field is a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F is shorthand for building a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}
