package primary

// Logger is the structured logging port. Arguments are alternating
// key/value pairs as accepted by zap's sugared logger.
type Logger interface {
	Info(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Debug(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
}
