package core

// Logger is the logging capability handed to components that must stay
// testable without the process-wide logger, such as the frame driver and the
// memory planner. The package-level Log* functions satisfy it through
// DefaultLogger.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type defaultLogger struct{}

func (defaultLogger) Debugf(format string, args ...interface{}) { LogDebug(format, args...) }
func (defaultLogger) Infof(format string, args ...interface{})  { LogInfo(format, args...) }
func (defaultLogger) Warnf(format string, args ...interface{})  { LogWarn(format, args...) }
func (defaultLogger) Errorf(format string, args ...interface{}) { LogError(format, args...) }

// DefaultLogger returns a Logger backed by the singleton engine logger.
func DefaultLogger() Logger {
	return defaultLogger{}
}

// NopLogger discards everything. Useful in tests.
type NopLogger struct{}

func (NopLogger) Debugf(format string, args ...interface{}) {}
func (NopLogger) Infof(format string, args ...interface{})  {}
func (NopLogger) Warnf(format string, args ...interface{})  {}
func (NopLogger) Errorf(format string, args ...interface{}) {}
