package logger

import "fmt"

// Init initializes the basic logger. Kept separate from InitStructured so
// early startup code can log before the environment is known.
func Init() {
	InitStructured("")
}

// Info logs a formatted message at info level
func Info(format string, args ...interface{}) {
	zlog.Info().Msg(fmt.Sprintf(format, args...))
}

// Warn logs a formatted message at warn level
func Warn(format string, args ...interface{}) {
	zlog.Warn().Msg(fmt.Sprintf(format, args...))
}

// Error logs a formatted message at error level
func Error(format string, args ...interface{}) {
	zlog.Error().Msg(fmt.Sprintf(format, args...))
}
