package logger

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// LogWriter routes gorm's SQL log lines into the zap sink
type LogWriter struct {
	zapcore.WriteSyncer
}

// Printf writes one line per call so concurrent queries do not interleave
func (l *LogWriter) Printf(format string, args ...interface{}) {
	line := fmt.Sprintf(format, args...) + "\n"
	_, _ = l.WriteSyncer.Write([]byte(line))
}

func GetWriter() *LogWriter {
	return logWriter
}
