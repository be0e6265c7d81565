package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger обёртка над logrus с printf-style API
// Пишет одновременно в stdout и в файл (если путь указан)
type Logger struct {
	log  *logrus.Logger
	file *os.File
}

// New создает логгер с выводом в файл filePath и уровнем level (debug, info, warn, error)
func New(filePath string, level string) (*Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	l := logrus.New()
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	var file *os.File
	if filePath != "" {
		file, err = os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file %s: %w", filePath, err)
		}
		l.SetOutput(io.MultiWriter(os.Stdout, file))
	} else {
		l.SetOutput(os.Stdout)
	}

	return &Logger{log: l, file: file}, nil
}

// NewNop создает логгер, который ничего не пишет (для тестов)
func NewNop() *Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &Logger{log: l}
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.log.Debugf(format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.log.Infof(format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.log.Warnf(format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.log.Errorf(format, v...)
}

// Fatal логирует сообщение и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.log.Fatalf(format, v...)
}

// Close закрывает файл лога
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func parseLevel(level string) (logrus.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return logrus.InfoLevel, nil
	case "debug":
		return logrus.DebugLevel, nil
	case "warn", "warning":
		return logrus.WarnLevel, nil
	case "error":
		return logrus.ErrorLevel, nil
	default:
		return logrus.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
}
