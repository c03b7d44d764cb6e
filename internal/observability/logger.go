package observability

import (
	"log/slog"
	"os"
)

type Logger struct {
	base *slog.Logger
}

func NewLogger() *Logger {
	return &Logger{base: slog.New(slog.NewTextHandler(os.Stdout, nil))}
}

func (l *Logger) Info(msg string) {
	l.base.Info(msg)
}

func (l *Logger) Error(msg string) {
	l.base.Error(msg)
}
