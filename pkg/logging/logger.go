package logging

import (
	"context"
	"io"
	"os"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// Log wraps a logrus entry so components can carry their own fields.
type Log struct {
	*logrus.Entry
}

// New builds the process logger. format is "json" or "text".
func New(level, format string) *Log {
	return NewWithOutput(level, format, os.Stdout)
}

func NewWithOutput(level, format string, out io.Writer) *Log {
	logger := logrus.New()
	logger.SetOutput(out)

	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)

	return &Log{Entry: logrus.NewEntry(logger)}
}

// Discard is a logger for tests.
func Discard() *Log {
	return NewWithOutput("panic", "text", io.Discard)
}

func (l *Log) WithField(key string, value interface{}) *Log {
	return &Log{l.Entry.WithField(key, value)}
}

func (l *Log) WithEntryName(name string) *Log {
	return l.WithField("entry", name)
}

func (l *Log) WithErr(err error) *Log {
	if err == nil {
		return l
	}
	return l.WithField("err", err.Error())
}

// WithRequest tags the entry with the request id set by the chi RequestID middleware.
func (l *Log) WithRequest(ctx context.Context) *Log {
	if id := middleware.GetReqID(ctx); id != "" {
		return l.WithField("request_id", id)
	}
	return l
}
