// Package log provides the prefixed, coloured loggers every component writes with.
package log

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beka-birhanu/vinom-maze/config"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/sirupsen/logrus"
)

var _ i.Logger = &Logger{}

// Logger writes "[PREFIX] [LEVEL] message" lines through logrus.
type Logger struct {
	prefix string         // Component name shown on every line
	logger *logrus.Logger // Underlying logrus instance
}

// New creates a logger that writes to w with the prefix shown in color.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	if prefix == "" {
		return nil, errors.New("logger prefix is required")
	}
	if w == nil {
		return nil, errors.New("logger writer is required")
	}

	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&prefixFormatter{prefix: prefix, color: color})

	return &Logger{prefix: prefix, logger: l}, nil
}

// SetLevel changes the minimum level written, by logrus level name.
func (l *Logger) SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("%s logger: %w", l.prefix, err)
	}
	l.logger.SetLevel(lvl)
	return nil
}

// Info implements i.Logger.
func (l *Logger) Info(msg string) { l.logger.Info(msg) }

// Warning implements i.Logger.
func (l *Logger) Warning(msg string) { l.logger.Warn(msg) }

// Error implements i.Logger.
func (l *Logger) Error(msg string) { l.logger.Error(msg) }

// Debug implements i.Logger.
func (l *Logger) Debug(msg string) { l.logger.Debug(msg) }

type prefixFormatter struct {
	prefix string
	color  string
}

// Format implements logrus.Formatter.
func (f *prefixFormatter) Format(e *logrus.Entry) ([]byte, error) {
	levelColor := config.LogInfoColor
	switch e.Level {
	case logrus.WarnLevel:
		levelColor = config.LogWarnColor
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		levelColor = config.LogErrorColor
	}

	line := fmt.Sprintf("%s[%s]%s %s[%s]%s %s %s\n",
		f.color, f.prefix, config.ColorReset,
		levelColor, strings.ToUpper(e.Level.String()), config.LogColorReset,
		e.Time.Format("2006-01-02 15:04:05"),
		e.Message,
	)
	return []byte(line), nil
}
