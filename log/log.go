// Package log writes structured diagnostics to a daily file under where.Logs().
// Nothing is emitted unless logs.write is enabled.
package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/anisan-cli/streamkit/filesystem"
	"github.com/anisan-cli/streamkit/key"
	"github.com/anisan-cli/streamkit/where"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Fields is a set of structured key/value pairs attached to an entry.
type Fields = logrus.Fields

var logger = silent()

func silent() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}

// Setup points the logger at today's file. With logs.write off every
// entry is dropped.
func Setup() error {
	if !viper.GetBool(key.LogsWrite) {
		logger = silent()
		return nil
	}

	dir := where.Logs()
	if dir == "" {
		return errors.New("log directory path is empty")
	}

	name := time.Now().Format(time.DateOnly) + ".log"
	file, err := filesystem.API().OpenFile(filepath.Join(dir, name), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}

	l := logrus.New()
	l.SetOutput(file)
	l.SetFormatter(formatter(viper.GetBool(key.LogsJson)))
	if level, err := logrus.ParseLevel(viper.GetString(key.LogsLevel)); err == nil {
		l.SetLevel(level)
	} else {
		l.SetLevel(logrus.InfoLevel)
	}

	logger = l
	return nil
}

func formatter(asJson bool) logrus.Formatter {
	if asJson {
		return &logrus.JSONFormatter{}
	}
	return &logrus.TextFormatter{DisableColors: true, FullTimestamp: true}
}

// With returns an entry carrying fields.
func With(fields Fields) *logrus.Entry {
	return logger.WithFields(fields)
}

func Error(args ...any) { logger.Error(args...) }

func Warnf(format string, args ...any) { logger.Warnf(format, args...) }

func Infof(format string, args ...any) { logger.Infof(format, args...) }
