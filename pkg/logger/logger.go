package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	Path string
	// Fallback is tried when Path cannot be opened.
	Fallback string
	Level    string
	Console  bool
}

type Logger struct {
	sugar  *zap.SugaredLogger
	prefix string
}

var (
	std  *Logger
	file string
)

// Init replaces the package logger. With no path and no console output the
// logger discards everything. A log file that cannot be opened is not an
// error: Init moves on to Fallback, then to no file at all, and Path
// reports where messages end up.
func Init(opts Options) error {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return fmt.Errorf("parse log level %q: %w", opts.Level, err)
		}
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder := zapcore.NewConsoleEncoder(encCfg)

	var cores []zapcore.Core
	if opts.Console {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(os.Stderr)), level))
	}

	file = ""
	var fileErr error
	for _, path := range []string{opts.Path, opts.Fallback} {
		if path == "" {
			continue
		}
		w, err := openFile(path)
		if err != nil {
			if fileErr == nil {
				fileErr = err
			}
			continue
		}
		cores = append(cores, zapcore.NewCore(encoder, w, level))
		file = path
		break
	}

	z := zap.NewNop()
	if len(cores) > 0 {
		z = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(2))
	}

	std = &Logger{sugar: z.Sugar()}
	if fileErr != nil {
		Warn("log file %s unavailable: %v", opts.Path, fileErr)
	}
	return nil
}

func openFile(path string) (zapcore.WriteSyncer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return zapcore.AddSync(f), nil
}

// Path returns the log file in use, or "" when logs go nowhere on disk.
func Path() string {
	return file
}

// Zap returns the structured logger behind the package functions.
func Zap() *zap.Logger {
	if std == nil {
		return zap.NewNop()
	}
	return std.sugar.Desugar()
}

func Sync() {
	if std != nil {
		_ = std.sugar.Sync()
	}
}

func (l *Logger) log(level zapcore.Level, format string, args ...interface{}) {
	if l == nil {
		return
	}
	msg := l.prefix + fmt.Sprintf(format, args...)
	switch level {
	case zapcore.DebugLevel:
		l.sugar.Debug(msg)
	case zapcore.WarnLevel:
		l.sugar.Warn(msg)
	case zapcore.ErrorLevel:
		l.sugar.Error(msg)
	default:
		l.sugar.Info(msg)
	}
}

func (l *Logger) Debug(format string, args ...interface{}) { l.log(zapcore.DebugLevel, format, args...) }
func (l *Logger) Info(format string, args ...interface{})  { l.log(zapcore.InfoLevel, format, args...) }
func (l *Logger) Warn(format string, args ...interface{})  { l.log(zapcore.WarnLevel, format, args...) }
func (l *Logger) Error(format string, args ...interface{}) { l.log(zapcore.ErrorLevel, format, args...) }

func Debug(format string, args ...interface{}) {
	std.log(zapcore.DebugLevel, format, args...)
}

func Info(format string, args ...interface{}) {
	std.log(zapcore.InfoLevel, format, args...)
}

func Warn(format string, args ...interface{}) {
	std.log(zapcore.WarnLevel, format, args...)
}

func Error(format string, args ...interface{}) {
	std.log(zapcore.ErrorLevel, format, args...)
}

// With returns a logger that tags every message with [prefix]. It is safe
// to call before Init; the result then discards output.
func With(prefix string) *Logger {
	if std == nil {
		return nil
	}
	return &Logger{
		sugar:  std.sugar,
		prefix: fmt.Sprintf("%s[%s] ", std.prefix, prefix),
	}
}
