package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/mitchellh/go-homedir"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger provides structured debug logging for uiverify components.
// All components of one process share a single JSON log file,
// ~/.uiverify/logs/<run-id>-uiverify.log by default, rotated by lumberjack.
//
// All log methods (Debugf, Infof, Warnf, Errorf) write unconditionally.
// Console output for humans is the runner's Reporter, not this logger.
type Logger struct {
	runID     string
	component string
	sugar     *zap.SugaredLogger
	logPath   string
	closeOnce sync.Once
}

// Options configures the shared log sink. Zero values keep the defaults.
type Options struct {
	Dir        string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

var (
	// Global run ID for the current execution
	runID     string
	runIDOnce sync.Once

	// logDir is the directory where log files are stored
	logDir string

	options Options

	// initOnce ensures directory and sink initialization happens once
	initOnce sync.Once

	// initErr stores any error from initialization
	initErr error

	// sink is the rotating file writer shared by every component logger
	sink *lumberjack.Logger
	base *zap.Logger
)

// Configure sets sink options. It only has an effect before the first
// NewLogger call.
func Configure(opts Options) {
	options = opts
}

// getRunID returns or creates the run ID for this execution
func getRunID() string {
	runIDOnce.Do(func() {
		runID = uuid.New().String()
	})
	return runID
}

// initSink ensures the log directory exists and opens the shared writer
func initSink() error {
	initOnce.Do(func() {
		dir := options.Dir
		if dir == "" {
			if logDir != "" {
				dir = logDir
			} else {
				home, err := homedir.Dir()
				if err != nil {
					initErr = fmt.Errorf("failed to get home directory: %w", err)
					return
				}
				dir = filepath.Join(home, ".uiverify", "logs")
			}
		}

		if err := os.MkdirAll(dir, 0750); err != nil {
			initErr = fmt.Errorf("failed to create log directory: %w", err)
			return
		}
		logDir = dir

		sink = &lumberjack.Logger{
			Filename:   filepath.Join(dir, fmt.Sprintf("%s-uiverify.log", getRunID())),
			MaxSize:    valueOr(options.MaxSizeMB, 10),
			MaxBackups: valueOr(options.MaxBackups, 3),
			MaxAge:     valueOr(options.MaxAgeDays, 14),
		}

		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(sink), zapcore.DebugLevel)
		base = zap.New(core).With(zap.String("run_id", getRunID()))
	})
	return initErr
}

// NewLogger creates a new logger for a specific component.
//
// If the log directory cannot be created, it returns a fallback logger that
// writes to stderr along with the error. Callers can check the error to
// detect fallback mode and log warnings.
func NewLogger(component string) (*Logger, error) {
	if err := initSink(); err != nil {
		return newFallbackLogger(component, err), err
	}

	return &Logger{
		runID:     getRunID(),
		component: component,
		sugar:     base.Named(component).Sugar(),
		logPath:   sink.Filename,
	}, nil
}

// newFallbackLogger creates a logger that writes to stderr when file logging fails
func newFallbackLogger(component string, err error) *Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), zapcore.DebugLevel)
	l := zap.New(core).Named(component).Sugar()
	l.Warnf("failed to initialize file logging: %v", err)
	l.Warnf("falling back to stderr logging")

	return &Logger{
		runID:     getRunID(),
		component: component,
		sugar:     l,
	}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{
		runID:     getRunID(),
		component: "nop",
		sugar:     zap.NewNop().Sugar(),
	}
}

// With returns a child logger that adds the key/value pair to every entry.
func (l *Logger) With(key string, value interface{}) *Logger {
	return &Logger{
		runID:     l.runID,
		component: l.component,
		sugar:     l.sugar.With(key, value),
		logPath:   l.logPath,
	}
}

// Debugf logs a debug-level message
func (l *Logger) Debugf(format string, v ...interface{}) {
	l.sugar.Debugf(format, v...)
}

// Infof logs an info-level message
func (l *Logger) Infof(format string, v ...interface{}) {
	l.sugar.Infof(format, v...)
}

// Warnf logs a warning-level message
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.sugar.Warnf(format, v...)
}

// Errorf logs an error-level message
func (l *Logger) Errorf(format string, v ...interface{}) {
	l.sugar.Errorf(format, v...)
}

// RunID returns the run ID shared by every logger of this process
func (l *Logger) RunID() string {
	return l.runID
}

// LogPath returns the path to the log file, or "" in fallback mode
func (l *Logger) LogPath() string {
	return l.logPath
}

// Close flushes buffered entries. Safe to call multiple times.
func (l *Logger) Close() error {
	var err error
	l.closeOnce.Do(func() {
		// Syncing stderr returns EINVAL on some platforms
		if l.logPath != "" {
			err = l.sugar.Sync()
		}
	})
	return err
}

// Shutdown closes the shared log file. Loggers created before Shutdown
// must not be used afterwards.
func Shutdown() error {
	if sink == nil {
		return nil
	}
	return sink.Close()
}

// GetRunID returns the current global run ID
func GetRunID() string {
	return getRunID()
}

// GetLogDirectory returns the directory where logs are stored
func GetLogDirectory() (string, error) {
	if err := initSink(); err != nil {
		return "", err
	}
	return logDir, nil
}

func valueOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
