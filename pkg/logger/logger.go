package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// Leveled stdout logger for the data service.
// - zero external deps
// - level set once at startup via Init (LOG_LEVEL env: debug|info|warn|error|fatal)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var (
	mu  sync.RWMutex
	out *log.Logger = log.New(os.Stdout, "", 0)
	min Level       = LevelInfo
)

// Init sets the global log level (case-insensitive). Unknown values fall back to Info.
func Init(l string) {
	mu.Lock()
	defer mu.Unlock()
	switch strings.ToLower(strings.TrimSpace(l)) {
	case "debug":
		min = LevelDebug
	case "warn", "warning":
		min = LevelWarn
	case "error":
		min = LevelError
	case "fatal":
		min = LevelFatal
	default:
		min = LevelInfo
	}
}

func enabled(l Level) bool {
	mu.RLock()
	defer mu.RUnlock()
	return l >= min
}

func emit(lvl string, format string, v ...interface{}) {
	prefix := fmt.Sprintf("%s [%s] ", time.Now().Format(time.RFC3339), strings.ToUpper(lvl))
	out.Printf(prefix+format, v...)
}

func Debugf(format string, v ...interface{}) {
	if enabled(LevelDebug) {
		emit("debug", format, v...)
	}
}

func Infof(format string, v ...interface{}) {
	if enabled(LevelInfo) {
		emit("info", format, v...)
	}
}

func Warnf(format string, v ...interface{}) {
	if enabled(LevelWarn) {
		emit("warn", format, v...)
	}
}

func Errorf(format string, v ...interface{}) {
	if enabled(LevelError) {
		emit("error", format, v...)
	}
}

func Fatalf(format string, v ...interface{}) {
	emit("fatal", format, v...)
	os.Exit(1)
}

// single-string convenience helpers
func Debug(v string) { Debugf("%s", v) }
func Info(v string)  { Infof("%s", v) }
func Warn(v string)  { Warnf("%s", v) }
func Error(v string) { Errorf("%s", v) }

// LevelString returns the current minimum level as text.
func LevelString() string {
	mu.RLock()
	defer mu.RUnlock()
	switch min {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	}
	return "info"
}
