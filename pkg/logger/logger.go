/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/lmittmann/tint"
	"golang.org/x/term"
)

var (
	log  *slog.Logger
	mu   sync.RWMutex
	once sync.Once
)

const DateTimeMilli = "2006-01-02 15:04:05.000"

// ParseLevel 将 debug|info|warn|error 映射为 slog.Level，未知值按 info 处理。
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Init 根据级别初始化全局日志，输出到 stderr。
// stdout 留给命令的正式输出（如 shape 命令打印的形状串）。
func Init(level string) {
	InitWriter(os.Stderr, level)
}

// InitWriter 与 Init 相同，但输出到指定 writer；仅当 writer 为终端时启用颜色。
func InitWriter(w io.Writer, level string) {
	lvl := ParseLevel(level)
	handler := tint.NewHandler(w, &tint.Options{
		AddSource:  lvl == slog.LevelDebug,
		Level:      lvl,
		NoColor:    !isTerminal(w),
		TimeFormat: DateTimeMilli,
	})

	mu.Lock()
	log = slog.New(handler)
	mu.Unlock()
}

// isTerminal checks if the writer is a terminal that supports color output
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	// Ensure the file descriptor is within the valid int range
	if fd > uintptr(^uint(0)>>1) {
		return false
	}
	return term.IsTerminal(int(fd))
}

// ensure 初始化默认 logger（仅在第一次访问且未手动 Init 时）。
func ensure() {
	once.Do(func() {
		mu.RLock()
		initialized := log != nil
		mu.RUnlock()
		if !initialized {
			Init("info")
		}
	})
}

// Log 返回全局 logger。
func Log() *slog.Logger {
	ensure()
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// Helper wrappers
func Debug(msg string, args ...any) { Log().Debug(msg, args...) }
func Info(msg string, args ...any)  { Log().Info(msg, args...) }
func Warn(msg string, args ...any)  { Log().Warn(msg, args...) }
func Error(msg string, args ...any) { Log().Error(msg, args...) }
