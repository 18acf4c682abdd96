// Package activity writes a human-readable, size-rotated log of desktop
// actions: windows opening and closing, trash traffic, gallery uploads and
// terminal commands.
package activity

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// LogLevel defines the logging verbosity.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ActionType names a logged desktop action.
type ActionType string

const (
	ActionWindowOpen    ActionType = "WINDOW-OPEN"
	ActionWindowClose   ActionType = "WINDOW-CLOSE"
	ActionWindowFocus   ActionType = "WINDOW-FOCUS"
	ActionWindowSection ActionType = "WINDOW-SECTION"
	ActionTrashAdd      ActionType = "TRASH-ADD"
	ActionTrashRestore  ActionType = "TRASH-RESTORE"
	ActionTrashEmpty    ActionType = "TRASH-EMPTY"
	ActionGalleryUpload ActionType = "GALLERY-UPLOAD"
	ActionGalleryDelete ActionType = "GALLERY-DELETE"
	ActionGalleryError  ActionType = "GALLERY-ERROR"
	ActionTerminalExec  ActionType = "TERMINAL-EXEC"
)

func actionLevel(action ActionType) LogLevel {
	switch action {
	case ActionWindowFocus, ActionWindowSection, ActionTerminalExec:
		return LevelDebug
	case ActionGalleryError:
		return LevelWarn
	default:
		return LevelInfo
	}
}

// Config holds logger settings. PreviewLength caps free-text values such as
// terminal input.
type Config struct {
	Enabled       bool
	Level         LogLevel
	FilePath      string
	MaxSizeMB     int
	MaxFiles      int
	PreviewLength int
}

// Logger appends action lines to a file, rotating it by size.
type Logger struct {
	mu          sync.Mutex
	file        *os.File
	config      Config
	currentSize int64
	now         func() time.Time
}

// NewLogger opens the log file. A disabled config yields a Logger whose Log
// is a no-op.
func NewLogger(cfg Config) (*Logger, error) {
	l := &Logger{config: cfg, now: time.Now}
	if !cfg.Enabled {
		return l, nil
	}

	dir := filepath.Dir(cfg.FilePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
	}
	if err := l.open(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Logger) open() error {
	f, err := os.OpenFile(l.config.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", l.config.FilePath, err)
	}
	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to stat log file: %w", err)
	}
	l.file = f
	l.currentSize = stat.Size()
	return nil
}

// Log records one action. subject is the app or item id the action concerns
// and may be empty.
func (l *Logger) Log(action ActionType, subject string, details map[string]any) {
	if l == nil || !l.config.Enabled || actionLevel(action) < l.config.Level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return
	}
	if max := int64(l.config.MaxSizeMB) * 1024 * 1024; max > 0 && l.currentSize >= max {
		if err := l.rotate(); err != nil {
			fmt.Fprintf(os.Stderr, "activity log rotation failed: %v\n", err)
		}
		if l.file == nil {
			return
		}
	}

	n, err := l.file.WriteString(l.format(action, subject, details))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to write activity log entry: %v\n", err)
		return
	}
	l.currentSize += int64(n)
}

func (l *Logger) format(action ActionType, subject string, details map[string]any) string {
	var sb strings.Builder
	sb.WriteString(l.now().Format("2006-01-02 15:04:05"))
	sb.WriteString(" [")
	sb.WriteString(string(action))
	sb.WriteString("]")
	if subject != "" {
		sb.WriteString(" id=")
		sb.WriteString(subject)
	}

	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch v := details[k].(type) {
		case string:
			fmt.Fprintf(&sb, " %s=%q", k, Truncate(v, l.config.PreviewLength))
		case []string:
			fmt.Fprintf(&sb, " %s=%s", k, strings.Join(v, ","))
		default:
			fmt.Fprintf(&sb, " %s=%v", k, v)
		}
	}
	sb.WriteString("\n")
	return sb.String()
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// rotate shifts activity.log.N to .N+1, dropping the oldest, and reopens a
// fresh file. MaxFiles rotated files are kept.
func (l *Logger) rotate() error {
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}

	base := l.config.FilePath
	if l.config.MaxFiles > 0 {
		os.Remove(fmt.Sprintf("%s.%d", base, l.config.MaxFiles))
		for i := l.config.MaxFiles - 1; i >= 1; i-- {
			os.Rename(fmt.Sprintf("%s.%d", base, i), fmt.Sprintf("%s.%d", base, i+1))
		}
		if err := os.Rename(base, base+".1"); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to rotate log file: %w", err)
		}
	} else if err := os.Remove(base); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to truncate log file: %w", err)
	}

	if err := l.open(); err != nil {
		return err
	}
	l.currentSize = 0
	return nil
}

// ParseLogLevel converts a config string to a LogLevel. Unknown values map
// to info.
func ParseLogLevel(s string) LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Truncate shortens s to maxLen runes followed by "...".
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if maxLen <= 0 || len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
