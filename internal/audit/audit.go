// Package audit records phrases the command interpreter could not map to
// an intent, for later vocabulary work.
package audit

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/natefinch/lumberjack"
)

type Sink interface {
	Record(lang, phrase string) error
}

// FileSink appends "[lang] phrase" lines to a rotated file.
type FileSink struct {
	mu sync.Mutex
	w  io.WriteCloser
}

func NewFileSink(path string) *FileSink {
	return &FileSink{w: &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10,
		MaxBackups: 3,
	}}
}

func (s *FileSink) Record(lang, phrase string) error {
	line := FormatLine(lang, phrase)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := io.WriteString(s.w, line); err != nil {
		return fmt.Errorf("failed to write unmapped phrase: %w", err)
	}
	return nil
}

func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Close()
}

// FormatLine renders one log line. Line breaks inside the phrase are folded
// so every record stays on a single line.
func FormatLine(lang, phrase string) string {
	phrase = strings.Join(strings.Fields(phrase), " ")
	lang = strings.TrimSpace(lang)
	if lang == "" {
		lang = "unknown"
	}
	return fmt.Sprintf("[%s] %s\n", lang, phrase)
}

// Discard drops every record.
type Discard struct{}

func (Discard) Record(string, string) error { return nil }
