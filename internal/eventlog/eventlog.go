// Package eventlog implements the append-only JSONL durability log that is
// the store's source of truth. One serialized MemoryRecordEvent per line;
// appends are sequential and single-writer by contract.
package eventlog

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/danielmriley/aigent-sub002/internal/domain"
)

// Log wraps a single JSONL file. All mutating calls must be serialized by
// the owning manager; the log itself holds no lock.
type Log struct {
	path string
}

func New(path string) *Log {
	return &Log{path: path}
}

func (l *Log) Path() string {
	return l.path
}

// Append writes one event as a single JSON line, creating parent
// directories as needed.
func (l *Log) Append(event domain.MemoryRecordEvent) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}

	line, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync log: %w", err)
	}
	return nil
}

// Overwrite atomically replaces the log contents with the given ordered
// events. The new content goes to a .tmp sibling first, is fsync'd, then
// renamed over the original, so a crash at any point leaves either the old
// or the new complete file — never a truncated one.
func (l *Log) Overwrite(events []domain.MemoryRecordEvent) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}

	tmpPath := l.path + ".tmp"
	if err := l.writeAll(tmpPath, events); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, l.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace log: %w", err)
	}
	return nil
}

func (l *Log) writeAll(path string, events []domain.MemoryRecordEvent) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open temp log: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, event := range events {
		line, err := json.Marshal(event)
		if err != nil {
			f.Close()
			return fmt.Errorf("encode event: %w", err)
		}
		if _, err := w.Write(append(line, '\n')); err != nil {
			f.Close()
			return fmt.Errorf("write event: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush temp log: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync temp log: %w", err)
	}
	return f.Close()
}

// Load returns all events in file order, which equals temporal order for an
// append-only log. An absent file yields an empty slice. A malformed line
// fails the whole load: partial recovery would silently drop history.
func (l *Log) Load() ([]domain.MemoryRecordEvent, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer f.Close()

	var events []domain.MemoryRecordEvent
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var event domain.MemoryRecordEvent
		if err := json.Unmarshal(line, &event); err != nil {
			return nil, fmt.Errorf("decode log line %d: %w", lineNo, err)
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	return events, nil
}

// Backup copies the live log to a .bak sibling. Called before each sleep
// cycle so a pre-sleep snapshot exists even if the cycle crashes mid-write.
// A missing source file is a no-op.
func (l *Log) Backup() error {
	src, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("open log for backup: %w", err)
	}
	defer src.Close()

	dst, err := os.OpenFile(l.path+".bak", os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open backup: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("copy backup: %w", err)
	}
	return nil
}
