// Package logbuf keeps a bounded, newest-first log of display entries.
//
// A Buffer backs one display surface (the load log, a response area). It is
// never persisted: once an entry falls off the end it is gone.
package logbuf

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// DefaultCapacity is the number of entries a surface keeps.
const DefaultCapacity = 50

// Severity tags an entry for display.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Entry is a single formatted log line.
type Entry struct {
	Time     time.Time `json:"time"`
	Severity Severity  `json:"severity"`
	Message  string    `json:"message"`
}

// String renders the entry as "[15:04:05] SEVERITY: message".
func (e Entry) String() string {
	return fmt.Sprintf("[%s] %s: %s", e.Time.Format("15:04:05"), strings.ToUpper(string(e.Severity)), e.Message)
}

// Buffer is a fixed-capacity ring of entries. It is safe for concurrent use.
type Buffer struct {
	mu       sync.Mutex
	entries  []Entry // newest first
	capacity int
	now      func() time.Time
	hooks    []func(Entry)
}

// New creates a Buffer holding at most capacity entries. A capacity <= 0
// uses DefaultCapacity.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{
		entries:  make([]Entry, 0, capacity),
		capacity: capacity,
		now:      time.Now,
	}
}

// WithClock replaces the timestamp source.
func (b *Buffer) WithClock(now func() time.Time) *Buffer {
	b.mu.Lock()
	b.now = now
	b.mu.Unlock()
	return b
}

// Subscribe registers fn to be called, outside the lock, after every append.
func (b *Buffer) Subscribe(fn func(Entry)) {
	b.mu.Lock()
	b.hooks = append(b.hooks, fn)
	b.mu.Unlock()
}

// Append adds an entry at the front, dropping the oldest when full.
func (b *Buffer) Append(sev Severity, msg string) Entry {
	b.mu.Lock()
	entry := Entry{Time: b.now(), Severity: sev, Message: msg}

	if len(b.entries) < b.capacity {
		b.entries = append(b.entries, Entry{})
	}
	copy(b.entries[1:], b.entries[:len(b.entries)-1])
	b.entries[0] = entry

	hooks := make([]func(Entry), len(b.hooks))
	copy(hooks, b.hooks)
	b.mu.Unlock()

	for _, fn := range hooks {
		fn(entry)
	}
	return entry
}

// Infof appends an info entry.
func (b *Buffer) Infof(format string, args ...interface{}) {
	b.Append(SeverityInfo, fmt.Sprintf(format, args...))
}

// Warnf appends a warning entry.
func (b *Buffer) Warnf(format string, args ...interface{}) {
	b.Append(SeverityWarning, fmt.Sprintf(format, args...))
}

// Errorf appends an error entry.
func (b *Buffer) Errorf(format string, args ...interface{}) {
	b.Append(SeverityError, fmt.Sprintf(format, args...))
}

// Entries returns a copy of the entries, newest first.
func (b *Buffer) Entries() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Len returns the number of entries held.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Cap returns the buffer capacity.
func (b *Buffer) Cap() int {
	return b.capacity
}

// Clear drops every entry.
func (b *Buffer) Clear() {
	b.mu.Lock()
	b.entries = b.entries[:0]
	b.mu.Unlock()
}

// String joins the entries, newest first, separated by blank lines.
func (b *Buffer) String() string {
	entries := b.Entries()
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = e.String()
	}
	return strings.Join(parts, "\n\n")
}
