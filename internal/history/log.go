// Package history keeps a bounded undo log of scene snapshots and the
// recorder that feeds it from scene change notifications.
package history

import (
	"bytes"
	"errors"
)

// DefaultLimit bounds the number of retained snapshots.
const DefaultLimit = 50

var (
	// ErrNothingToUndo reports an undo with no earlier snapshot.
	ErrNothingToUndo = errors.New("history: nothing to undo")
	// ErrNothingToRedo reports a redo with no later snapshot.
	ErrNothingToRedo = errors.New("history: nothing to redo")
)

// Log is a bounded stack of snapshots with a cursor at the current one.
// Pushing while the cursor is behind the top discards the redo tail. Log is
// not safe for concurrent use.
type Log struct {
	entries [][]byte
	cursor  int
	limit   int
}

// NewLog returns an empty log retaining at most limit snapshots. A limit
// below one falls back to DefaultLimit.
func NewLog(limit int) *Log {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &Log{cursor: -1, limit: limit}
}

// Push appends a snapshot and moves the cursor to it. A snapshot
// byte-identical to the current one is dropped. When the log is full the
// oldest snapshot is evicted.
func (l *Log) Push(snapshot []byte) {
	if l.cursor >= 0 && bytes.Equal(l.entries[l.cursor], snapshot) {
		return
	}
	l.entries = append(l.entries[:l.cursor+1], snapshot)
	l.cursor++
	if len(l.entries) > l.limit {
		n := len(l.entries) - l.limit
		l.entries = l.entries[n:]
		l.cursor -= n
	}
}

// CanUndo reports whether an earlier snapshot exists.
func (l *Log) CanUndo() bool { return l.cursor > 0 }

// CanRedo reports whether a later snapshot exists.
func (l *Log) CanRedo() bool { return l.cursor >= 0 && l.cursor < len(l.entries)-1 }

// Undo moves the cursor back one snapshot and returns it.
func (l *Log) Undo() ([]byte, error) {
	if !l.CanUndo() {
		return nil, ErrNothingToUndo
	}
	l.cursor--
	return l.entries[l.cursor], nil
}

// Redo moves the cursor forward one snapshot and returns it.
func (l *Log) Redo() ([]byte, error) {
	if !l.CanRedo() {
		return nil, ErrNothingToRedo
	}
	l.cursor++
	return l.entries[l.cursor], nil
}

// Len returns the number of retained snapshots.
func (l *Log) Len() int { return len(l.entries) }

// Reset discards all snapshots.
func (l *Log) Reset() {
	l.entries = nil
	l.cursor = -1
}
