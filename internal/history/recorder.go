package history

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/example/snipmark/internal/scene"
)

// DebounceInterval is how long a continuous edit may sit pending before it
// is committed to the log.
const DebounceInterval = 180 * time.Millisecond

// Snapshotter is the part of the scene the recorder needs: serializing the
// current state and restoring an earlier one.
type Snapshotter interface {
	Serialize() ([]byte, error)
	Restore(snapshot []byte) error
}

// Recorder turns scene change notifications into log entries. Discrete
// changes are committed immediately; continuous changes are coalesced so a
// drag produces one entry instead of hundreds. Undo and redo flush any
// pending entry first so the gesture in flight is never lost.
type Recorder struct {
	mu       sync.Mutex
	log      *Log
	target   Snapshotter
	pending  []byte
	timer    *time.Timer
	interval time.Duration

	// reregister runs once when a restore fails with an unknown object
	// kind, before the single retry.
	reregister func()
}

// NewRecorder returns a recorder feeding the given log from target. The
// initial state of target is serialized as the baseline entry.
func NewRecorder(l *Log, target Snapshotter) *Recorder {
	r := &Recorder{
		log:        l,
		target:     target,
		interval:   DebounceInterval,
		reregister: scene.RegisterDefaults,
	}
	if snapshot, err := target.Serialize(); err == nil {
		l.Push(snapshot)
	} else {
		log.Printf("history: baseline snapshot failed: %v", err)
	}
	return r
}

// Record captures the current state of the target for the given change.
// Discrete changes commit immediately; continuous changes replace any
// pending snapshot and restart the debounce timer.
func (r *Recorder) Record(c scene.Change) {
	snapshot, err := r.target.Serialize()
	if err != nil {
		log.Printf("history: snapshot failed: %v", err)
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.Kind == scene.ChangeDiscrete {
		r.commitLocked()
		r.log.Push(snapshot)
		return
	}
	r.pending = snapshot
	if r.timer != nil {
		r.timer.Stop()
	}
	r.timer = time.AfterFunc(r.interval, r.flushTimer)
}

func (r *Recorder) flushTimer() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commitLocked()
}

// commitLocked pushes the pending snapshot, if any. Caller holds mu.
func (r *Recorder) commitLocked() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	if r.pending == nil {
		return
	}
	r.log.Push(r.pending)
	r.pending = nil
}

// Flush commits any pending continuous edit immediately.
func (r *Recorder) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commitLocked()
}

// CanUndo reports whether undo would change the target. A pending edit
// counts: it commits on undo.
func (r *Recorder) CanUndo() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending != nil || r.log.CanUndo()
}

// CanRedo reports whether redo would change the target.
func (r *Recorder) CanRedo() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending == nil && r.log.CanRedo()
}

// Undo flushes any pending edit, steps the log back, and restores the
// target. The target is left unchanged when the restore fails.
func (r *Recorder) Undo() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commitLocked()
	snapshot, err := r.log.Undo()
	if err != nil {
		return err
	}
	if err := r.restore(snapshot); err != nil {
		r.log.Redo() // put the cursor back
		return err
	}
	return nil
}

// Redo flushes any pending edit, steps the log forward, and restores the
// target.
func (r *Recorder) Redo() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commitLocked()
	snapshot, err := r.log.Redo()
	if err != nil {
		return err
	}
	if err := r.restore(snapshot); err != nil {
		r.log.Undo()
		return err
	}
	return nil
}

// restore applies a snapshot, retrying once after re-registering decoders
// when the failure is an unknown object kind.
func (r *Recorder) restore(snapshot []byte) error {
	err := r.target.Restore(snapshot)
	if err == nil {
		return nil
	}
	if errors.Is(err, scene.ErrUnknownKind) && r.reregister != nil {
		r.reregister()
		if retryErr := r.target.Restore(snapshot); retryErr == nil {
			return nil
		}
	}
	return err
}
