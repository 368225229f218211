package otel

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

// queueSize bounds the events waiting for the writer goroutine.
const queueSize = 4096

// EventLogName is the JSONL file name inside the dex state directory.
const EventLogName = "events.jsonl"

// queued pairs the encoded line with the event it came from, so the ring
// keeps fields the JSON form omits (Dur).
type queued struct {
	line []byte
	ev   Event
}

// Logger appends events as JSON lines from a single writer goroutine and
// mirrors them into an optional RingBuffer. Emit never blocks: when the
// queue is full or the logger is closed the event is counted as dropped.
type Logger struct {
	session string
	out     io.Writer
	file    *os.File

	ring atomic.Pointer[RingBuffer]

	// gate orders Emit against Close. Emit sends under RLock; Close takes
	// the write lock before closing queue.
	gate    sync.RWMutex
	stopped bool
	queue   chan queued
	flushed chan struct{}

	dropped atomic.Uint64
}

// NewLogger starts a logger writing to w. Close flushes and stops it.
func NewLogger(w io.Writer) *Logger {
	l := &Logger{
		session: newSessionID(),
		out:     w,
		queue:   make(chan queued, queueSize),
		flushed: make(chan struct{}),
	}
	go l.run()
	return l
}

// NewNullLogger returns a logger whose output is discarded. Events still
// reach an attached ring.
func NewNullLogger() *Logger {
	return NewLogger(io.Discard)
}

// OpenFile appends events to dir/events.jsonl, creating dir if needed.
func OpenFile(dir string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create event dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, EventLogName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}
	l := NewLogger(f)
	l.file = f
	return l, nil
}

func newSessionID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

func (l *Logger) run() {
	defer close(l.flushed)
	for q := range l.queue {
		if _, err := l.out.Write(q.line); err != nil {
			l.dropped.Add(1)
		}
		if r := l.ring.Load(); r != nil {
			r.Push(q.ev)
		}
	}
}

// Emit stamps e with the session ID (and the current time when unset) and
// queues it.
func (l *Logger) Emit(e Event) {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	e.SessionID = l.session

	line, err := json.Marshal(e)
	if err != nil {
		l.dropped.Add(1)
		return
	}
	line = append(line, '\n')

	l.gate.RLock()
	defer l.gate.RUnlock()
	if l.stopped {
		l.dropped.Add(1)
		return
	}
	select {
	case l.queue <- queued{line: line, ev: e}:
	default:
		l.dropped.Add(1)
	}
}

// Info emits an info-level event.
func (l *Logger) Info(kind EventKind, comp, msg string) {
	l.Emit(Event{Level: LevelInfo, Kind: kind, Comp: comp, Msg: msg})
}

// Warn emits a warn-level event.
func (l *Logger) Warn(kind EventKind, comp, msg string) {
	l.Emit(Event{Level: LevelWarn, Kind: kind, Comp: comp, Msg: msg})
}

// Error emits an error-level event. A nil err leaves Err empty.
func (l *Logger) Error(kind EventKind, comp string, err error) {
	ev := Event{Level: LevelError, Kind: kind, Comp: comp}
	if err != nil {
		ev.Err = err.Error()
	}
	l.Emit(ev)
}

// SetRingBuffer mirrors subsequently written events into r. Nil detaches.
func (l *Logger) SetRingBuffer(r *RingBuffer) {
	l.ring.Store(r)
}

// Dropped returns how many events never reached the writer.
func (l *Logger) Dropped() uint64 {
	return l.dropped.Load()
}

// SessionID returns the random ID stamped on every event of this run.
func (l *Logger) SessionID() string {
	return l.session
}

// Close drains queued events and stops the writer. Later Emits are
// dropped. Safe to call more than once.
func (l *Logger) Close() {
	l.gate.Lock()
	if l.stopped {
		l.gate.Unlock()
		<-l.flushed
		return
	}
	l.stopped = true
	close(l.queue)
	l.gate.Unlock()

	<-l.flushed
	if n := l.dropped.Load(); n > 0 {
		fmt.Fprintf(os.Stderr, "dex: %d events dropped in session %s\n", n, l.session)
	}
	if l.file != nil {
		_ = l.file.Close()
	}
}

// Span times one operation. Create with Logger.Start, finish with End.
type Span struct {
	l     *Logger
	ev    Event
	start time.Time
}

// Start begins timing an operation described by ev.
func (l *Logger) Start(ev Event) *Span {
	return &Span{l: l, ev: ev, start: time.Now()}
}

// End emits the span's event with its duration and count. A non-nil err
// marks it as an error and, when errKind is set, replaces its kind.
func (s *Span) End(count int, err error, errKind EventKind) {
	ev := s.ev
	ev.Dur = time.Since(s.start)
	ev.Count = count
	if ev.Level == "" {
		ev.Level = LevelInfo
	}
	if err != nil {
		ev.Level = LevelError
		ev.Err = err.Error()
		if errKind != "" {
			ev.Kind = errKind
		}
	}
	s.l.Emit(ev)
}
