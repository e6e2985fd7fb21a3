// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package clap

// logring.go implements the logging ring buffer and its flush protocol
// (§4.3), grounded on the sink-composition idea in
// r3e-network-service_layer/pkg/logger/logger.go (multiple output
// destinations fed from one logger) generalized to the source's
// independent-read-cursor model.

import "time"

// Level is a log record's severity, ordered low (verbose) to high.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "trace"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// LogEntry is one ring-buffer record (§3 "Log entry").
type LogEntry struct {
	Time    time.Time
	Module  string
	Func    string
	Line    int
	Level   Level
	Payload string
}

// Sink receives flushed log records. FilterLevel gates which records it
// is offered; FillThreshold is the number of buffered-and-unread records
// that forces a flush even if nothing else triggered one yet.
type Sink struct {
	FilterLevel  Level
	FillThreshold int
	Flush        func(e *LogEntry)

	cursor          int // sequence number of the last record this sink observed; -1 before first.
	filledSinceRead int
}

func (s *Sink) needsFlush(totalWritten, capacity int) bool {
	if s.cursor == -1 {
		return true
	}
	oldestAlive := 0
	if totalWritten > capacity {
		oldestAlive = totalWritten - capacity
	}
	if s.cursor < oldestAlive {
		return true // the slot about to be overwritten hasn't been read by this sink.
	}
	return s.filledSinceRead >= s.FillThreshold && s.FillThreshold > 0
}

// Ring is a fixed-capacity log ring buffer. Each slot holds one owned
// record; a record is retained until every sink has observed it.
type Ring struct {
	capacity     int
	slots        []*LogEntry // indexed by seq % capacity
	totalWritten int
	sinks        []*Sink
}

// NewRing creates a ring of the given fixed capacity.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = 256
	}
	return &Ring{capacity: capacity, slots: make([]*LogEntry, capacity)}
}

// AddSink registers a sink. Its cursor starts "before first record".
func (r *Ring) AddSink(s *Sink) {
	s.cursor = -1
	r.sinks = append(r.sinks, s)
}

// RemoveSink unregisters a previously added sink.
func (r *Ring) RemoveSink(s *Sink) {
	for i, sink := range r.sinks {
		if sink == s {
			r.sinks = append(r.sinks[:i], r.sinks[i+1:]...)
			return
		}
	}
}

// Write appends a new record, running the flush protocol first: every
// sink that needs to flush (uninitialized cursor, about to lose an
// unread record, or past its fill threshold) emits its backlog in order
// before the new record overwrites anything.
func (r *Ring) Write(e *LogEntry) {
	for _, s := range r.sinks {
		if s.needsFlush(r.totalWritten, r.capacity) {
			r.flushSink(s)
		}
	}
	r.slots[r.totalWritten%r.capacity] = e
	r.totalWritten++
	for _, s := range r.sinks {
		s.filledSinceRead++
	}
}

// flushSink emits every record between s.cursor (exclusive) and the most
// recently written record (inclusive) to s.Flush, in order, then
// advances its cursor and resets its fill counter.
func (r *Ring) flushSink(s *Sink) {
	oldestAlive := 0
	if r.totalWritten > r.capacity {
		oldestAlive = r.totalWritten - r.capacity
	}
	start := s.cursor + 1
	if start < oldestAlive {
		start = oldestAlive // records older than this are already gone.
	}
	for seq := start; seq < r.totalWritten; seq++ {
		rec := r.slots[seq%r.capacity]
		if rec == nil {
			continue
		}
		if rec.Level < s.FilterLevel {
			continue
		}
		s.Flush(rec)
	}
	s.cursor = r.totalWritten - 1
	s.filledSinceRead = 0
}

// FlushAll forces every sink to observe all currently buffered records,
// regardless of threshold. Used at shutdown so nothing pending is lost.
func (r *Ring) FlushAll() {
	for _, s := range r.sinks {
		r.flushSink(s)
	}
}
