// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package clap

// timer.go implements the monotonic-time-ordered one-shot timer wheel
// (§4.5). The list is kept sorted by expiry directly (insertion cost
// O(n), acceptable for the handful of timers a frame orchestrator
// schedules) rather than reusing the generic List, because timers need
// position-based insertion a plain FIFO list doesn't offer.

// Timer is one pending callback, sorted into its wheel by Expiry.
type Timer struct {
	Expiry float64 // seconds, against the wheel's monotonic clock.
	Fn     func(t *Timer)
	Data   any

	next, prev *Timer
	wheel      *TimerWheel
}

// TimerWheel holds the doubly linked, expiry-sorted list of pending
// timers for one Context.
type TimerWheel struct {
	head, tail *Timer
	now        func() float64
}

// NewTimerWheel creates an empty wheel reading monotonic time from now.
func NewTimerWheel(now func() float64) *TimerWheel {
	return &TimerWheel{now: now}
}

// Set arms a timer to fire dt seconds from now. If existing is non-nil
// it is reused (and first detached if already scheduled) rather than
// allocating a new Timer — this is what a callback calls on itself to
// re-arm.
func (w *TimerWheel) Set(dt float64, existing *Timer, fn func(t *Timer), data any) *Timer {
	t := existing
	if t == nil {
		t = &Timer{}
	} else {
		w.remove(t)
	}
	t.Fn, t.Data, t.wheel = fn, data, w
	t.Expiry = w.now() + dt
	w.insertSorted(t)
	return t
}

// Cancel removes a timer from the wheel. Canceling an already-fired or
// already-canceled timer is a no-op.
func (w *TimerWheel) Cancel(t *Timer) {
	if t == nil {
		return
	}
	w.remove(t)
}

func (w *TimerWheel) insertSorted(t *Timer) {
	if w.head == nil {
		w.head, w.tail = t, t
		return
	}
	cur := w.head
	for cur != nil && cur.Expiry <= t.Expiry {
		cur = cur.next
	}
	if cur == nil {
		t.prev = w.tail
		w.tail.next = t
		w.tail = t
		return
	}
	t.next = cur
	t.prev = cur.prev
	if cur.prev != nil {
		cur.prev.next = t
	} else {
		w.head = t
	}
	cur.prev = t
}

func (w *TimerWheel) remove(t *Timer) {
	if t.prev == nil && t.next == nil && w.head != t {
		return // not in the list (already removed / never scheduled).
	}
	if t.prev != nil {
		t.prev.next = t.next
	} else if w.head == t {
		w.head = t.next
	}
	if t.next != nil {
		t.next.prev = t.prev
	} else if w.tail == t {
		w.tail = t.prev
	}
	t.next, t.prev = nil, nil
}

// Run detaches every timer whose Expiry has passed into a local list
// before invoking any callback, then runs them in expiry order. A
// callback may cancel or re-arm any timer, including itself, without
// disturbing this pass: the firing set was already snapshotted.
func (w *TimerWheel) Run() {
	var firing []*Timer
	now := w.now()
	for w.head != nil && w.head.Expiry <= now {
		t := w.head
		w.remove(t)
		firing = append(firing, t)
	}
	for _, t := range firing {
		t.Fn(t)
	}
}

// Len returns the number of currently scheduled timers.
func (w *TimerWheel) Len() int {
	n := 0
	for t := w.head; t != nil; t = t.next {
		n++
	}
	return n
}
