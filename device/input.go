// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package device

// input turns a stream of key/mouse/touch events into a pollable
// Pressed snapshot, grounded on the teacher's recordPress/recordRelease/
// updateDurations/clone pipeline. The native OS event source is out of
// scope (see device.go's package doc); events instead arrive through
// Inject, called either by a future native binding or by the core's
// fuzzer for synthetic input injection (§4.10).
type input struct {
	curr *Pressed // accumulates events as they arrive.
	down *Pressed // snapshot handed out by poll, reused across polls.
}

func newInput() *input {
	return &input{
		curr: &Pressed{Focus: true, Down: map[string]int{}},
		down: &Pressed{Focus: true, Down: map[string]int{}},
	}
}

// Event is a single key/button press or release event, or a
// mouse/touch move, focus change, or resize. Key is empty for events
// that only update cursor/scroll/focus/resize state.
type Event struct {
	Key      string // non-empty for a press/release event.
	Pressed  bool   // true for press, false for release; ignored if Key is empty.
	Mx, My   int
	Scroll   int
	Focus    *bool // non-nil to set focus state.
	Resized  bool
}

// Inject applies ev to the accumulating input state. Called once per
// discrete event between polls.
func (i *input) Inject(ev Event) {
	i.curr.Mx, i.curr.My = ev.Mx, ev.My
	i.curr.Scroll += ev.Scroll
	if ev.Focus != nil {
		i.curr.Focus = *ev.Focus
	}
	if ev.Resized {
		i.curr.Resized = true
	}
	if ev.Key == "" {
		return
	}
	if ev.Pressed {
		i.recordPress(ev.Key)
	} else {
		i.recordRelease(ev.Key)
	}
}

// recordPress tracks a new key or mouse-button down event.
func (i *input) recordPress(key string) {
	if _, ok := i.curr.Down[key]; !ok {
		i.curr.Down[key] = 0
	}
}

// recordRelease tracks a key or mouse-button up event.
func (i *input) recordRelease(key string) {
	if v, ok := i.curr.Down[key]; ok {
		i.curr.Down[key] = v + KeyReleased
	}
}

// updateDurations advances how long currently-held keys have been
// pressed, measured in update ticks. Released keys are left alone;
// poll removes them after reporting.
func (i *input) updateDurations() {
	for key, v := range i.curr.Down {
		if v >= 0 {
			i.curr.Down[key] = v + 1
		}
	}
}

// poll snapshots the accumulated input into a structure the caller may
// freely read, then clears one-shot state (scroll, resize) and drops
// released keys so they are reported exactly once.
func (i *input) poll() *Pressed {
	i.updateDurations()
	for key := range i.down.Down {
		delete(i.down.Down, key)
	}
	for key, v := range i.curr.Down {
		i.down.Down[key] = v
		if v < 0 {
			delete(i.curr.Down, key)
		}
	}
	i.down.Mx, i.down.My = i.curr.Mx, i.curr.My
	i.down.Focus = i.curr.Focus
	i.down.Resized = i.curr.Resized
	i.down.Scroll = i.curr.Scroll

	i.curr.Resized = false
	i.curr.Scroll = 0
	return i.down
}
