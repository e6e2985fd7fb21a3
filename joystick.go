// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package clap

// joystick.go implements the joystick model of §4.10: a fixed-capacity
// array of joystick slots, axes zeroed at attach and reported as deltas
// with a dead zone, and button state transitions derived from a
// previous-state bitmask. The platform-specific event source lives in
// joystick_linux.go (golang.org/x/sys/unix against /dev/input/jsX);
// other platforms poll no slots, which is harmless since an empty
// joystick array is a valid, fully-functional configuration.

const (
	joystickMaxSlots = 4  // fixed capacity, §4.10 "fixed-capacity array of joystick slots".
	joystickMaxAxes  = 8  // per-slot axis capacity.
	joystickMaxButtons = 16
	joystickDeadZone = 0.2
)

// ButtonTransition is the state transition a button made this poll,
// derived from comparing the current pressed bitmask to the previous
// one (§4.10 "Buttons carry state transitions {press, hold, release,
// none}").
type ButtonTransition int

const (
	ButtonNone ButtonTransition = iota
	ButtonPress
	ButtonHold
	ButtonRelease
)

// joystickSource is the platform event feed a slot polls from.
type joystickSource interface {
	// poll returns the latest raw axis values (-1..1) and button
	// pressed bitmask, or ok=false if the device has been detached.
	poll() (axes [joystickMaxAxes]float64, buttons uint32, ok bool)
	// id identifies the underlying device (e.g. its device file path),
	// used to avoid attaching the same physical device to two slots.
	id() string
	close()
}

// joystickSlot tracks one attached joystick: its per-axis zero
// (captured once at attach) and previous button bitmask.
type joystickSlot struct {
	source   joystickSource
	zero     [joystickMaxAxes]float64
	attached bool
	lastButtons uint32
	axes     [joystickMaxAxes]float64
	transitions [joystickMaxButtons]ButtonTransition
}

// attach captures the current axis readings as this slot's zero point
// (§4.10 "axes are captured once at attach to form a per-axis zero").
func (s *joystickSlot) attach(src joystickSource) {
	s.source = src
	axes, buttons, ok := src.poll()
	if !ok {
		s.source = nil
		return
	}
	s.zero = axes
	s.lastButtons = buttons
	s.attached = true
}

func (s *joystickSlot) detach() {
	if s.source != nil {
		s.source.close()
	}
	*s = joystickSlot{}
}

// poll reads the latest raw state and derives zero-relative, dead-zoned
// axis deltas plus per-button transitions.
func (s *joystickSlot) poll() {
	if !s.attached {
		return
	}
	raw, buttons, ok := s.source.poll()
	if !ok {
		s.detach()
		return
	}
	for i := range raw {
		delta := raw[i] - s.zero[i]
		if delta > -joystickDeadZone && delta < joystickDeadZone {
			delta = 0
		}
		s.axes[i] = delta
	}
	for b := 0; b < joystickMaxButtons; b++ {
		mask := uint32(1) << uint(b)
		was := s.lastButtons&mask != 0
		is := buttons&mask != 0
		switch {
		case !was && is:
			s.transitions[b] = ButtonPress
		case was && is:
			s.transitions[b] = ButtonHold
		case was && !is:
			s.transitions[b] = ButtonRelease
		default:
			s.transitions[b] = ButtonNone
		}
	}
	s.lastButtons = buttons
}

// joysticks is the fixed-capacity slot array (§4.10).
type joysticks struct {
	slots [joystickMaxSlots]joystickSlot
}

// poll advances every attached slot and, if any slot is free, scans for
// newly available devices to fill it. Sources that don't end up
// claiming a slot are closed immediately so scanning never leaks file
// descriptors.
func (j *joysticks) poll() {
	for i := range j.slots {
		j.slots[i].poll()
	}

	free := -1
	claimed := map[string]bool{}
	for i := range j.slots {
		if !j.slots[i].attached {
			if free == -1 {
				free = i
			}
			continue
		}
		if j.slots[i].source != nil {
			claimed[j.slots[i].source.id()] = true
		}
	}
	if free == -1 {
		return
	}
	for _, src := range scanJoystickSources(claimed) {
		if free != -1 && !claimed[src.id()] {
			j.slots[free].attach(src)
			claimed[src.id()] = true
			free = -1
			for i := range j.slots {
				if !j.slots[i].attached {
					free = i
					break
				}
			}
			continue
		}
		src.close()
	}
}

// combinedAxes sums zero-relative axis deltas across all attached
// slots, clamped to [-1, 1]. Callers needing per-slot detail should
// read Slot directly instead.
func (j *joysticks) combinedAxes() (out [joystickMaxAxes]float64) {
	for i := range j.slots {
		if !j.slots[i].attached {
			continue
		}
		for a, v := range j.slots[i].axes {
			out[a] += v
			if out[a] > 1 {
				out[a] = 1
			}
			if out[a] < -1 {
				out[a] = -1
			}
		}
	}
	return out
}

// Slot exposes one joystick slot's state for code that needs per-device
// detail (e.g. menu navigation bound to a specific gamepad).
func (j *joysticks) Slot(i int) (axes [joystickMaxAxes]float64, transitions [joystickMaxButtons]ButtonTransition, attached bool) {
	if i < 0 || i >= joystickMaxSlots {
		return axes, transitions, false
	}
	s := &j.slots[i]
	return s.axes, s.transitions, s.attached
}
