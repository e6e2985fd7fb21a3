// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package clap

// input.go implements the platform-agnostic input pipeline (§4.10):
// InputEvent is the wide, immutable record dispatched on TopicInput;
// inputPipeline.drain converts a device.Pressed poll plus joystick
// state into one InputEvent per frame and publishes it before physics
// steps (§4.9 step 7, §5 "input messages produced during one frame are
// all dispatched before physics steps"). Grounded on the teacher's
// device.Pressed/Input.convertInput, generalized from a single struct
// copy into a bus-published message.

import (
	"github.com/onehandclap/clap/device"
)

// InputEvent is a wide record of one frame's input state: discrete
// buttons, float axes, and mouse/touch coordinates. Immutable once
// dispatched (§4.10 "Events").
type InputEvent struct {
	Mx, My  int            // Cursor/touch location.
	Scroll  int            // Scroll amount since last poll.
	Down    map[string]int // Keys/buttons and pressed duration in ticks; KeyReleased marks release.
	Focus   bool           // Window focus state.
	Resized bool           // True if the display was resized or moved.

	Axes [joystickMaxAxes]float64 // Combined joystick axis deltas from zero, dead-zoned.
	Dt   float64                  // Delta time for this frame.
	Gt   float64                  // Total elapsed update ticks.
}

// inputPipeline owns the running game-time counter and the joystick
// slot array, and publishes one InputEvent per frame onto the bus.
type inputPipeline struct {
	gt     float64
	sticks joysticks
}

func newInputPipeline() *inputPipeline {
	return &inputPipeline{}
}

// drain converts the device's latest polled state plus joystick state
// into an InputEvent and publishes it on TopicInput (§4.9 step 7).
func (p *inputPipeline) drain(bus *Bus, dev device.Device, dt float64) *InputEvent {
	pressed := dev.Update()
	p.sticks.poll()
	p.gt++

	ev := &InputEvent{
		Mx: pressed.Mx, My: pressed.My,
		Scroll:  pressed.Scroll,
		Down:    pressed.Down,
		Focus:   pressed.Focus,
		Resized: pressed.Resized,
		Axes:    p.sticks.combinedAxes(),
		Dt:      dt,
		Gt:      p.gt,
	}
	bus.Send(&Message{
		Topic:  TopicInput,
		Source: &Source{Kind: SourceKeyboard, Label: "platform"},
		Input:  ev,
	})
	return ev
}
