// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package device is the core's external display/input collaborator (§6
// "Host display/input"). Real OS window and GL-context creation is an
// explicit non-goal of the core runtime, the same treatment given to
// the physics package's collision solver, so this package exposes only
// the call boundary the frame orchestrator drives: display lifecycle,
// framebuffer size queries, fullscreen/position requests, and a
// pollable Pressed snapshot feeding the input pipeline.
package device

// Device wraps platform window/display management (§6's
// display_init/display_main_loop/display_get_sizes contract). Expected
// usage:
//
//	dev := device.New("title", x, y, width, height)
//	if err := dev.Open(); err != nil { ... }
//	dev.MainLoop(func(dt float64) { ... })
type Device interface {
	// Open readies the display and input surface, returning a non-nil
	// error if the platform cannot support it (§6 "InitFailed |
	// NotSupported").
	Open() error

	// MainLoop drives frameCB once per display refresh until
	// RequestExit is observed, then returns. Host-event-loop platforms
	// (browser/WASM) are expected to call Pump once per host callback
	// instead of MainLoop.
	MainLoop(frameCB func(dt float64))

	// Pump runs a single frame iteration for callers driving their own
	// loop instead of MainLoop.
	Pump(dt float64)

	// RequestExit signals MainLoop to stop after the current frame.
	RequestExit()
	ExitRequested() bool

	// Size returns the usable graphics context location and size.
	Size() (x, y, width, height int)

	IsFullScreen() bool
	ToggleFullScreen()
	SetWindowPosSize(x, y, width, height int)

	ShowCursor(show bool)
	SetCursorAt(x, y int)

	// SwapBuffers exchanges the graphics drawing buffers. Expected
	// once per frame after rendering completes.
	SwapBuffers()

	Dispose()

	// Update returns the latest polled keyboard/mouse/touch state,
	// wiring keyboard, mouse, touch, and gamepads onto pollable state
	// (§6 "platform_input_init").
	Update() *Pressed

	// Inject feeds a synthetic input event into the polled state,
	// used by the fuzzer (§4.10) and by tests.
	Inject(ev Event)
}

// Pressed is the current polled input snapshot: keys/buttons down and
// for how many update ticks, cursor location, scroll, focus and resize
// flags. A negative duration marks a key released since the last poll;
// the total pressed duration prior to release is the difference from
// KeyReleased.
type Pressed struct {
	Mx, My  int            // Current mouse/touch location.
	Scroll  int            // Scroll amount, if any, since last poll.
	Down    map[string]int // Keys/buttons and their pressed duration in ticks.
	Focus   bool           // True if the window has focus.
	Resized bool           // True if the window was resized or moved.
}

// KeyReleased marks a key/button as released this poll.
const KeyReleased = -1000000000

// New returns a Device for the host platform. Native window creation is
// out of scope for this module (see package doc), so this always
// returns a headless Device: it tracks open/fullscreen/size state
// faithfully and drives frameCB on request, but never creates a
// visible surface. This is sufficient for the frame orchestrator and
// fuzzer-driven soak tests, which only depend on the Device contract
// and never on an actual window existing.
func New(title string, x, y, width, height int) Device {
	return newHeadlessDevice(title, x, y, width, height)
}

// headlessDevice implements Device without any native OS surface.
type headlessDevice struct {
	title                  string
	x, y, width, height    int
	fullscreen             bool
	cursorVisible          bool
	cursorX, cursorY       int
	exitRequested          bool
	input                  *input
}

func newHeadlessDevice(title string, x, y, width, height int) *headlessDevice {
	return &headlessDevice{
		title: title, x: x, y: y, width: width, height: height,
		cursorVisible: true,
		input:         newInput(),
	}
}

func (d *headlessDevice) Open() error { return nil }

func (d *headlessDevice) MainLoop(frameCB func(dt float64)) {
	for !d.exitRequested {
		d.Pump(0)
		frameCB(0)
	}
}

func (d *headlessDevice) Pump(dt float64) {}

func (d *headlessDevice) RequestExit()     { d.exitRequested = true }
func (d *headlessDevice) ExitRequested() bool { return d.exitRequested }

func (d *headlessDevice) Size() (x, y, width, height int) { return d.x, d.y, d.width, d.height }

func (d *headlessDevice) IsFullScreen() bool { return d.fullscreen }
func (d *headlessDevice) ToggleFullScreen()  { d.fullscreen = !d.fullscreen }
func (d *headlessDevice) SetWindowPosSize(x, y, width, height int) {
	d.x, d.y, d.width, d.height = x, y, width, height
}

func (d *headlessDevice) ShowCursor(show bool)   { d.cursorVisible = show }
func (d *headlessDevice) SetCursorAt(x, y int)   { d.cursorX, d.cursorY = x, y }
func (d *headlessDevice) SwapBuffers()           {}
func (d *headlessDevice) Dispose()               {}

func (d *headlessDevice) Update() *Pressed { return d.input.poll() }
func (d *headlessDevice) Inject(ev Event)  { d.input.Inject(ev) }
