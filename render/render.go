// Copyright © 2013-2014 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package render is the core's external rendering collaborator (§6
// "Renderer (consumed by the core)"). GPU pipeline internals — shaders,
// framebuffers, textures — are an explicit non-goal; the core treats
// the renderer as opaque and drives it through exactly the operations
// named in §6: viewport, get_viewport, set_version, models_render,
// frame_begin, frame_end, debug.
package render

// ModelQueue is the set of textured models to draw this frame, opaque
// to the renderer beyond whatever fields a concrete binding needs to
// read. The core supplies this every frame from Scene's render queue.
type ModelQueue = []any

// Options carries render-tunable state through to models_render and
// debug (bloom, SSAO, fog, LUT choice, MSAA), opaque to the core.
type Options struct {
	Bloom       bool
	SSAO        bool
	Fog         bool
	LUT         string
	MSAASamples int

	LightX, LightY, LightZ float64 // scene light world-space position.
	LightR, LightG, LightB float64 // scene light color, 0-1.
}

// Renderer is the opaque GPU binding the core drives every frame.
type Renderer interface {
	// Viewport sets the rendering surface origin and size (§6
	// "viewport(x,y,w,h)").
	Viewport(x, y, w, h int)

	// GetViewport reports the current rendering surface (§6
	// "get_viewport() -> (x,y,w,h)").
	GetViewport() (x, y, w, h int)

	// SetVersion selects the graphics API version/profile to target
	// (§6 "set_version(major,minor,profile)").
	SetVersion(major, minor int, profile string)

	// FrameBegin marks the start of a render pass (§6 "frame_begin()").
	FrameBegin()

	// ModelsRender draws the supplied model queue under the given
	// render options (§6 "models_render(model_queue, options)").
	ModelsRender(models ModelQueue, options Options)

	// Debug draws the debug overlay for the given render options (§6
	// "debug(render_options)").
	Debug(options Options)

	// FrameEnd marks the end of a render pass, after which the caller
	// swaps buffers (§6 "frame_end()").
	FrameEnd()
}

// New returns a headless Renderer: it tracks viewport/version state
// faithfully and accepts model queues and debug calls, but issues no
// GPU commands. A real binding lives outside this module's scope (see
// package doc); this default is what lets the frame orchestrator and
// its tests run without a graphics context, the same treatment given
// to package physics and package audio.
func New() Renderer { return &headlessRenderer{} }

type headlessRenderer struct {
	x, y, w, h        int
	major, minor      int
	profile           string
	lastModelCount    int
}

func (r *headlessRenderer) Viewport(x, y, w, h int)       { r.x, r.y, r.w, r.h = x, y, w, h }
func (r *headlessRenderer) GetViewport() (x, y, w, h int) { return r.x, r.y, r.w, r.h }
func (r *headlessRenderer) SetVersion(major, minor int, profile string) {
	r.major, r.minor, r.profile = major, minor, profile
}
func (r *headlessRenderer) FrameBegin() {}
func (r *headlessRenderer) ModelsRender(models ModelQueue, options Options) {
	r.lastModelCount = len(models)
}
func (r *headlessRenderer) Debug(options Options) {}
func (r *headlessRenderer) FrameEnd()             {}
