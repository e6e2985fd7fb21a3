// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package clap

// freecamera.go drives the scene's current camera directly from input
// (§4.8 "Camera"), grounded on original_source/scene.c's
// scene_camera_calc/scene_camera_autopilot: WASD position deltas, arrow
// keys for pitch (clamped +/-90) and yaw (wrapped +/-180), and a zoom
// toggle. The C original hard-codes its key bindings inline in the
// frame loop; FreeCamera turns that into a reusable controller the
// context drives once per frame (§4.9 step 7's "after input drain").

import "math"

const (
	freeCameraMoveStep  = 0.1  // position delta per input sample, matching scene.c.
	freeCameraPitchStep = 5.0  // degrees per input sample.
	freeCameraYawStep   = 10.0 // degrees per input sample.
	freeCameraZoomedFOV = 1.0 / 3.0
)

// FreeCamera is a fly-around controller for a Camera: WASD moves in the
// XZ plane, up/down arrows pitch, left/right arrows yaw, and "z" toggles
// a zoomed-in field of view. Key names are free-form strings, matched
// against InputEvent.Down the same way the rest of the input pipeline
// does.
type FreeCamera struct {
	cam   Camera
	pitch float64
	yaw   float64
	zoom  bool

	baseFOV, ratio, near, far float64
}

// NewFreeCamera wraps cam, remembering the perspective parameters it
// needs to reapply when the zoom toggle flips.
func NewFreeCamera(cam Camera, fov, ratio, near, far float64) *FreeCamera {
	return &FreeCamera{cam: cam, baseFOV: fov, ratio: ratio, near: near, far: far}
}

// Update applies one frame's worth of key state to the wrapped camera.
// down is an InputEvent.Down map; any positive duration counts as held.
func (f *FreeCamera) Update(down map[string]int) {
	if held(down, "a") {
		f.cam.Move(-freeCameraMoveStep, 0, 0)
	}
	if held(down, "d") {
		f.cam.Move(freeCameraMoveStep, 0, 0)
	}
	if held(down, "w") {
		f.cam.Move(0, 0, freeCameraMoveStep)
	}
	if held(down, "s") {
		f.cam.Move(0, 0, -freeCameraMoveStep)
	}

	if held(down, "ArrowUp") {
		f.pitch = math.Min(90, f.pitch+freeCameraPitchStep)
		f.cam.SetTilt(f.pitch)
	}
	if held(down, "ArrowDown") {
		f.pitch = math.Max(-90, f.pitch-freeCameraPitchStep)
		f.cam.SetTilt(f.pitch)
	}
	if held(down, "ArrowLeft") {
		f.yaw = wrap180(f.yaw - freeCameraYawStep)
		f.cam.Spin(0, -freeCameraYawStep, 0)
	}
	if held(down, "ArrowRight") {
		f.yaw = wrap180(f.yaw + freeCameraYawStep)
		f.cam.Spin(0, freeCameraYawStep, 0)
	}

	if pressed(down, "z") {
		f.zoom = !f.zoom
		fov := f.baseFOV
		if f.zoom {
			fov = f.baseFOV * freeCameraZoomedFOV
		}
		f.cam.SetPerspective(fov, f.ratio, f.near, f.far)
	}
}

func held(down map[string]int, key string) bool {
	d, ok := down[key]
	return ok && d >= 0
}

// pressed reports a fresh key-down this frame, as opposed to held:
// duration 0 is the first tick a key registers as down.
func pressed(down map[string]int, key string) bool {
	d, ok := down[key]
	return ok && d == 0
}

func wrap180(deg float64) float64 {
	for deg > 180 {
		deg -= 360
	}
	for deg < -180 {
		deg += 360
	}
	return deg
}
