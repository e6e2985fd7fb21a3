// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package clap

// camera.go implements the scene camera (§4.8 "Camera"): a pov plus a
// projection and a pluggable view-matrix strategy. Grounded on the
// teacher's camera.go, with the view-transform selector turned from a
// set of untyped int constants borrowed from eng.go (and never carried
// over when eng.go became context.go, leaving SetTransform referencing
// undefined names) into a ViewTransform enum owned by this file, and
// newCamera given a working default so a camera is usable the moment
// Scene.AddCamera creates one.

import (
	"github.com/onehandclap/clap/math/lin"
)

// Camera tracks the location and orientation of a camera as well as its
// associated projection transform.
type Camera interface {
	Location() (x, y, z float64)    // Get, or
	SetLocation(x, y, z float64)    // ...Set the camera location.
	Rotation() (x, y, z, w float64) // Get, or
	SetRotation(x, y, z, w float64) // ...Set the view orientation.
	Move(x, y, z float64)           // Adjust current camera location.
	Spin(x, y, z float64)           // Rotate degrees about the given axis.
	Tilt() (up float64)             // Get, or
	SetTilt(up float64)             // ...Set the camera tilt angle.
	SetTransform(transform ViewTransform)

	// Use one of the following to create a projection transform.
	SetPerspective(fov, ratio, near, far float64)                // 3D.
	SetOrthographic(left, right, bottom, top, near, far float64) // 2D.

	// Ray applies inverse transforms to derive world space coordinates for
	// a ray projected from the camera through the mouse's mx, my screen
	// position given window width and height ww, wh.
	Ray(mx, my, ww, wh int) (x, y, z float64)

	// Screen calculates screen coordinates sx, sy for world coordinates
	// wx, wy, wz and window width and height ww, wh.
	Screen(wx, wy, wz float64, ww, wh int) (sx, sy int)

	// Distance returns the distance squared of the camera to the given point.
	Distance(px, py, pz float64) float64
}

// ViewTransform selects which view-matrix strategy a camera uses to turn
// its pov into the view half of the render pipeline's MVP matrix.
type ViewTransform int

const (
	// Perspective is a standard look-from-origin 3D view: the whole
	// world is translated and rotated opposite the camera's pov.
	Perspective ViewTransform = iota
	// Orthographic collapses depth entirely, for 2D/UI scenes rendered
	// with an orthographic projection.
	Orthographic
	// FirstPerson is Perspective plus an independently tracked up/down
	// tilt angle, clamped by the caller (typically to +/-90) so looking
	// straight up or down never rolls the camera.
	FirstPerson
	// PerspectiveToOrtho renders a 3D scene flattened onto a fixed
	// top-down plane, used for map/minimap style cameras.
	PerspectiveToOrtho
)

// camera combines a pov with a separate up/down tilt angle and a
// pluggable view-matrix strategy. The tilt lets a first-person camera
// limit up/down look to a fixed range without rolling.
type camera struct {
	pov               // Location/direction.
	up  float64       // The up/down angle in degrees. Limit this to +90/-90.
	vt  viewTransform // The assigned view transform function.

	// Track the view and projection matrices and their inverses.
	vm  *lin.M4 // View part of MVP matrix.
	ivm *lin.M4 // Inverse view matrix.
	pm  *lin.M4 // Projection part of MVP matrix.
	ipm *lin.M4 // Inverse projection matrix.
	q0  *lin.Q  // Scratch for camera transform calculations.
	v0  *lin.V4 // Scratch for pick ray calculations.
	ray *lin.V3 // Scratch for pick ray calculations.
}

// newCamera creates a default point of view looking down the positive Z
// axis, already usable for Move/Spin/SetLocation without requiring a
// prior SetTransform call.
func newCamera() *camera {
	c := &camera{}
	c.pov = newPov()
	c.vt = perspectiveView
	c.vm = &lin.M4{}
	c.ivm = (&lin.M4{}).Set(lin.M4I)
	c.pm = &lin.M4{}
	c.ipm = &lin.M4{}
	c.q0 = &lin.Q{}
	c.v0 = &lin.V4{}
	c.ray = &lin.V3{}
	return c
}

// SetTransform picks which view-matrix strategy subsequent Move/Spin/
// SetLocation calls recompute.
func (c *camera) SetTransform(transform ViewTransform) {
	switch transform {
	case Orthographic:
		c.vt = orthographicView
	case FirstPerson:
		c.vt = firstPersonView
	case PerspectiveToOrtho:
		c.vt = perspectiveToOrthoView
	default:
		c.vt = perspectiveView
	}
}

// transform applies the camera's view transform and returns the result
// in the supplied matrix.
func (c *camera) transform(vm *lin.M4) *lin.M4 { return c.vt(c, vm) }

func (c *camera) Rotation() (x, y, z, w float64) {
	return c.pov.Rot.X, c.pov.Rot.Y, c.pov.Rot.Z, c.pov.Rot.W
}
func (c *camera) SetRotation(x, y, z, w float64) {
	c.pov.Rot.X, c.pov.Rot.Y, c.pov.Rot.Z, c.pov.Rot.W = x, y, z, w
	c.updateViewTransform()
}
func (c *camera) Location() (x, y, z float64) {
	return c.pov.Loc.X, c.pov.Loc.Y, c.pov.Loc.Z
}
func (c *camera) SetLocation(x, y, z float64) {
	c.pov.Loc.X, c.pov.Loc.Y, c.pov.Loc.Z = x, y, z
	c.updateViewTransform()
}
func (c *camera) Move(x, y, z float64) {
	c.pov.Move(x, y, z)
	c.updateViewTransform()
}
func (c *camera) Spin(x, y, z float64) {
	c.pov.Spin(x, y, z)
	c.updateViewTransform()
}
func (c *camera) Tilt() (up float64) { return c.up }
func (c *camera) SetTilt(up float64) {
	c.up = up
	c.transform(c.vm)
}

// Distance returns the distance squared of the camera to the given point.
func (c *camera) Distance(px, py, pz float64) float64 {
	dx := px - c.Loc.X
	dy := py - c.Loc.Y
	dz := pz - c.Loc.Z
	return dx*dx + dy*dy + dz*dz
}

// SetPerspective sets the scene to use a 3D perspective projection.
func (c *camera) SetPerspective(fov, ratio, near, far float64) {
	c.pm.Persp(fov, ratio, near, far)
	c.ipm.PerspInv(fov, ratio, near, far)
	c.transform(c.vm)
	inversePerspectiveView(c, c.ivm)
}

// SetOrthographic sets the scene to use a 2D orthographic projection.
func (c *camera) SetOrthographic(left, right, bottom, top, near, far float64) {
	c.pm.Ortho(left, right, bottom, top, near, far)
	c.transform(c.vm)

	// Inverse matrix currently ignored for Orthographic. Ortho views are
	// expected to match the screen pixel sizes.
	c.ipm.Set(lin.M4I)
}

// updateViewTransform keeps the view and inverse-view transforms current
// each time the camera moves, once per move rather than once per object.
func (c *camera) updateViewTransform() {
	c.transform(c.vm)             // view transform.
	inversePerspectiveView(c, c.ivm) // inverse view transform.
}

// Ray applies inverse transforms to derive world space coordinates for
// a ray projected from the camera through the mouse's screen position. See:
//     http://bookofhook.com/mousepick.pdf
//     http://antongerdelan.net/opengl/raycasting.html
func (c *camera) Ray(mx, my, ww, wh int) (x, y, z float64) {
	c.ray.SetS(0, 0, 0)
	if mx >= 0 && mx <= ww && my >= 0 && my <= wh {
		clipx := float64(2*mx)/float64(ww) - 1 // mx to range -1:1
		clipy := float64(2*my)/float64(wh) - 1 // my to range -1:1
		clip := c.v0.SetS(clipx, clipy, -1, 1)

		// use the inverse perspective to go from clip to eye (view) coordinates
		eye := clip.MultvM(clip, c.ipm)
		eye.Z = -1 // into the screen
		eye.W = 0  // want a vector, not a point

		// use the inverse view to go from eye (view) coordinates to world coordinates.
		world := eye.MultvM(eye, c.ivm)
		c.ray.SetS(world.X, world.Y, world.Z) // ignore the W component.
		c.ray.Unit()                          // ensure that a unit vector is returned.
	}
	return c.ray.X, c.ray.Y, c.ray.Z
}

// Screen applies the camera transform on a 3D point in world space wx, wy, wz
// and returns the 2D screen coordinate sx, sy. The window width and height
// ww, wh are also needed. The reverse of Ray, duplicating what the
// rendering pipeline does with the same matrices.
func (c *camera) Screen(wx, wy, wz float64, ww, wh int) (sx, sy int) {
	vec := c.v0.SetS(wx, wy, wz, 1)
	vec.MultvM(vec, c.vm)
	vec.MultvM(vec, c.pm)
	clipx := vec.X/vec.W + 1 // range -1:1 to 0:2
	clipy := vec.Y/vec.W + 1 // range -1:1 to 0:2
	sx = int(lin.Round(clipx*0.5*float64(ww), 0))
	sy = int(lin.Round(clipy*0.5*float64(wh), 0))
	return
}

// view transforms
// ===========================================================================

// View transforms create a view matrix from the camera's pov. Since the
// camera is always conceptually at the origin, moving the camera forward
// by x units really means translating the world back by -x, and rotating
// the camera by x degrees really means rotating the world by -x.
type viewTransform func(*camera, *lin.M4) *lin.M4

// perspectiveView is the standard look-from-origin view transform.
func perspectiveView(c *camera, vm *lin.M4) *lin.M4 {
	vm.SetQ(c.Rot)
	return vm.TranslateTM(-c.Loc.X, -c.Loc.Y, -c.Loc.Z)
}

// orthographicView flattens depth for a 2D scene.
func orthographicView(c *camera, vm *lin.M4) *lin.M4 {
	return vm.Set(lin.M4I).ScaleMS(1, 1, 0)
}

// firstPersonView applies the tracked up/down tilt on top of the
// camera's own rotation before the standard perspective view transform.
func firstPersonView(c *camera, vm *lin.M4) *lin.M4 {
	rot := c.q0.SetAa(1, 0, 0, lin.Rad(-c.up))
	rot.Mult(rot, c.Rot)
	return vm.SetQ(rot).TranslateTM(-c.Loc.X, -c.Loc.Y, -c.Loc.Z)
}

// perspectiveToOrthoView renders from a fixed top-down pitch, flattening
// depth after rotating, for map/minimap cameras.
func perspectiveToOrthoView(c *camera, vm *lin.M4) *lin.M4 {
	rot := c.q0.SetAa(1, 0, 0, -lin.Rad(90))
	return vm.SetQ(rot).ScaleMS(1, 1, 0).TranslateTM(-c.Loc.X, -c.Loc.Y, -c.Loc.Z)
}

// inversePerspectiveView is the inverse of perspectiveView, used to turn
// clip-space coordinates back into world space for mouse picking.
func inversePerspectiveView(c *camera, vm *lin.M4) *lin.M4 {
	rot := c.q0.Inv(c.Rot)
	vm.SetQ(rot)
	return vm.TranslateMT(c.Loc.X, c.Loc.Y, c.Loc.Z)
}
