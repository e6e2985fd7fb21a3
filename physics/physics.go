// Copyright © 2013-2016 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package physics is the core's external physics collaborator (§6
// "Physics (consumed by the core)"). The integrator itself — collision
// narrowphase, constraint solving — is explicitly out of scope; this
// package only exposes the call-boundary the core drives every frame:
// body creation, stepping, ground-contact callbacks, and pose sync.
package physics

import "github.com/onehandclap/clap/math/lin"

// Body is a single rigid body handle. Shape construction (NewBox,
// NewSphere, NewPlane) returns a Body; the core reads/writes its pose
// once per frame via BodyUpdate/SetBodyPose.
type Body interface {
	Position() (x, y, z float64)
	SetPosition(x, y, z float64)
	Rotation() (x, y, z, w float64)
	SetRotation(x, y, z, w float64)
	Static() bool
}

// GroundContactFunc receives the (x, y, z) of a ground contact point.
// Used by the scene to auto-offset the camera or trigger level events.
type GroundContactFunc func(x, y, z float64)

type body struct {
	loc    lin.V3
	rot    lin.Q
	static bool
}

func (b *body) Position() (x, y, z float64)    { return b.loc.X, b.loc.Y, b.loc.Z }
func (b *body) SetPosition(x, y, z float64)    { b.loc.X, b.loc.Y, b.loc.Z = x, y, z }
func (b *body) Rotation() (x, y, z, w float64) { return b.rot.X, b.rot.Y, b.rot.Z, b.rot.W }
func (b *body) SetRotation(x, y, z, w float64) { b.rot.X, b.rot.Y, b.rot.Z, b.rot.W = x, y, z, w }
func (b *body) Static() bool                   { return b.static }

// World is the physics context created by Init and torn down by Done.
type World struct {
	bodies  []Body
	contact map[Body]GroundContactFunc
}

// Init creates a new physics world (§6 "init() -> ctx").
func Init() *World {
	return &World{contact: map[Body]GroundContactFunc{}}
}

// Done releases a body from the world (§6 "done(handle)").
func (w *World) Done(b Body) {
	delete(w.contact, b)
	for i, existing := range w.bodies {
		if existing == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			return
		}
	}
}

// Step advances the world by dt seconds (§6 "step(handle, dt_seconds)").
// Real collision/constraint resolution is an explicit non-goal; this
// stub only exists so the frame orchestrator has a real call boundary
// to invoke every frame and a place to hang ground-contact callbacks.
func (w *World) Step(dt float64) {
	for _, b := range w.bodies {
		if b.Static() {
			continue
		}
		x, y, z := b.Position()
		if y <= 0 {
			if fn, ok := w.contact[b]; ok {
				fn(x, 0, z)
			}
		}
	}
}

// SetGroundContact registers a callback invoked whenever b is at or
// below ground level after a Step.
func (w *World) SetGroundContact(b Body, fn GroundContactFunc) {
	w.contact[b] = fn
}

// NewBox creates an axis-aligned box body. The half-extents are not
// stored; the body only tracks its pose.
func (w *World) NewBox(hx, hy, hz float64, static bool) Body {
	b := &body{rot: lin.Q{X: 0, Y: 0, Z: 0, W: 1}, static: static}
	w.bodies = append(w.bodies, b)
	return b
}

// NewSphere creates a spherical body. The radius is not stored; the body
// only tracks its pose.
func (w *World) NewSphere(radius float64, static bool) Body {
	b := &body{rot: lin.Q{X: 0, Y: 0, Z: 0, W: 1}, static: static}
	w.bodies = append(w.bodies, b)
	return b
}

// NewPlane creates a static body, typically used as ground or level
// geometry. The plane normal and offset are not stored; the body only
// tracks its pose.
func (w *World) NewPlane(nx, ny, nz, d float64) Body {
	b := &body{rot: lin.Q{X: 0, Y: 0, Z: 0, W: 1}, static: true}
	w.bodies = append(w.bodies, b)
	return b
}

// BodyUpdate reads a body's pose into the supplied setter, matching §6's
// "per-entity body_update(entity) (reads body pose into entity)".
func BodyUpdate(b Body, setPose func(x, y, z, rx, ry, rz, rw float64)) {
	x, y, z := b.Position()
	rx, ry, rz, rw := b.Rotation()
	setPose(x, y, z, rx, ry, rz, rw)
}

// SetBodyPose writes an entity's pose back into its body, the inverse
// of BodyUpdate.
func SetBodyPose(b Body, x, y, z, rx, ry, rz, rw float64) {
	b.SetPosition(x, y, z)
	b.SetRotation(rx, ry, rz, rw)
}
