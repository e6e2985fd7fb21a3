// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package clap

// character.go implements Character and the character_move algorithm
// (§4.8), grounded on the teacher's pov.go Move/Spin for the underlying
// transform math and on camera.go's up/down angle tracking for the
// pitch/yaw/roll bookkeeping style.

import (
	"math"

	"github.com/onehandclap/clap/math/lin"
)

// Character wraps an entity with motion/orientation state driven by
// input or AI (GLOSSARY "Character").
type Character struct {
	entity *Entity

	Pitch, Yaw, Roll     float64
	TurnRate             float64 // degrees/sec, applied by input handlers.
	Motion               lin.V3  // units/sec, set by input handlers, consumed once per frame.
	Moved                int     // incremented whenever position or terrain-snap changes it.

	isCameraCarrier bool
	sceneEntry      *ListEntry[*Character]
}

// NewCharacter creates a character entity in scene, installing its own
// entity update callback (§9's "tagged sum" alternative to the source's
// function-pointer chaining: the Character always fully owns its update,
// there is no "original update" to chain to since defaultUpdate is called
// explicitly at the end of move and again by the installed callback).
func NewCharacter(scene *Scene, model *TexturedModel) *Character {
	e := scene.AddEntity(model)
	c := &Character{entity: e}
	e.Data().Update = func(d *EntityData, s *Scene) {
		defaultUpdate(d, s)
	}
	c.sceneEntry = scene.characters.PushBack(c)
	return c
}

// Entity returns the character's underlying entity handle.
func (c *Character) Entity() *Entity { return c.entity }

// Dispose removes the character from its scene and disposes its entity.
func (c *Character) Dispose() {
	c.sceneEntry.Remove()
	c.entity.Dispose()
}

// move implements character_move (§4.8): motion is expressed as
// units-per-second in input and converted to units-per-frame exactly
// once, here, at the latest possible point, so input handlers never
// need to know the current frame rate.
func (c *Character) move(scene *Scene, fpsFine float64) {
	d := c.entity.Data()
	if d == nil {
		return
	}

	length := math.Sqrt(c.Motion.X*c.Motion.X + c.Motion.Y*c.Motion.Y + c.Motion.Z*c.Motion.Z)
	if length > 0 {
		inc := lin.V3{X: c.Motion.X / fpsFine, Y: c.Motion.Y / fpsFine, Z: c.Motion.Z / fpsFine}
		d.Loc.X += inc.X
		d.Loc.Y += inc.Y
		d.Loc.Z += inc.Z

		incLen := math.Sqrt(inc.X*inc.X + inc.Y*inc.Y + inc.Z*inc.Z)
		if incLen > 0 {
			nx, nz := inc.X/incLen, inc.Z/incLen
			c.Yaw = math.Atan2(nx, nz) * 180 / math.Pi
		}
		c.Moved++
	}

	if scene.terrain != nil {
		h := scene.terrain.Height(d.Loc.X, d.Loc.Z)
		if !c.isCameraCarrier && d.Loc.Y != h {
			d.Loc.Y = h
			c.Moved++
		}
	}

	d.Rot = *c.orientation()
	c.Motion = lin.V3{}
	defaultUpdate(d, scene)
}

// orientation builds the quaternion defaultUpdate consumes from the
// character's yaw/pitch/roll, the same axis-angle composition pov.Spin
// uses to turn degrees-about-an-axis into a rotation: yaw about Y first
// (the direction faced), then pitch about X, then roll about Z.
func (c *Character) orientation() *lin.Q {
	rot := lin.NewQ().SetAa(0, 1, 0, lin.Rad(c.Yaw))
	if c.Pitch != 0 {
		pitch := lin.NewQ().SetAa(1, 0, 0, lin.Rad(c.Pitch))
		rot.Mult(pitch, rot)
	}
	if c.Roll != 0 {
		roll := lin.NewQ().SetAa(0, 0, 1, lin.Rad(c.Roll))
		rot.Mult(roll, rot)
	}
	return rot
}

// SetCameraCarrier marks whether this character is the one the current
// camera follows; the camera carrier is exempt from terrain snap
// (§4.8 step 2, §8 scenario 5).
func (c *Character) SetCameraCarrier(is bool) { c.isCameraCarrier = is }
