// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package clap

// light.go implements the scene's single light (§4.8 "Light"). Grounded
// on the teacher's light.go; its doc comment promised a world-space
// position ("attached to a Pov") the struct never actually carried, so
// this version adds the Loc field the comment always described and
// threads it, along with color, into render.Options each frame.

import "github.com/onehandclap/clap/math/lin"

// Light is used by shaders to interact with a model's material values.
// It has a world-space position and a color, defaulted to white at the
// origin. Valid R,G,B color values range from 0 to 1.
type Light struct {
	Loc     lin.V3
	R, G, B float64
}

// newLight creates a white light at the origin.
func newLight() *Light { return &Light{R: 1, G: 1, B: 1} }

// SetColor is a convenience method for changing the light color.
func (l *Light) SetColor(r, g, b float64) { l.R, l.G, l.B = r, g, b }

// Location returns the light's world-space position.
func (l *Light) Location() (x, y, z float64) { return l.Loc.X, l.Loc.Y, l.Loc.Z }

// SetLocation moves the light.
func (l *Light) SetLocation(x, y, z float64) { l.Loc = lin.V3{X: x, Y: y, Z: z} }
