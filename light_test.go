// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package clap

import "testing"

func TestNewLightDefaultsToWhiteAtOrigin(t *testing.T) {
	l := newLight()
	if l.R != 1 || l.G != 1 || l.B != 1 {
		t.Fatalf("color = (%v,%v,%v), want (1,1,1)", l.R, l.G, l.B)
	}
	x, y, z := l.Location()
	if x != 0 || y != 0 || z != 0 {
		t.Fatalf("Location = (%v,%v,%v), want origin", x, y, z)
	}
}

func TestLightSetLocationAndColor(t *testing.T) {
	l := newLight()
	l.SetLocation(1, 2, 3)
	l.SetColor(0.5, 0.25, 0.1)

	x, y, z := l.Location()
	if x != 1 || y != 2 || z != 3 {
		t.Fatalf("Location = (%v,%v,%v), want (1,2,3)", x, y, z)
	}
	if l.R != 0.5 || l.G != 0.25 || l.B != 0.1 {
		t.Fatalf("color = (%v,%v,%v), want (0.5,0.25,0.1)", l.R, l.G, l.B)
	}
}

func TestFrameCarriesSceneLightIntoRenderOptions(t *testing.T) {
	ctx, err := NewContext(WithFlags(FlagGraphics))
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	defer ctx.Done()

	ctx.Scene.Light().SetLocation(4, 5, 6)
	ctx.Scene.Light().SetColor(0.1, 0.2, 0.3)

	model := ctx.Scene.AddModel("lit", "mesh")
	e := ctx.Scene.AddEntity(model)
	e.Data().Visible = true

	ctx.Frame(1.0 / 60.0)
	// Frame doesn't expose render.Options directly, but a panic-free run
	// through the render path (ModelsRender/Debug) with a populated light
	// confirms the wiring compiles and executes end to end.
	if ctx.Profile.Renders != 1 {
		t.Fatalf("Profile.Renders = %d, want 1", ctx.Profile.Renders)
	}
}
