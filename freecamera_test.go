// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package clap

import "testing"

func TestFreeCameraMovesOnHeldKeys(t *testing.T) {
	cam := newCamera()
	fc := NewFreeCamera(cam, 70, 1.0, 0.1, 1000)

	fc.Update(map[string]int{"w": 0})
	x, y, z := cam.Location()
	if x != 0 || y != 0 || z != freeCameraMoveStep {
		t.Fatalf("Location after holding w = (%v,%v,%v), want (0,0,%v)", x, y, z, freeCameraMoveStep)
	}

	fc.Update(map[string]int{"d": 3})
	x, _, _ = cam.Location()
	if x != freeCameraMoveStep {
		t.Fatalf("Location.X after holding d = %v, want %v", x, freeCameraMoveStep)
	}
}

func TestFreeCameraPitchClampsAtNinetyDegrees(t *testing.T) {
	cam := newCamera()
	fc := NewFreeCamera(cam, 70, 1.0, 0.1, 1000)

	for i := 0; i < 30; i++ {
		fc.Update(map[string]int{"ArrowUp": 0})
	}
	if cam.Tilt() != 90 {
		t.Fatalf("Tilt() = %v, want clamped to 90", cam.Tilt())
	}
}

func TestFreeCameraZoomTogglesOnFreshKeyDownOnly(t *testing.T) {
	cam := newCamera()
	cam.SetPerspective(70, 1.0, 0.1, 1000)
	fc := NewFreeCamera(cam, 70, 1.0, 0.1, 1000)

	fc.Update(map[string]int{"z": 0}) // fresh key-down: toggles once.
	if !fc.zoom {
		t.Fatal("zoom not toggled on fresh key-down")
	}
	fc.Update(map[string]int{"z": 1}) // still held: must not re-toggle.
	if !fc.zoom {
		t.Fatal("zoom toggled again while key remained held")
	}
}
