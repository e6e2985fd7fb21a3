// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package clap

import (
	"math"
	"testing"

	"github.com/onehandclap/clap/land"
	"github.com/onehandclap/clap/math/lin"
)

func flatTerrain(height, width, depth float64) *Terrain {
	topo := land.NewTopo(4, 4)
	for x := range topo {
		for z := range topo[x] {
			topo[x][z] = height
		}
	}
	return &Terrain{topo: topo, Width: width, Depth: depth}
}

func TestCharacterMoveAdvancesPositionAndYaw(t *testing.T) {
	scene := NewScene(nil)
	model := scene.AddModel("hero", "mesh")
	c := NewCharacter(scene, model)

	const fpsFine = 60.0
	c.Motion = lin.V3{X: 1, Y: 0, Z: 0}
	c.move(scene, fpsFine)

	d := c.Entity().Data()
	if got, want := d.Loc.X, 1.0/fpsFine; math.Abs(got-want) > 1e-9 {
		t.Fatalf("Loc.X = %v, want %v", got, want)
	}
	if c.Moved != 1 {
		t.Fatalf("Moved = %d, want 1", c.Moved)
	}
	wantYaw := math.Atan2(1, 0) * 180 / math.Pi
	if math.Abs(c.Yaw-wantYaw) > 1e-9 {
		t.Fatalf("Yaw = %v, want %v", c.Yaw, wantYaw)
	}
	if c.Motion != (lin.V3{}) {
		t.Fatalf("Motion not cleared after move: %v", c.Motion)
	}

	// d.Rot, not just c.Yaw, must carry the new facing: it is the only
	// rotation field defaultUpdate reads when it rebuilds Base/Current.
	wantRot := lin.NewQ().SetAa(0, 1, 0, lin.Rad(wantYaw))
	if !d.Rot.Aeq(wantRot) {
		t.Fatalf("Rot = %v, want %v (derived from Yaw %v)", d.Rot, wantRot, wantYaw)
	}
	wantBase := (&lin.M4{}).SetQ(wantRot).ScaleMS(d.Scale, d.Scale, d.Scale).TranslateMT(d.Loc.X, d.Loc.Y, d.Loc.Z)
	if !d.Base.Aeq(wantBase) {
		t.Fatalf("Base = %v, want %v (Rot not reflected in the transform)", d.Base, wantBase)
	}
}

func TestCharacterSnapsToTerrainHeightUnlessCameraCarrier(t *testing.T) {
	scene := NewScene(nil)
	model := scene.AddModel("hero", "mesh")
	scene.SetTerrain(flatTerrain(5, 10, 10))

	grounded := NewCharacter(scene, model)
	grounded.move(scene, 60)
	if got := grounded.Entity().Data().Loc.Y; got != 5 {
		t.Fatalf("grounded character Loc.Y = %v, want 5", got)
	}
	if grounded.Moved != 1 {
		t.Fatalf("Moved = %d, want 1 (terrain snap counts as a move)", grounded.Moved)
	}

	carrier := NewCharacter(scene, model)
	carrier.SetCameraCarrier(true)
	carrier.move(scene, 60)
	if got := carrier.Entity().Data().Loc.Y; got != 0 {
		t.Fatalf("camera-carrier Loc.Y = %v, want 0 (exempt from terrain snap)", got)
	}
	if carrier.Moved != 0 {
		t.Fatalf("camera-carrier Moved = %d, want 0", carrier.Moved)
	}
}

func TestSceneUpdateRunsCharacterMoveThenRefreshesTransform(t *testing.T) {
	scene := NewScene(nil)
	model := scene.AddModel("hero", "mesh")
	c := NewCharacter(scene, model)
	c.Motion = lin.V3{X: 2, Y: 0, Z: 0}

	scene.CharactersMove(60) // §4.9 step 8 runs before step 11 (Scene.Update).
	scene.Update(1.0)

	d := c.Entity().Data()
	wantX := 2.0 / 60.0
	if math.Abs(d.Loc.X-wantX) > 1e-9 {
		t.Fatalf("Loc.X = %v, want %v", d.Loc.X, wantX)
	}
	// Current transform must reflect the post-move location, proving
	// Update ran defaultUpdate from the already-moved position.
	if math.Abs(d.Current.Wx-wantX) > 1e-6 {
		t.Fatalf("Current transform translation.x = %v, want %v", d.Current.Wx, wantX)
	}
}
