// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package clap

import (
	"math"
	"testing"

	"github.com/onehandclap/clap/math/lin"
)

func TestNewContextSeedsADefaultPerspectiveCamera(t *testing.T) {
	ctx, err := NewContext(WithFlags(FlagGraphics), Perspective(70, 0.1, 1000))
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	defer ctx.Done()

	cam := ctx.Scene.Camera()
	if cam == nil {
		t.Fatal("Scene.Camera() = nil, want the default camera NewContext creates")
	}
	if ctx.freeCam == nil {
		t.Fatal("ctx.freeCam = nil, want a wrapped default camera")
	}
}

func TestSceneRecalcCamerasUpdatesFollowCamera(t *testing.T) {
	scene := NewScene(nil)
	model := scene.AddModel("hero", "mesh")
	target := NewCharacter(scene, model)
	target.Motion = lin.V3{X: 1, Y: 0, Z: 0}
	target.move(scene, 1)

	fc := NewFollowCamera(target, 0, 0, 10)
	scene.cameras = append(scene.cameras, fc)

	scene.RecalcCameras()

	x, y, z := fc.Location()
	wantX, wantY, wantZ := 1.0-0, 0.0+5, 0.0-10 // yaw=0: x unchanged by sin(0), z offset by -distance.
	if math.Abs(x-wantX) > 1e-9 || math.Abs(y-wantY) > 1e-9 || math.Abs(z-wantZ) > 1e-9 {
		t.Fatalf("follow camera location = (%v,%v,%v), want (%v,%v,%v)", x, y, z, wantX, wantY, wantZ)
	}
}

func TestCameraMoveAndSpinUpdateViewTransformWithoutPanicking(t *testing.T) {
	cam := newCamera()
	cam.SetPerspective(70, 16.0/9.0, 0.1, 1000)
	cam.Move(1, 2, 3)
	cam.Spin(0, 90, 0)
	x, y, z := cam.Location()
	if x != 1 || y != 2 || z != 3 {
		t.Fatalf("Location = (%v,%v,%v), want (1,2,3)", x, y, z)
	}
}

func TestCameraScreenIsApproximateInverseOfRay(t *testing.T) {
	cam := newCamera()
	cam.SetLocation(0, 0, -5)
	cam.SetPerspective(70, 1.0, 0.1, 1000)

	const ww, wh = 640, 640
	sx, sy := cam.Screen(0, 0, 0, ww, wh)
	if sx < 0 || sx > ww || sy < 0 || sy > wh {
		t.Fatalf("Screen(origin) = (%d,%d), want inside the %dx%d viewport", sx, sy, ww, wh)
	}

	rx, ry, rz := cam.Ray(ww/2, wh/2, ww, wh)
	if rx == 0 && ry == 0 && rz == 0 {
		t.Fatal("Ray through the viewport center returned the zero vector")
	}
}

func TestScenePickAndScreenPointRequireACurrentCamera(t *testing.T) {
	scene := NewScene(nil)
	if _, _, _, ok := scene.Pick(0, 0, 100, 100); ok {
		t.Fatal("Pick succeeded with no camera in the scene")
	}
	if _, _, ok := scene.ScreenPoint(0, 0, 0); ok {
		t.Fatal("ScreenPoint succeeded with no camera in the scene")
	}

	scene.AddCamera()
	scene.W, scene.H = 100, 100
	if _, _, _, ok := scene.Pick(50, 50, 100, 100); !ok {
		t.Fatal("Pick failed with a current camera present")
	}
	if _, _, ok := scene.ScreenPoint(0, 0, 10); !ok {
		t.Fatal("ScreenPoint failed with a current camera present")
	}
}
