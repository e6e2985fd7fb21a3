// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package clap

// scene.go implements the scene/entity composition and per-frame update
// protocol (§4.8). Entities are addressed by the generational eID from
// entity.go rather than the teacher's original per-component maps
// (body.go's shapes/solids maps, frame.go's direct *render.Draw walks);
// data lives in a map keyed by eid.id(), the arena-of-stable-
// IDs approach the spec's Design Notes §9 recommend over manual
// refcounted back-pointers.

import (
	"math"

	"github.com/onehandclap/clap/math/lin"
	"github.com/onehandclap/clap/physics"
)

// RenderOptions is passed through to the external renderer untouched
// (§3 "Render options (bloom, SSAO, fog, LUT choice, MSAA flags...)").
type RenderOptions struct {
	Bloom      bool
	SSAO       bool
	Fog        bool
	LUT        string
	MSAASamples int
}

// EntityUpdate is the per-entity polymorphism point (§3, §9 "Polymorphic
// entity update"). Default recomputes the transform from pose; Character
// entities install their own callback in NewCharacter instead.
type EntityUpdate func(data *EntityData, scene *Scene)

// EntityData is an entity's transform, visibility, and update state
// (§3 "Entity"). Addressed by eID; never moved, so a *EntityData
// returned from Scene.entityData stays valid across a frame.
type EntityData struct {
	id eID

	Loc   lin.V3
	Rot   lin.Q
	Scale float64

	Visible bool
	Color   [4]float32

	Body physics.Body // optional; nil if this entity has no physics presence.

	Base    lin.M4 // transform from position/rotation/scale alone.
	Current lin.M4 // base further adjusted by the update callback (e.g. character snap).

	Update EntityUpdate
	model  *TexturedModel // owning textured model; strong reference.
}

// defaultUpdate recomputes Base (and Current, absent an override) from
// the entity's position, rotation, and scale (§9's "newer code sets the
// matrix from position+rotation+scale" semantics, adopted per the spec's
// explicit resolution of that design question).
func defaultUpdate(d *EntityData, scene *Scene) {
	d.Base.SetQ(&d.Rot).ScaleMS(d.Scale, d.Scale, d.Scale).TranslateMT(d.Loc.X, d.Loc.Y, d.Loc.Z)
	d.Current.Set(&d.Base)
}

// TexturedModel is geometry plus a texture set shared by many entities
// (§3 "Textured model"). It owns nothing but references: entities hold
// the strong reference back to their model, this list is a weak
// back-reference cleared on entity disposal.
type TexturedModel struct {
	Name     string
	Mesh     string
	Textures []string

	entities []eID // weak back-references, removed on entity drop.
}

// Scene is the container of textured models and their entities (§3
// "Scene"). It also owns characters, cameras, the debug-draw queue, and
// a reference back to the owning Context.
type Scene struct {
	ctx *Context

	eids entities
	data map[uint32]*EntityData // keyed by eid.id(); not eID itself, since edition changes.

	models  *Array[*TexturedModel]
	byName  map[string]*TexturedModel

	characters *List[*Character]
	control    *Character // the character driven by input, if any.

	cameras []Camera
	current int

	debugDraw []*DebugDraw

	terrain *Terrain
	light   *Light

	Options RenderOptions

	frameTime float64 // current frame's clock timestamp, seconds.
	W, H      int     // scene viewport dimensions.
	Speed     float64 // default character move speed scalar, units/sec.
	LimboY    float64 // y threshold below which a character is considered fallen out of the world.

	renderQueue []*TexturedModel // rebuilt each frame from visible, non-empty models.
}

// NewScene creates an empty scene owned by ctx.
func NewScene(ctx *Context) *Scene {
	s := &Scene{
		ctx:        ctx,
		data:       map[uint32]*EntityData{},
		models:     NewArray[*TexturedModel]("scene.models"),
		byName:     map[string]*TexturedModel{},
		characters: &List[*Character]{},
		light:      newLight(),
		current:    -1,
		Speed:      1.0,
		LimboY:     -1000,
	}
	return s
}

// AddModel registers a textured model under name, creating it if needed.
func (s *Scene) AddModel(name, mesh string, textures ...string) *TexturedModel {
	if m, ok := s.byName[name]; ok {
		return m
	}
	m := &TexturedModel{Name: name, Mesh: mesh, Textures: textures}
	s.models.Add(m)
	s.byName[name] = m
	return m
}

// AddEntity creates a new entity referencing model, with default update
// semantics, and returns a handle to it.
func (s *Scene) AddEntity(model *TexturedModel) *Entity {
	id := s.eids.create()
	d := &EntityData{id: id, Scale: 1, Visible: true, Color: [4]float32{1, 1, 1, 1}, Update: defaultUpdate, model: model}
	s.data[id.id()] = d
	if model != nil {
		model.entities = append(model.entities, id)
	}
	return &Entity{eid: id, scene: s}
}

func (s *Scene) entityData(id eID) *EntityData {
	if !s.eids.valid(id) {
		return nil
	}
	return s.data[id.id()]
}

func (s *Scene) disposeEntity(id eID) {
	d := s.data[id.id()]
	if d == nil {
		return
	}
	if d.model != nil {
		for i, e := range d.model.entities {
			if e == id {
				d.model.entities = append(d.model.entities[:i], d.model.entities[i+1:]...)
				break
			}
		}
	}
	delete(s.data, id.id())
	s.eids.dispose(id)
}

// AddCamera appends a new camera and returns its index.
func (s *Scene) AddCamera() int {
	c := newCamera()
	s.cameras = append(s.cameras, c)
	if s.current == -1 {
		s.current = 0
	}
	return len(s.cameras) - 1
}

// Camera returns the currently active camera, or nil if none exists.
func (s *Scene) Camera() Camera {
	if s.current < 0 || s.current >= len(s.cameras) {
		return nil
	}
	return s.cameras[s.current]
}

// SetCurrentCamera selects which camera is "current".
func (s *Scene) SetCurrentCamera(i int) {
	if i >= 0 && i < len(s.cameras) {
		s.current = i
	}
}

// Pick casts a ray from the current camera through the screen position
// mx, my (window size ww, wh) and returns its world-space direction.
// ok is false if the scene has no current camera.
func (s *Scene) Pick(mx, my, ww, wh int) (x, y, z float64, ok bool) {
	cam := s.Camera()
	if cam == nil {
		return 0, 0, 0, false
	}
	x, y, z = cam.Ray(mx, my, ww, wh)
	return x, y, z, true
}

// ScreenPoint projects the world-space point wx, wy, wz through the
// current camera onto the scene's own viewport (s.W, s.H), the reverse
// of Pick. ok is false if the scene has no current camera.
func (s *Scene) ScreenPoint(wx, wy, wz float64) (sx, sy int, ok bool) {
	cam := s.Camera()
	if cam == nil {
		return 0, 0, false
	}
	sx, sy = cam.Screen(wx, wy, wz, s.W, s.H)
	return sx, sy, true
}

// SetTerrain attaches the height-query terrain used by character_move.
func (s *Scene) SetTerrain(t *Terrain) { s.terrain = t }

// Light returns the scene's single light.
func (s *Scene) Light() *Light { return s.light }

// SetControl designates which character responds to input.
func (s *Scene) SetControl(c *Character) { s.control = c }

// EnqueueDebugDraw appends a debug-draw primitive, consumed and cleared
// by the renderer each frame (§4.8 "Debug draw queue" — messages live
// exactly one frame).
func (s *Scene) EnqueueDebugDraw(d *DebugDraw) {
	s.debugDraw = append(s.debugDraw, d)
}

// DrainDebugDraw returns and clears the accumulated debug-draw queue.
func (s *Scene) DrainDebugDraw() []*DebugDraw {
	out := s.debugDraw
	s.debugDraw = nil
	return out
}

// CharactersMove runs character_move for every character in the scene
// (§4.9 step 8, "scene_characters_move"). Only meaningful once a
// control character exists; a character with a zero motion vector does
// not change position in x/z, but is still snapped to terrain height and
// has its transform recomputed.
func (s *Scene) CharactersMove(fpsFine float64) {
	s.characters.Each(func(c *Character) {
		c.move(s, fpsFine)
	})
}

// Update runs every entity's update callback in model registration
// order (§4.8 "Per-entity update"). Characters pull their physics body
// pose first, run character_move via CharactersMove (already done by
// the time this runs, per §4.9's ordering), then push the pose back.
func (s *Scene) Update(now float64) {
	s.frameTime = now
	s.renderQueue = s.renderQueue[:0]
	s.models.Each(func(_ int, m *TexturedModel) {
		if len(m.entities) == 0 {
			return
		}
		visible := false
		for _, id := range m.entities {
			d := s.data[id.id()]
			if d == nil {
				continue
			}
			if d.Body != nil {
				physics.BodyUpdate(d.Body, func(x, y, z, rx, ry, rz, rw float64) {
					d.Loc = lin.V3{X: x, Y: y, Z: z}
					d.Rot = lin.Q{X: rx, Y: ry, Z: rz, W: rw}
				})
			}
			d.Update(d, s)
			if d.Body != nil {
				physics.SetBodyPose(d.Body, d.Loc.X, d.Loc.Y, d.Loc.Z, d.Rot.X, d.Rot.Y, d.Rot.Z, d.Rot.W)
			}
			if d.Visible {
				visible = true
			}
		}
		if visible {
			s.renderQueue = append(s.renderQueue, m)
		}
	})
}

// RecalcCameras recomputes every camera's view matrix after entities
// have updated (§4.8 "Camera recomputation"). A camera following a
// character derives its position from that character plus a pitch/yaw
// offset; free cameras are left untouched (their Move/Spin already
// updated their own transform).
func (s *Scene) RecalcCameras() {
	for _, cam := range s.cameras {
		if fc, ok := cam.(*followCamera); ok {
			fc.recalc()
		}
	}
}

// followCamera derives its position from a followed character plus a
// fixed offset, recalculated once per frame after entity update.
type followCamera struct {
	*camera
	target    *Character
	offsetYaw, offsetPitch, distance float64
}

// NewFollowCamera creates a camera that tracks target at the given
// relative offset.
func NewFollowCamera(target *Character, yaw, pitch, distance float64) Camera {
	return &followCamera{camera: newCamera(), target: target, offsetYaw: yaw, offsetPitch: pitch, distance: distance}
}

func (fc *followCamera) recalc() {
	if fc.target == nil || fc.target.entity == nil {
		return
	}
	d := fc.target.entity.Data()
	if d == nil {
		return
	}
	yaw := lin.Rad(fc.offsetYaw)
	x := d.Loc.X - math.Sin(yaw)*fc.distance
	z := d.Loc.Z - math.Cos(yaw)*fc.distance
	y := d.Loc.Y + fc.distance*0.5
	fc.SetLocation(x, y, z)
}
