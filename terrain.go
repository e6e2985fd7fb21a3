// SPDX-FileCopyrightText : © 2022 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package clap

// terrain.go wraps land.Topo with the world-space height query that
// character_move (§4.8) needs. land/ is kept as the procedural heightmap
// generator grounded on the teacher's land package; this file only adds
// the coordinate mapping and bilinear sampling the engine core needs on
// top of it.

import (
	"github.com/onehandclap/clap/land"
	"github.com/onehandclap/clap/math/lin"
)

// Terrain answers world-space height queries over a generated heightmap
// (§3 "Terrain", §4.8 "terrain height lookup"). Width and Depth describe
// how many world units the heightmap grid spans in x and z.
type Terrain struct {
	topo  land.Topo
	Width float64
	Depth float64
}

// NewTerrain generates a terrain section of the given resolution and
// world-space extent. zoom, xoff, yoff, seed are passed through to
// land.Topo.Generate.
func NewTerrain(resolution uint, width, depth float64, zoom, xoff, yoff uint, seed int64) *Terrain {
	t := land.NewTopo(resolution, resolution)
	t.Generate(zoom, xoff, yoff, seed)
	return &Terrain{topo: t, Width: width, Depth: depth}
}

// Height returns the interpolated terrain height at world coordinates
// (x, z), clamped to the heightmap's covered extent.
func (t *Terrain) Height(x, z float64) float64 {
	if t == nil || t.topo == nil {
		return 0
	}
	sx, sz := t.topo.Size()
	if sx < 2 || sz < 2 {
		return 0
	}

	// Map world coordinates to fractional grid coordinates, clamped to
	// the grid's covered range.
	gx := (x/t.Width + 0.5) * float64(sx-1)
	gz := (z/t.Depth + 0.5) * float64(sz-1)
	gx = lin.Clamp(gx, 0, float64(sx-1))
	gz = lin.Clamp(gz, 0, float64(sz-1))

	x0 := int(gx)
	z0 := int(gz)
	x1 := x0 + 1
	z1 := z0 + 1
	if x1 > sx-1 {
		x1 = sx - 1
	}
	if z1 > sz-1 {
		z1 = sz - 1
	}
	fx := gx - float64(x0)
	fz := gz - float64(z0)

	h00 := t.topo[x0][z0]
	h10 := t.topo[x1][z0]
	h01 := t.topo[x0][z1]
	h11 := t.topo[x1][z1]

	h0 := h00 + (h10-h00)*fx
	h1 := h01 + (h11-h01)*fx
	return h0 + (h1-h0)*fz
}
