// glyph3d - a terminal 3D rendering library
// Copyright (C) 2026  The glyph3d authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package glyph3d

import "github.com/go-gl/mathgl/mgl32"

// Material defines the shading of an object.
//
// Materials are usually stateful: ShadePrimitive may store per-primitive
// data (a face normal, for example) under the id it returns, and
// ShadeFragment reads it back. Instances persist across frames; the
// renderer calls NewFrame before shading any primitives of a frame, which
// is when stored per-primitive data must be discarded.
type Material interface {
	// NewFrame signals the start of a new frame. All primitive ids handed
	// out previously become invalid.
	NewFrame()

	// ShadePrimitive transforms a primitive into clip space (homogeneous,
	// not yet divided by w) and returns a monotonically increasing local
	// id for it. Where in the stage split any auxiliary values (such as
	// normals) are computed is up to the material.
	ShadePrimitive(p Primitive, proj, model Mat4) (int, Primitive)

	// ShadeFragment computes the color of a fragment of the primitive
	// registered under id. pos is the fragment position normalized to the
	// buffer dimensions, depth the interpolated depth in [0, 1]. The
	// second return value is false to discard the fragment.
	ShadeFragment(id int, pos Vec2, depth float32) (Color, bool)
}

// transformPrimitive applies m to every meaningful vertex of p.
func transformPrimitive(p Primitive, m Mat4) Primitive {
	for i, n := 0, p.vertexCount(); i < n; i++ {
		p.V[i] = m.Mul4x1(p.V[i])
	}
	return p
}

// Unlit shades every fragment a flat 50% gray.
type Unlit struct {
	idx int
}

// NewFrame implements [Material].
func (u *Unlit) NewFrame() { u.idx = 0 }

// ShadePrimitive implements [Material].
func (u *Unlit) ShadePrimitive(p Primitive, proj, model Mat4) (int, Primitive) {
	idx := u.idx
	u.idx++
	return idx, transformPrimitive(p, proj.Mul4(model))
}

// ShadeFragment implements [Material].
func (u *Unlit) ShadeFragment(id int, pos Vec2, depth float32) (Color, bool) {
	return Color{0.5, 0.5, 0.5, 0.5}, true
}

// Diffuse shades triangles with a single directional light plus an ambient
// term, tone-mapped with the Reinhard operator. Lines get the zero normal
// and render as pure ambient.
type Diffuse struct {
	Ambient    Vec3
	LightDir   Vec3
	LightColor Vec3

	normals []Vec3
}

// NewDiffuse returns a Diffuse material with a warm key light and a cool
// ambient term.
func NewDiffuse() *Diffuse {
	return &Diffuse{
		Ambient:    Vec3{0.1, 0.13, 0.25}.Mul(5),
		LightDir:   Vec3{0.5, 0.5, -0.5}.Normalize(),
		LightColor: Vec3{0.7, 0.4, 0.1}.Mul(10),
	}
}

// NewFrame implements [Material].
func (d *Diffuse) NewFrame() { d.normals = d.normals[:0] }

// ShadePrimitive implements [Material]. The face normal is computed in
// world space, before projection.
func (d *Diffuse) ShadePrimitive(p Primitive, proj, model Mat4) (int, Primitive) {
	idx := len(d.normals)

	var normal Vec3
	if p.Kind == TriangleKind {
		p = transformPrimitive(p, model)
		e1 := p.V[0].Vec3().Sub(p.V[1].Vec3())
		e2 := p.V[2].Vec3().Sub(p.V[1].Vec3())
		normal = e1.Cross(e2).Normalize()
		p = transformPrimitive(p, proj)
	} else {
		p = transformPrimitive(p, proj.Mul4(model))
	}

	d.normals = append(d.normals, normal)
	return idx, p
}

// ShadeFragment implements [Material].
func (d *Diffuse) ShadeFragment(id int, pos Vec2, depth float32) (Color, bool) {
	lightDot := d.normals[id].Dot(d.LightDir)
	light := d.LightColor.Mul(mgl32.Clamp(lightDot, 0, 1))
	c := d.Ambient.Add(light)

	// Reinhard tone mapping.
	c = Vec3{
		c.X() / (c.X() + 1),
		c.Y() / (c.Y() + 1),
		c.Z() / (c.Z() + 1),
	}

	return Color{c.X(), c.Y(), c.Z(), 1}, true
}

// NormalColor visualizes world-space face normals as fragment colors,
// mapping each component from [-1, 1] to [0, 1].
type NormalColor struct {
	normals []Vec3
}

// NewFrame implements [Material].
func (n *NormalColor) NewFrame() { n.normals = n.normals[:0] }

// ShadePrimitive implements [Material].
func (n *NormalColor) ShadePrimitive(p Primitive, proj, model Mat4) (int, Primitive) {
	idx := len(n.normals)

	var normal Vec3
	if p.Kind == TriangleKind {
		p = transformPrimitive(p, model)
		e1 := p.V[0].Vec3().Sub(p.V[1].Vec3())
		e2 := p.V[2].Vec3().Sub(p.V[1].Vec3())
		normal = e1.Cross(e2).Normalize()
		p = transformPrimitive(p, proj)
	} else {
		p = transformPrimitive(p, proj.Mul4(model))
	}

	n.normals = append(n.normals, normal)
	return idx, p
}

// ShadeFragment implements [Material].
func (n *NormalColor) ShadeFragment(id int, pos Vec2, depth float32) (Color, bool) {
	c := n.normals[id].Add(Vec3{1, 1, 1}).Mul(0.5)
	return Color{c.X(), c.Y(), c.Z(), 1}, true
}

// UIText renders screen-space geometry for text anchoring. It ignores the
// camera projection and uses a fixed orthographic projection with x and y
// clip bounds of 0-100 and z of 1-1000. Fragments are shaded white with
// alpha 0, so the object paints no visible background of its own.
type UIText struct {
	idx  int
	proj Mat4
}

// NewUIText returns a ready-to-use UIText material.
func NewUIText() *UIText {
	view := mgl32.LookAtV(Vec3{}, Vec3{0, 1, 0}, Vec3{0, 0, 1})
	return &UIText{
		proj: Ortho(0, 100, 0, 100, 1, 1000).Mul4(view),
	}
}

// NewFrame implements [Material].
func (u *UIText) NewFrame() { u.idx = 0 }

// ShadePrimitive implements [Material]. The camera projection is ignored.
func (u *UIText) ShadePrimitive(p Primitive, proj, model Mat4) (int, Primitive) {
	idx := u.idx
	u.idx++
	return idx, transformPrimitive(p, u.proj.Mul4(model))
}

// ShadeFragment implements [Material].
func (u *UIText) ShadeFragment(id int, pos Vec2, depth float32) (Color, bool) {
	return Color{1, 1, 1, 0}, true
}
