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

// PrimitiveKind identifies the variant stored in a [Primitive].
type PrimitiveKind uint8

const (
	// TriangleKind is a filled triangle with vertices V[0..2].
	TriangleKind PrimitiveKind = iota
	// LineKind is a one-pixel line from V[0] to V[1]; V[2] is unused.
	LineKind
)

// Primitive is a triangle or line with homogeneous vertices.
//
// Vertices start in object space with w = 1; after [Material.ShadePrimitive]
// they are in clip space, not yet divided by w.
type Primitive struct {
	Kind PrimitiveKind
	V    [3]Vec4
}

// NewTriangle returns a triangle primitive.
func NewTriangle(a, b, c Vec4) Primitive {
	return Primitive{Kind: TriangleKind, V: [3]Vec4{a, b, c}}
}

// NewLine returns a line primitive.
func NewLine(start, end Vec4) Primitive {
	return Primitive{Kind: LineKind, V: [3]Vec4{start, end, {}}}
}

// vertexCount returns the number of meaningful vertices of the primitive.
func (p Primitive) vertexCount() int {
	if p.Kind == LineKind {
		return 2
	}
	return 3
}

// primitiveID binds a rasterized fragment back to its owning object and to
// the per-material local id assigned during primitive shading, so a
// material can retrieve its own per-primitive state.
type primitiveID struct {
	mat   int // index into the material slice
	obj   int // index into the object slice
	local int // per-material, per-frame id from ShadePrimitive
}

// Shape is the geometry of an [Object]: either a [Cube] or a single
// [PrimitiveShape].
type Shape interface {
	// emit shades the shape's primitives through the owning material and
	// pushes the clipped results onto the vertex state.
	emit(vs *vertexState, mat Material, proj, model Mat4, objIdx, matIdx int)
}

// Cube is an axis-aligned box centered on the object origin.
type Cube struct {
	// Size scales the unit cube along each axis.
	Size Vec3
}

// The unit cube spans [-0.5, 0.5] on each axis; the 12 faces are indexed so
// that outward faces wind counter-clockwise after the screen-space y flip.
var cubeCorners = [8]Vec4{
	{-0.5, -0.5, -0.5, 1},
	{0.5, -0.5, -0.5, 1},
	{0.5, 0.5, -0.5, 1},
	{-0.5, 0.5, -0.5, 1},
	{-0.5, -0.5, 0.5, 1},
	{0.5, -0.5, 0.5, 1},
	{0.5, 0.5, 0.5, 1},
	{-0.5, 0.5, 0.5, 1},
}

var cubeFaces = [12][3]int{
	{0, 2, 1},
	{0, 3, 2},
	{1, 2, 6},
	{6, 5, 1},
	{4, 5, 6},
	{6, 7, 4},
	{2, 3, 6},
	{6, 3, 7},
	{0, 7, 3},
	{0, 4, 7},
	{0, 1, 5},
	{0, 5, 4},
}

func (c Cube) emit(vs *vertexState, mat Material, proj, model Mat4, objIdx, matIdx int) {
	scale := Vec4{c.Size.X(), c.Size.Y(), c.Size.Z(), 1}
	for _, face := range cubeFaces {
		var v [3]Vec4
		for i, idx := range face {
			corner := cubeCorners[idx]
			v[i] = Vec4{
				corner.X() * scale.X(),
				corner.Y() * scale.Y(),
				corner.Z() * scale.Z(),
				corner.W(),
			}
		}
		local, shaded := mat.ShadePrimitive(NewTriangle(v[0], v[1], v[2]), proj, model)
		vs.clipAndPush(shaded, primitiveID{mat: matIdx, obj: objIdx, local: local})
	}
}

// PrimitiveShape wraps a single triangle or line as an object shape.
type PrimitiveShape struct {
	Primitive Primitive
}

func (s PrimitiveShape) emit(vs *vertexState, mat Material, proj, model Mat4, objIdx, matIdx int) {
	local, shaded := mat.ShadePrimitive(s.Primitive, proj, model)
	vs.clipAndPush(shaded, primitiveID{mat: matIdx, obj: objIdx, local: local})
}
