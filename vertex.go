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

// clippedPrimitive is a clip-space primitive tagged with its owner.
type clippedPrimitive struct {
	p  Primitive
	id primitiveID
}

// vertexState holds the per-frame output of the geometry stage: the list of
// near-plane-clipped primitives, and per object the projected clip-space
// position of the object origin (used to anchor overlay text).
//
// Both slices are reset at the start of every Render call and never
// persist across frames; the backing arrays are reused.
type vertexState struct {
	primitives []clippedPrimitive
	objCenters []Vec4
}

func (vs *vertexState) reset() {
	vs.primitives = vs.primitives[:0]
	vs.objCenters = vs.objCenters[:0]
}

// clipped reports whether a homogeneous vertex lies behind the near plane.
func clipped(v Vec4) bool {
	return v.Z()/abs32(v.W()) < 0
}

// planeIntersect interpolates between an inside and an outside vertex to
// the point where the segment crosses the z=0 clip plane. Interpolation is
// componentwise across the full homogeneous vector.
func planeIntersect(inside, outside Vec4) Vec4 {
	t := (0 - inside.Z()) / (outside.Z() - inside.Z())
	return inside.Add(outside.Sub(inside).Mul(t))
}

// clipAndPush clips the primitive against the near plane and appends the
// surviving parts to the primitive list.
func (vs *vertexState) clipAndPush(p Primitive, id primitiveID) {
	switch p.Kind {
	case TriangleKind:
		vs.clipTriangle(p, id)
	case LineKind:
		vs.clipLine(p, id)
	default:
		panic("glyph3d: unknown primitive kind")
	}
}

// clipLine clips a line against the near plane.
//
// TODO: clip lines against the remaining clip planes as well. A line whose
// endpoints both project off-screen in x or y is currently walked from the
// buffer edge instead of being clipped geometrically.
func (vs *vertexState) clipLine(p Primitive, id primitiveID) {
	start, end := p.V[0], p.V[1]
	startOut, endOut := clipped(start), clipped(end)

	switch {
	case startOut && endOut:
		return
	case startOut:
		start = planeIntersect(end, start)
	case endOut:
		end = planeIntersect(start, end)
	}

	vs.primitives = append(vs.primitives, clippedPrimitive{NewLine(start, end), id})
}

// clipTriangle performs near-plane clipping and pushes the result.
//
// A triangle crossing the plane with one vertex outside produces two
// triangles; both share the original's material, object and local ids.
func (vs *vertexState) clipTriangle(p Primitive, id primitiveID) {
	verts := p.V
	var out [3]bool
	outCount := 0
	for i, v := range verts {
		out[i] = clipped(v)
		if out[i] {
			outCount++
		}
	}

	switch outCount {
	case 0:
		vs.primitives = append(vs.primitives, clippedPrimitive{p, id})

	case 1:
		// One vertex clipped: replace it with the two edge intersections,
		// splitting the resulting quad into two triangles. i1 and i2 are
		// the surviving vertices, in index order, which preserves the
		// winding of both halves.
		var clippedIdx, i1, i2 int
		switch {
		case out[0]:
			clippedIdx, i1, i2 = 0, 1, 2
		case out[1]:
			clippedIdx, i1, i2 = 1, 0, 2
		default:
			clippedIdx, i1, i2 = 2, 0, 1
		}

		c1 := planeIntersect(verts[i1], verts[clippedIdx])
		c2 := planeIntersect(verts[i2], verts[clippedIdx])

		first := verts
		first[clippedIdx] = c1
		vs.primitives = append(vs.primitives,
			clippedPrimitive{NewTriangle(first[0], first[1], first[2]), id})

		second := verts
		second[i1] = c1
		second[clippedIdx] = c2
		vs.primitives = append(vs.primitives,
			clippedPrimitive{NewTriangle(second[0], second[1], second[2]), id})

	case 2:
		// Two vertices clipped: pull both towards the surviving vertex.
		unclipped := 0
		for i, o := range out {
			if !o {
				unclipped = i
			}
		}
		var result [3]Vec4
		for i, v := range verts {
			if i == unclipped {
				result[i] = v
			} else {
				result[i] = planeIntersect(verts[unclipped], v)
			}
		}
		vs.primitives = append(vs.primitives,
			clippedPrimitive{NewTriangle(result[0], result[1], result[2]), id})

	case 3:
		// Fully behind the near plane.
	}
}
