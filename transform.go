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

// ComposeTransform builds an object or camera transform from a position,
// a rotation and a non-uniform scale, combined as T·R·S.
func ComposeTransform(position Vec3, rotation mgl32.Quat, scale Vec3) Mat4 {
	t := mgl32.Translate3D(position.X(), position.Y(), position.Z())
	s := mgl32.Scale3D(scale.X(), scale.Y(), scale.Z())
	return t.Mul4(rotation.Mat4()).Mul4(s)
}

// Perspective returns a perspective projection with the given vertical
// field of view (radians) and aspect ratio. NDC z spans [-1, 1]; the
// rasterizer remaps it to a [0, 1] depth.
func Perspective(fovy, aspect, near, far float32) Mat4 {
	return mgl32.Perspective(fovy, aspect, near, far)
}

// glToUnitDepth remaps NDC z from the GL convention [-1, 1] to [0, 1].
// Stored column-major; as rows it reads
//
//	1 0 0   0
//	0 1 0   0
//	0 0 1/2 1/2
//	0 0 0   1
var glToUnitDepth = Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// Ortho returns an orthographic projection whose NDC z spans [0, 1]
// for eye-space z between -near and -far.
func Ortho(left, right, bottom, top, near, far float32) Mat4 {
	return glToUnitDepth.Mul4(mgl32.Ortho(left, right, bottom, top, near, far))
}
