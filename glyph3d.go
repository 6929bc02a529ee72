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

// Package glyph3d implements a software 3D rendering pipeline whose output
// pixels are arbitrary "cell" representations: ASCII glyphs, 16/256-color
// terminal cells, raw RGB, or compositions of these.
//
// Rendering proceeds in stages:
//
//   - Primitive shading (similar to vertex shading, but over whole
//     primitives), performed by a per-object [Material].
//   - Near-plane clipping in homogeneous clip space.
//   - Depth-tested triangle and line rasterization with per-fragment
//     shading.
//   - An optional text overlay pass.
//
// Fragments are shaded in linear float RGB and only quantized to the output
// representation at the very end, through a [Format] paired with a
// [Dithering] noise source. This keeps the pipeline agnostic to the output
// color space, which is what makes rendering into terminal cells practical.
//
// The entry point is [Renderer]; a full frame is
// [Renderer.ClearScreen] → [Renderer.Render] → [Renderer.TextPass].
//
// A Renderer is not safe for concurrent use.
package glyph3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vector and matrix types are aliased from mgl32 so that callers can mix
// glyph3d and mgl32 APIs freely.
type (
	Vec2 = mgl32.Vec2
	Vec3 = mgl32.Vec3
	Vec4 = mgl32.Vec4
	Mat4 = mgl32.Mat4
)

// Color is a linear float RGB color with an alpha component.
// The rasterizer ignores alpha; materials may use it as a marker.
type Color = mgl32.Vec4

// TermCharAspect returns the assumed aspect ratio of terminal characters.
//
// Currently returns (1, 2), indicating that characters are twice as tall as
// they are wide. Callers typically use this to pick a buffer height that
// yields square "virtual" pixels.
func TermCharAspect() (int, int) {
	return 1, 2
}

// clipToNDC performs the perspective division from homogeneous clip space
// to normalized device coordinates.
func clipToNDC(v Vec4) Vec3 {
	return Vec3{v.X() / v.W(), v.Y() / v.W(), v.Z() / v.W()}
}

// ndcToScreen maps NDC to screen space: x and y to pixel coordinates (with
// y growing downwards), z to a depth value in [0, 1].
func ndcToScreen(p Vec3, w, h int) Vec3 {
	halfW := float32(w-1) / 2
	halfH := float32(h-1) / 2
	return Vec3{
		(p.X() + 1) * halfW,
		(1 - p.Y()) * halfH,
		(p.Z() + 1) / 2,
	}
}

// edgeFunction computes the signed parallelogram area spanned by (b-a) and
// (c-a). The sign encodes which side of the line a→b the point c lies on.
func edgeFunction(a, b, c Vec2) float32 {
	return (c.X()-a.X())*(b.Y()-a.Y()) - (c.Y()-a.Y())*(b.X()-a.X())
}

// screenBounds computes the componentwise bounding box of a vertex list.
// Panics if v is empty.
func screenBounds(v []Vec3) (bbMin, bbMax Vec3) {
	bbMin, bbMax = v[0], v[0]
	for _, p := range v[1:] {
		for i := 0; i < 3; i++ {
			bbMin[i] = min(bbMin[i], p[i])
			bbMax[i] = max(bbMax[i], p[i])
		}
	}
	return bbMin, bbMax
}

func floor32(v float32) float32 { return float32(math.Floor(float64(v))) }
func ceil32(v float32) float32  { return float32(math.Ceil(float64(v))) }
func round32(v float32) float32 { return float32(math.Round(float64(v))) }
func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
