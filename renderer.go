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

// Background describes how ClearScreen fills the frame.
type Background struct {
	// Color is the linear RGB background color.
	Color Vec3
}

// DefaultBackground returns a dark blue suited to unlit scenes.
func DefaultBackground() Background {
	return Background{Color: Vec3{0.05, 0.23, 0.4}}
}

// Camera combines a world transform with a projection matrix.
//
// The camera looks along its local +Y axis, with +Z up. Transform places
// the camera in the world; Proj maps view space to clip space, typically
// via [Perspective] or [Ortho].
type Camera struct {
	Transform Mat4
	Proj      Mat4
}

// NewCamera returns a camera at the world origin with the given projection.
func NewCamera(proj Mat4) Camera {
	return Camera{Transform: mgl32.Ident4(), Proj: proj}
}

// viewProj derives the combined view-projection matrix from the camera
// placement.
func (c Camera) viewProj() Mat4 {
	pos := c.Transform.Mul4x1(Vec4{0, 0, 0, 1}).Vec3()
	dir := c.Transform.Mul4x1(Vec4{0, 1, 0, 0}).Vec3()
	view := mgl32.LookAtV(pos, pos.Add(dir), Vec3{0, 0, 1})
	return c.Proj.Mul4(view)
}

// Object is a single shape instance in a scene. Material indexes the
// materials slice passed to [Renderer.Render]. Text, if non-empty, is
// drawn onto the object by [Renderer.TextPass].
type Object struct {
	Transform Mat4
	Material  int
	Shape     Shape
	Text      string
}

// Renderer rasterizes scenes into a caller-owned buffer of pixels of type
// T, laid out in row-major order. The pixel type is fixed per renderer;
// the [Format] passed to each call decides how colors become pixels.
//
// A Renderer is not safe for concurrent use. The zero value is ready to
// use.
type Renderer[T any] struct {
	vertex vertexState
	raster rasterState
}

// NewRenderer returns a renderer with no buffers allocated yet.
func NewRenderer[T any]() *Renderer[T] {
	return &Renderer[T]{}
}

// ClearScreen prepares a frame: it resizes *buf to w*h pixels (reusing its
// capacity where possible), fills it with the quantized background color,
// resets the depth buffer to the far plane and the stencil buffer to
// unowned, and starts a new dither frame.
//
// ClearScreen must be called before each [Renderer.Render].
func (r *Renderer[T]) ClearScreen(bg Background, f Format[T], d Dithering, buf *[]T, w, h int) {
	r.clearScreen(bg, f, d, buf, w, h)
}

// Render draws the objects into buf, which must have been prepared by
// [Renderer.ClearScreen] with matching dimensions. Primitives are shaded
// by their object's material, clipped against the near plane, and
// rasterized with depth testing, so the draw order of objects does not
// affect the output.
func (r *Renderer[T]) Render(camera Camera, f Format[T], materials []Material, objects []Object, d Dithering, buf []T) {
	proj := camera.viewProj()

	r.vertex.reset()
	for _, m := range materials {
		m.NewFrame()
	}
	for i, obj := range objects {
		center := proj.Mul4(obj.Transform).Mul4x1(Vec4{0, 0, 0, 1})
		r.vertex.objCenters = append(r.vertex.objCenters, center)
		obj.Shape.emit(&r.vertex, materials[obj.Material], proj, obj.Transform, i, obj.Material)
	}
	logger().Debug("rasterizing frame",
		"objects", len(objects),
		"primitives", len(r.vertex.primitives))

	r.rasterize(f, materials, len(objects), d, buf)
}
