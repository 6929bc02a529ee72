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

import "slices"

// stencilNone marks a pixel not owned by any object.
const stencilNone = -1

// boundingRect is a per-object screen-space bounding box. The zero value
// means no pixel of the object has been rasterized yet.
type boundingRect struct {
	set                    bool
	minX, minY, maxX, maxY int
}

func (b *boundingRect) grow(x, y int) {
	if !b.set {
		*b = boundingRect{set: true, minX: x, minY: y, maxX: x, maxY: y}
		return
	}
	b.minX = min(b.minX, x)
	b.minY = min(b.minY, y)
	b.maxX = max(b.maxX, x)
	b.maxY = max(b.maxY, y)
}

// rasterState holds the per-frame fragment buffers: a depth buffer
// (farthest = 1, nearer fragments have smaller values), an object stencil
// recording which object last successfully shaded each pixel, and the
// per-object bounding box table used by the text pass.
//
// Buffers grow as needed but never shrink, so that in steady state
// rendering does not allocate.
type rasterState struct {
	w, h    int
	depth   []float32
	stencil []int
	objBB   []boundingRect
}

// clearScreen resizes the internal buffers for the given dimensions and
// writes the quantized background color into every output pixel.
func (r *Renderer[T]) clearScreen(bg Background, f Format[T], d Dithering, buf *[]T, w, h int) {
	s := &r.raster
	if s.w != w || s.h != h {
		logger().Debug("resizing frame buffers", "width", w, "height", h)
	}
	s.w = w
	s.h = h

	n := w * h
	*buf = slices.Grow((*buf)[:0], n)[:n]

	d.NewFrame(w, h)

	// The background is quantized per pixel, not once, so that
	// dithering varies spatially.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			(*buf)[y*w+x] = f.Quantize(bg.Color, d, x, y)
		}
	}

	s.depth = slices.Grow(s.depth[:0], n)[:n]
	for i := range s.depth {
		s.depth[i] = 1
	}
	s.stencil = slices.Grow(s.stencil[:0], n)[:n]
	for i := range s.stencil {
		s.stencil[i] = stencilNone
	}
}

// rasterize fills the output buffer from the clipped primitive list.
func (r *Renderer[T]) rasterize(f Format[T], materials []Material, objCount int, d Dithering, buf []T) {
	s := &r.raster
	if len(buf) != s.w*s.h {
		panic("glyph3d: buffer length does not match cleared dimensions")
	}

	s.objBB = slices.Grow(s.objBB[:0], objCount)[:objCount]
	for i := range s.objBB {
		s.objBB[i] = boundingRect{}
	}

	for _, cp := range r.vertex.primitives {
		id := cp.id
		mat := materials[id.mat]

		shade := func(x, y int, depth float32) {
			bidx := y*s.w + x

			// The bounding box grows before the depth test and before
			// the fragment shader gets a chance to discard, so occluded
			// regions and shader holes still count towards text bounds.
			s.objBB[id.obj].grow(x, y)

			// Acceptance form on purpose: a NaN depth (from degenerate
			// primitives) fails both comparisons and is discarded.
			if depth >= 0 && s.depth[bidx] >= depth {
				pos := Vec2{float32(x) / float32(s.w), float32(y) / float32(s.h)}
				if c, ok := mat.ShadeFragment(id.local, pos, depth); ok {
					s.depth[bidx] = depth
					s.stencil[bidx] = id.obj
					buf[bidx] = f.Quantize(c.Vec3(), d, x, y)
				}
			}
		}

		switch cp.p.Kind {
		case TriangleKind:
			s.rasterTriangle(cp.p, shade)
		case LineKind:
			s.rasterLine(cp.p, shade)
		}
	}
}

// rasterTriangle fills a clip-space triangle using barycentric weights
// derived from edge function ratios, with linear depth interpolation.
// Clockwise screen-space winding is front-facing; everything else is culled.
func (s *rasterState) rasterTriangle(p Primitive, shade func(x, y int, depth float32)) {
	var v [3]Vec3
	for i := range v {
		v[i] = ndcToScreen(clipToNDC(p.V[i]), s.w, s.h)
	}
	bbMin, bbMax := screenBounds(v[:])

	a, b, c := v[0], v[1], v[2]
	area := edgeFunction(a.Vec2(), b.Vec2(), c.Vec2())
	if area <= 0 {
		// back-facing or degenerate
		return
	}

	yLo := int(max(bbMin.Y(), 0))
	yHi := int(ceil32(min(bbMax.Y(), float32(s.h))))
	xLo := int(max(bbMin.X(), 0))
	xHi := int(ceil32(min(bbMax.X(), float32(s.w))))

	for y := yLo; y < yHi; y++ {
		for x := xLo; x < xHi; x++ {
			pt := Vec2{float32(x), float32(y)}

			wa := edgeFunction(b.Vec2(), c.Vec2(), pt) / area
			wb := edgeFunction(c.Vec2(), a.Vec2(), pt) / area
			wc := edgeFunction(a.Vec2(), b.Vec2(), pt) / area

			if wa >= 0 && wb >= 0 && wc >= 0 {
				shade(x, y, wa*a.Z()+wb*b.Z()+wc*c.Z())
			}
		}
	}
}

// rasterLine walks a clip-space line with Bresenham's algorithm.
//
// Depth along the line is blended from the screen-space distance ratio to
// the two endpoints rather than the Bresenham step parameter. Changing
// this would alter the output wherever lines overlap other geometry.
func (s *rasterState) rasterLine(p Primitive, shade func(x, y int, depth float32)) {
	a := ndcToScreen(clipToNDC(p.V[0]), s.w, s.h)
	b := ndcToScreen(clipToNDC(p.V[1]), s.w, s.h)

	plot := func(x, y int) {
		pt := Vec2{float32(x), float32(y)}
		da := a.Vec2().Sub(pt).Len()
		db := b.Vec2().Sub(pt).Len()
		lerp := da / (da + db)
		shade(x, y, a.Z()+(b.Z()-a.Z())*lerp)
	}

	x0, y0 := clampPixel(a.X()), clampPixel(a.Y())
	x1, y1 := clampPixel(b.X()), clampPixel(b.Y())

	if absInt(y1-y0) < absInt(x1-x0) {
		if x0 > x1 {
			s.plotLineShallow(x1, y1, x0, y0, plot)
		} else {
			s.plotLineShallow(x0, y0, x1, y1, plot)
		}
	} else {
		if y0 > y1 {
			s.plotLineSteep(x1, y1, x0, y0, plot)
		} else {
			s.plotLineSteep(x0, y0, x1, y1, plot)
		}
	}
}

// plotLineShallow walks a mostly-horizontal line left to right. The walk
// terminates at the right and bottom buffer edges and saturates at the top
// edge; lines are not geometrically clipped against the screen sides.
func (s *rasterState) plotLineShallow(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := x1 - x0
	dy := y1 - y0
	yi := 1
	if dy < 0 {
		yi = -1
		dy = -dy
	}

	d := 2*dy - dx
	y := y0
	for x := x0; x <= x1 && x < s.w && y < s.h; x++ {
		plot(x, y)
		if d > 0 {
			y = max(y+yi, 0)
			d += 2 * (dy - dx)
		} else {
			d += 2 * dy
		}
	}
}

// plotLineSteep walks a mostly-vertical line top to bottom.
func (s *rasterState) plotLineSteep(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := x1 - x0
	dy := y1 - y0
	xi := 1
	if dx < 0 {
		xi = -1
		dx = -dx
	}

	d := 2*dx - dy
	x := x0
	for y := y0; y <= y1 && y < s.h && x < s.w; y++ {
		plot(x, y)
		if d > 0 {
			x = max(x+xi, 0)
			d += 2 * (dx - dy)
		} else {
			d += 2 * dx
		}
	}
}

// clampPixel rounds a screen coordinate to the nearest pixel, saturating
// below zero.
func clampPixel(v float32) int {
	return max(int(round32(v)), 0)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
