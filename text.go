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

// TextPass draws object labels on top of a rendered frame.
//
// It must be called after [Renderer.Render] with the same object list and
// buffer. For each object with a non-empty Text, a single line of text is
// centered on the object's projected origin, clamped to the object's
// screen bounding box and truncated to fit its width. Pixels around the
// text are darkened to form a border. Both the text and the border only
// touch pixels whose stencil entry belongs to the object, so labels never
// bleed onto other objects or the background.
//
// Objects too small on screen (fewer than 3 pixel rows, or too narrow to
// fit a single character with its border) are skipped.
func (r *Renderer[T]) TextPass(objects []Object, f Format[T], buf []T) {
	s := &r.raster

	for i, obj := range objects {
		if i >= len(s.objBB) || !s.objBB[i].set {
			continue
		}
		bb := s.objBB[i]

		if bb.maxY-bb.minY < 3 {
			continue
		}
		if obj.Text == "" {
			continue
		}

		// TODO: wrap long labels over multiple rows instead of truncating
		maxChars := bb.maxX - bb.minX - 2
		if maxChars <= 0 {
			continue
		}
		chars := []rune(obj.Text)
		if len(chars) > maxChars {
			chars = chars[:maxChars]
		}
		width := len(chars)

		leftChars := width / 2
		rightChars := max(width-leftChars-1, 0)

		midX := (bb.maxX + bb.minX) / 2
		midY := (bb.maxY + bb.minY) / 2

		// Pin the midpoint to the object's projected origin where the
		// bounding box allows. This keeps the label still while the
		// silhouette changes shape across frames.
		if i < len(r.vertex.objCenters) {
			screen := ndcToScreen(clipToNDC(r.vertex.objCenters[i]), s.w, s.h)
			mx := clampPixel(screen.X())
			my := clampPixel(screen.Y())
			if bb.maxY != bb.minY {
				midY = min(max(my, bb.minY+1), bb.maxY-1)
			}
			if bb.maxX != bb.minX {
				midX = min(max(mx, bb.minX+leftChars+1), bb.maxX-rightChars-1)
			}
		}

		darken := func(x, y int) {
			if x < 0 || x >= s.w || y < 0 || y >= s.h {
				return
			}
			bidx := y*s.w + x
			if s.stencil[bidx] == i {
				buf[bidx] = f.Darken(buf[bidx])
			}
		}

		// Border above and below the text row, plus its two end caps.
		for y := midY - 1; y <= midY+1; y += 2 {
			for x := midX - leftChars - 1; x <= midX+rightChars+1; x++ {
				darken(x, y)
			}
		}
		darken(midX-leftChars-1, midY)
		darken(midX+rightChars+1, midY)

		for o, c := range chars {
			x := midX - leftChars + o
			if x < 0 || x >= s.w || midY < 0 || midY >= s.h {
				continue
			}
			bidx := midY*s.w + x
			if s.stencil[bidx] == i {
				buf[bidx] = f.Embed(buf[bidx], c)
			}
		}
	}
}
