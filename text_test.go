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

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// renderLabelled draws a full-screen white object with the given label
// into a w*h glyph buffer.
func renderLabelled(r *Renderer[byte], text string, w, h int) []byte {
	var buf []byte
	objects := []Object{{
		Transform: mgl32.Ident4(),
		Shape:     PrimitiveShape{Primitive: fullScreenTriangle(0)},
		Text:      text,
	}}
	r.ClearScreen(Background{}, GlyphFormat{}, NopDither{}, &buf, w, h)
	r.Render(NewCamera(mgl32.Ident4()), GlyphFormat{}, []Material{white()}, objects, NopDither{}, buf)
	r.TextPass(objects, GlyphFormat{}, buf)
	return buf
}

func TestTextPass(t *testing.T) {
	const w, h = 16, 8
	r := NewRenderer[byte]()
	buf := renderLabelled(r, "hi", w, h)

	// The object covers the screen and its projected origin lands at the
	// center, so the label is embedded mid-frame with a darkened border.
	const midX, midY = 8, 4
	if got := string(buf[midY*w+midX-1 : midY*w+midX+1]); got != "hi" {
		t.Fatalf("label row = %q, want \"hi\"\n%s", got, frameString(buf, w))
	}

	for _, y := range []int{midY - 1, midY + 1} {
		for x := midX - 2; x <= midX+1; x++ {
			if buf[y*w+x] != '.' {
				t.Errorf("border pixel (%d, %d) = %q, want '.'", x, y, buf[y*w+x])
			}
		}
	}
	if buf[midY*w+midX-2] != '.' || buf[midY*w+midX+1] != '.' {
		t.Errorf("side border missing\n%s", frameString(buf, w))
	}

	// Pixels away from the label keep their rendered value.
	if buf[0] != '@' || buf[len(buf)-1] != '@' {
		t.Errorf("text pass touched pixels outside the label\n%s", frameString(buf, w))
	}
}

func TestTextPassTruncates(t *testing.T) {
	const w, h = 16, 8
	r := NewRenderer[byte]()
	buf := renderLabelled(r, "abcdefghijklmnopqrstuvwx", w, h)

	// At most maxX-minX-2 = 13 characters fit.
	got := ""
	for _, p := range buf {
		if p >= 'a' && p <= 'z' {
			got += string(p)
		}
	}
	if got != "abcdefghijklm" {
		t.Errorf("embedded %q, want \"abcdefghijklm\"\n%s", got, frameString(buf, w))
	}
}

func TestTextPassStencilGate(t *testing.T) {
	const w, h = 16, 8
	r := NewRenderer[byte]()
	var buf []byte
	objects := []Object{{
		Transform: mgl32.Ident4(),
		Shape:     PrimitiveShape{Primitive: fullScreenTriangle(0)},
		Text:      "hi",
	}}
	r.ClearScreen(Background{}, GlyphFormat{}, NopDither{}, &buf, w, h)
	r.Render(NewCamera(mgl32.Ident4()), GlyphFormat{}, []Material{white()}, objects, NopDither{}, buf)

	// Hand one of the label's target pixels to another object; the pass
	// must leave it alone.
	r.raster.stencil[4*w+8] = 1
	r.TextPass(objects, GlyphFormat{}, buf)

	if buf[4*w+8] != '@' {
		t.Errorf("pixel owned by another object was overwritten: %q", buf[4*w+8])
	}
	if buf[4*w+7] != 'h' {
		t.Errorf("pixel owned by the object was not embedded: %q", buf[4*w+7])
	}
}

func TestTextPassSkips(t *testing.T) {
	const w, h = 16, 8

	t.Run("no text", func(t *testing.T) {
		r := NewRenderer[byte]()
		buf := renderLabelled(r, "", w, h)
		for i, p := range buf {
			if p != '@' {
				t.Fatalf("pixel %d = %q, want '@'", i, p)
			}
		}
	})

	t.Run("object too flat", func(t *testing.T) {
		r := NewRenderer[byte]()
		var buf []byte
		objects := []Object{{
			Transform: mgl32.Ident4(),
			Shape: PrimitiveShape{Primitive: NewLine(
				Vec4{-1, 0, 0, 1}, Vec4{1, 0, 0, 1})},
			Text: "hi",
		}}
		r.ClearScreen(Background{}, GlyphFormat{}, NopDither{}, &buf, w, h)
		r.Render(NewCamera(mgl32.Ident4()), GlyphFormat{}, []Material{white()}, objects, NopDither{}, buf)
		before := string(buf)
		r.TextPass(objects, GlyphFormat{}, buf)
		if string(buf) != before {
			t.Error("text pass modified a 1-pixel-high object")
		}
	})

	t.Run("object never rasterized", func(t *testing.T) {
		r := NewRenderer[byte]()
		var buf []byte
		tri := fullScreenTriangle(0)
		tri.V[1], tri.V[2] = tri.V[2], tri.V[1] // back-facing
		objects := []Object{{
			Transform: mgl32.Ident4(),
			Shape:     PrimitiveShape{Primitive: tri},
			Text:      "hi",
		}}
		r.ClearScreen(Background{}, GlyphFormat{}, NopDither{}, &buf, w, h)
		r.Render(NewCamera(mgl32.Ident4()), GlyphFormat{}, []Material{white()}, objects, NopDither{}, buf)
		r.TextPass(objects, GlyphFormat{}, buf)
		for i, p := range buf {
			if p != ' ' {
				t.Fatalf("pixel %d = %q, want ' '", i, p)
			}
		}
	})
}
