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

import "testing"

func TestXorShufDitherOffsets(t *testing.T) {
	d := &XorShufDither{}
	d.NewFrame(16, 16)

	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			for z := 0; z < 3; z++ {
				got := d.Dither(0.5, x, y, z)
				if got < 0 || got >= 1 {
					t.Fatalf("Dither(0.5, %d, %d, %d) = %g, want offset in [-0.5, 0.5)",
						x, y, z, got)
				}
			}
		}
	}
}

func TestXorShufDitherDeterministic(t *testing.T) {
	d1 := &XorShufDither{}
	d2 := &XorShufDither{}
	d1.NewFrame(8, 8)
	d2.NewFrame(8, 8)

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			a := d1.Dither(0.25, x, y, 0)
			b := d2.Dither(0.25, x, y, 0)
			if a != b {
				t.Fatalf("Dither(0.25, %d, %d, 0): %g != %g", x, y, a, b)
			}
		}
	}
}

func TestXorShufDitherTemporal(t *testing.T) {
	sample := func(d *XorShufDither) []float32 {
		var vals []float32
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				vals = append(vals, d.Dither(0.5, x, y, 0))
			}
		}
		return vals
	}

	t.Run("static", func(t *testing.T) {
		d := &XorShufDither{}
		d.NewFrame(8, 8)
		first := sample(d)
		d.NewFrame(8, 8)
		second := sample(d)
		for i := range first {
			if first[i] != second[i] {
				t.Fatalf("sample %d changed between frames: %g != %g",
					i, first[i], second[i])
			}
		}
	})

	t.Run("temporal", func(t *testing.T) {
		d := &XorShufDither{TemporalDither: true}
		d.NewFrame(8, 8)
		first := sample(d)
		d.NewFrame(8, 8)
		second := sample(d)
		same := true
		for i := range first {
			if first[i] != second[i] {
				same = false
				break
			}
		}
		if same {
			t.Error("temporal dither pattern did not change between frames")
		}
	})
}

func TestNopDither(t *testing.T) {
	var d NopDither
	d.NewFrame(4, 4)
	for _, v := range []float32{0, 0.25, 0.5, 1} {
		if got := d.Dither(v, 3, 7, 1); got != v {
			t.Errorf("Dither(%g) = %g, want %g", v, got, v)
		}
	}
}
