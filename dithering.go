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

import "sync"

// Dithering perturbs quantization rounding with per-pixel noise.
//
// In limited color outputs (such as terminal screens), direct
// nearest-color conversion leads to visible banding. Dithering makes the
// rounding probabilistic rather than uniform among pixels, which lowers the
// overall error and reads as noise instead of bands.
type Dithering interface {
	// NewFrame signals the start of a new frame with the given buffer
	// dimensions. Implementations may update internal counters.
	NewFrame(w, h int)

	// Dither perturbs an interpolation weight in [0, 1] by an offset in
	// [-0.5, 0.5]. The (x, y) pair is the pixel position; z disambiguates
	// multiple independent draws for the same pixel (for example separate
	// color channels, or the multi-criterion blends of the 16-color
	// quantizer).
	Dither(interp float32, x, y, z int) float32
}

// ditherTable is the shared 256-entry offset table, built on first use.
//
// The generator is an 8-bit xorshift with a fixed seed; the first three
// iterations are discarded before the table is filled. Each output byte
// maps to an offset in [-0.5, 0.5).
var ditherTable = sync.OnceValue(func() *[256]float32 {
	a, x, y, z := byte(0), byte(1), byte(1), byte(1)
	step := func() {
		t := x ^ (x << 4)
		x, y = y, z
		z = a
		a = z ^ t ^ (z >> 1) ^ (t << 1)
	}
	step()
	step()
	step()

	var table [256]float32
	for i := range table {
		step()
		table[i] = float32(a)/256 - 0.5
	}
	return &table
})

// XorShufDither is a dither source backed by a xorshift-shuffled offset
// table.
//
// Offsets are selected by ((x+1)·(y+1)·(z+1)) mod 256, giving a
// non-repeating spatial pattern. With TemporalDither set, the index is
// additionally multiplied by a per-frame counter so the pattern changes
// from frame to frame.
//
// The zero value is ready to use.
type XorShufDither struct {
	// TemporalDither randomizes the pattern across frames.
	TemporalDither bool

	frame int
}

// NewFrame advances the per-frame counter.
func (d *XorShufDither) NewFrame(w, h int) {
	d.frame++
}

// Dither implements [Dithering].
func (d *XorShufDither) Dither(interp float32, x, y, z int) float32 {
	mult := 1
	if d.TemporalDither {
		mult = d.frame
	}
	idx := ((x + 1) * (y + 1) * (z + 1) * mult) % 256
	return interp + ditherTable()[idx]
}

// NopDither performs no dithering: quantization rounds uniformly.
type NopDither struct{}

// NewFrame implements [Dithering].
func (NopDither) NewFrame(w, h int) {}

// Dither returns interp unchanged.
func (NopDither) Dither(interp float32, x, y, z int) float32 { return interp }
