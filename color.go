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
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Format describes how linear float RGB colors map onto a concrete pixel
// type T, and how finished pixels are post-processed by the text pass.
//
// Quantization is inherently lossy; implementations receive the pixel
// position and a [Dithering] source so rounding error can be spread
// spatially instead of banding.
//
// Configuration (such as a terminal color mode) lives in the Format value
// itself, so one buffer type can serve several output encodings.
type Format[T any] interface {
	// Quantize converts a linear RGB value into an output pixel.
	Quantize(rgb Vec3, d Dithering, x, y int) T

	// Darken moves a pixel one palette step towards black. The text pass
	// uses this to build a contrast halo around overlay text.
	Darken(p T) T

	// Embed overwrites the pixel's visual glyph with an ASCII character,
	// leaving color information untouched. Representations without a glyph
	// component return the pixel unchanged.
	Embed(p T, c rune) T
}

// DitheredRange maps a value in [0, 1] to an integer in [0, maxVal].
//
// The value is clamped, scaled by maxVal and floored; the fractional
// remainder is dithered and then rounded, so values between two steps
// resolve probabilistically under a noisy [Dithering] source.
func DitheredRange(val float32, maxVal int, d Dithering, x, y int) int {
	v := min(max(val, 0), 1) * float32(maxVal)
	floored := floor32(v)
	dithered := d.Dither(v-floored, x, y, 0)
	idx := int(round32(dithered + floored))
	if idx >= maxVal {
		return maxVal
	}
	if idx < 0 {
		return 0
	}
	return idx
}

// glyphRamp is the 10-step brightness ramp used for plain ASCII output.
const glyphRamp = " .:-=+*%#@"

// GlyphFormat renders into single ASCII bytes using a 10-glyph brightness
// ramp. Color information beyond luma is discarded.
type GlyphFormat struct{}

// Quantize implements [Format].
func (GlyphFormat) Quantize(rgb Vec3, d Dithering, x, y int) byte {
	luma := rgb.Dot(Vec3{0.21, 0.72, 0.07})
	return glyphRamp[DitheredRange(luma, len(glyphRamp)-1, d, x, y)]
}

// Darken implements [Format]. Any glyph other than the darkest becomes the
// second-darkest.
func (GlyphFormat) Darken(p byte) byte {
	if p != glyphRamp[0] {
		return glyphRamp[1]
	}
	return p
}

// Embed implements [Format]. Non-ASCII characters map to '?'.
func (GlyphFormat) Embed(p byte, c rune) byte {
	if c >= 0 && c < 128 {
		return byte(c)
	}
	return '?'
}

// Col16 is one of the 16 standard terminal colors.
//
// The values are split into a grayscale group and dark/light hue variants
// so that neighbors can be computed from hue alone, switching between the
// dark and light tier separately.
type Col16 uint8

const (
	// Grayscale.
	Col16Black Col16 = iota
	Col16DarkGray
	Col16Gray
	Col16White
	// Dark hues, 60 degree steps.
	Col16DarkRed
	Col16DarkYellow
	Col16DarkGreen
	Col16DarkCyan
	Col16DarkBlue
	Col16DarkMagenta
	// Light hues, 60 degree steps.
	Col16Red
	Col16Yellow
	Col16Green
	Col16Cyan
	Col16Blue
	Col16Magenta
)

// col16LightShift converts a dark hue index into its light variant.
const col16LightShift = int(Col16Red) - int(Col16DarkRed)

var col16Values = [16]Vec3{
	{0, 0, 0},
	{0.5, 0.5, 0.5},
	{0.75, 0.75, 0.75},
	{1, 1, 1},
	{0.5, 0, 0},
	{0.5, 0.5, 0},
	{0, 0.5, 0},
	{0, 0.5, 0.5},
	{0, 0, 0.5},
	{0.5, 0, 0.5},
	{1, 0, 0},
	{1, 1, 0},
	{0, 1, 0},
	{0, 1, 1},
	{0, 0, 1},
	{1, 0, 1},
}

// Vec returns the nominal linear RGB value of the color.
func (c Col16) Vec() Vec3 {
	return col16Values[c]
}

// Col16Format quantizes into the 16 standard terminal colors.
//
// Instead of a nearest-RGB match, the input is converted to HSV and the two
// closest candidates are found on a hue/lightness grid; one of them is then
// chosen by a dithered coin flip weighted by the blend ratio. This gives
// much smoother transitions under dithering, at the cost of some fairly
// arbitrary decisions when blending between grayscale and color.
type Col16Format struct{}

// Quantize implements [Format].
func (Col16Format) Quantize(rgb Vec3, d Dithering, x, y int) Col16 {
	target := d.Dither(0.5, x, y, 0)

	h, s, v := rgbToHSV(rgb)
	a, aDist, b, bDist := nearestCol16(h, s, v,
		d.Dither(0.5, x, y, 1), d.Dither(0.5, x, y, 2))

	// The weighted blend between the two candidates is realized as a coin
	// flip, not averaging: averaged colors do not exist in a 16-color
	// palette.
	lerp := aDist / (aDist + bDist)
	if lerp <= target {
		return a
	}
	return b
}

// Darken implements [Format]: light hues fall to their dark variants,
// everything else (except black) falls to black.
func (Col16Format) Darken(p Col16) Col16 {
	switch {
	case p >= Col16Red:
		return p - Col16(col16LightShift)
	case p == Col16White:
		return Col16Gray
	case p == Col16Gray:
		return Col16DarkGray
	case p == Col16Black:
		return Col16Black
	default:
		return Col16Black
	}
}

// Embed implements [Format]. Col16 carries no glyph, so the pixel is
// returned unchanged.
func (Col16Format) Embed(p Col16, c rune) Col16 { return p }

// rgbToHSV converts a linear RGB vector (clamped to [0,1] per channel) to
// hue in degrees, saturation and value, each in [0, 1] except hue.
func rgbToHSV(rgb Vec3) (h, s, v float32) {
	c := colorful.Color{
		R: float64(min(max(rgb.X(), 0), 1)),
		G: float64(min(max(rgb.Y(), 0), 1)),
		B: float64(min(max(rgb.Z(), 0), 1)),
	}
	hf, sf, vf := c.Hsv()
	return float32(hf), float32(sf), float32(vf)
}

// nearestCol16 finds the two palette colors closest to the given HSV value
// together with their blend weights.
//
// ditherSat decides (probabilistically, near the boundary) whether the
// color is treated as grayscale; ditherPhase perturbs the quadrant
// selection on the hue/lightness grid, since each quadrant can only blend
// between two of the four surrounding palette entries.
func nearestCol16(h, s, v, ditherSat, ditherPhase float32) (a Col16, aDist float32, b Col16, bDist float32) {
	if s < ditherSat*0.33 {
		// Pure grayscale, interpolating among the four gray levels.
		val := v * 4
		fl := floor32(val)
		cl := ceil32(val)
		idx1 := min(int(fl), 3)
		idx2 := min(int(cl), 3)
		return Col16(idx1), abs32(val - fl), Col16(idx2), abs32(val - cl)
	}

	qHue := h / 60
	// Both ratios live in [-1, 1].
	hueRat := (qHue-floor32(qHue))*2 - 1
	// The colored part of the palette covers the upper half of the value
	// range; 50% value is a dark hue, 100% a light one.
	valueRat := v*4 - 3

	phase := float32(math.Atan2(float64(hueRat), float64(valueRat)))

	const pi = math.Pi
	phase = float32(math.Mod(float64(phase+pi-pi*(ditherPhase-0.5)), 2*pi)) - pi

	hueFloor := int(Col16DarkRed) + int(floor32(qHue))
	hueCeil := int(Col16DarkRed) + int(ceil32(qHue))%6

	darkWeight := (max(valueRat, -1) + 1) / 2
	lightWeight := (max(-valueRat, -1) + 1) / 2

	switch {
	case phase <= 3*pi/4 && phase >= pi/4:
		// Ceiled hue, blending across the lightness tiers.
		return Col16(hueCeil), darkWeight,
			Col16(hueCeil + col16LightShift), lightWeight
	case phase <= pi/4 && phase >= -pi/4:
		// Light tier, blending across hues.
		return Col16(hueFloor + col16LightShift), (hueRat + 1) * 30,
			Col16(hueCeil + col16LightShift), (-hueRat + 1) * 30
	case phase <= -pi/4 && phase >= -3*pi/4:
		// Floored hue, blending across the lightness tiers.
		return Col16(hueFloor), darkWeight,
			Col16(hueFloor + col16LightShift), lightWeight
	default:
		// Dark tier, blending across hues.
		return Col16(hueFloor), (hueRat + 1) * 30,
			Col16(hueCeil), (-hueRat + 1) * 30
	}
}

// RGB is a raw 8-bit-per-channel pixel.
type RGB struct {
	R, G, B uint8
}

// RGBFormat quantizes into raw 8-bit RGB, dithering each channel
// independently at full depth.
type RGBFormat struct{}

// Quantize implements [Format].
func (RGBFormat) Quantize(rgb Vec3, d Dithering, x, y int) RGB {
	return RGB{
		R: uint8(DitheredRange(rgb.X(), 255, d, x, y)),
		G: uint8(DitheredRange(rgb.Y(), 255, d, x, y)),
		B: uint8(DitheredRange(rgb.Z(), 255, d, x, y)),
	}
}

// Darken implements [Format] by halving each channel.
func (RGBFormat) Darken(p RGB) RGB {
	return RGB{R: p.R / 2, G: p.G / 2, B: p.B / 2}
}

// Embed implements [Format]. RGB carries no glyph, so the pixel is
// returned unchanged.
func (RGBFormat) Embed(p RGB, c rune) RGB { return p }

// Pair combines two pixel representations into one, typically a color
// component and a glyph component of a terminal cell.
type Pair[A, B any] struct {
	A A
	B B
}

// PairFormat is the [Format] for [Pair] pixels. Quantization and darkening
// apply to both halves; text embedding applies to the second half only, so
// a (color, glyph) cell keeps its color when text is overlaid.
type PairFormat[A, B any] struct {
	A Format[A]
	B Format[B]
}

// Quantize implements [Format].
func (f PairFormat[A, B]) Quantize(rgb Vec3, d Dithering, x, y int) Pair[A, B] {
	return Pair[A, B]{
		A: f.A.Quantize(rgb, d, x, y),
		B: f.B.Quantize(rgb, d, x, y),
	}
}

// Darken implements [Format].
func (f PairFormat[A, B]) Darken(p Pair[A, B]) Pair[A, B] {
	p.A = f.A.Darken(p.A)
	p.B = f.B.Darken(p.B)
	return p
}

// Embed implements [Format].
func (f PairFormat[A, B]) Embed(p Pair[A, B], c rune) Pair[A, B] {
	p.B = f.B.Embed(p.B, c)
	return p
}
