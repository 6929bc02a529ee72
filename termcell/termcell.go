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

// Package termcell renders into tcell colors, for displaying frames on a
// terminal screen managed by github.com/gdamore/tcell/v2.
//
// The [Format] type quantizes colors at a selectable depth (monochrome, 16
// colors, the 256-color palette, or true color), and [NewCellFormat] pairs
// it with an ASCII brightness glyph so each terminal cell carries both a
// foreground color and a printable character.
package termcell

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/glyph3d/glyph3d"
)

// Mode selects the color depth quantization targets.
type Mode int

const (
	// Mono discards color entirely; every pixel becomes
	// [tcell.ColorDefault]. Useful combined with a glyph format on
	// monochrome terminals.
	Mono Mode = iota
	// Col16 uses the 16 standard terminal colors.
	Col16
	// Col256 uses the xterm 256-color palette.
	Col256
	// RGB uses 24-bit color.
	RGB
)

// Format quantizes colors into [tcell.Color] values at the depth given by
// Colors.
type Format struct {
	Colors Mode
}

// col16Color maps the internal 16-color palette to tcell's named colors.
var col16Color = [16]tcell.Color{
	glyph3d.Col16Black:       tcell.ColorBlack,
	glyph3d.Col16DarkGray:    tcell.ColorGray,
	glyph3d.Col16Gray:        tcell.ColorSilver,
	glyph3d.Col16White:       tcell.ColorWhite,
	glyph3d.Col16DarkRed:     tcell.ColorMaroon,
	glyph3d.Col16DarkYellow:  tcell.ColorOlive,
	glyph3d.Col16DarkGreen:   tcell.ColorGreen,
	glyph3d.Col16DarkCyan:    tcell.ColorTeal,
	glyph3d.Col16DarkBlue:    tcell.ColorNavy,
	glyph3d.Col16DarkMagenta: tcell.ColorPurple,
	glyph3d.Col16Red:         tcell.ColorRed,
	glyph3d.Col16Yellow:      tcell.ColorYellow,
	glyph3d.Col16Green:       tcell.ColorLime,
	glyph3d.Col16Cyan:        tcell.ColorAqua,
	glyph3d.Col16Blue:        tcell.ColorBlue,
	glyph3d.Col16Magenta:     tcell.ColorFuchsia,
}

var palette256 = sync.OnceValue(func() []tcell.Color {
	p := make([]tcell.Color, 256)
	for i := range p {
		p[i] = tcell.PaletteColor(i)
	}
	return p
})

// Quantize implements [glyph3d.Format].
func (f Format) Quantize(rgb glyph3d.Vec3, d glyph3d.Dithering, x, y int) tcell.Color {
	switch f.Colors {
	case Col16:
		c := glyph3d.Col16Format{}.Quantize(rgb, d, x, y)
		return col16Color[c]
	case Col256:
		// Crude but fast: dither each channel to a few levels, then snap
		// the result onto the xterm palette.
		r := min(glyph3d.DitheredRange(rgb.X(), 8, d, x, y)*32, 255)
		g := min(glyph3d.DitheredRange(rgb.Y(), 8, d, x, y)*32, 255)
		b := min(glyph3d.DitheredRange(rgb.Z(), 4, d, x, y)*64, 255)
		c := tcell.NewRGBColor(int32(r), int32(g), int32(b))
		return tcell.FindColor(c, palette256())
	case RGB:
		return tcell.NewRGBColor(
			int32(glyph3d.DitheredRange(rgb.X(), 255, d, x, y)),
			int32(glyph3d.DitheredRange(rgb.Y(), 255, d, x, y)),
			int32(glyph3d.DitheredRange(rgb.Z(), 255, d, x, y)))
	default:
		return tcell.ColorDefault
	}
}

// Darken implements [glyph3d.Format]. Named colors step down a fixed
// ladder (light hues to dark variants, dark variants to black); palette
// and true-color values halve each channel.
func (f Format) Darken(p tcell.Color) tcell.Color {
	switch p {
	case tcell.ColorDefault:
		return tcell.ColorDefault
	case tcell.ColorWhite:
		return tcell.ColorSilver
	case tcell.ColorSilver:
		return tcell.ColorGray
	case tcell.ColorGray:
		return tcell.ColorBlack
	case tcell.ColorRed:
		return tcell.ColorMaroon
	case tcell.ColorLime:
		return tcell.ColorGreen
	case tcell.ColorYellow:
		return tcell.ColorOlive
	case tcell.ColorBlue:
		return tcell.ColorNavy
	case tcell.ColorFuchsia:
		return tcell.ColorPurple
	case tcell.ColorAqua:
		return tcell.ColorTeal
	case tcell.ColorMaroon, tcell.ColorGreen, tcell.ColorOlive,
		tcell.ColorNavy, tcell.ColorPurple, tcell.ColorTeal,
		tcell.ColorBlack:
		return tcell.ColorBlack
	}
	r, g, b := p.RGB()
	c := tcell.NewRGBColor(r/2, g/2, b/2)
	if p&tcell.ColorIsRGB != 0 {
		return c
	}
	return tcell.FindColor(c, palette256())
}

// Embed implements [glyph3d.Format]. A color carries no glyph, so the
// pixel is returned unchanged.
func (f Format) Embed(p tcell.Color, c rune) tcell.Color { return p }

// Cell is a terminal cell holding a foreground color and a glyph, suitable
// for tcell's SetContent.
type Cell = glyph3d.Pair[tcell.Color, byte]

// NewCellFormat returns the format for [Cell] buffers: colors quantized at
// the given mode paired with an ASCII brightness glyph. Text embedding
// replaces the glyph and keeps the color.
func NewCellFormat(colors Mode) glyph3d.PairFormat[tcell.Color, byte] {
	return glyph3d.PairFormat[tcell.Color, byte]{
		A: Format{Colors: colors},
		B: glyph3d.GlyphFormat{},
	}
}
