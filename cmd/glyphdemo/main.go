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

// Glyphdemo renders a small animated scene to stdout: two labelled
// rotating cubes connected by a line, drawn as ASCII glyphs with optional
// 24-bit ANSI color.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/glyph3d/glyph3d"
)

func main() {
	width := flag.Int("width", 120, "frame width in terminal cells")
	frames := flag.Int("frames", 300, "number of frames to render, 0 for one still frame")
	fps := flag.Float64("fps", 30, "target frame rate")
	color := flag.Bool("color", true, "emit 24-bit ANSI color codes")
	bgName := flag.String("bg", "", "fixed background color by SVG 1.1 name, empty for an animated hue sweep")
	verbose := flag.Bool("v", false, "log internal diagnostics to stderr")
	flag.Parse()

	if *verbose {
		glyph3d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	var fixedBG *glyph3d.Vec3
	if *bgName != "" {
		c, ok := colornames.Map[*bgName]
		if !ok {
			fmt.Fprintf(os.Stderr, "glyphdemo: unknown color name %q\n", *bgName)
			os.Exit(1)
		}
		v := glyph3d.Vec3{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
		fixedBG = &v
	}

	if err := run(*width, *frames, *fps, *color, fixedBG); err != nil {
		fmt.Fprintln(os.Stderr, "glyphdemo:", err)
		os.Exit(1)
	}
}

func run(width, frames int, fps float64, color bool, fixedBG *glyph3d.Vec3) error {
	const aspect = 16.0 / 9.0

	// Terminal cells are roughly twice as tall as they are wide, so the
	// pixel grid is non-square.
	cw, ch := glyph3d.TermCharAspect()
	height := int(float64(width*cw) / (aspect * float64(ch)))

	camera := glyph3d.NewCamera(glyph3d.Perspective(mgl32.DegToRad(90), aspect, 0.1, 500))
	camera.Transform = mgl32.Translate3D(0, -60, 0)

	materials := []glyph3d.Material{
		glyph3d.NewDiffuse(),
		&glyph3d.NormalColor{},
	}

	objects := []glyph3d.Object{
		{Material: 0, Shape: glyph3d.Cube{Size: glyph3d.Vec3{1, 1, 1}}, Text: "glyph3d"},
		{Material: 1, Shape: glyph3d.Cube{Size: glyph3d.Vec3{1, 1, 1}}, Text: "normals"},
		{Material: 0}, // line between the cube centers, shape set per frame
	}

	renderer := glyph3d.NewRenderer[glyph3d.Pair[glyph3d.RGB, byte]]()
	format := glyph3d.PairFormat[glyph3d.RGB, byte]{
		A: glyph3d.RGBFormat{},
		B: glyph3d.GlyphFormat{},
	}
	dither := &glyph3d.XorShufDither{TemporalDither: true}

	var buf []glyph3d.Pair[glyph3d.RGB, byte]
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	fmt.Fprint(out, "\x1b[2J") // clear once, then repaint in place

	still := frames == 0
	if still {
		frames = 1
	}

	for frame := 0; frame < frames; frame++ {
		t := float64(frame) / fps

		bg := glyph3d.DefaultBackground()
		if fixedBG != nil {
			bg.Color = *fixedBG
		} else {
			c := colorful.Hsl(math.Mod(t*30, 360), 1, 0.05)
			bg.Color = glyph3d.Vec3{float32(c.R), float32(c.G), float32(c.B)}
		}

		// Cube A spins in place; cube B spins and bobs. The line follows
		// their world space centers.
		var centers [2]glyph3d.Vec4
		for i := 0; i < 2; i++ {
			pos := glyph3d.Vec3{
				float32(i)*50 - 25,
				float32(i) * -15,
				-2 - 11*float32(i)*float32(math.Sin(t)),
			}
			centers[i] = pos.Vec4(1)
			rot := mgl32.QuatRotate(float32(t)*(0.5+0.3*float32(i)), glyph3d.Vec3{0, 0, 1})
			objects[i].Transform = glyph3d.ComposeTransform(pos, rot, glyph3d.Vec3{30.1, 30.1, 30.1})
		}
		objects[2].Shape = glyph3d.PrimitiveShape{
			Primitive: glyph3d.NewLine(centers[0], centers[1]),
		}
		objects[2].Transform = mgl32.Ident4()

		renderer.ClearScreen(bg, format, dither, &buf, width, height)
		renderer.Render(camera, format, materials, objects, dither, buf)
		renderer.TextPass(objects, format, buf)

		fmt.Fprint(out, "\x1b[H")
		var last glyph3d.RGB
		first := true
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				cell := buf[y*width+x]
				if color && (first || cell.A != last) {
					fmt.Fprintf(out, "\x1b[38;2;%d;%d;%dm", cell.A.R, cell.A.G, cell.A.B)
					last = cell.A
					first = false
				}
				out.WriteByte(cell.B)
			}
			out.WriteString("\x1b[0m\r\n")
			first = true
		}
		if err := out.Flush(); err != nil {
			return err
		}

		if !still {
			time.Sleep(time.Duration(float64(time.Second) / fps))
		}
	}

	return nil
}
