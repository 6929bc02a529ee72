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

// towardsZ is a triangle in the xy plane whose face normal, as computed
// from the vertex winding, points along +z.
var towardsZ = NewTriangle(
	Vec4{1, 0, 0, 1},
	Vec4{0, 0, 0, 1},
	Vec4{0, 1, 0, 1})

// towardsNegZ is the same triangle with opposite winding.
var towardsNegZ = NewTriangle(
	Vec4{0, 1, 0, 1},
	Vec4{0, 0, 0, 1},
	Vec4{1, 0, 0, 1})

func TestUnlit(t *testing.T) {
	m := &Unlit{}
	m.NewFrame()

	for want := 0; want < 3; want++ {
		id, _ := m.ShadePrimitive(towardsZ, mgl32.Ident4(), mgl32.Ident4())
		if id != want {
			t.Errorf("id = %d, want %d", id, want)
		}
	}
	m.NewFrame()
	if id, _ := m.ShadePrimitive(towardsZ, mgl32.Ident4(), mgl32.Ident4()); id != 0 {
		t.Errorf("id after NewFrame = %d, want 0", id)
	}

	c, ok := m.ShadeFragment(0, Vec2{}, 0)
	if !ok || c != (Color{0.5, 0.5, 0.5, 0.5}) {
		t.Errorf("ShadeFragment = %v, %v", c, ok)
	}

	// The primitive is transformed by proj·model.
	proj := mgl32.Translate3D(1, 0, 0)
	model := mgl32.Scale3D(2, 2, 2)
	_, p := m.ShadePrimitive(towardsZ, proj, model)
	if p.V[0] != (Vec4{3, 0, 0, 1}) {
		t.Errorf("transformed vertex = %v, want (3 0 0 1)", p.V[0])
	}
}

func TestDiffuse(t *testing.T) {
	m := NewDiffuse()
	m.NewFrame()

	litID, _ := m.ShadePrimitive(towardsNegZ, mgl32.Ident4(), mgl32.Ident4())
	unlitID, _ := m.ShadePrimitive(towardsZ, mgl32.Ident4(), mgl32.Ident4())

	lit, ok := m.ShadeFragment(litID, Vec2{}, 0)
	if !ok {
		t.Fatal("lit fragment discarded")
	}
	unlit, ok := m.ShadeFragment(unlitID, Vec2{}, 0)
	if !ok {
		t.Fatal("unlit fragment discarded")
	}

	// The light direction has a negative z component, so the face with
	// the -z normal catches it and the +z face sees ambient only.
	for i := 0; i < 3; i++ {
		if lit[i] <= unlit[i] {
			t.Errorf("channel %d: lit %g <= unlit %g", i, lit[i], unlit[i])
		}
	}
	// Reinhard keeps all channels below 1.
	for i := 0; i < 3; i++ {
		if lit[i] <= 0 || lit[i] >= 1 {
			t.Errorf("lit channel %d = %g, want in (0, 1)", i, lit[i])
		}
	}
	if lit.W() != 1 {
		t.Errorf("alpha = %g, want 1", lit.W())
	}
}

func TestDiffuseNormalInWorldSpace(t *testing.T) {
	m := NewDiffuse()

	// The projection must not affect lighting: shading the same triangle
	// under wildly different projections gives the same color.
	proj1 := Perspective(1.5, 2, 0.1, 100)
	proj2 := mgl32.Ident4()

	m.NewFrame()
	id1, _ := m.ShadePrimitive(towardsNegZ, proj1, mgl32.Ident4())
	c1, _ := m.ShadeFragment(id1, Vec2{}, 0)

	m.NewFrame()
	id2, _ := m.ShadePrimitive(towardsNegZ, proj2, mgl32.Ident4())
	c2, _ := m.ShadeFragment(id2, Vec2{}, 0)

	if c1 != c2 {
		t.Errorf("projection changed shading: %v != %v", c1, c2)
	}

	// The model transform does: rotating the face away from the light
	// darkens it.
	m.NewFrame()
	id3, _ := m.ShadePrimitive(towardsNegZ, proj2,
		mgl32.HomogRotate3DX(3.14159))
	c3, _ := m.ShadeFragment(id3, Vec2{}, 0)
	if c3.X() >= c1.X() {
		t.Errorf("rotated face not darker: %v vs %v", c3, c1)
	}
}

func TestDiffuseLine(t *testing.T) {
	m := NewDiffuse()
	m.NewFrame()

	id, p := m.ShadePrimitive(NewLine(Vec4{0, 0, 0, 1}, Vec4{1, 0, 0, 1}),
		mgl32.Translate3D(0, 0, 1), mgl32.Ident4())
	if p.V[1] != (Vec4{1, 0, 1, 1}) {
		t.Errorf("transformed endpoint = %v", p.V[1])
	}

	// Lines get the zero normal and shade as pure ambient.
	c, ok := m.ShadeFragment(id, Vec2{}, 0)
	if !ok {
		t.Fatal("line fragment discarded")
	}
	want := m.Ambient
	for i := 0; i < 3; i++ {
		mapped := want[i] / (want[i] + 1)
		if abs32(c[i]-mapped) > 1e-6 {
			t.Errorf("channel %d = %g, want %g", i, c[i], mapped)
		}
	}
}

func TestNormalColor(t *testing.T) {
	m := &NormalColor{}
	m.NewFrame()

	id, _ := m.ShadePrimitive(towardsZ, mgl32.Ident4(), mgl32.Ident4())
	c, ok := m.ShadeFragment(id, Vec2{}, 0)
	if !ok {
		t.Fatal("fragment discarded")
	}
	vec4Near(t, c, Color{0.5, 0.5, 1, 1}, 1e-6)

	id, _ = m.ShadePrimitive(towardsNegZ, mgl32.Ident4(), mgl32.Ident4())
	c, _ = m.ShadeFragment(id, Vec2{}, 0)
	vec4Near(t, c, Color{0.5, 0.5, 0, 1}, 1e-6)
}

func TestUIText(t *testing.T) {
	m := NewUIText()
	m.NewFrame()

	// The camera projection is ignored; only the model transform and the
	// fixed screen-space projection apply.
	id1, p1 := m.ShadePrimitive(towardsZ, Perspective(1, 1, 0.1, 10), mgl32.Ident4())
	m.NewFrame()
	_, p2 := m.ShadePrimitive(towardsZ, mgl32.Ident4(), mgl32.Ident4())
	if p1 != p2 {
		t.Errorf("camera projection leaked into UIText: %v != %v", p1, p2)
	}

	c, ok := m.ShadeFragment(id1, Vec2{}, 0)
	if !ok {
		t.Fatal("fragment discarded")
	}
	if c.W() != 0 {
		t.Errorf("alpha = %g, want 0", c.W())
	}
}
