package pixelart

import (
	"fmt"
	"math"

	icolor "github.com/gogpu/pixelart/internal/color"
)

// PaletteCapacity is the maximum number of palette entries. It equals the
// size of the default palette so the default never truncates.
const PaletteCapacity = 64

// blendEpsilon guards the blend ratio when both palette distances vanish.
const blendEpsilon = 1e-9

// Palette is an immutable, ordered set of linear RGB colors with their
// CIELAB coordinates precomputed. The zero Palette is empty.
//
// Palette is a value type: copying it yields an independent snapshot, and
// a Palette shared between goroutines needs no locking.
type Palette struct {
	colors [PaletteCapacity]RGBA
	labs   [PaletteCapacity]Lab
	n      int
}

// NewPalette builds a palette from linear RGB colors. Alpha is forced to 1.
// It returns an error if more than PaletteCapacity colors are given.
func NewPalette(colors ...RGBA) (Palette, error) {
	var p Palette
	if len(colors) > PaletteCapacity {
		return p, fmt.Errorf("%w: palette has %d colors, capacity is %d",
			ErrInvalidParams, len(colors), PaletteCapacity)
	}
	for i, c := range colors {
		c.A = 1
		p.colors[i] = c
		p.labs[i] = c.Lab()
	}
	p.n = len(colors)
	return p, nil
}

// Len returns the number of colors in the palette.
func (p *Palette) Len() int {
	return p.n
}

// At returns the i-th color. It panics if i is out of range.
func (p *Palette) At(i int) RGBA {
	if i < 0 || i >= p.n {
		panic(fmt.Sprintf("pixelart: palette index %d out of range [0,%d)", i, p.n))
	}
	return p.colors[i]
}

// Colors returns a copy of the palette colors in order.
func (p *Palette) Colors() []RGBA {
	out := make([]RGBA, p.n)
	copy(out, p.colors[:p.n])
	return out
}

// PaletteMatch is the result of a nearest-color search.
type PaletteMatch struct {
	// Nearest is the palette color closest to the query in Lab space.
	Nearest RGBA

	// Second is the runner-up. With fewer than two active entries it
	// equals Nearest.
	Second RGBA

	// D1 and D2 are the Lab distances to Nearest and Second (D1 <= D2).
	D1, D2 float64

	// Blend is D1/(D1+D2), in [0, 0.5]. It approaches 0.5 on the boundary
	// between two palette entries and is 0 when the query sits on the
	// palette or fewer than two entries are active.
	Blend float64
}

// Match finds the nearest and second-nearest of the first count palette
// entries to c, measured as Euclidean distance in CIELAB. count is clamped
// to the palette length. Ties keep the earlier entry.
//
// With no active entries Match returns c as both colors and a zero blend.
func (p *Palette) Match(c RGBA, count int) PaletteMatch {
	n := min(count, p.n)
	if n <= 0 {
		return PaletteMatch{Nearest: c, Second: c}
	}

	q := c.Lab()
	d1, d2 := math.Inf(1), math.Inf(1)
	i1, i2 := -1, -1
	for i := 0; i < n; i++ {
		d := icolor.DistanceLab(q, p.labs[i])
		switch {
		case d < d1:
			d2, i2 = d1, i1
			d1, i1 = d, i
		case d < d2:
			d2, i2 = d, i
		}
	}

	if i1 < 0 {
		// Only reachable with a non-finite query color.
		return PaletteMatch{Nearest: c, Second: c}
	}
	m := PaletteMatch{Nearest: p.colors[i1], D1: d1}
	if i2 < 0 {
		m.Second, m.D2 = m.Nearest, d1
		return m
	}
	m.Second, m.D2 = p.colors[i2], d2
	if total := d1 + d2; total > blendEpsilon {
		m.Blend = d1 / total
	}
	return m
}
