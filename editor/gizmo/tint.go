package gizmo

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// HandleState is the visual state of one handle.
type HandleState int

const (
	HandleDefault     HandleState = iota
	HandleHighlighted             // hovered
	HandleActive                  // being dragged
	HandleInactive                // another handle is being dragged
)

func (s HandleState) String() string {
	switch s {
	case HandleDefault:
		return "default"
	case HandleHighlighted:
		return "highlighted"
	case HandleActive:
		return "active"
	case HandleInactive:
		return "inactive"
	}
	return "unknown"
}

// Tint returns the color a handle with the given base material is drawn with.
func Tint(base Color, state HandleState, p TintParams) Color {
	switch state {
	case HandleHighlighted:
		c := toColorful(base).BlendLab(colorful.Color{R: 1, G: 1, B: 1}, p.Highlight).Clamped()
		return fromColorful(c, 1)
	case HandleActive:
		return p.Active
	case HandleInactive:
		h, _, _ := toColorful(base).Hcl()
		c := colorful.Hcl(h, 0, p.InactiveGray).Clamped()
		return fromColorful(c, base[3]*p.InactiveAlpha)
	}
	return base
}

func toColorful(c Color) colorful.Color {
	return colorful.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2])}
}

func fromColorful(c colorful.Color, alpha float32) Color {
	return Color{float32(c.R), float32(c.G), float32(c.B), alpha}
}
