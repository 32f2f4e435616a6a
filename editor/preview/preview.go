// Package preview rasterizes gizmo scenes in software, for snapshots and
// tests without a GPU.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Projector maps world points to pixels. It reports false for points
// behind the eye.
type Projector interface {
	WorldToScreen(p mgl32.Vec3, width, height int) (float32, float32, bool)
}

type Kind int

const (
	Stroke Kind = iota // polyline of Width pixels
	Fill               // convex or concave polygon
)

type Primitive struct {
	Kind   Kind
	Points []mgl32.Vec3
	Closed bool
	Width  float32
	Color  [4]float32
	// Depth orders drawing, larger is drawn first.
	Depth float32
}

type Label struct {
	Text  string
	At    mgl32.Vec3
	Color [4]float32
}

type Scene struct {
	Camera     Projector
	Background [4]float32
	Primitives []Primitive
	Labels     []Label
}

// Render draws the scene into a new image.
func Render(scene Scene, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(toNRGBA(scene.Background)), image.Point{}, draw.Src)
	if scene.Camera == nil {
		return img
	}

	prims := slices.Clone(scene.Primitives)
	slices.SortStableFunc(prims, func(a, b Primitive) int {
		switch {
		case a.Depth > b.Depth:
			return -1
		case a.Depth < b.Depth:
			return 1
		}
		return 0
	})

	z := vector.NewRasterizer(width, height)
	for _, p := range prims {
		pts, ok := project(scene.Camera, p.Points, width, height)
		if !ok || len(pts) < 2 {
			continue
		}
		z.Reset(width, height)
		switch p.Kind {
		case Stroke:
			strokePath(z, pts, p.Closed, max(p.Width, 1))
		case Fill:
			if len(pts) < 3 {
				continue
			}
			fillPath(z, pts)
		}
		z.Draw(img, img.Bounds(), image.NewUniform(toNRGBA(p.Color)), image.Point{})
	}

	for _, l := range scene.Labels {
		x, y, ok := scene.Camera.WorldToScreen(l.At, width, height)
		if !ok {
			continue
		}
		drawLabel(img, l.Text, x, y, l.Color)
	}
	return img
}

func project(camera Projector, points []mgl32.Vec3, width, height int) ([]mgl32.Vec2, bool) {
	out := make([]mgl32.Vec2, 0, len(points))
	for _, p := range points {
		x, y, ok := camera.WorldToScreen(p, width, height)
		if !ok || math.IsNaN(float64(x)) || math.IsNaN(float64(y)) {
			return nil, false
		}
		out = append(out, mgl32.Vec2{x, y})
	}
	return out, true
}

func fillPath(z *vector.Rasterizer, pts []mgl32.Vec2) {
	z.MoveTo(pts[0].X(), pts[0].Y())
	for _, p := range pts[1:] {
		z.LineTo(p.X(), p.Y())
	}
	z.ClosePath()
}

// strokePath adds one quad per segment, all with the same winding so
// overlapping joints add up instead of cancelling.
func strokePath(z *vector.Rasterizer, pts []mgl32.Vec2, closed bool, width float32) {
	n := len(pts)
	segments := n - 1
	if closed {
		segments = n
	}
	half := width / 2
	for i := 0; i < segments; i++ {
		a := pts[i]
		b := pts[(i+1)%n]
		d := b.Sub(a)
		if d.Len() < 1e-6 {
			continue
		}
		nrm := mgl32.Vec2{-d.Y(), d.X()}.Normalize().Mul(half)
		ext := d.Normalize().Mul(half)
		a = a.Sub(ext)
		b = b.Add(ext)
		z.MoveTo(a.X()+nrm.X(), a.Y()+nrm.Y())
		z.LineTo(b.X()+nrm.X(), b.Y()+nrm.Y())
		z.LineTo(b.X()-nrm.X(), b.Y()-nrm.Y())
		z.LineTo(a.X()-nrm.X(), a.Y()-nrm.Y())
		z.ClosePath()
	}
}

func drawLabel(img *image.RGBA, text string, x, y float32, c [4]float32) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(toNRGBA(c)),
		Face: face,
	}
	w := d.MeasureString(text)
	d.Dot = fixed.Point26_6{
		X: fixed.I(int(x)) - w/2,
		Y: fixed.I(int(y)) + face.Metrics().Ascent/2,
	}
	d.DrawString(text)
}

func toNRGBA(c [4]float32) color.NRGBA {
	ch := func(v float32) uint8 {
		return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
	}
	return color.NRGBA{R: ch(c[0]), G: ch(c[1]), B: ch(c[2]), A: ch(c[3])}
}

func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// WritePNG encodes img into a new file at path.
func WritePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return EncodePNG(f, img)
}

// Grid returns ground lines on y=0 from -half to half, one per step.
func Grid(half int, step float32, c [4]float32) []Primitive {
	var prims []Primitive
	extent := float32(half) * step
	for i := -half; i <= half; i++ {
		v := float32(i) * step
		prims = append(prims,
			Primitive{Kind: Stroke, Width: 1, Color: c, Depth: math.MaxFloat32,
				Points: []mgl32.Vec3{{v, 0, -extent}, {v, 0, extent}}},
			Primitive{Kind: Stroke, Width: 1, Color: c, Depth: math.MaxFloat32,
				Points: []mgl32.Vec3{{-extent, 0, v}, {extent, 0, v}}},
		)
	}
	return prims
}
