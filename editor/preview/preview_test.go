package preview

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flat uses world X and Y as pixel coordinates and hides negative Z.
type flat struct{}

func (flat) WorldToScreen(p mgl32.Vec3, width, height int) (float32, float32, bool) {
	return p.X(), p.Y(), p.Z() >= 0
}

var (
	black = [4]float32{0, 0, 0, 1}
	red   = [4]float32{1, 0, 0, 1}
	blue  = [4]float32{0, 0, 1, 1}
)

func TestRender_FillAndStroke(t *testing.T) {
	scene := Scene{
		Camera:     flat{},
		Background: black,
		Primitives: []Primitive{
			{Kind: Fill, Color: red, Points: []mgl32.Vec3{{10, 10, 0}, {20, 10, 0}, {20, 20, 0}, {10, 20, 0}}},
			{Kind: Stroke, Width: 4, Color: blue, Points: []mgl32.Vec3{{0, 30, 0}, {40, 30, 0}}},
		},
	}
	img := Render(scene, 64, 48)

	assert.Equal(t, uint8(255), img.RGBAAt(15, 15).R)
	assert.Equal(t, uint8(0), img.RGBAAt(15, 15).B)
	assert.Equal(t, uint8(255), img.RGBAAt(20, 30).B)
	assert.Equal(t, uint8(0), img.RGBAAt(5, 5).R, "background")
	assert.Equal(t, uint8(255), img.RGBAAt(5, 5).A)
	assert.Equal(t, uint8(0), img.RGBAAt(20, 40).B, "stroke stays thin")
}

func TestRender_DepthOrder(t *testing.T) {
	square := []mgl32.Vec3{{0, 0, 0}, {10, 0, 0}, {10, 10, 0}, {0, 10, 0}}
	scene := Scene{
		Camera: flat{},
		Primitives: []Primitive{
			{Kind: Fill, Color: red, Points: square, Depth: 1},
			{Kind: Fill, Color: blue, Points: square, Depth: 5},
		},
	}
	img := Render(scene, 16, 16)
	assert.Equal(t, uint8(255), img.RGBAAt(5, 5).R, "nearest primitive drawn last")
	assert.Equal(t, uint8(0), img.RGBAAt(5, 5).B)
}

func TestRender_SkipsPointsBehindCamera(t *testing.T) {
	scene := Scene{
		Camera: flat{},
		Primitives: []Primitive{
			{Kind: Fill, Color: red, Points: []mgl32.Vec3{{0, 0, 0}, {10, 0, -1}, {10, 10, 0}}},
		},
	}
	img := Render(scene, 16, 16)
	assert.Equal(t, uint8(0), img.RGBAAt(7, 3).R)
}

func TestRender_Label(t *testing.T) {
	scene := Scene{
		Camera:     flat{},
		Background: black,
		Labels:     []Label{{Text: "X", At: mgl32.Vec3{16, 16, 0}, Color: red}},
	}
	img := Render(scene, 32, 32)

	lit := 0
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if img.RGBAAt(x, y).R > 0 {
				lit++
			}
		}
	}
	assert.Greater(t, lit, 5)
}

func TestRender_NoCamera(t *testing.T) {
	img := Render(Scene{Background: red}, 4, 4)
	assert.Equal(t, uint8(255), img.RGBAAt(1, 1).R)
}

func TestWritePNG(t *testing.T) {
	img := Render(Scene{Background: blue}, 8, 6)
	path := filepath.Join(t.TempDir(), "out.png")
	require.NoError(t, WritePNG(path, img))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	decoded, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 8, decoded.Bounds().Dx())
	assert.Equal(t, 6, decoded.Bounds().Dy())

	err = WritePNG(filepath.Join(t.TempDir(), "missing", "out.png"), img)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGrid(t *testing.T) {
	prims := Grid(2, 1, black)
	assert.Len(t, prims, 10)
	for _, p := range prims {
		assert.Equal(t, float32(0), p.Points[0].Y())
	}
}
