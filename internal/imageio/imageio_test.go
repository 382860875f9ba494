package imageio

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("photo.png"))
	assert.True(t, IsSupported("scan.TIFF"))
	assert.True(t, IsSupported("/some/dir/pic.webp"))
	assert.False(t, IsSupported("notes.txt"))
	assert.False(t, IsSupported("raw.exr"))
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 200, G: 100, B: 50, A: 255})
	path := filepath.Join(t.TempDir(), "out.png")

	require.NoError(t, SavePNG(path, img))

	loaded, err := Load(path)
	require.NoError(t, err)
	b := loaded.Bounds()
	assert.Equal(t, 4, b.Dx())
	assert.Equal(t, 3, b.Dy())

	r, g, bl, _ := loaded.At(1, 1).RGBA()
	assert.Equal(t, uint32(200), r>>8)
	assert.Equal(t, uint32(100), g>>8)
	assert.Equal(t, uint32(50), bl>>8)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}

func TestToRGBA(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	gray.SetGray(0, 0, color.Gray{Y: 128})

	rgba := ToRGBA(gray)
	assert.Equal(t, 2, rgba.Bounds().Dx())
	r, _, _, a := rgba.At(0, 0).RGBA()
	assert.Equal(t, uint32(128), r>>8)
	assert.Equal(t, uint32(255), a>>8)

	// Already-RGBA input is returned as-is.
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	assert.Same(t, src, ToRGBA(src))
}
