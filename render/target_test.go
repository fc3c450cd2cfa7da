package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestPixmapTarget(t *testing.T) {
	target := NewPixmapTarget(32, 16)

	if target.Width() != 32 || target.Height() != 16 {
		t.Errorf("size = %dx%d, want 32x16", target.Width(), target.Height())
	}
	if target.Format() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("format = %v, want RGBA8", target.Format())
	}
	if target.TextureView() != nil {
		t.Error("CPU target reports a texture view")
	}
	if got := len(target.Pixels()); got != 32*16*4 {
		t.Errorf("pixel buffer length = %d, want %d", got, 32*16*4)
	}
	if target.Stride() != 32*4 {
		t.Errorf("stride = %d, want %d", target.Stride(), 32*4)
	}
}

func TestPixmapTargetClearAndPixels(t *testing.T) {
	target := NewPixmapTarget(8, 8)
	red := color.RGBA{R: 255, A: 255}

	target.Clear(red)
	for _, at := range [][2]int{{0, 0}, {7, 7}, {3, 5}} {
		if got := target.GetPixel(at[0], at[1]); got != red {
			t.Errorf("pixel at %v = %v after clear, want red", at, got)
		}
	}

	green := color.RGBA{G: 255, A: 255}
	target.SetPixel(2, 3, green)
	if got := target.GetPixel(2, 3); got != green {
		t.Errorf("pixel = %v after set, want green", got)
	}
	if got := target.GetPixel(3, 3); got != red {
		t.Errorf("neighbor = %v, want untouched red", got)
	}
}

func TestPixmapTargetFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	target := NewPixmapTargetFromImage(img)

	// The target draws into the caller's image, not a copy.
	target.SetPixel(1, 1, color.RGBA{B: 255, A: 255})
	if img.RGBAAt(1, 1) != (color.RGBA{B: 255, A: 255}) {
		t.Error("write did not reach the wrapped image")
	}
	if target.Image() != img {
		t.Error("Image() does not return the wrapped image")
	}
}

func TestSurfaceTarget(t *testing.T) {
	target := NewSurfaceTarget(800, 600, gputypes.TextureFormatBGRA8Unorm, nil)

	if target.Width() != 800 || target.Height() != 600 {
		t.Errorf("size = %dx%d, want 800x600", target.Width(), target.Height())
	}
	if target.Format() != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("format = %v, want BGRA8", target.Format())
	}
	if target.Pixels() != nil || target.Stride() != 0 {
		t.Error("surface target reports CPU access")
	}
}
