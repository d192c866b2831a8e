package glyph

import (
	"image"
	"image/color"
	"strings"
	"testing"
)

func TestToHalfBlocks(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 2))
	img.SetGray(0, 0, color.Gray{Y: 255}) // top only
	img.SetGray(1, 1, color.Gray{Y: 255}) // bottom only
	img.SetGray(2, 0, color.Gray{Y: 255}) // both
	img.SetGray(2, 1, color.Gray{Y: 255})

	if got := toHalfBlocks(img, 1); got != "▀▄█ " {
		t.Fatalf("unexpected blocks %q", got)
	}
}

func TestDownscaleAverages(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 2; x++ {
			src.SetGray(x, y, color.Gray{Y: 200})
		}
	}
	dst := downscale(src, 2, 2)
	if dst.GrayAt(0, 0).Y != 200 || dst.GrayAt(1, 1).Y != 0 {
		t.Fatalf("unexpected downscale %v", dst.Pix)
	}
}

func TestRenderShape(t *testing.T) {
	if !Available() {
		t.Skip("no CJK font installed")
	}
	out := Render("一つ", 8, 4)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	for _, l := range lines {
		if n := len([]rune(l)); n != 16 {
			t.Fatalf("expected 16 cells per line, got %d", n)
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	if got := Render("", 8, 4); got != "" {
		t.Fatalf("expected empty render, got %q", got)
	}
}
