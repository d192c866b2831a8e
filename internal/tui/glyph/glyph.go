// Package glyph draws Japanese text as large block art for the terminal.
package glyph

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FontPaths lists CJK fonts tried in order. The first that parses wins.
var FontPaths = []string{
	"/System/Library/Fonts/ヒラギノ角ゴシック W3.ttc",
	"/System/Library/Fonts/Hiragino Sans GB.ttc",
	"/Library/Fonts/Arial Unicode.ttf",
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/noto-cjk/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/takao-gothic/TakaoPGothic.ttf",
	"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
	"C:\\Windows\\Fonts\\msgothic.ttc",
	"C:\\Windows\\Fonts\\YuGothM.ttc",
}

const fontSize = 64

var (
	loadOnce sync.Once
	face     font.Face

	mu    sync.Mutex
	cache = make(map[string]string)
)

func loadFace() {
	for _, path := range FontPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if f, err := parseFace(data); err == nil {
			face = f
			return
		}
	}
}

func parseFace(data []byte) (font.Face, error) {
	opts := &opentype.FaceOptions{Size: fontSize, DPI: 72}
	if coll, err := opentype.ParseCollection(data); err == nil && coll.NumFonts() > 0 {
		fnt, err := coll.Font(0)
		if err != nil {
			return nil, err
		}
		return opentype.NewFace(fnt, opts)
	}
	fnt, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(fnt, opts)
}

// Available reports whether a CJK font was found.
func Available() bool {
	loadOnce.Do(loadFace)
	return face != nil
}

// Render draws text into rows lines of half-block characters, cols cells
// per glyph. It returns "" when no font is available.
func Render(text string, cols, rows int) string {
	if text == "" || cols <= 0 || rows <= 0 || !Available() {
		return ""
	}

	key := fmt.Sprintf("%s/%d/%d", text, cols, rows)
	mu.Lock()
	defer mu.Unlock()
	if out, ok := cache[key]; ok {
		return out
	}

	n := len([]rune(text))
	img := rasterize(text, n)
	out := toHalfBlocks(downscale(img, cols*n, rows*2), rows)
	cache[key] = out
	return out
}

// rasterize draws text white on black with a fixed square cell per rune.
func rasterize(text string, n int) *image.Gray {
	const pad = 4
	cell := fontSize + pad*2
	img := image.NewGray(image.Rect(0, 0, cell*n, cell))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.Black}, image.Point{}, draw.Src)

	metrics := face.Metrics()
	baseline := pad + metrics.Ascent.Ceil()
	if baseline > cell-pad {
		baseline = cell - pad
	}

	d := &font.Drawer{Dst: img, Src: image.White, Face: face}
	for idx, r := range []rune(text) {
		adv, ok := face.GlyphAdvance(r)
		if !ok {
			adv = fixed.I(fontSize)
		}
		x := idx*cell + (cell-adv.Ceil())/2
		d.Dot = fixed.P(x, baseline)
		d.DrawString(string(r))
	}
	return img
}

// downscale shrinks src to w by h by averaging source areas.
func downscale(src *image.Gray, w, h int) *image.Gray {
	sw, sh := src.Bounds().Dx(), src.Bounds().Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		y0, y1 := y*sh/h, (y+1)*sh/h
		for x := 0; x < w; x++ {
			x0, x1 := x*sw/w, (x+1)*sw/w
			var sum, count int
			for sy := y0; sy < y1; sy++ {
				for sx := x0; sx < x1; sx++ {
					sum += int(src.GrayAt(sx, sy).Y)
					count++
				}
			}
			if count > 0 {
				dst.SetGray(x, y, color.Gray{Y: uint8(sum / count)})
			}
		}
	}
	return dst
}

// toHalfBlocks maps pairs of pixel rows onto ▀ ▄ █ cells.
func toHalfBlocks(img *image.Gray, rows int) string {
	const threshold = 40
	on := func(x, y int) bool {
		if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
			return false
		}
		return img.GrayAt(x, y).Y > threshold
	}

	var b strings.Builder
	for row := 0; row < rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < img.Bounds().Dx(); x++ {
			top, bottom := on(x, row*2), on(x, row*2+1)
			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
	}
	return b.String()
}
