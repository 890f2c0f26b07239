package hashing

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"testing"

	"github.com/nfnt/resize"
)

// makeGradient returns a size x size gray ramp, dark on the left when
// horizontal and dark at the top otherwise.
func makeGradient(size int, horizontal bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			p := y
			if horizontal {
				p = x
			}
			v := uint8(20 + p*215/(size-1))
			img.Set(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

// makeWaves returns a size x size image of two interfering waves. The alt
// pattern shares no structure with the default one.
func makeWaves(size int, alt bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			u, v := (float64(x)+0.5)/float64(size), (float64(y)+0.5)/float64(size)
			p := 128 + 55*math.Sin(2*math.Pi*(0.9*u+0.35*v)) + 40*math.Cos(2*math.Pi*(1.2*v-0.45*u))
			if alt {
				p = 128 + 55*math.Cos(2*math.Pi*(0.6*u-1.1*v)+1) + 40*math.Sin(2*math.Pi*(1.5*u+0.2*v))
			}
			g := uint8(math.Round(max(0, min(255, p))))
			img.Set(x, y, color.RGBA{R: g, G: g, B: g, A: 255})
		}
	}
	return img
}

// degrade returns a smaller, lossy copy of img.
func degrade(t *testing.T, img image.Image, size uint, quality int) image.Image {
	t.Helper()
	small := resize.Resize(size, size, img, resize.Bilinear)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, small, &jpeg.Options{Quality: quality}); err != nil {
		t.Fatalf("jpeg.Encode: %v", err)
	}
	out, err := jpeg.Decode(&buf)
	if err != nil {
		t.Fatalf("jpeg.Decode: %v", err)
	}
	return out
}

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func mustHash(t *testing.T, e *Engine, img image.Image) *Fingerprint {
	t.Helper()
	fp, err := e.Hash(img)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	return fp
}

func mustDistance(t *testing.T, a, b *Fingerprint) int {
	t.Helper()
	d, err := a.HammingDistance(b)
	if err != nil {
		t.Fatalf("HammingDistance: %v", err)
	}
	return d
}
