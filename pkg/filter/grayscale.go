package filter

import (
	"image"
	"image/color"
)

type grayscale struct{}

// Grayscale returns a filter that converts images to 16-bit luminance using
// the same weights as the encoders.
func Grayscale() Filter {
	return grayscale{}
}

func (grayscale) Descriptor() Descriptor {
	return Descriptor{Kind: KindGrayscale}
}

func (grayscale) Apply(img image.Image) image.Image {
	b := img.Bounds()
	out := image.NewGray16(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			out.SetGray16(x-b.Min.X, y-b.Min.Y, color.Gray16{Y: uint16(Luminance(r, g, bl) / LumaScale)})
		}
	}
	return out
}
