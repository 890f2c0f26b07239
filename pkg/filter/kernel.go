package filter

import (
	"image"
	"image/color"
	"math"

	apperrors "github.com/GriffinCanCode/phash/pkg/errors"
)

// Kernel is a 2D convolution filter. Borders are handled by clamping sample
// coordinates to the image edge.
type Kernel struct {
	width  int
	height int
	mask   []float64
}

// NewKernel creates a kernel from a row-major weight mask. Width and height
// must be odd and positive and all weights finite.
func NewKernel(width, height int, mask []float64) (*Kernel, error) {
	if err := checkKernelSize(width, height); err != nil {
		return nil, err
	}
	if len(mask) != width*height {
		return nil, apperrors.Newf(apperrors.CodeInvalidFilter, "kernel %dx%d needs %d weights, got %d", width, height, width*height, len(mask))
	}

	m := make([]float64, len(mask))
	for i, w := range mask {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, apperrors.Newf(apperrors.CodeInvalidFilter, "kernel weight %d is not finite", i)
		}
		if w == 0 {
			w = 0 // -0 and +0 must describe the same kernel
		}
		m[i] = w
	}
	return &Kernel{width: width, height: height, mask: m}, nil
}

// NewNormalizedKernel creates a kernel whose weights are divided by their sum.
func NewNormalizedKernel(width, height int, mask []float64) (*Kernel, error) {
	var sum float64
	for _, w := range mask {
		sum += w
	}
	if sum == 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return nil, apperrors.New(apperrors.CodeInvalidFilter, "kernel weights do not have a usable sum")
	}
	norm := make([]float64, len(mask))
	for i, w := range mask {
		norm[i] = w / sum
	}
	return NewKernel(width, height, norm)
}

// Identity returns the all-pass kernel.
func Identity() *Kernel {
	return mustKernel(1, 1, []float64{1})
}

// Box returns a mean filter of the given size.
func Box(width, height int) (*Kernel, error) {
	if err := checkKernelSize(width, height); err != nil {
		return nil, err
	}
	mask := make([]float64, width*height)
	for i := range mask {
		mask[i] = 1
	}
	return NewNormalizedKernel(width, height, mask)
}

// Gaussian returns a normalized gaussian blur kernel.
func Gaussian(width, height int, sigma float64) (*Kernel, error) {
	if sigma <= 0 || math.IsNaN(sigma) || math.IsInf(sigma, 0) {
		return nil, apperrors.Newf(apperrors.CodeInvalidFilter, "gaussian sigma must be positive, got %v", sigma)
	}
	if err := checkKernelSize(width, height); err != nil {
		return nil, err
	}
	mask := make([]float64, width*height)
	rx, ry := width/2, height/2
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dx, dy := float64(x-rx), float64(y-ry)
			mask[y*width+x] = math.Exp(-(dx*dx + dy*dy) / (2 * sigma * sigma))
		}
	}
	return NewNormalizedKernel(width, height, mask)
}

// Sharpen returns a 3x3 sharpening kernel.
func Sharpen() *Kernel {
	return mustKernel(3, 3, []float64{
		0, -1, 0,
		-1, 5, -1,
		0, -1, 0,
	})
}

// SobelX returns the horizontal Sobel edge detector.
func SobelX() *Kernel {
	return mustKernel(3, 3, []float64{
		-1, 0, 1,
		-2, 0, 2,
		-1, 0, 1,
	})
}

// SobelY returns the vertical Sobel edge detector.
func SobelY() *Kernel {
	return mustKernel(3, 3, []float64{
		-1, -2, -1,
		0, 0, 0,
		1, 2, 1,
	})
}

// Laplacian returns a 3x3 edge enhancing kernel.
func Laplacian() *Kernel {
	return mustKernel(3, 3, []float64{
		0, 1, 0,
		1, -4, 1,
		0, 1, 0,
	})
}

// checkKernelSize runs before any mask is allocated.
func checkKernelSize(width, height int) error {
	if width <= 0 || height <= 0 || width%2 == 0 || height%2 == 0 {
		return apperrors.Newf(apperrors.CodeInvalidFilter, "kernel dimensions must be odd and positive, got %dx%d", width, height)
	}
	if width > maxKernelSide || height > maxKernelSide {
		return apperrors.Newf(apperrors.CodeInvalidFilter, "kernel %dx%d exceeds %d per side", width, height, maxKernelSide)
	}
	return nil
}

func mustKernel(width, height int, mask []float64) *Kernel {
	k, err := NewKernel(width, height, mask)
	if err != nil {
		panic(err)
	}
	return k
}

// Descriptor implements Filter.
func (k *Kernel) Descriptor() Descriptor {
	mask := make([]float64, len(k.mask))
	copy(mask, k.mask)
	return Descriptor{Kind: KindKernel, Width: k.width, Height: k.height, Mask: mask}
}

// Apply implements Filter. The result is an *image.RGBA64 anchored at the origin.
func (k *Kernel) Apply(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewRGBA64(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return out
	}

	px := make([]color.RGBA64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			px[y*w+x] = color.RGBA64{R: uint16(r), G: uint16(g), B: uint16(bl), A: uint16(a)}
		}
	}

	rx, ry := k.width/2, k.height/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, bl, a float64
			for j := 0; j < k.height; j++ {
				sy := clampInt(y+j-ry, 0, h-1)
				for i := 0; i < k.width; i++ {
					sx := clampInt(x+i-rx, 0, w-1)
					wt := k.mask[j*k.width+i]
					p := px[sy*w+sx]
					// Explicit float64 conversions prevent FMA fusion.
					r += float64(wt * float64(p.R))
					g += float64(wt * float64(p.G))
					bl += float64(wt * float64(p.B))
					a += float64(wt * float64(p.A))
				}
			}
			ca := clampChannel(a, 0xffff)
			out.SetRGBA64(x, y, color.RGBA64{
				R: clampChannel(r, ca),
				G: clampChannel(g, ca),
				B: clampChannel(bl, ca),
				A: ca,
			})
		}
	}
	return out
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// clampChannel rounds v and clamps it to [0, limit]. Premultiplied colour
// channels may never exceed alpha.
func clampChannel(v float64, limit uint16) uint16 {
	v = math.Round(v)
	if v <= 0 {
		return 0
	}
	if v >= float64(limit) {
		return limit
	}
	return uint16(v)
}
