package filter

import (
	"bytes"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	apperrors "github.com/GriffinCanCode/phash/pkg/errors"
)

func makeGradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 255 / max(w-1, 1)), G: uint8(y * 255 / max(h-1, 1)), B: 64, A: 255})
		}
	}
	return img
}

func TestIdentityIsAllPass(t *testing.T) {
	src := makeGradient(7, 5)
	out := Identity().Apply(src)

	if out.Bounds() != src.Bounds() {
		t.Fatalf("Bounds = %v, want %v", out.Bounds(), src.Bounds())
	}
	for y := 0; y < 5; y++ {
		for x := 0; x < 7; x++ {
			r1, g1, b1, a1 := src.At(x, y).RGBA()
			r2, g2, b2, a2 := out.At(x, y).RGBA()
			if r1 != r2 || g1 != g2 || b1 != b2 || a1 != a2 {
				t.Fatalf("pixel (%d,%d) changed: %v -> %v", x, y, src.At(x, y), out.At(x, y))
			}
		}
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	src := makeGradient(6, 6)
	before := append([]uint8(nil), src.Pix...)

	Sharpen().Apply(src)

	if !bytes.Equal(before, src.Pix) {
		t.Error("Apply modified its input")
	}
}

func TestApplyDeterministic(t *testing.T) {
	src := makeGradient(16, 9)
	g, err := Gaussian(5, 5, 1.4)
	if err != nil {
		t.Fatal(err)
	}

	a := g.Apply(src).(*image.RGBA64)
	b := g.Apply(src).(*image.RGBA64)
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("Apply is not deterministic")
	}
}

func TestBoxOnUniformImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = 100, 100, 100, 255
	}
	k, err := Box(3, 3)
	if err != nil {
		t.Fatal(err)
	}

	out := k.Apply(src)
	r, _, _, _ := out.At(0, 0).RGBA()
	want, _, _, _ := src.At(0, 0).RGBA()
	if r != want {
		t.Errorf("box blur of uniform image changed value: %d -> %d", want, r)
	}
}

func TestApplyOffsetBounds(t *testing.T) {
	src := makeGradient(8, 8).SubImage(image.Rect(2, 2, 6, 6))
	out := Identity().Apply(src)

	if got := out.Bounds(); got != image.Rect(0, 0, 4, 4) {
		t.Fatalf("Bounds = %v, want origin anchored 4x4", got)
	}
	r1, _, _, _ := src.At(2, 2).RGBA()
	r2, _, _, _ := out.At(0, 0).RGBA()
	if r1 != r2 {
		t.Errorf("offset pixel mismatch: %d vs %d", r1, r2)
	}
}

func TestApplyEmptyImage(t *testing.T) {
	out := Sharpen().Apply(image.NewRGBA(image.Rect(0, 0, 0, 0)))
	if !out.Bounds().Empty() {
		t.Errorf("Bounds = %v, want empty", out.Bounds())
	}
}

func TestEdgeKernelClampsToAlpha(t *testing.T) {
	src := makeGradient(5, 5)
	out := Laplacian().Apply(src).(*image.RGBA64)

	for i := 0; i < len(out.Pix); i += 8 {
		a := uint16(out.Pix[i+6])<<8 | uint16(out.Pix[i+7])
		for c := 0; c < 6; c += 2 {
			v := uint16(out.Pix[i+c])<<8 | uint16(out.Pix[i+c+1])
			if v > a {
				t.Fatalf("channel %d exceeds alpha: %d > %d", c/2, v, a)
			}
		}
	}
}

func TestNewKernelValidation(t *testing.T) {
	tests := []struct {
		name   string
		w, h   int
		mask   []float64
		wantOK bool
	}{
		{"valid 3x3", 3, 3, make([]float64, 9), true},
		{"valid 1x5", 1, 5, make([]float64, 5), true},
		{"even width", 2, 3, make([]float64, 6), false},
		{"zero height", 3, 0, nil, false},
		{"negative", -1, 1, []float64{1}, false},
		{"short mask", 3, 3, make([]float64, 8), false},
		{"nan weight", 1, 1, []float64{math.NaN()}, false},
		{"inf weight", 1, 1, []float64{math.Inf(1)}, false},
		{"too large", 101, 1, make([]float64, 101), false},
	}

	for _, tt := range tests {
		_, err := NewKernel(tt.w, tt.h, tt.mask)
		if (err == nil) != tt.wantOK {
			t.Errorf("%s: err = %v, wantOK %v", tt.name, err, tt.wantOK)
			continue
		}
		if err != nil && !apperrors.IsCode(err, apperrors.CodeInvalidFilter) {
			t.Errorf("%s: err = %v, want INVALID_FILTER", tt.name, err)
		}
	}
}

func TestOversizedKernelsRejected(t *testing.T) {
	tests := []struct {
		name string
		make func() (*Kernel, error)
	}{
		{"box 101x1", func() (*Kernel, error) { return Box(101, 1) }},
		{"box 20001x20001", func() (*Kernel, error) { return Box(20001, 20001) }},
		{"box max int", func() (*Kernel, error) { return Box(math.MaxInt, 3) }},
		{"gaussian 20001x20001", func() (*Kernel, error) { return Gaussian(20001, 20001, 1) }},
		{"gaussian max int", func() (*Kernel, error) { return Gaussian(3, math.MaxInt, 1) }},
	}
	for _, tt := range tests {
		k, err := tt.make()
		if !apperrors.IsCode(err, apperrors.CodeInvalidFilter) {
			t.Errorf("%s: err = %v, want INVALID_FILTER", tt.name, err)
		}
		if k != nil {
			t.Errorf("%s: got a kernel, want nil", tt.name)
		}
	}
}

func TestNewNormalizedKernel(t *testing.T) {
	k, err := NewNormalizedKernel(3, 1, []float64{1, 2, 1})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{0.25, 0.5, 0.25}, k.Descriptor().Mask); diff != "" {
		t.Errorf("mask mismatch (-want +got):\n%s", diff)
	}

	if _, err := NewNormalizedKernel(3, 1, []float64{-1, 0, 1}); err == nil {
		t.Error("zero-sum mask should not normalize")
	}
}

func TestGaussianValidation(t *testing.T) {
	if _, err := Gaussian(3, 3, 0); err == nil {
		t.Error("sigma 0 should fail")
	}
	if _, err := Gaussian(4, 3, 1); err == nil {
		t.Error("even width should fail")
	}
	g, err := Gaussian(3, 3, 1)
	if err != nil {
		t.Fatal(err)
	}
	var sum float64
	for _, w := range g.Descriptor().Mask {
		sum += w
	}
	if math.Abs(sum-1) > 1e-12 {
		t.Errorf("gaussian weights sum to %v, want 1", sum)
	}
}

func TestValueEquality(t *testing.T) {
	if !Equal(Identity(), Identity()) {
		t.Error("two identity filters should be equal")
	}
	b1, _ := Box(3, 3)
	b2, _ := Box(3, 3)
	if !Equal(b1, b2) {
		t.Error("same box parameters should be equal")
	}
	if Equal(SobelX(), SobelY()) {
		t.Error("sobel x and y must differ")
	}
	if Equal(Identity(), Grayscale()) {
		t.Error("different kinds must differ")
	}
	if !Equal(nil, nil) || Equal(Identity(), nil) {
		t.Error("nil handling wrong")
	}
}

func TestNegativeZeroCanonical(t *testing.T) {
	a, _ := NewKernel(1, 1, []float64{math.Copysign(0, -1)})
	b, _ := NewKernel(1, 1, []float64{0})
	if !Equal(a, b) {
		t.Error("-0 and +0 weights should describe the same kernel")
	}
}

func TestDescriptorIsCopy(t *testing.T) {
	k := Sharpen()
	d := k.Descriptor()
	d.Mask[4] = 100

	if k.Descriptor().Mask[4] != 5 {
		t.Error("mutating a descriptor must not change the kernel")
	}
}

func TestAppendBinaryDistinguishes(t *testing.T) {
	b1, _ := Box(3, 3)
	b2, _ := Box(5, 5)
	descs := []Descriptor{
		Identity().Descriptor(),
		Grayscale().Descriptor(),
		Sharpen().Descriptor(),
		b1.Descriptor(),
		b2.Descriptor(),
	}

	seen := map[string]int{}
	for i, d := range descs {
		key := string(d.AppendBinary(nil))
		if j, ok := seen[key]; ok {
			t.Errorf("descriptors %d and %d encode identically", j, i)
		}
		seen[key] = i
	}

	if string(Identity().Descriptor().AppendBinary(nil)) != string(Identity().Descriptor().AppendBinary(nil)) {
		t.Error("encoding is not stable")
	}
}

func TestFromDescriptorRoundTrip(t *testing.T) {
	g, _ := Gaussian(5, 3, 0.8)
	for _, f := range []Filter{Identity(), Grayscale(), Sharpen(), SobelX(), g} {
		back, err := FromDescriptor(f.Descriptor())
		if err != nil {
			t.Fatalf("FromDescriptor(%v) error = %v", f.Descriptor().Kind, err)
		}
		if !Equal(f, back) {
			t.Errorf("round trip changed %+v", f.Descriptor())
		}
	}
}

func TestFromDescriptorInvalid(t *testing.T) {
	tests := []Descriptor{
		{Kind: "median"},
		{Kind: KindGrayscale, Width: 3},
		{Kind: KindKernel, Width: 3, Height: 3, Mask: []float64{1}},
	}
	for _, d := range tests {
		if _, err := FromDescriptor(d); !apperrors.IsCode(err, apperrors.CodeInvalidFilter) {
			t.Errorf("FromDescriptor(%+v) err = %v, want INVALID_FILTER", d, err)
		}
	}
}

func TestGrayscale(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	src.Set(1, 0, color.RGBA{R: 255, A: 255})

	out := Grayscale().Apply(src).(*image.Gray16)
	if got := out.Gray16At(0, 0).Y; got != 0xffff {
		t.Errorf("white = %d, want 65535", got)
	}
	if got, want := out.Gray16At(1, 0).Y, uint16(0xffff*LumaR/LumaScale); got != want {
		t.Errorf("red = %d, want %d", got, want)
	}
}

func TestParse(t *testing.T) {
	box5x3, _ := Box(5, 3)
	box3, _ := Box(3, 3)
	gauss, _ := Gaussian(5, 5, 1.5)
	gaussDefault, _ := Gaussian(3, 3, DefaultGaussianSigma)

	tests := []struct {
		in   string
		want Filter
	}{
		{"identity", Identity()},
		{" Grayscale ", Grayscale()},
		{"sharpen", Sharpen()},
		{"sobel-x", SobelX()},
		{"sobel-y", SobelY()},
		{"laplacian", Laplacian()},
		{"box:3", box3},
		{"box:5x3", box5x3},
		{"gaussian:5:1.5", gauss},
		{"gaussian:3", gaussDefault},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q) error = %v", tt.in, err)
			continue
		}
		if !Equal(got, tt.want) {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got.Descriptor(), tt.want.Descriptor())
		}
	}
}

func TestParseErrors(t *testing.T) {
	inputs := []string{
		"", "median", "box", "box:a", "box:3xb", "box:4",
		"gaussian:3:x", "gaussian:3:0", "identity:3",
		"box:100001", "box:5000000000x5000000000",
		"gaussian:101", "gaussian:5000000000x5000000000",
	}
	for _, in := range inputs {
		if _, err := Parse(in); !apperrors.IsCode(err, apperrors.CodeInvalidFilter) {
			t.Errorf("Parse(%q) err = %v, want INVALID_FILTER", in, err)
		}
	}
}

func TestParseList(t *testing.T) {
	filters, err := ParseList([]string{"grayscale", "", " ", "box:3"})
	if err != nil {
		t.Fatal(err)
	}
	if len(filters) != 2 {
		t.Fatalf("len = %d, want 2", len(filters))
	}
	if filters[0].Descriptor().Kind != KindGrayscale || filters[1].Descriptor().Kind != KindKernel {
		t.Errorf("order not preserved: %+v", filters)
	}

	if _, err := ParseList([]string{"box:3", "nope"}); err == nil {
		t.Error("ParseList should fail on an unknown filter")
	}
}
