// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/gogpu/gg"
)

func TestGaussianKernel(t *testing.T) {
	tests := []struct {
		sigma    float64
		wantSize int
	}{
		{0, 1},
		{-5, 1},
		{math.NaN(), 1},
		{0.1, 3},
		{0.5, 5},
		{1, 7},
		{5, 31},
	}
	for _, tt := range tests {
		k := GaussianKernel(tt.sigma)
		if len(k) != tt.wantSize {
			t.Errorf("len(GaussianKernel(%v)) = %d, want %d", tt.sigma, len(k), tt.wantSize)
		}
		if !math.IsNaN(tt.sigma) && KernelSize(tt.sigma) != tt.wantSize {
			t.Errorf("KernelSize(%v) = %d, want %d", tt.sigma, KernelSize(tt.sigma), tt.wantSize)
		}

		var sum float32
		for _, v := range k {
			sum += v
		}
		if math.Abs(float64(sum)-1) > 1e-3 {
			t.Errorf("GaussianKernel(%v) sum = %v, want ~1", tt.sigma, sum)
		}
		for i := 0; i < len(k)/2; i++ {
			if absf32(k[i]-k[len(k)-1-i]) > 1e-6 {
				t.Errorf("GaussianKernel(%v) asymmetric at %d", tt.sigma, i)
			}
		}
	}
}

func TestCachedGaussianKernel(t *testing.T) {
	a := CachedGaussianKernel(2.5)
	b := CachedGaussianKernel(2.5)
	if &a[0] != &b[0] {
		t.Error("CachedGaussianKernel should return the shared kernel")
	}
	if len(a) != KernelSize(2.5) {
		t.Errorf("len = %d, want %d", len(a), KernelSize(2.5))
	}
}

func TestBlurZeroSigmaCopies(t *testing.T) {
	src := solidImage(4, 4, gg.Red)
	dst := Blur(src, 0, 0)
	if &dst.Pix[0] == &src.Pix[0] {
		t.Fatal("Blur should return a new image")
	}
	for i := range src.Pix {
		if dst.Pix[i] != src.Pix[i] {
			t.Fatalf("Pix[%d] = %v, want %v", i, dst.Pix[i], src.Pix[i])
		}
	}
}

func TestBlurSpreadsAndConserves(t *testing.T) {
	src := NewImage(21, 21)
	src.Set(10, 10, Pixel{1, 1, 1, 1})

	dst := Blur(src, 2, 2)

	center := dst.At(10, 10)
	near := dst.At(11, 10)
	if !(center.A > near.A && near.A > 0) {
		t.Errorf("center %v, neighbor %v: want peak at center and spread", center.A, near.A)
	}

	var total float32
	for y := 0; y < dst.Height; y++ {
		for x := 0; x < dst.Width; x++ {
			total += dst.At(x, y).A
		}
	}
	if absf32(total-1) > 1e-3 {
		t.Errorf("total alpha = %v, want 1", total)
	}
}

func TestBlurOneAxis(t *testing.T) {
	src := NewImage(9, 9)
	src.Set(4, 4, Pixel{0, 0, 0, 1})

	h := Blur(src, 1, 0)
	if h.At(4, 3).A != 0 || h.At(3, 4).A == 0 {
		t.Errorf("horizontal blur leaked vertically: above=%v left=%v", h.At(4, 3).A, h.At(3, 4).A)
	}
	v := Blur(src, 0, 1)
	if v.At(3, 4).A != 0 || v.At(4, 3).A == 0 {
		t.Errorf("vertical blur leaked horizontally: left=%v above=%v", v.At(3, 4).A, v.At(4, 3).A)
	}
}

func TestBlurFadesAtBorder(t *testing.T) {
	src := solidImage(10, 10, gg.White)
	dst := Blur(src, 2, 2)
	if corner := dst.At(0, 0).A; corner >= 0.5 {
		t.Errorf("corner alpha = %v, want < 0.5 with transparent surroundings", corner)
	}
	if mid := dst.At(5, 5).A; mid < 0.9 {
		t.Errorf("middle alpha = %v, want close to 1", mid)
	}
}

func TestApplyMatrixChannelMask(t *testing.T) {
	src := solidImage(1, 1, gg.RGBA{R: 0.2, G: 0.4, B: 0.6, A: 0.5})
	green := Matrix{
		0, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 0, 0, 0,
		0, 0, 0, 1, 0,
	}
	got := ApplyMatrix(src, &green).At(0, 0)
	want := Pixel{0, 0.4 * 0.5, 0, 0.5}
	if !pixelApproxEqual(got, want, 1e-5) {
		t.Errorf("ApplyMatrix() = %+v, want %+v", got, want)
	}
}

func TestSaturationMatrix(t *testing.T) {
	tests := []struct {
		name   string
		factor float64
		in     gg.RGBA
		check  func(gg.RGBA) bool
	}{
		{"identity", 1, gg.RGBA{R: 0.8, G: 0.3, B: 0.1, A: 1}, func(c gg.RGBA) bool {
			return math.Abs(c.R-0.8) < 1e-4 && math.Abs(c.G-0.3) < 1e-4 && math.Abs(c.B-0.1) < 1e-4
		}},
		{"grayscale", 0, gg.RGBA{R: 1, G: 0, B: 0, A: 1}, func(c gg.RGBA) bool {
			return math.Abs(c.R-lumR) < 1e-4 && math.Abs(c.G-lumR) < 1e-4 && math.Abs(c.B-lumR) < 1e-4
		}},
		{"oversaturate", 1.4, gg.RGBA{R: 0.6, G: 0.4, B: 0.4, A: 1}, func(c gg.RGBA) bool {
			return c.R > 0.6 && c.G < 0.4
		}},
		{"gray stays gray", 1.4, gg.RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1}, func(c gg.RGBA) bool {
			return math.Abs(c.R-0.5) < 1e-4 && math.Abs(c.B-0.5) < 1e-4
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := SaturationMatrix(tt.factor)
			got := straight(ApplyMatrix(solidImage(1, 1, tt.in), &m).At(0, 0))
			if !tt.check(got) {
				t.Errorf("saturate(%v) of %+v = %+v", tt.factor, tt.in, got)
			}
		})
	}
}

func TestTableTransfer(t *testing.T) {
	inv := TableTransfer([]float64{1, 0})
	tests := []struct{ in, want float32 }{
		{0, 1}, {0.25, 0.75}, {1, 0}, {-1, 1}, {2, 0},
	}
	for _, tt := range tests {
		if got := inv(tt.in); absf32(got-tt.want) > 1e-6 {
			t.Errorf("table[1 0](%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if got := TableTransfer(nil)(0.3); got != 0.3 {
		t.Errorf("empty table = %v, want identity", got)
	}
}

func TestDiscreteTransfer(t *testing.T) {
	f := DiscreteTransfer([]float64{0, 0.1, 1})
	tests := []struct{ in, want float32 }{
		{0, 0}, {0.3, 0}, {0.34, 0.1}, {0.66, 0.1}, {0.67, 1}, {1, 1},
	}
	for _, tt := range tests {
		if got := f(tt.in); absf32(got-tt.want) > 1e-6 {
			t.Errorf("discrete(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTransferAlphaKeepsColor(t *testing.T) {
	src := solidImage(1, 1, gg.RGBA{R: 1, G: 1, B: 1, A: 0.25})
	got := TransferAlpha(src, TableTransfer([]float64{1, 0})).At(0, 0)
	want := Pixel{0.75, 0.75, 0.75, 0.75}
	if !pixelApproxEqual(got, want, 1e-5) {
		t.Errorf("TransferAlpha() = %+v, want %+v", got, want)
	}
}

// neutralMap is a displacement field with no offset.
func neutralMap(w, h int) *Image {
	return solidImage(w, h, gg.RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1})
}

func gradientImage(w, h int) *Image {
	im := NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := float32(x) / float32(w)
			im.Set(x, y, Pixel{v, 0, 0, 1})
		}
	}
	return im
}

func TestDisplaceNeutralIsIdentity(t *testing.T) {
	src := gradientImage(8, 4)
	got := Displace(src, neutralMap(8, 4), 40, 0, 2)
	for i := range src.Pix {
		if got.Pix[i] != src.Pix[i] {
			t.Fatalf("Pix[%d] = %v, want %v", i, got.Pix[i], src.Pix[i])
		}
	}
}

func TestDisplaceShifts(t *testing.T) {
	src := gradientImage(16, 2)
	// R = 1 means X offset of +0.5*scale.
	dmap := solidImage(16, 2, gg.RGBA{R: 1, G: 0.5, B: 0.5, A: 1})

	got := Displace(src, dmap, 4, 0, 2)
	if g, w := got.At(3, 0), src.At(5, 0); g != w {
		t.Errorf("At(3,0) = %+v, want source pixel 5 %+v", g, w)
	}
	if g := got.At(15, 0); g.A != 0 {
		t.Errorf("At(15,0) = %+v, want transparent past the edge", g)
	}

	neg := Displace(src, dmap, -4, 0, 2)
	if g, w := neg.At(5, 0), src.At(3, 0); g != w {
		t.Errorf("negative scale At(5,0) = %+v, want %+v", g, w)
	}
}

func TestDisplaceScaledMap(t *testing.T) {
	src := gradientImage(8, 8)
	got := Displace(src, neutralMap(2, 2), 10, 0, 2)
	if got.At(7, 7) != src.At(7, 7) {
		t.Error("proportional map lookup should stay neutral")
	}
}

func TestDisplaceWithBands(t *testing.T) {
	src := gradientImage(12, 10)
	dmap := solidImage(12, 10, gg.RGBA{R: 0.8, G: 0.3, B: 0.3, A: 1})

	var covered [10]int
	bands := func(height int, fn func(y0, y1 int)) {
		for y := 0; y < height; y += 3 {
			y1 := min(y+3, height)
			for r := y; r < y1; r++ {
				covered[r]++
			}
			fn(y, y1)
		}
	}

	want := Displace(src, dmap, 6, 0, 2)
	got := DisplaceWith(bands, src, dmap, 6, 0, 2)
	for i := range want.Pix {
		if got.Pix[i] != want.Pix[i] {
			t.Fatalf("Pix[%d] = %v, want %v", i, got.Pix[i], want.Pix[i])
		}
	}
	for y, n := range covered {
		if n != 1 {
			t.Errorf("row %d processed %d times, want once", y, n)
		}
	}
}

func TestOffset(t *testing.T) {
	src := NewImage(4, 4)
	src.Set(1, 1, Pixel{1, 0, 0, 1})
	got := Offset(src, 2, 1)
	if got.At(3, 2).A != 1 || got.At(1, 1).A != 0 {
		t.Errorf("Offset(2,1) moved pixel incorrectly")
	}
	if c := Offset(src, 0, 0); &c.Pix[0] == &src.Pix[0] {
		t.Error("zero offset should still copy")
	}
}

func TestInAndOver(t *testing.T) {
	red := solidImage(2, 1, gg.Red)
	mask := NewImage(2, 1)
	mask.Set(1, 0, Pixel{0, 0, 0, 0.5})

	in := In(red, mask)
	if in.At(0, 0).A != 0 || !pixelApproxEqual(in.At(1, 0), Pixel{0.5, 0, 0, 0.5}, 1e-6) {
		t.Errorf("In() = %+v %+v", in.At(0, 0), in.At(1, 0))
	}

	blue := solidImage(2, 1, gg.RGBA{B: 1, A: 1})
	over := Over(in, blue)
	if !pixelApproxEqual(over.At(0, 0), Pixel{0, 0, 1, 1}, 1e-6) {
		t.Errorf("Over() transparent src = %+v, want blue", over.At(0, 0))
	}
	if !pixelApproxEqual(over.At(1, 0), Pixel{0.5, 0, 0.5, 1}, 1e-6) {
		t.Errorf("Over() half red = %+v", over.At(1, 0))
	}
}

func TestBlendModes(t *testing.T) {
	tests := []struct {
		name     string
		mode     BlendMode
		src, dst gg.RGBA
		opacity  float32
		want     Pixel
	}{
		{"screen channels", BlendScreen, gg.RGBA{R: 1, A: 1}, gg.RGBA{G: 1, A: 1}, 1, Pixel{1, 1, 0, 1}},
		{"screen gray", BlendScreen, gg.RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1}, gg.RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1}, 1, Pixel{0.75, 0.75, 0.75, 1}},
		{"normal", BlendNormal, gg.RGBA{R: 1, A: 1}, gg.RGBA{B: 1, A: 1}, 1, Pixel{1, 0, 0, 1}},
		{"normal half opacity", BlendNormal, gg.RGBA{R: 1, A: 1}, gg.RGBA{B: 1, A: 1}, 0.5, Pixel{0.5, 0, 0.5, 1}},
		{"overlay dark backdrop", BlendOverlay, gg.RGBA{R: 1, G: 1, B: 1, A: 1}, gg.RGBA{R: 0.25, G: 0.25, B: 0.25, A: 1}, 1, Pixel{0.5, 0.5, 0.5, 1}},
		{"overlay light backdrop", BlendOverlay, gg.RGBA{A: 1}, gg.RGBA{R: 0.75, G: 0.75, B: 0.75, A: 1}, 1, Pixel{0.5, 0.5, 0.5, 1}},
		{"onto transparent", BlendScreen, gg.RGBA{R: 1, A: 1}, gg.Transparent, 1, Pixel{1, 0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Blend(solidImage(1, 1, tt.src), solidImage(1, 1, tt.dst), tt.mode, tt.opacity).At(0, 0)
			if !pixelApproxEqual(got, tt.want, 1e-5) {
				t.Errorf("Blend() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDropShadow(t *testing.T) {
	shape := NewImage(20, 20)
	for y := 5; y < 10; y++ {
		for x := 5; x < 10; x++ {
			shape.Set(x, y, Pixel{1, 1, 1, 1})
		}
	}

	sharp := DropShadow(shape, 3, 4, 0, gg.RGBA{A: 0.5})
	if got := sharp.At(8, 9); !pixelApproxEqual(got, Pixel{0, 0, 0, 0.5}, 1e-6) {
		t.Errorf("shadow inside offset shape = %+v", got)
	}
	if got := sharp.At(5, 5).A; got != 0 {
		t.Errorf("shadow at unshifted corner = %v, want 0", got)
	}

	soft := DropShadow(shape, 0, 0, 2, gg.RGBA{R: 1, A: 1})
	if soft.At(4, 7).A <= 0 || soft.At(7, 7).A <= soft.At(4, 7).A {
		t.Errorf("blurred shadow should spread outward and peak inside")
	}
	if p := soft.At(7, 7); p.G != 0 || p.R <= 0 {
		t.Errorf("shadow color = %+v, want red", p)
	}
}

func TestImageConversions(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	src.Set(0, 0, color.RGBA{R: 255, A: 255})
	src.Set(1, 0, color.RGBA{G: 128, A: 128})

	im := FromImage(src)
	if !pixelApproxEqual(im.At(1, 0), Pixel{0, 128.0 / 255, 0, 128.0 / 255}, 1e-6) {
		t.Errorf("FromImage() = %+v", im.At(1, 0))
	}
	back := im.ToRGBA()
	for i := range src.Pix {
		if back.Pix[i] != src.Pix[i] {
			t.Errorf("round trip Pix[%d] = %d, want %d", i, back.Pix[i], src.Pix[i])
		}
	}

	nrgba := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	nrgba.Set(0, 0, color.NRGBA{R: 255, A: 51})
	if got := FromImage(nrgba).At(0, 0); !pixelApproxEqual(got, Pixel{0.2, 0, 0, 0.2}, 1e-3) {
		t.Errorf("FromImage(NRGBA) = %+v, want premultiplied", got)
	}

	if got := im.At(-1, 0); got != (Pixel{}) {
		t.Errorf("At outside = %+v, want transparent", got)
	}
}

func TestPixelFromRGBA(t *testing.T) {
	c := gg.RGBA{R: 0.5, G: 0.25, B: 1, A: 0.5}
	want := Pixel{R: 0.25, G: 0.125, B: 0.5, A: 0.5}
	if got := PixelFromRGBA(c); !pixelApproxEqual(got, want, 1e-6) {
		t.Errorf("PixelFromRGBA(%+v) = %+v, want %+v", c, got, want)
	}
}

func BenchmarkBlur(b *testing.B) {
	src := solidImage(256, 256, gg.White)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Blur(src, 4, 4)
	}
}
