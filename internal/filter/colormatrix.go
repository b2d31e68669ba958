// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

// Matrix is a 4x5 color transformation matrix in row-major order:
//
//	[R']   [a00 a01 a02 a03 a04]   [R]
//	[G'] = [a10 a11 a12 a13 a14] * [G]
//	[B']   [a20 a21 a22 a23 a24]   [B]
//	[A']   [a30 a31 a32 a33 a34]   [A]
//	                               [1]
//
// Values are unpremultiplied and in [0, 1]; the fifth column is a bias.
type Matrix [20]float64

// Rec. 709 luminance weights.
const (
	lumR = 0.2126
	lumG = 0.7152
	lumB = 0.0722
)

// SaturationMatrix adjusts color saturation.
// factor: 0 = grayscale, 1 = unchanged, 1.4 = the CSS saturate(140%).
func SaturationMatrix(factor float64) Matrix {
	inv := 1 - factor
	return Matrix{
		lumR*inv + factor, lumG * inv, lumB * inv, 0, 0,
		lumR * inv, lumG*inv + factor, lumB * inv, 0, 0,
		lumR * inv, lumG * inv, lumB*inv + factor, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// ApplyMatrix transforms every pixel of src by m and returns a new image.
// Results are clamped to [0, 1].
func ApplyMatrix(src *Image, m *Matrix) *Image {
	dst := NewImage(src.Width, src.Height)

	var mf [20]float32
	for i, v := range m {
		mf[i] = float32(v)
	}

	for i := 0; i < len(src.Pix); i += 4 {
		a := src.Pix[i+3]
		var r, g, b float32
		if a > 0 {
			r = src.Pix[i+0] / a
			g = src.Pix[i+1] / a
			b = src.Pix[i+2] / a
		}

		nr := clamp01(mf[0]*r + mf[1]*g + mf[2]*b + mf[3]*a + mf[4])
		ng := clamp01(mf[5]*r + mf[6]*g + mf[7]*b + mf[8]*a + mf[9])
		nb := clamp01(mf[10]*r + mf[11]*g + mf[12]*b + mf[13]*a + mf[14])
		na := clamp01(mf[15]*r + mf[16]*g + mf[17]*b + mf[18]*a + mf[19])

		dst.Pix[i+0] = nr * na
		dst.Pix[i+1] = ng * na
		dst.Pix[i+2] = nb * na
		dst.Pix[i+3] = na
	}
	return dst
}
