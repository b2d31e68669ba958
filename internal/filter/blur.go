// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import "sync"

// Blur applies a separable Gaussian blur and returns a new image.
//
// The two passes process rows then columns, so the cost is
// O(w*h*(kx+ky)) instead of O(w*h*kx*ky). Samples outside the image are
// transparent, so content fades out at the borders.
func Blur(src *Image, sigmaX, sigmaY float64) *Image {
	dst := NewImage(src.Width, src.Height)
	if sigmaX <= 0 && sigmaY <= 0 {
		copy(dst.Pix, src.Pix)
		return dst
	}

	temp := getTempBuffer(len(src.Pix))
	defer putTempBuffer(temp)

	if sigmaX > 0 {
		blurHorizontal(src.Pix, temp, src.Width, src.Height, CachedGaussianKernel(sigmaX))
	} else {
		copy(temp, src.Pix)
	}
	if sigmaY > 0 {
		blurVertical(temp, dst.Pix, src.Width, src.Height, CachedGaussianKernel(sigmaY))
	} else {
		copy(dst.Pix, temp)
	}
	return dst
}

// blurHorizontal convolves every row of src with kernel into dst.
func blurHorizontal(src, dst []float32, width, height int, kernel []float32) {
	half := len(kernel) / 2

	for y := 0; y < height; y++ {
		row := y * width * 4
		for x := 0; x < width; x++ {
			var r, g, b, a float32
			for k, weight := range kernel {
				kx := x + k - half
				if kx < 0 || kx >= width {
					continue
				}
				i := row + kx*4
				r += src[i+0] * weight
				g += src[i+1] * weight
				b += src[i+2] * weight
				a += src[i+3] * weight
			}
			o := row + x*4
			dst[o+0] = r
			dst[o+1] = g
			dst[o+2] = b
			dst[o+3] = a
		}
	}
}

// blurVertical convolves every column of src with kernel into dst.
func blurVertical(src, dst []float32, width, height int, kernel []float32) {
	half := len(kernel) / 2

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var r, g, b, a float32
			for k, weight := range kernel {
				ky := y + k - half
				if ky < 0 || ky >= height {
					continue
				}
				i := (ky*width + x) * 4
				r += src[i+0] * weight
				g += src[i+1] * weight
				b += src[i+2] * weight
				a += src[i+3] * weight
			}
			o := (y*width + x) * 4
			dst[o+0] = r
			dst[o+1] = g
			dst[o+2] = b
			dst[o+3] = a
		}
	}
}

// floatBuffer wraps a slice for sync.Pool to avoid allocation warnings.
type floatBuffer struct {
	data []float32
}

var tempBufferPool = sync.Pool{
	New: func() any {
		return &floatBuffer{data: make([]float32, 256*256*4)}
	},
}

// getTempBuffer returns a zeroed buffer of exactly size elements.
func getTempBuffer(size int) []float32 {
	wrapper := tempBufferPool.Get().(*floatBuffer)
	if cap(wrapper.data) < size {
		tempBufferPool.Put(wrapper)
		return make([]float32, size)
	}
	buf := wrapper.data[:size]
	clear(buf)
	return buf
}

// putTempBuffer returns a buffer to the pool. Very large buffers are
// dropped.
func putTempBuffer(buf []float32) {
	if cap(buf) <= 4096*4096*4 {
		tempBufferPool.Put(&floatBuffer{data: buf[:cap(buf)]})
	}
}
