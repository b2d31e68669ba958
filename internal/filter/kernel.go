// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import (
	"math"

	"github.com/gogpu/glass/internal/cache"
)

// GaussianKernel generates a normalized 1D Gaussian kernel for the given
// standard deviation.
//
// The kernel size is 2*ceil(3σ)+1, which covers 99.7% of the distribution.
// For sigma <= 0 it returns the identity kernel [1].
func GaussianKernel(sigma float64) []float32 {
	if sigma <= 0 || math.IsNaN(sigma) {
		return []float32{1.0}
	}

	halfSize := int(math.Ceil(sigma * 3))
	size := halfSize*2 + 1
	kernel := make([]float32, size)

	// The normalization constant is skipped; the sum is normalized below.
	twoSigmaSq := 2 * sigma * sigma
	sum := float64(0)
	for i := 0; i < size; i++ {
		x := float64(i - halfSize)
		val := math.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = float32(val)
		sum += val
	}

	invSum := float32(1.0 / sum)
	for i := range kernel {
		kernel[i] *= invSum
	}
	return kernel
}

// kernelCache holds kernels keyed by sigma quantized to 0.01.
var kernelCache = cache.New[int, []float32](64)

// CachedGaussianKernel returns a shared Gaussian kernel for sigma. The
// returned slice must not be modified.
func CachedGaussianKernel(sigma float64) []float32 {
	key := int(math.Round(sigma * 100))
	k, _ := kernelCache.GetOrCreate(key, func() ([]float32, error) {
		return GaussianKernel(float64(key) / 100), nil
	})
	return k
}

// KernelSize returns the kernel length for sigma.
func KernelSize(sigma float64) int {
	if sigma <= 0 {
		return 1
	}
	return int(math.Ceil(sigma*3))*2 + 1
}

// CSSBlurSigma converts a CSS blur() radius in pixels to a standard
// deviation. CSS defines the radius as the standard deviation itself.
func CSSBlurSigma(radiusPx float64) float64 {
	return math.Max(radiusPx, 0)
}

// ShadowBlurSigma converts a CSS box-shadow blur radius to a standard
// deviation, which is half the radius.
func ShadowBlurSigma(radiusPx float64) float64 {
	return math.Max(radiusPx, 0) / 2
}
