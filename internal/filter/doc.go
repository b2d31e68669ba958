// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package filter provides the pixel kernels used to evaluate glass filter
// graphs on the CPU.
//
// Images are float32 premultiplied RGBA in [0,1]. Pixels outside an image
// read as transparent black, which matches how SVG filter primitives treat
// the area outside their input.
//
// Kernels:
//   - Gaussian blur (separable, cached kernels)
//   - Color matrix on unpremultiplied values, saturation
//   - Alpha component transfer (table, discrete)
//   - Displacement by a vector-field image
//   - Porter-Duff in/over and separable blend modes
//   - Drop shadow (blur + offset + colorize)
package filter
