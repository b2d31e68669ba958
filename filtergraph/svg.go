// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filtergraph

import (
	"encoding/base64"
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/gogpu/glass/displacement"
)

// EdgeMaskID returns the id of the radial gradient emitted next to the
// filter with the given id.
func EdgeMaskID(filterID string) string {
	return filterID + "-edge-mask"
}

// WriteSVG writes the graph as an SVG document holding the edge-mask
// gradient and a <filter> element with the given id.
//
// href is the displacement map reference used by the feImage stage. When
// href is empty the map is embedded as a PNG data URL.
func (g *Graph) WriteSVG(w io.Writer, id, href string) error {
	if href == "" {
		url, err := displacement.DataURL(g.Map)
		if err != nil {
			return fmt.Errorf("filtergraph: embedding displacement map: %w", err)
		}
		href = url
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" aria-hidden="true">`,
		num(g.Size.Width), num(g.Size.Height))
	sb.WriteString("\n<defs>\n")

	mask, _ := g.Stage(ResultEdgeMask)
	writeRadialGradient(&sb, EdgeMaskID(id), mask.InnerStop)
	sb.WriteByte('\n')

	fmt.Fprintf(&sb, `<filter id="%s" x="%s%%" y="%s%%" width="%s%%" height="%s%%" color-interpolation-filters="sRGB">`,
		attr(id), num(g.Region.X), num(g.Region.Y), num(g.Region.Width), num(g.Region.Height))
	sb.WriteByte('\n')
	for _, s := range g.Stages {
		sb.WriteString("  ")
		g.writeStage(&sb, s, href)
		sb.WriteByte('\n')
	}
	sb.WriteString("</filter>\n</defs>\n</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

func (g *Graph) writeStage(sb *strings.Builder, s Stage, href string) {
	result := ""
	if s.Result != ResultOutput {
		result = ` result="` + attr(s.Result) + `"`
	}

	switch s.Op {
	case OpImage:
		fmt.Fprintf(sb, `<feImage x="0" y="0" width="100%%" height="100%%" preserveAspectRatio="xMidYMid slice" href="%s"%s/>`,
			attr(href), result)
	case OpRadialMask:
		fmt.Fprintf(sb, `<feImage x="0" y="0" width="100%%" height="100%%" preserveAspectRatio="none" href="%s"%s/>`,
			attr(edgeMaskURL(g.Size, s.InnerStop)), result)
	case OpOffset:
		fmt.Fprintf(sb, `<feOffset in="%s" dx="%s" dy="%s"%s/>`, attr(s.In), num(s.DX), num(s.DY), result)
	case OpDisplacement:
		fmt.Fprintf(sb, `<feDisplacementMap in="%s" in2="%s" scale="%s" xChannelSelector="%v" yChannelSelector="%v"%s/>`,
			attr(s.In), attr(s.In2), num(s.Scale), s.XChannel, s.YChannel, result)
	case OpColorMatrix:
		fmt.Fprintf(sb, `<feColorMatrix in="%s" type="matrix" values="%s"%s/>`, attr(s.In), matrixValues(s.Matrix), result)
	case OpBlend:
		fmt.Fprintf(sb, `<feBlend in="%s" in2="%s" mode="%v"%s/>`, attr(s.In), attr(s.In2), s.Blend, result)
	case OpGaussianBlur:
		fmt.Fprintf(sb, `<feGaussianBlur in="%s" stdDeviation="%s"%s/>`, attr(s.In), num(s.StdDeviation), result)
	case OpComposite:
		fmt.Fprintf(sb, `<feComposite in="%s" in2="%s" operator="%v"%s/>`, attr(s.In), attr(s.In2), s.Composite, result)
	case OpComponentTransfer:
		fmt.Fprintf(sb, `<feComponentTransfer in="%s"%s><feFuncA type="%v" tableValues="%s"/></feComponentTransfer>`,
			attr(s.In), result, s.Transfer, joinNums(s.TransferTable))
	default:
		fmt.Fprintf(sb, "<!-- unknown op %v -->", s.Op)
	}
}

func writeRadialGradient(sb *strings.Builder, id string, inner float64) {
	fmt.Fprintf(sb, `<radialGradient id="%s" cx="50%%" cy="50%%" r="50%%">`, attr(id))
	sb.WriteString(`<stop offset="0%" stop-color="black" stop-opacity="0"/>`)
	fmt.Fprintf(sb, `<stop offset="%s%%" stop-color="black" stop-opacity="0"/>`, num(inner))
	sb.WriteString(`<stop offset="100%" stop-color="white" stop-opacity="1"/>`)
	sb.WriteString(`</radialGradient>`)
}

// edgeMaskURL returns a standalone SVG image of the edge mask, since
// feImage cannot reference a gradient directly.
func edgeMaskURL(size Size, inner float64) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s"><defs>`,
		num(size.Width), num(size.Height))
	writeRadialGradient(&sb, "m", inner)
	sb.WriteString(`</defs><rect width="100%" height="100%" fill="url(#m)"/></svg>`)
	return "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(sb.String()))
}

func matrixValues(m *[20]float64) string {
	if m == nil {
		return ""
	}
	return joinNums(m[:])
}

func joinNums(vs []float64) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = num(v)
	}
	return strings.Join(parts, " ")
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func attr(s string) string {
	return html.EscapeString(s)
}
