package layout

import (
	"math"
	"strconv"
	"strings"
)

// SectorPath returns the sector outline: outer arc from start to end, a line to the
// inner radius, the inner arc back to start, and the closing segment.
// Arc radii are inflated by 1/scale so the gap stays uniform once the sector is scaled.
func SectorPath(startDeg, endDeg float64, g Geometry, scale float64) string {
	outer := g.Radius / scale

	radiusDiff := g.Radius - g.InnerRadius
	radiusDelta := (radiusDiff - radiusDiff*scale) / 2
	inner := (g.InnerRadius + radiusDelta) / scale

	var b strings.Builder
	b.WriteString("M")
	b.WriteString(FormatPoint(DegreePos(startDeg, g.Radius)))
	b.WriteString("A")
	b.WriteString(FormatNumber(outer))
	b.WriteString(" ")
	b.WriteString(FormatNumber(outer))
	b.WriteString(" 0 0 0 ")
	b.WriteString(FormatPoint(DegreePos(endDeg, g.Radius)))
	b.WriteString("L")
	b.WriteString(FormatPoint(DegreePos(endDeg, g.InnerRadius)))
	b.WriteString("A")
	b.WriteString(FormatNumber(inner))
	b.WriteString(" ")
	b.WriteString(FormatNumber(inner))
	b.WriteString(" 0 0 1 ")
	b.WriteString(FormatPoint(DegreePos(startDeg, g.InnerRadius)))
	b.WriteString("Z")

	return b.String()
}

// FormatPoint renders a point as "x y".
func FormatPoint(p Point) string {
	return FormatNumber(p.X) + " " + FormatNumber(p.Y)
}

// FormatNumber renders n rounded to five decimals with trailing zeros removed.
// Integers render without a decimal point; non-finite values render as "0".
func FormatNumber(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return "0"
	}
	if n == math.Trunc(n) && math.Abs(n) < 1e15 {
		return strconv.FormatInt(int64(n), 10)
	}

	s := strconv.FormatFloat(n, 'f', 5, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
