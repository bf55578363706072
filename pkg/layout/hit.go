package layout

import "math"

// HitKind tells what a point in menu coordinates lands on.
type HitKind int

const (
	// HitNone is outside the menu ring and the center button.
	HitNone HitKind = iota
	// HitSector is inside a sector's ring segment.
	HitSector
	// HitCenter is on the center button.
	HitCenter
)

// Hit is the result of HitTest.
type Hit struct {
	Kind   HitKind
	Sector Sector
}

// CenterRadius returns the radius of the center button.
func CenterRadius(g Geometry) float64 {
	return g.InnerRadius - g.SectorSpace/3
}

// HitTest maps p onto the center button or the sector under it.
// Gaps between sectors are not excluded; a point there resolves to the nearest slot by angle.
func HitTest(l Layout, p Point) Hit {
	d := math.Hypot(p.X, p.Y)
	g := l.Geometry

	if d <= CenterRadius(g) {
		return Hit{Kind: HitCenter}
	}
	if len(l.Sectors) == 0 || d < g.InnerRadius || d > g.Radius {
		return Hit{Kind: HitNone}
	}

	angle := math.Atan2(p.X, p.Y) * 180 / math.Pi
	rel := math.Mod(angle-l.AngleShift, 360)
	if rel < 0 {
		rel += 360
	}

	pos := int(rel / l.AngleStep)
	if pos >= len(l.Sectors) {
		pos = len(l.Sectors) - 1
	}

	return Hit{Kind: HitSector, Sector: l.Sectors[pos]}
}
