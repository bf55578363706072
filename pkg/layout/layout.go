// Package layout partitions a circle into angular sectors for a list of menu items.
//
// Angles are in degrees and follow the SVG-friendly convention used by the
// renderer: a point at angle a and distance r is (sin(a)*r, cos(a)*r).
package layout

import (
	"math"

	"github.com/mchmarny/radial-menu/pkg/menu"
)

// Geometry holds the radii driving the layout.
type Geometry struct {
	Radius      float64
	InnerRadius float64
	SectorSpace float64
}

// Point is a position in menu coordinates, origin at the circle center.
type Point struct {
	X float64
	Y float64
}

// Sector is one angular wedge of the menu, bound to at most one item.
type Sector struct {
	// Position is the sector's slot around the circle, 0..len(sectors)-1.
	Position int

	// Index is the item index mapped onto this slot. Filler sectors keep the
	// mapped index even though no item exists there.
	Index int

	// Item is nil for filler sectors.
	Item *menu.Item

	StartAngle float64
	EndAngle   float64

	// Center is the sector's mid-point between the inner and outer radius.
	Center Point

	// Translate offsets the scaled sector so it shrinks around Center.
	Translate Point

	Scale float64

	// Path is the sector outline in SVG path syntax.
	Path string
}

// IsFiller reports whether the sector has no item.
func (s Sector) IsFiller() bool {
	return s.Item == nil
}

// Layout is the full sector partition of one menu level.
type Layout struct {
	Sectors     []Sector
	AngleStep   float64
	AngleShift  float64
	IndexOffset int
	Scale       float64
	Geometry    Geometry
}

// Compute builds the layout for items. The sector count is max(len(items), minSectors);
// slots without an item become fillers. The items slice is referenced, not copied.
func Compute(items []menu.Item, minSectors int, g Geometry) Layout {
	count := SectorCount(len(items), minSectors)
	if count == 0 {
		return Layout{Scale: 1, Geometry: g}
	}

	l := Layout{
		Sectors:     make([]Sector, count),
		AngleStep:   360 / float64(count),
		IndexOffset: IndexOffset(len(items), count),
		Scale:       Scale(g.Radius, g.SectorSpace, count),
		Geometry:    g,
	}
	l.AngleShift = l.AngleStep/2 + 270

	for i := 0; i < count; i++ {
		start := l.AngleShift + l.AngleStep*float64(i)
		end := l.AngleShift + l.AngleStep*float64(i+1)
		index := WrapIndex(count-i+l.IndexOffset, count)
		center := SectorCenter(start, end, g)

		s := Sector{
			Position:   i,
			Index:      index,
			StartAngle: start,
			EndAngle:   end,
			Center:     center,
			Translate: Point{
				X: (1 - l.Scale) * center.X,
				Y: (1 - l.Scale) * center.Y,
			},
			Scale: l.Scale,
			Path:  SectorPath(start, end, g, l.Scale),
		}
		if index >= 0 && index < len(items) {
			s.Item = &items[index]
		}
		l.Sectors[i] = s
	}

	return l
}

// SectorByIndex returns the sector holding the item at index.
func (l Layout) SectorByIndex(index int) (Sector, bool) {
	for _, s := range l.Sectors {
		if s.Item != nil && s.Index == index {
			return s, true
		}
	}
	return Sector{}, false
}

// SectorCount returns the number of sectors drawn for itemCount items.
func SectorCount(itemCount, minSectors int) int {
	return max(itemCount, minSectors)
}

// IndexOffset returns the item-to-slot shift. Fewer than four items that do not
// fill every slot are shifted one extra step so they sit centered at the top.
func IndexOffset(itemCount, sectorCount int) int {
	if itemCount < sectorCount && itemCount >= 1 && itemCount <= 3 {
		return -2
	}
	return -1
}

// WrapIndex brings x into [0, n) with a single period correction.
func WrapIndex(x, n int) int {
	switch {
	case x < 0:
		return x + n
	case x >= n:
		return x - n
	default:
		return x
	}
}

// Scale returns the uniform shrink factor that opens a gap of sectorSpace
// between count sectors on a circle of the given radius. The result is kept in (0, 1].
func Scale(radius, sectorSpace float64, count int) float64 {
	totalSpace := sectorSpace * float64(count)
	circumference := 2 * math.Pi * radius
	radiusDelta := radius - (circumference-totalSpace)/(2*math.Pi)

	s := (radius - radiusDelta) / radius
	switch {
	case s > 1 || math.IsNaN(s):
		return 1
	case s <= 0:
		return minScale
	}
	return s
}

// minScale keeps gaps wider than the circumference from collapsing sectors to nothing.
const minScale = 0.01

// SectorCenter returns the mid-point of the sector between both radii.
func SectorCenter(startDeg, endDeg float64, g Geometry) Point {
	return DegreePos((startDeg+endDeg)/2, g.InnerRadius+(g.Radius-g.InnerRadius)/2)
}

// DegreePos returns the point at angle deg and distance length from the center.
func DegreePos(deg, length float64) Point {
	rad := DegToRad(deg)
	return Point{
		X: math.Sin(rad) * length,
		Y: math.Cos(rad) * length,
	}
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * (math.Pi / 180)
}
