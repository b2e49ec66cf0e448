package sim

import (
	"math"
	"math/rand"

	geom "github.com/peterstace/simplefeatures/geom"
)

// Island is a static polygonal obstacle. Collision and avoidance use the
// bounding circle; the outline is the rendered coastline.
type Island struct {
	Position       Vec2
	BoundingRadius float64
	Outline        []Vec2 // world coordinates, counter-clockwise, not closed

	shape geom.Polygon
}

// NewIsland builds an island from a centre and an outline given in world
// coordinates. The bounding radius is the farthest vertex plus shore padding.
func NewIsland(center Vec2, outline []Vec2, shore float64) Island {
	maxR := 0.0
	for _, p := range outline {
		if d := p.Dist(center); d > maxR {
			maxR = d
		}
	}
	isl := Island{
		Position:       center,
		BoundingRadius: maxR + shore,
		Outline:        append([]Vec2(nil), outline...),
	}
	isl.shape = outlinePolygon(isl.Outline)
	return isl
}

func outlinePolygon(outline []Vec2) geom.Polygon {
	if len(outline) < 3 {
		return geom.Polygon{}
	}
	coords := make([]float64, 0, (len(outline)+1)*2)
	for _, p := range outline {
		coords = append(coords, p.X, p.Y)
	}
	coords = append(coords, outline[0].X, outline[0].Y)
	ring, err := geom.NewLineString(geom.NewSequence(coords, geom.DimXY))
	if err != nil {
		return geom.Polygon{}
	}
	poly, err := geom.NewPolygon([]geom.LineString{ring})
	if err != nil {
		return geom.Polygon{}
	}
	return poly
}

// Contains reports whether p lies on the island's land area.
func (i Island) Contains(p Vec2) bool {
	if i.shape.IsEmpty() {
		return false
	}
	if p.Dist(i.Position) > i.BoundingRadius {
		return false
	}
	pt, err := geom.NewPoint(geom.Coordinates{XY: geom.XY{X: p.X, Y: p.Y}})
	if err != nil {
		return false
	}
	return geom.Intersects(i.shape.AsGeometry(), pt.AsGeometry())
}

// Area is the land area enclosed by the outline.
func (i Island) Area() float64 {
	if i.shape.IsEmpty() {
		return 0
	}
	return i.shape.Area()
}

// Valid reports whether the outline formed a simple polygon. Outlines that
// fail polygon construction leave the island with no land area.
func (i Island) Valid() bool {
	return !i.shape.IsEmpty()
}

// generateIsland grows an irregular star-shaped outline around center. Each
// vertex sits at an evenly spaced angle with a jittered radius, so the ring
// never crosses itself.
func generateIsland(center Vec2, size float64, t Tuning, rng *rand.Rand) Island {
	n := 6 + rng.Intn(6)
	base := size * (0.8 + rng.Float64()*0.4)
	outline := make([]Vec2, n)
	for k := 0; k < n; k++ {
		angle := 2 * math.Pi * float64(k) / float64(n)
		r := base * (0.6 + rng.Float64()*0.8)
		outline[k] = center.Add(FromAngle(angle, r))
	}
	return NewIsland(center, outline, t.ShorePadding)
}

// placeIslands scatters up to want islands across the open water between the
// two bases, keeping IslandSpacing between bounding circles. Placement gives
// up after MaxPlacementAttempts consecutive rejections and returns what fit.
func placeIslands(want int, t Tuning, rng *rand.Rand) []Island {
	islands := make([]Island, 0, want)
	attempts := 0
	for len(islands) < want && attempts < t.MaxPlacementAttempts {
		attempts++
		size := t.IslandSizeMin + rng.Float64()*(t.IslandSizeMax-t.IslandSizeMin)
		buffer := size * 1.5
		x := uniform(rng, t.BaseWidth+buffer, t.MapWidth-t.BaseWidth-buffer)
		y := uniform(rng, buffer, t.MapHeight-buffer)
		candidate := generateIsland(V(x, y), size, t, rng)

		tooClose := false
		for _, other := range islands {
			if candidate.Position.Dist(other.Position) < other.BoundingRadius+candidate.BoundingRadius+t.IslandSpacing {
				tooClose = true
				break
			}
		}
		if tooClose {
			continue
		}
		islands = append(islands, candidate)
		attempts = 0
	}
	return islands
}

// uniform draws from [lo, hi). An inverted range collapses to its midpoint.
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	if hi <= lo {
		return (lo + hi) / 2
	}
	return lo + rng.Float64()*(hi-lo)
}
