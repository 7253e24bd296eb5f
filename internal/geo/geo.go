package geo

import (
	"errors"
	"fmt"
	"math"

	geom "github.com/peterstace/simplefeatures/geom"

	"github.com/xplnobj/codec/pkg/obj"
)

// OBJ coordinates are local metres with Y up, so the ground plane is X/Z.
// Footprints are planar XY geometries where geometry Y holds the OBJ Z axis.

// ErrNoVertices is returned for documents without a vertex pool.
var ErrNoVertices = errors.New("document has no vertices")

// Footprint is the plan view outline of a document.
type Footprint struct {
	Hull     geom.Geometry
	Min, Max obj.Point3
}

// DocumentFootprint projects every vertex of doc onto the ground plane and
// returns their convex hull along with the 3D bounds.
func DocumentFootprint(doc *obj.Document) (Footprint, error) {
	if doc == nil || len(doc.Vertices) == 0 {
		return Footprint{}, ErrNoVertices
	}

	minP := obj.Point3{X: math.MaxFloat32, Y: math.MaxFloat32, Z: math.MaxFloat32}
	maxP := obj.Point3{X: -math.MaxFloat32, Y: -math.MaxFloat32, Z: -math.MaxFloat32}
	points := make([]geom.Point, 0, len(doc.Vertices))
	seen := make(map[[2]float32]bool, len(doc.Vertices))

	for i, v := range doc.Vertices {
		p := v.Position
		minP.X, maxP.X = min(minP.X, p.X), max(maxP.X, p.X)
		minP.Y, maxP.Y = min(minP.Y, p.Y), max(maxP.Y, p.Y)
		minP.Z, maxP.Z = min(minP.Z, p.Z), max(maxP.Z, p.Z)

		key := [2]float32{p.X, p.Z}
		if seen[key] {
			continue
		}
		seen[key] = true
		pt, err := geom.NewPoint(geom.Coordinates{
			XY:   geom.XY{X: float64(p.X), Y: float64(p.Z)},
			Type: geom.DimXY,
		})
		if err != nil {
			return Footprint{}, fmt.Errorf("invalid vertex %d: %w", i, err)
		}
		points = append(points, pt)
	}

	return Footprint{
		Hull: geom.NewMultiPoint(points).ConvexHull(),
		Min:  minP,
		Max:  maxP,
	}, nil
}

// WKT returns the hull as well known text.
func (f Footprint) WKT() string {
	return f.Hull.AsText()
}

// Area is the ground area covered by the hull in square metres. It is zero
// when all vertices lie on a line.
func (f Footprint) Area() float64 {
	return f.Hull.Area()
}

// Height is the vertical extent of the document.
func (f Footprint) Height() float64 {
	return float64(f.Max.Y - f.Min.Y)
}

// ParseFootprint reads a hull stored by WKT.
func ParseFootprint(wkt string) (geom.Geometry, error) {
	return geom.UnmarshalWKT(wkt)
}
