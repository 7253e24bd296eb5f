package geo

import (
	"math"
	"testing"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xplnobj/codec/pkg/obj"
)

func vertices(points ...obj.Point3) []obj.Vertex {
	out := make([]obj.Vertex, len(points))
	for i, p := range points {
		out[i] = obj.Vertex{Position: p}
	}
	return out
}

func TestDocumentFootprint_Box(t *testing.T) {
	doc := &obj.Document{Vertices: vertices(
		obj.Point3{X: 0, Y: 0, Z: 0},
		obj.Point3{X: 4, Y: 0, Z: 0},
		obj.Point3{X: 4, Y: 0, Z: 2},
		obj.Point3{X: 0, Y: 0, Z: 2},
		obj.Point3{X: 0, Y: 3, Z: 0},
		obj.Point3{X: 4, Y: 3, Z: 2},
		obj.Point3{X: 2, Y: 1, Z: 1},
	)}

	fp, err := DocumentFootprint(doc)
	require.NoError(t, err)

	assert.Equal(t, geom.TypePolygon, fp.Hull.Type())
	assert.InDelta(t, 8.0, fp.Area(), 1e-9)
	assert.InDelta(t, 3.0, fp.Height(), 1e-9)
	assert.Equal(t, obj.Point3{X: 0, Y: 0, Z: 0}, fp.Min)
	assert.Equal(t, obj.Point3{X: 4, Y: 3, Z: 2}, fp.Max)
}

func TestDocumentFootprint_Collinear(t *testing.T) {
	doc := &obj.Document{Vertices: vertices(
		obj.Point3{X: 0, Y: 0, Z: 0},
		obj.Point3{X: 1, Y: 5, Z: 0},
		obj.Point3{X: 2, Y: 0, Z: 0},
	)}

	fp, err := DocumentFootprint(doc)
	require.NoError(t, err)
	assert.Equal(t, 0.0, fp.Area())
	assert.Equal(t, geom.TypeLineString, fp.Hull.Type())
}

func TestDocumentFootprint_Empty(t *testing.T) {
	_, err := DocumentFootprint(&obj.Document{})
	assert.ErrorIs(t, err, ErrNoVertices)

	_, err = DocumentFootprint(nil)
	assert.ErrorIs(t, err, ErrNoVertices)
}

func TestDocumentFootprint_NonFiniteVertex(t *testing.T) {
	doc := &obj.Document{Vertices: vertices(
		obj.Point3{X: 0, Z: 0},
		obj.Point3{X: float32(math.Inf(1)), Z: 1},
	)}

	_, err := DocumentFootprint(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid vertex 1")
}

func TestParseFootprint_RoundTrip(t *testing.T) {
	doc := &obj.Document{Vertices: vertices(
		obj.Point3{X: -1, Z: -1},
		obj.Point3{X: 1, Z: -1},
		obj.Point3{X: 0, Z: 1},
	)}
	fp, err := DocumentFootprint(doc)
	require.NoError(t, err)

	g, err := ParseFootprint(fp.WKT())
	require.NoError(t, err)
	assert.InDelta(t, 2.0, g.Area(), 1e-9)

	_, err = ParseFootprint("POLYGON((0 0")
	assert.Error(t, err)
}
