package writer_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xplnobj/codec/internal/writer"
	"github.com/xplnobj/codec/pkg/obj"
)

func TestCheckInstancing(t *testing.T) {
	vertices, indices := quad()
	static := func(nodes ...obj.Node) *obj.Document {
		lod := obj.NewLOD("", 0, 0)
		lod.Root.Add(nodes...)
		return &obj.Document{Vertices: vertices, Indices: indices, LODs: []*obj.LOD{lod}}
	}

	t.Run("plain meshes and lights", func(t *testing.T) {
		doc := static(
			&obj.Mesh{Name: "base", Count: 12, Attr: obj.AttrSet{Hard: &obj.Hard{}, Draped: true}},
			&obj.LightNamed{Light: "airplane_beacon"},
		)
		assert.Empty(t, writer.CheckInstancing(doc))
	})

	t.Run("every breaking attribute", func(t *testing.T) {
		doc := static(&obj.Mesh{Name: "panel", Count: 12, Attr: obj.AttrSet{
			Manip:       obj.NewManipulator(obj.ManipNoop),
			Cockpit:     &obj.Cockpit{},
			Shiny:       &obj.Shiny{Ratio: 1},
			Blend:       &obj.Blend{Type: obj.BlendNo, Ratio: 0.5},
			PolyOffset:  &obj.PolyOffset{Offset: 1},
			NoDraw:      true,
			NoShadow:    true,
			SolidCamera: true,
		}})
		issues := writer.CheckInstancing(doc)
		assert.Len(t, issues, 8)
		for _, issue := range issues {
			assert.Equal(t, "panel", issue.Object)
		}
	})

	t.Run("animation and smoke", func(t *testing.T) {
		door, _ := cabinet().LODs[0].Root.Children[1].(*obj.Transform)
		require.NotNil(t, door)
		door.Children[0].(*obj.Mesh).Attr = obj.AttrSet{}

		issues := writer.CheckInstancing(static(door, &obj.Smoke{Name: "stack"}))
		assert.Equal(t, []writer.InstancingIssue{
			{Object: "door", Reason: "the transform is animated"},
			{Object: "stack", Reason: "smoke is not allowed"},
		}, issues)
	})
}

func TestDocumentWriter_CheckInstancing(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	for _, check := range []bool{false, true} {
		buf.Reset()
		w, err := writer.NewDocumentWriter(logger, writer.Options{CheckInstancing: check})
		require.NoError(t, err)
		require.NoError(t, w.Write(context.Background(), writer.NewBufferSink(nil), cabinet()))

		if check {
			assert.Contains(t, buf.String(), `Instancing is broken on \"door\"`)
			assert.Contains(t, buf.String(), `Instancing is broken on \"panel\"`)
		} else {
			assert.NotContains(t, buf.String(), "Instancing is broken")
		}
	}
}
