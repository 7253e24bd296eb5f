package writer

import (
	"fmt"
	"strings"

	"github.com/xplnobj/codec/pkg/obj"
)

// GlobalWriter writes the file scoped attributes. Every present attribute is
// written once; there is nothing to diff against.
type GlobalWriter struct {
	count int
}

// NewGlobalWriter creates a global attribute writer.
func NewGlobalWriter() *GlobalWriter { return &GlobalWriter{} }

// Count returns the number of lines written since the last Reset.
func (w *GlobalWriter) Count() int { return w.count }

// Reset clears the counter.
func (w *GlobalWriter) Reset() { w.count = 0 }

func checkPath(kind, path string) error {
	if strings.ContainsAny(path, "\t\n\r") {
		return fmt.Errorf("%s path %q contains a tab or a line break", kind, path)
	}
	return nil
}

// Write emits the attributes of g in their fixed order.
func (w *GlobalWriter) Write(out LineSink, g *obj.GlobalAttrs) error {
	var lines []string
	add := func(cond bool, line func() string) {
		if cond {
			lines = append(lines, line())
		}
	}

	textures := []struct{ kw, path string }{
		{obj.KeyTexture, g.Texture},
		{obj.KeyTextureLit, g.TextureLit},
		{obj.KeyTextureNormal, g.TextureNormal},
	}
	for _, t := range textures {
		if t.path == "" {
			continue
		}
		if err := checkPath(t.kw, t.path); err != nil {
			return err
		}
		lines = append(lines, obj.Line(t.kw, t.path))
	}

	flags := []struct {
		set bool
		kw  string
	}{
		{g.BlendGlass, obj.KeyBlendGlass},
		{g.NormalMetalness, obj.KeyNormalMetalness},
		{g.Tilted, obj.KeyTilted},
		{g.NoShadow, obj.KeyGlobalNoShadow},
		{g.CockpitLit, obj.KeyGlobalCockpitLit},
	}
	for _, f := range flags {
		if f.set {
			lines = append(lines, f.kw)
		}
	}

	add(g.WetDry != obj.WetDryAny, g.WetDry.String)
	add(g.Blend != nil, func() string { return g.Blend.GlobalString() })
	add(g.LayerGroup != nil, func() string { return g.LayerGroup.Line(obj.KeyLayerGroup) })
	add(g.LayerGroupDraped != nil, func() string { return g.LayerGroupDraped.Line(obj.KeyLayerGroupDraped) })
	add(g.LODDraped != nil, func() string { return obj.Line(obj.KeyLODDraped, obj.FormatFloat(*g.LODDraped)) })
	add(g.SlungLoadWeight != nil, func() string {
		return obj.Line(obj.KeySlungLoadWeight, obj.FormatFloat(*g.SlungLoadWeight))
	})
	add(g.Specular != nil, func() string { return obj.Line(obj.KeyGlobalSpecular, obj.FormatFloat(*g.Specular)) })
	add(g.Tint != nil, func() string { return g.Tint.String() })
	add(g.SlopeLimit != nil, func() string { return g.SlopeLimit.String() })

	if len(g.CockpitRegions) > obj.MaxCockpitRegions {
		return fmt.Errorf("%d cockpit regions, at most %d are allowed", len(g.CockpitRegions), obj.MaxCockpitRegions)
	}
	for _, r := range g.CockpitRegions {
		lines = append(lines, r.String())
	}
	add(g.Debug, func() string { return obj.KeyDebug })

	for _, l := range lines {
		if err := out.PrintLine(l); err != nil {
			return err
		}
		w.count++
	}
	return nil
}
