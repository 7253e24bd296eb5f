package reader

import (
	"log/slog"
	"strings"

	"github.com/xplnobj/codec/pkg/obj"
)

// Interpreter is a Listener that rebuilds a Document. Attribute directives
// update a running state that every following TRIS line takes a copy of.
type Interpreter struct {
	BaseListener

	logger *slog.Logger
	doc    *obj.Document
	state  obj.AttrSet
	lod    *obj.LOD
	stack  []*obj.Transform
}

// NewInterpreter creates an interpreter with an empty document.
func NewInterpreter(logger *slog.Logger) *Interpreter {
	return &Interpreter{logger: logger, doc: &obj.Document{}}
}

// Document returns the document built so far.
func (in *Interpreter) Document() *obj.Document { return in.doc }

// ReadDocument parses buf into a new document.
func (r *Reader) ReadDocument(buf []byte) (*obj.Document, error) {
	in := NewInterpreter(r.logger)
	if err := r.Read(buf, in); err != nil {
		return nil, err
	}
	return in.Document(), nil
}

// ReadDocumentFile parses the object file at path into a new document.
func (r *Reader) ReadDocumentFile(path string) (*obj.Document, error) {
	in := NewInterpreter(r.logger)
	if err := r.ReadFile(path, in); err != nil {
		return nil, err
	}
	return in.Document(), nil
}

// objectName turns a trailing comment into a name.
func objectName(comment string) string {
	return strings.TrimSpace(strings.TrimLeft(comment, "# \t"))
}

func (in *Interpreter) g() *obj.GlobalAttrs { return &in.doc.Global }

func (in *Interpreter) OnTexture(path string) { in.g().Texture = path }
func (in *Interpreter) OnTextureLit(path string) { in.g().TextureLit = path }
func (in *Interpreter) OnTextureNormal(path string) { in.g().TextureNormal = path }
func (in *Interpreter) OnTint(t obj.Tint) { in.g().Tint = &t }
func (in *Interpreter) OnWetDry(w obj.WetDry) { in.g().WetDry = w }
func (in *Interpreter) OnGlobalBlend(b obj.Blend) { in.g().Blend = &b }
func (in *Interpreter) OnSpecular(v float32) { in.g().Specular = &v }
func (in *Interpreter) OnLODDraped(distance float32) { in.g().LODDraped = &distance }
func (in *Interpreter) OnLayerGroup(l obj.LayerGroup) { in.g().LayerGroup = &l }
func (in *Interpreter) OnLayerGroupDraped(l obj.LayerGroup) { in.g().LayerGroupDraped = &l }
func (in *Interpreter) OnSlopeLimit(s obj.SlopeLimit) { in.g().SlopeLimit = &s }
func (in *Interpreter) OnSlungLoadWeight(v float32) { in.g().SlungLoadWeight = &v }
func (in *Interpreter) OnDebug() { in.g().Debug = true }
func (in *Interpreter) OnTilted() { in.g().Tilted = true }
func (in *Interpreter) OnGlobalNoShadow() { in.g().NoShadow = true }
func (in *Interpreter) OnCockpitLit() { in.g().CockpitLit = true }
func (in *Interpreter) OnNormalMetalness() { in.g().NormalMetalness = true }
func (in *Interpreter) OnBlendGlass() { in.g().BlendGlass = true }

func (in *Interpreter) OnCockpitRegion(r obj.CockpitRegion) {
	if !in.g().AddCockpitRegion(r) {
		in.logger.Error("Too many cockpit regions, region dropped", "max", obj.MaxCockpitRegions, "region", r.String())
	}
}

func (in *Interpreter) OnVertices(v []obj.Vertex) { in.doc.Vertices = v }
func (in *Interpreter) OnIndices(idx []uint32) { in.doc.Indices = idx }
func (in *Interpreter) OnLightVertices(v []obj.LightVertex) { in.doc.Lights = v }

func (in *Interpreter) OnLOD(near, far float32, comment string) {
	in.lod = obj.NewLOD(objectName(comment), near, far)
	in.doc.LODs = append(in.doc.LODs, in.lod)
	in.stack = []*obj.Transform{in.lod.Root}
}

// top returns the innermost open transform, creating the implicit LOD of a
// file without ATTR_LOD lines on first use.
func (in *Interpreter) top() *obj.Transform {
	if in.lod == nil {
		in.OnLOD(0, 0, "")
	}
	return in.stack[len(in.stack)-1]
}

func (in *Interpreter) OnHard(h *obj.Hard) { in.state.Hard = h }
func (in *Interpreter) OnShiny(s *obj.Shiny) { in.state.Shiny = s }
func (in *Interpreter) OnBlend(b *obj.Blend) { in.state.Blend = b }
func (in *Interpreter) OnPolyOffset(p *obj.PolyOffset) { in.state.PolyOffset = p }
func (in *Interpreter) OnLightLevel(l *obj.LightLevel) { in.state.LightLevel = l }
func (in *Interpreter) OnShadow(enabled bool) { in.state.NoShadow = !enabled }
func (in *Interpreter) OnDraped(enabled bool) { in.state.Draped = enabled }
func (in *Interpreter) OnDrawEnable(enabled bool) { in.state.NoDraw = !enabled }
func (in *Interpreter) OnSolidCamera(enabled bool) { in.state.SolidCamera = enabled }
func (in *Interpreter) OnReset() { in.state.Reset() }

// OnCockpit follows the writer: entering cockpit mode arms the panel
// manipulator and leaving it clears the active manipulator.
func (in *Interpreter) OnCockpit(c *obj.Cockpit) {
	in.state.Cockpit = c
	if c == nil {
		in.state.Manip = nil
		return
	}
	panel := obj.NewManipulator(obj.ManipPanel)
	panel.Panel().Cockpit = *c
	in.state.Manip = panel
}

func (in *Interpreter) OnManipNone() { in.state.Manip = nil }

func (in *Interpreter) OnManip(m *obj.Manipulator) {
	if m.Equal(in.state.Manip) {
		return
	}
	in.state.Manip = m
}

// patch applies fn to a copy of the active manipulator so meshes already
// emitted keep their own version.
func (in *Interpreter) patch(kw string, fn func(m *obj.Manipulator) bool) {
	if in.state.Manip == nil {
		in.logger.Error("Manipulator sub-directive without a manipulator", "keyword", kw)
		return
	}
	m := in.state.Manip.Clone()
	if !fn(m) {
		in.logger.Error("Manipulator sub-directive is not supported by the active manipulator",
			"keyword", kw, "manipulator", m.Kind().String())
		return
	}
	in.state.Manip = m
}

func (in *Interpreter) OnManipWheel(w obj.Wheel) {
	in.patch(obj.KeyManipWheel, func(m *obj.Manipulator) bool {
		p := m.Wheel()
		if p == nil {
			return false
		}
		*p = w
		return true
	})
}

func (in *Interpreter) OnAxisDetented(d obj.DetentedAxis) {
	in.patch(obj.KeyAxisDetented, func(m *obj.Manipulator) bool {
		p := m.DragAxis()
		if p == nil {
			return false
		}
		p.Detented = d
		return true
	})
}

func (in *Interpreter) OnAxisDetentRange(d obj.DetentRange) {
	in.patch(obj.KeyAxisDetentRange, func(m *obj.Manipulator) bool {
		return m.AddDetentRange(d)
	})
}

func (in *Interpreter) OnManipKeyFrame(k obj.KeyFrame) {
	in.patch(obj.KeyManipKeyFrame, func(m *obj.Manipulator) bool {
		p := m.DragRotate()
		if p == nil {
			return false
		}
		p.Keys = append(p.Keys, k)
		return true
	})
}

func (in *Interpreter) OnTris(offset, count int, comment string) {
	in.top().Add(&obj.Mesh{
		Name:   objectName(comment),
		Offset: offset,
		Count:  count,
		Attr:   in.state.Clone(),
	})
}

func (in *Interpreter) OnLights(offset, count int, comment string) {
	in.top().Add(&obj.PointLights{Name: objectName(comment), Offset: offset, Count: count})
}

func (in *Interpreter) OnEmitter(e obj.Emitter) { in.top().Add(e) }

func (in *Interpreter) OnAnimBegin() {
	t := &obj.Transform{}
	in.top().Add(t)
	in.stack = append(in.stack, t)
}

func (in *Interpreter) OnAnimEnd() {
	if len(in.stack) < 2 {
		in.logger.Error(obj.KeyAnimEnd + " without " + obj.KeyAnimBegin)
		return
	}
	in.stack = in.stack[:len(in.stack)-1]
}

// animated returns the open animation transform, or nil outside ANIM_begin.
func (in *Interpreter) animated(kw string) *obj.Transform {
	t := in.top()
	if len(in.stack) < 2 {
		in.logger.Error("Animation outside "+obj.KeyAnimBegin+", dropped", "keyword", kw)
		return nil
	}
	return t
}

func (in *Interpreter) OnVisibility(k obj.VisibilityKey) {
	kw := obj.KeyAnimHide
	if k.Show {
		kw = obj.KeyAnimShow
	}
	if t := in.animated(kw); t != nil {
		t.Visibility = append(t.Visibility, k)
	}
}

func (in *Interpreter) OnTranslate(a obj.AnimTrans) {
	if t := in.animated(obj.KeyAnimTrans); t != nil {
		t.Motions = append(t.Motions, a)
	}
}

func (in *Interpreter) OnRotate(a obj.AnimRotate) {
	if t := in.animated(obj.KeyAnimRotate); t != nil {
		t.Motions = append(t.Motions, a)
	}
}

func (in *Interpreter) OnFinished() {
	if len(in.stack) > 1 {
		in.logger.Error(obj.KeyAnimBegin+" without "+obj.KeyAnimEnd, "open", len(in.stack)-1)
	}
}
