package reader

import (
	"github.com/xplnobj/codec/pkg/obj"
)

// Listener receives the directives of an object file in file order. Events
// are delivered synchronously while the buffer is parsed.
type Listener interface {
	OnTexture(path string)
	OnTextureLit(path string)
	OnTextureNormal(path string)
	OnTint(t obj.Tint)
	OnWetDry(w obj.WetDry)
	OnGlobalBlend(b obj.Blend)
	OnSpecular(v float32)
	OnLODDraped(distance float32)
	OnLayerGroup(g obj.LayerGroup)
	OnLayerGroupDraped(g obj.LayerGroup)
	OnSlopeLimit(s obj.SlopeLimit)
	OnSlungLoadWeight(v float32)
	OnCockpitRegion(r obj.CockpitRegion)
	OnDebug()
	OnTilted()
	OnGlobalNoShadow()
	OnCockpitLit()
	OnNormalMetalness()
	OnBlendGlass()

	OnLOD(near, far float32, comment string)
	OnVertices(v []obj.Vertex)
	OnIndices(idx []uint32)
	OnLightVertices(v []obj.LightVertex)

	// Attribute events carry nil when the directive switches the attribute off.
	OnHard(h *obj.Hard)
	OnShiny(s *obj.Shiny)
	OnBlend(b *obj.Blend)
	OnPolyOffset(p *obj.PolyOffset)
	OnLightLevel(l *obj.LightLevel)
	OnCockpit(c *obj.Cockpit)
	OnShadow(enabled bool)
	OnDraped(enabled bool)
	OnDrawEnable(enabled bool)
	OnSolidCamera(enabled bool)
	OnReset()

	OnManipNone()
	OnManip(m *obj.Manipulator)
	OnManipWheel(w obj.Wheel)
	OnAxisDetented(d obj.DetentedAxis)
	OnAxisDetentRange(d obj.DetentRange)
	OnManipKeyFrame(k obj.KeyFrame)

	// OnTris reports a face range already validated against the index pool.
	OnTris(offset, count int, comment string)
	// OnLights reports a validated range of the point light pool.
	OnLights(offset, count int, comment string)
	// OnEmitter reports a light or smoke directive, named from its comment.
	OnEmitter(e obj.Emitter)

	OnAnimBegin()
	OnAnimEnd()
	OnVisibility(k obj.VisibilityKey)
	OnTranslate(a obj.AnimTrans)
	OnRotate(a obj.AnimRotate)

	OnFinished()
}

// BaseListener implements Listener with no-ops. Embed it to handle a subset of events.
type BaseListener struct{}

func (BaseListener) OnTexture(string) {}
func (BaseListener) OnTextureLit(string) {}
func (BaseListener) OnTextureNormal(string) {}
func (BaseListener) OnTint(obj.Tint) {}
func (BaseListener) OnWetDry(obj.WetDry) {}
func (BaseListener) OnGlobalBlend(obj.Blend) {}
func (BaseListener) OnSpecular(float32) {}
func (BaseListener) OnLODDraped(float32) {}
func (BaseListener) OnLayerGroup(obj.LayerGroup) {}
func (BaseListener) OnLayerGroupDraped(obj.LayerGroup) {}
func (BaseListener) OnSlopeLimit(obj.SlopeLimit) {}
func (BaseListener) OnSlungLoadWeight(float32) {}
func (BaseListener) OnCockpitRegion(obj.CockpitRegion) {}
func (BaseListener) OnDebug() {}
func (BaseListener) OnTilted() {}
func (BaseListener) OnGlobalNoShadow() {}
func (BaseListener) OnCockpitLit() {}
func (BaseListener) OnNormalMetalness() {}
func (BaseListener) OnBlendGlass() {}
func (BaseListener) OnLOD(float32, float32, string) {}
func (BaseListener) OnVertices([]obj.Vertex) {}
func (BaseListener) OnIndices([]uint32) {}
func (BaseListener) OnLightVertices([]obj.LightVertex) {}
func (BaseListener) OnHard(*obj.Hard) {}
func (BaseListener) OnShiny(*obj.Shiny) {}
func (BaseListener) OnBlend(*obj.Blend) {}
func (BaseListener) OnPolyOffset(*obj.PolyOffset) {}
func (BaseListener) OnLightLevel(*obj.LightLevel) {}
func (BaseListener) OnCockpit(*obj.Cockpit) {}
func (BaseListener) OnShadow(bool) {}
func (BaseListener) OnDraped(bool) {}
func (BaseListener) OnDrawEnable(bool) {}
func (BaseListener) OnSolidCamera(bool) {}
func (BaseListener) OnReset() {}
func (BaseListener) OnManipNone() {}
func (BaseListener) OnManip(*obj.Manipulator) {}
func (BaseListener) OnManipWheel(obj.Wheel) {}
func (BaseListener) OnAxisDetented(obj.DetentedAxis) {}
func (BaseListener) OnAxisDetentRange(obj.DetentRange) {}
func (BaseListener) OnManipKeyFrame(obj.KeyFrame) {}
func (BaseListener) OnTris(int, int, string) {}
func (BaseListener) OnLights(int, int, string) {}
func (BaseListener) OnEmitter(obj.Emitter) {}
func (BaseListener) OnAnimBegin() {}
func (BaseListener) OnAnimEnd() {}
func (BaseListener) OnVisibility(obj.VisibilityKey) {}
func (BaseListener) OnTranslate(obj.AnimTrans) {}
func (BaseListener) OnRotate(obj.AnimRotate) {}
func (BaseListener) OnFinished() {}
