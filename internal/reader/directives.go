package reader

import (
	"github.com/xplnobj/codec/pkg/obj"
)

// Shiny ratios and polygon offsets below this are treated as switched off.
const offThreshold = 0.001

func (r *Reader) readAttribute(kw string) bool {
	switch kw {
	case obj.KeyShadow, obj.KeyNoShadow:
		r.l.OnShadow(kw == obj.KeyShadow)
	case obj.KeyDraped, obj.KeyNoDraped:
		r.l.OnDraped(kw == obj.KeyDraped)
	case obj.KeyDrawEnable, obj.KeyDrawDisable:
		r.l.OnDrawEnable(kw == obj.KeyDrawEnable)
	case obj.KeySolidCamera, obj.KeyNoSolidCamera:
		r.l.OnSolidCamera(kw == obj.KeySolidCamera)

	case obj.KeyBlend:
		r.l.OnBlend(nil)
	case obj.KeyNoBlend:
		r.l.OnBlend(&obj.Blend{Type: obj.BlendNo, Ratio: r.float()})
	case obj.KeyShadowBlend:
		r.l.OnBlend(&obj.Blend{Type: obj.BlendShadow, Ratio: r.float()})

	case obj.KeyCockpit:
		r.cockpit(&obj.Cockpit{Type: obj.CockpitPlain})
	case obj.KeyCockpitRegion:
		index := r.tk.ExtractInt()
		c, ok := obj.CockpitForRegion(index)
		if !ok {
			r.logError("Incorrect cockpit region number", "region", index)
			r.cockpit(nil)
			break
		}
		r.cockpit(&c)
	case obj.KeyCockpitDevice:
		r.tk.SkipSpace()
		c := obj.Cockpit{Type: obj.CockpitDeviceType}
		c.Device = r.tk.ExtractWord()
		c.Bus = r.tk.ExtractInt()
		c.Lighting = r.tk.ExtractInt()
		c.AutoAdjust = r.tk.ExtractInt() != 0
		r.cockpit(&c)
	case obj.KeyNoCockpit:
		r.cockpit(nil)

	case obj.KeyHard, obj.KeyHardDeck:
		r.l.OnHard(&obj.Hard{Surface: r.surface(), Deck: kw == obj.KeyHardDeck})
	case obj.KeyNoHard:
		r.l.OnHard(nil)

	case obj.KeyLightLevel:
		l := obj.LightLevel{V1: r.float(), V2: r.float()}
		l.Dataref = r.ref()
		r.l.OnLightLevel(&l)
	case obj.KeyLightLevelReset:
		r.l.OnLightLevel(nil)

	case obj.KeyPolyOffset:
		if v := r.float(); v > offThreshold || v < -offThreshold {
			r.l.OnPolyOffset(&obj.PolyOffset{Offset: v})
		} else {
			r.l.OnPolyOffset(nil)
		}
	case obj.KeyShinyRat:
		if v := r.float(); v > offThreshold || v < -offThreshold {
			r.l.OnShiny(&obj.Shiny{Ratio: v})
		} else {
			r.l.OnShiny(nil)
		}

	case obj.KeyReset:
		r.l.OnReset()
	default:
		return false
	}
	r.stats.Attrs++
	return true
}

// cockpit reports a cockpit change. Entering or leaving cockpit mode replaces
// the active manipulator, so sub-directives need a new manipulator line.
func (r *Reader) cockpit(c *obj.Cockpit) {
	r.hasManip = false
	r.l.OnCockpit(c)
}

func (r *Reader) surface() obj.Surface {
	r.tk.SkipSpace()
	name := r.tk.ExtractWord()
	if name == "" {
		return obj.SurfaceNone
	}
	s, ok := obj.ParseSurface(name)
	if !ok {
		r.warn("Unknown surface, using none", "surface", name)
	}
	return s
}

func (r *Reader) readGlobal(kw string) bool {
	switch kw {
	case obj.KeyTexture:
		path := r.ref()
		if path == "" {
			r.warn("Texture is not specified")
			return true
		}
		r.l.OnTexture(path)
	case obj.KeyTextureLit:
		r.l.OnTextureLit(r.ref())
	case obj.KeyTextureNormal:
		r.l.OnTextureNormal(r.ref())
	case obj.KeyRequireWet:
		r.l.OnWetDry(obj.Wet)
	case obj.KeyRequireDry:
		r.l.OnWetDry(obj.Dry)
	case obj.KeyGlobalTint:
		r.l.OnTint(obj.Tint{Albedo: r.float(), Emissive: r.float()})
	case obj.KeyGlobalNoBlend:
		r.l.OnGlobalBlend(obj.Blend{Type: obj.BlendNo, Ratio: r.float()})
	case obj.KeyGlobalShadowBlend:
		r.l.OnGlobalBlend(obj.Blend{Type: obj.BlendShadow, Ratio: r.float()})
	case obj.KeyGlobalSpecular:
		r.l.OnSpecular(r.float())
	case obj.KeyLODDraped:
		r.l.OnLODDraped(r.float())
	case obj.KeySlungLoadWeight:
		r.l.OnSlungLoadWeight(r.float())
	case obj.KeyLayerGroup:
		r.l.OnLayerGroup(r.layerGroup())
	case obj.KeyLayerGroupDraped:
		r.l.OnLayerGroupDraped(r.layerGroup())
	case obj.KeySlopeLimit:
		r.l.OnSlopeLimit(obj.SlopeLimit{MinPitch: r.float(), MaxPitch: r.float(), MinRoll: r.float(), MaxRoll: r.float()})
	case obj.KeyCockpitRegionDef:
		r.l.OnCockpitRegion(obj.CockpitRegion{
			Left:   r.tk.ExtractInt(),
			Bottom: r.tk.ExtractInt(),
			Right:  r.tk.ExtractInt(),
			Top:    r.tk.ExtractInt(),
		})
	case obj.KeyTilted:
		r.l.OnTilted()
	case obj.KeyGlobalNoShadow:
		r.l.OnGlobalNoShadow()
	case obj.KeyGlobalCockpitLit:
		r.l.OnCockpitLit()
	case obj.KeyBlendGlass:
		r.l.OnBlendGlass()
	case obj.KeyNormalMetalness:
		r.l.OnNormalMetalness()
	case obj.KeyDebug:
		r.l.OnDebug()
	default:
		return false
	}
	r.stats.GlobalAttrs++
	return true
}

func (r *Reader) layerGroup() obj.LayerGroup {
	r.tk.SkipSpace()
	name := r.tk.ExtractWord()
	layer, ok := obj.ParseLayer(name)
	if !ok {
		r.warn("Unknown layer group, using none", "layer", name)
	}
	return obj.LayerGroup{Layer: layer, Offset: r.tk.ExtractInt()}
}

func (r *Reader) readAnimation(kw string) bool {
	switch kw {
	case obj.KeyAnimBegin:
		r.l.OnAnimBegin()
	case obj.KeyAnimEnd:
		r.l.OnAnimEnd()
	case obj.KeyAnimHide, obj.KeyAnimShow:
		k := obj.VisibilityKey{Show: kw == obj.KeyAnimShow, V1: r.float(), V2: r.float()}
		k.Dataref = r.ref()
		k.Loop = r.loop()
		r.l.OnVisibility(k)
	case obj.KeyAnimTrans:
		r.readTrans()
	case obj.KeyAnimRotate:
		r.readRotate()
	case obj.KeyAnimTransBegin:
		r.readTransKeys()
	case obj.KeyAnimRotateBegin:
		r.readRotateKeys()
	case obj.KeyAnimKeyframeLoop:
		r.logError(obj.KeyAnimKeyframeLoop + " is specified without an animation")
	default:
		return false
	}
	r.stats.Anims++
	return true
}

// loop reads an optional ANIM_keyframe_loop that follows an animation. The
// position is left untouched when there is none.
func (r *Reader) loop() *float32 {
	var v float32
	ok := r.tk.Try(func() bool {
		r.tk.NextLine()
		r.tk.SkipUntilParam()
		if !r.tk.Match(obj.KeyAnimKeyframeLoop) {
			return false
		}
		v = r.float()
		return true
	})
	if !ok {
		return nil
	}
	return &v
}

func (r *Reader) readTrans() {
	p1, p2 := r.point(), r.point()
	v1, v2 := r.float(), r.float()
	a := obj.AnimTrans{Keys: []obj.TransKey{{Value: v1, Position: p1}, {Value: v2, Position: p2}}}
	if p1.Equal(p2) && obj.FloatEqual(v1, v2) {
		a.Keys = a.Keys[:1]
	}
	a.Dataref = r.ref()
	a.Loop = r.loop()
	r.l.OnTranslate(a)
}

func (r *Reader) readRotate() {
	a := obj.AnimRotate{Axis: r.point()}
	a1, a2 := r.float(), r.float()
	v1, v2 := r.float(), r.float()
	a.Keys = []obj.RotateKey{{Value: v1, Angle: a1}, {Value: v2, Angle: a2}}
	// Two identical keys collapse to one; any difference survives a rewrite.
	if obj.FloatEqual(a1, a2) && obj.FloatEqual(v1, v2) {
		a.Keys = a.Keys[:1]
	}
	a.Dataref = r.ref()
	a.Loop = r.loop()
	r.l.OnRotate(a)
}

// keyedBlock reads the lines of a keyed animation block up to its end keyword.
// An ANIM_keyframe_loop is accepted before or right after the end line.
func (r *Reader) keyedBlock(keyKW, endKW string, key func()) (loop *float32, ok bool) {
	r.tk.NextLine()
	for !r.tk.IsEnd() {
		switch {
		case r.tk.Match(keyKW):
			key()
		case r.tk.Match(obj.KeyAnimKeyframeLoop):
			v := r.float()
			loop = &v
		case r.tk.Match(endKW):
			if l := r.loop(); l != nil {
				loop = l
			}
			return loop, true
		default:
			r.keepLine = true
			return loop, false
		}
		r.tk.NextLine()
	}
	return loop, false
}

func (r *Reader) readTransKeys() {
	a := obj.AnimTrans{Dataref: r.ref()}
	loop, ok := r.keyedBlock(obj.KeyAnimTransKey, obj.KeyAnimTransEnd, func() {
		a.Keys = append(a.Keys, obj.TransKey{Value: r.float(), Position: r.point()})
	})
	if !ok {
		r.logError("Incorrect translate key animation, " + obj.KeyAnimTransEnd + " is missing")
		return
	}
	a.Loop = loop
	r.l.OnTranslate(a)
}

func (r *Reader) readRotateKeys() {
	a := obj.AnimRotate{Axis: r.point()}
	a.Dataref = r.ref()
	loop, ok := r.keyedBlock(obj.KeyAnimRotateKey, obj.KeyAnimRotateEnd, func() {
		a.Keys = append(a.Keys, obj.RotateKey{Value: r.float(), Angle: r.float()})
	})
	if !ok {
		r.logError("Incorrect rotate key animation, " + obj.KeyAnimRotateEnd + " is missing")
		return
	}
	a.Loop = loop
	r.l.OnRotate(a)
}
