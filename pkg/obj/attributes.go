package obj

import (
	"strconv"
)

// Resolver maps the dataref and command names held by the model to the text
// written into a document.
type Resolver interface {
	Dataref(name string) (string, error)
	Command(name string) (string, error)
}

// Hard marks geometry as collidable.
type Hard struct {
	Surface Surface
	Deck    bool
}

// Equal compares two hard attributes.
func (h Hard) Equal(o Hard) bool {
	return h.Surface == o.Surface && h.Deck == o.Deck
}

func (h Hard) String() string {
	if h.Deck {
		return Line(KeyHardDeck, h.Surface.String())
	}
	return Line(KeyHard, h.Surface.String())
}

// Shiny is the specular ratio.
type Shiny struct {
	Ratio float32
}

// Equal compares two shiny attributes.
func (s Shiny) Equal(o Shiny) bool { return FloatEqual(s.Ratio, o.Ratio) }

func (s Shiny) String() string { return Line(KeyShinyRat, FormatFloat(s.Ratio)) }

// BlendType selects the non default blending modes.
type BlendType uint8

const (
	BlendNo BlendType = iota
	BlendShadow
)

// Blend switches alpha blending off (or to shadow only) with a cutoff ratio.
type Blend struct {
	Type  BlendType
	Ratio float32
}

// Equal compares two blend attributes.
func (b Blend) Equal(o Blend) bool {
	return b.Type == o.Type && FloatEqual(b.Ratio, o.Ratio)
}

func (b Blend) String() string {
	if b.Type == BlendShadow {
		return Line(KeyShadowBlend, FormatFloat(b.Ratio))
	}
	return Line(KeyNoBlend, FormatFloat(b.Ratio))
}

// GlobalString renders the blend as a file scoped directive.
func (b Blend) GlobalString() string {
	if b.Type == BlendShadow {
		return Line(KeyGlobalShadowBlend, FormatFloat(b.Ratio))
	}
	return Line(KeyGlobalNoBlend, FormatFloat(b.Ratio))
}

// PolyOffset is the polygon offset used against z-fighting.
type PolyOffset struct {
	Offset float32
}

// Equal compares two polygon offsets.
func (p PolyOffset) Equal(o PolyOffset) bool { return FloatEqual(p.Offset, o.Offset) }

func (p PolyOffset) String() string { return Line(KeyPolyOffset, FormatFloat(p.Offset)) }

// LightLevel drives the brightness of the lit texture from a dataref.
type LightLevel struct {
	V1, V2  float32
	Dataref string
}

// Equal compares two light levels.
func (l LightLevel) Equal(o LightLevel) bool {
	return FloatEqual(l.V1, o.V1) && FloatEqual(l.V2, o.V2) && l.Dataref == o.Dataref
}

// Line renders the attribute with its dataref resolved.
func (l LightLevel) Line(r Resolver) (string, error) {
	drf := l.Dataref
	if drf != "" {
		var err error
		if drf, err = r.Dataref(drf); err != nil {
			return "", err
		}
	}
	return Line(KeyLightLevel, FormatFloat(l.V1), FormatFloat(l.V2), Ref(drf)), nil
}

// CockpitType distinguishes the cockpit attribute forms.
type CockpitType uint8

const (
	CockpitPlain CockpitType = iota
	CockpitRegion1
	CockpitRegion2
	CockpitRegion3
	CockpitRegion4
	CockpitDeviceType
)

// Cockpit marks geometry as clickable cockpit panel. A nil *Cockpit means no cockpit.
type Cockpit struct {
	Type CockpitType

	// Only used by CockpitDeviceType.
	Device     string
	Bus        int
	Lighting   int
	AutoAdjust bool
}

// CockpitForRegion returns the cockpit attribute for region index 0..3.
func CockpitForRegion(index int) (Cockpit, bool) {
	if index < 0 || index > 3 {
		return Cockpit{}, false
	}
	return Cockpit{Type: CockpitRegion1 + CockpitType(index)}, true
}

// Equal compares two cockpit attributes.
func (c Cockpit) Equal(o Cockpit) bool {
	if c.Type != o.Type {
		return false
	}
	if c.Type != CockpitDeviceType {
		return true
	}
	return c.Device == o.Device && c.Bus == o.Bus && c.Lighting == o.Lighting && c.AutoAdjust == o.AutoAdjust
}

func (c Cockpit) String() string {
	switch c.Type {
	case CockpitRegion1, CockpitRegion2, CockpitRegion3, CockpitRegion4:
		return Line(KeyCockpitRegion, strconv.Itoa(int(c.Type-CockpitRegion1)))
	case CockpitDeviceType:
		auto := "0"
		if c.AutoAdjust {
			auto = "1"
		}
		return Line(KeyCockpitDevice, c.Device, strconv.Itoa(c.Bus), strconv.Itoa(c.Lighting), auto)
	default:
		return KeyCockpit
	}
}

// AttrSet is the attribute state of one face group. The manipulator is owned by
// the scene; writers only read it.
type AttrSet struct {
	Manip      *Manipulator
	Cockpit    *Cockpit
	Hard       *Hard
	Shiny      *Shiny
	Blend      *Blend
	PolyOffset *PolyOffset
	LightLevel *LightLevel

	Draped      bool
	SolidCamera bool
	NoDraw      bool
	NoShadow    bool
}

// Reset applies ATTR_reset, which restores the lighting attributes only.
func (a *AttrSet) Reset() {
	a.Shiny = nil
}

// Clone returns a deep copy of the set, manipulator included.
func (a AttrSet) Clone() AttrSet {
	c := a
	if a.Manip != nil {
		c.Manip = a.Manip.Clone()
	}
	c.Cockpit = clonePtr(a.Cockpit)
	c.Hard = clonePtr(a.Hard)
	c.Shiny = clonePtr(a.Shiny)
	c.Blend = clonePtr(a.Blend)
	c.PolyOffset = clonePtr(a.PolyOffset)
	c.LightLevel = clonePtr(a.LightLevel)
	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
