package obj

import (
	"strconv"
)

// WetDry restricts an object to wet or dry scenery.
type WetDry uint8

const (
	WetDryAny WetDry = iota
	Wet
	Dry
)

func (w WetDry) String() string {
	switch w {
	case Wet:
		return KeyRequireWet
	case Dry:
		return KeyRequireDry
	}
	return ""
}

// Tint is the albedo and emissive tint of the whole object.
type Tint struct {
	Albedo   float32
	Emissive float32
}

func (t Tint) String() string {
	return Line(KeyGlobalTint, FormatFloat(t.Albedo), FormatFloat(t.Emissive))
}

// SlopeLimit bounds the terrain slope an object may be placed on.
type SlopeLimit struct {
	MinPitch, MaxPitch float32
	MinRoll, MaxRoll   float32
}

func (s SlopeLimit) String() string {
	return Line(KeySlopeLimit, FormatFloat(s.MinPitch), FormatFloat(s.MaxPitch),
		FormatFloat(s.MinRoll), FormatFloat(s.MaxRoll))
}

// LayerGroup places the object in a draw layer with an offset of -5..5.
type LayerGroup struct {
	Layer  Layer
	Offset int
}

// Line renders the layer group with the given keyword (plain or draped).
func (l LayerGroup) Line(keyword string) string {
	return Line(keyword, l.Layer.String(), strconv.Itoa(l.Offset))
}

// CockpitRegion is one panel texture region in pixels.
type CockpitRegion struct {
	Left, Bottom, Right, Top int
}

func (c CockpitRegion) String() string {
	return Line(KeyCockpitRegionDef, strconv.Itoa(c.Left), strconv.Itoa(c.Bottom),
		strconv.Itoa(c.Right), strconv.Itoa(c.Top))
}

// MaxCockpitRegions is the number of COCKPIT_REGION lines a document may carry.
const MaxCockpitRegions = 4

// GlobalAttrs holds the file scoped attributes of a document. Nil pointers and
// empty strings are absent attributes.
type GlobalAttrs struct {
	Texture       string
	TextureLit    string
	TextureNormal string

	BlendGlass      bool
	NormalMetalness bool
	Tilted          bool
	NoShadow        bool
	CockpitLit      bool
	Debug           bool

	WetDry           WetDry
	Blend            *Blend
	LayerGroup       *LayerGroup
	LayerGroupDraped *LayerGroup
	LODDraped        *float32
	SlungLoadWeight  *float32
	Specular         *float32
	Tint             *Tint
	SlopeLimit       *SlopeLimit
	CockpitRegions   []CockpitRegion
}

// AddCockpitRegion appends a region. It reports false when all four slots are taken.
func (g *GlobalAttrs) AddCockpitRegion(r CockpitRegion) bool {
	if len(g.CockpitRegions) >= MaxCockpitRegions {
		return false
	}
	g.CockpitRegions = append(g.CockpitRegions, r)
	return true
}

// Float returns a pointer to v, for the optional scalar attributes.
func Float(v float32) *float32 { return &v }
