package obj

// LightVertex is one VLIGHT record of the point light pool.
type LightVertex struct {
	Position Point3
	R, G, B  float32
}

// Line renders the record.
func (v LightVertex) Line() string {
	return Line(KeyVLight, v.Position.String(), FormatFloat(v.R), FormatFloat(v.G), FormatFloat(v.B))
}

// PointLights draws Count light vertices from Offset, like TRIS does for faces.
type PointLights struct {
	Name   string
	Offset int
	Count  int
}

func (*PointLights) node() {}

// Emitter is a light or smoke node written as a single directive line.
type Emitter interface {
	Node
	Label() string
	Line(r Resolver) (string, error)
}

// Color is an RGBA value with channels in 0..1.
type Color struct {
	R, G, B, A float32
}

func (c Color) fields() []string {
	return []string{FormatFloat(c.R), FormatFloat(c.G), FormatFloat(c.B), FormatFloat(c.A)}
}

func resolved(r Resolver, drf string) (string, error) {
	if drf == "" {
		return NoneRef, nil
	}
	v, err := r.Dataref(drf)
	if err != nil {
		return "", err
	}
	return Ref(v), nil
}

// LightNamed places one of the simulator's predefined lights.
type LightNamed struct {
	Name     string
	Light    string
	Position Point3
}

func (*LightNamed) node() {}
func (l *LightNamed) Label() string { return l.Name }

func (l *LightNamed) Line(Resolver) (string, error) {
	return Line(append([]string{KeyLightNamed, l.Light}, l.Position.fields()...)...), nil
}

// LightParam places a parameterized named light. Params is kept as written.
type LightParam struct {
	Name     string
	Light    string
	Position Point3
	Params   string
}

func (*LightParam) node() {}
func (l *LightParam) Label() string { return l.Name }

func (l *LightParam) Line(Resolver) (string, error) {
	fields := append([]string{KeyLightParam, l.Light}, l.Position.fields()...)
	return Line(append(fields, l.Params)...), nil
}

// LightCustom is a billboard light with its own color, size and texture
// coordinates, optionally driven by a dataref.
type LightCustom struct {
	Name           string
	Position       Point3
	Color          Color
	Size           float32
	S1, T1, S2, T2 float32
	Dataref        string
}

func (*LightCustom) node() {}
func (l *LightCustom) Label() string { return l.Name }

func (l *LightCustom) Line(r Resolver) (string, error) {
	drf, err := resolved(r, l.Dataref)
	if err != nil {
		return "", err
	}
	fields := append([]string{KeyLightCustom}, l.Position.fields()...)
	fields = append(fields, l.Color.fields()...)
	fields = append(fields, FormatFloat(l.Size),
		FormatFloat(l.S1), FormatFloat(l.T1), FormatFloat(l.S2), FormatFloat(l.T2), drf)
	return Line(fields...), nil
}

// LightSpillCustom is a spill light cast along Direction. SemiRaw is the
// cosine of the cone half angle, or 1 for an omnidirectional light.
type LightSpillCustom struct {
	Name      string
	Position  Point3
	Color     Color
	Size      float32
	Direction Point3
	SemiRaw   float32
	Dataref   string
}

func (*LightSpillCustom) node() {}
func (l *LightSpillCustom) Label() string { return l.Name }

func (l *LightSpillCustom) Line(r Resolver) (string, error) {
	drf, err := resolved(r, l.Dataref)
	if err != nil {
		return "", err
	}
	fields := append([]string{KeyLightSpillCustom}, l.Position.fields()...)
	fields = append(fields, l.Color.fields()...)
	fields = append(fields, FormatFloat(l.Size))
	fields = append(fields, l.Direction.fields()...)
	fields = append(fields, FormatFloat(l.SemiRaw), drf)
	return Line(fields...), nil
}

// SmokeType selects the smoke puff color.
type SmokeType uint8

const (
	SmokeBlack SmokeType = iota
	SmokeWhite
)

func (s SmokeType) String() string {
	if s == SmokeWhite {
		return KeySmokeWhite
	}
	return KeySmokeBlack
}

// Smoke is a smoke puff source.
type Smoke struct {
	Name     string
	Type     SmokeType
	Position Point3
	Size     float32
}

func (*Smoke) node() {}
func (s *Smoke) Label() string { return s.Name }

func (s *Smoke) Line(Resolver) (string, error) {
	return Line(append(append([]string{s.Type.String()}, s.Position.fields()...), FormatFloat(s.Size))...), nil
}
