package obj

// Vertex is one VT record.
type Vertex struct {
	Position Point3
	Normal   Point3
	S, T     float32
}

// Document is a complete object file: shared vertex, index and point light
// pools plus the level of detail tree that references them.
type Document struct {
	Global   GlobalAttrs
	Vertices []Vertex
	Indices  []uint32
	Lights   []LightVertex
	LODs     []*LOD
}

// LOD is one level of detail. Near and Far are both zero for the implicit LOD of
// a file without ATTR_LOD lines.
type LOD struct {
	Name      string
	Near, Far float32
	Root      *Transform
}

// NewLOD creates a LOD with an empty root transform.
func NewLOD(name string, near, far float32) *LOD {
	return &LOD{Name: name, Near: near, Far: far, Root: &Transform{}}
}

// Node is an element of a transform: a mesh, a light, a smoke puff or a
// nested transform.
type Node interface {
	node()
}

// Transform groups nodes under an optional animation. A transform with
// animation is written between ANIM_begin and ANIM_end.
type Transform struct {
	Name       string
	Visibility []VisibilityKey
	Motions    []Motion
	Children   []Node
}

func (*Transform) node() {}

// Animated reports whether the transform carries any animation.
func (t *Transform) Animated() bool {
	return len(t.Visibility) > 0 || len(t.Motions) > 0
}

// Add appends child nodes in drawing order.
func (t *Transform) Add(nodes ...Node) {
	t.Children = append(t.Children, nodes...)
}

// Mesh is one TRIS range with its attribute state.
type Mesh struct {
	Name   string
	Offset int
	Count  int
	Attr   AttrSet
}

func (*Mesh) node() {}

// Nodes visits every node under t depth first, transforms before their children.
func (t *Transform) Nodes(fn func(n Node)) {
	for _, n := range t.Children {
		fn(n)
		if v, ok := n.(*Transform); ok {
			v.Nodes(fn)
		}
	}
}

// Walk visits every mesh under t depth first, in drawing order.
func (t *Transform) Walk(fn func(m *Mesh)) {
	for _, n := range t.Children {
		switch v := n.(type) {
		case *Mesh:
			fn(v)
		case *Transform:
			v.Walk(fn)
		}
	}
}

// Meshes returns every mesh of the document in drawing order.
func (d *Document) Meshes() []*Mesh {
	var out []*Mesh
	for _, l := range d.LODs {
		l.Root.Walk(func(m *Mesh) { out = append(out, m) })
	}
	return out
}

// Motion is a translation or rotation of a transform. Motions apply in order.
type Motion interface {
	motion()
}

// TransKey is one translation key frame.
type TransKey struct {
	Value    float32
	Position Point3
}

// AnimTrans is a translation driven by a dataref. One or two keys are written
// as ANIM_trans, more as a keyed block.
type AnimTrans struct {
	Keys    []TransKey
	Dataref string
	Loop    *float32
}

func (AnimTrans) motion() {}

// RotateKey is one rotation key frame.
type RotateKey struct {
	Value float32
	Angle float32
}

// AnimRotate is a rotation around Axis driven by a dataref.
type AnimRotate struct {
	Axis    Point3
	Keys    []RotateKey
	Dataref string
	Loop    *float32
}

func (AnimRotate) motion() {}

// VisibilityKey shows or hides the transform while the dataref is in [V1, V2].
type VisibilityKey struct {
	Show    bool
	V1, V2  float32
	Dataref string
	Loop    *float32
}
