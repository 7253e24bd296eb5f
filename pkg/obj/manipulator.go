package obj

import (
	"fmt"
	"strconv"

	"github.com/jinzhu/copier"
)

// Manipulator is one interactive-control declaration. The kind is fixed at
// construction and selects the payload; accessors for other kinds return nil.
type Manipulator struct {
	Cursor  Cursor
	Tooltip string

	kind    ManipKind
	payload payload
}

type payload interface {
	equal(o payload) bool
	write(f *fieldWriter)
}

// NewManipulator creates a manipulator of the given kind with default values.
func NewManipulator(kind ManipKind) *Manipulator {
	return &Manipulator{kind: kind, payload: newPayload(kind)}
}

func newPayload(kind ManipKind) payload {
	switch kind {
	case ManipPanel:
		return &Panel{}
	case ManipAxisKnob, ManipAxisSwitchLeftRight, ManipAxisSwitchUpDown:
		return &AxisRange{}
	case ManipCommand, ManipCommandKnob2, ManipCommandSwitchLeftRight2, ManipCommandSwitchUpDown2:
		return &CommandRef{}
	case ManipCommandAxis:
		return &CommandAxis{}
	case ManipCommandKnob, ManipCommandSwitchLeftRight, ManipCommandSwitchUpDown:
		return &CommandPair{}
	case ManipDelta, ManipWrap:
		return &DeltaWrap{}
	case ManipDragAxis:
		return &DragAxis{}
	case ManipDragAxisPix:
		return &DragAxisPix{}
	case ManipDragRotate:
		return &DragRotate{V1Max: 1, V2Max: 1}
	case ManipDragXY:
		return &DragXY{}
	case ManipPush:
		return &Push{}
	case ManipRadio:
		return &Radio{}
	case ManipToggle:
		return &Toggle{}
	default:
		return nil
	}
}

// Kind returns the manipulator kind.
func (m *Manipulator) Kind() ManipKind { return m.kind }

// Equal compares kind, cursor, tooltip and every kind specific field.
// Floats are compared within Epsilon and the wheel takes part in the comparison.
func (m *Manipulator) Equal(o *Manipulator) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m == o {
		return true
	}
	if m.kind != o.kind || m.Cursor != o.Cursor || m.Tooltip != o.Tooltip {
		return false
	}
	if m.payload == nil || o.payload == nil {
		return m.payload == nil && o.payload == nil
	}
	return m.payload.equal(o.payload)
}

// Clone returns an independent deep copy.
func (m *Manipulator) Clone() *Manipulator {
	if m == nil {
		return nil
	}
	c := &Manipulator{Cursor: m.Cursor, Tooltip: m.Tooltip, kind: m.kind}
	if m.payload != nil {
		c.payload = newPayload(m.kind)
		// Source and destination share one concrete type.
		if err := copier.CopyWithOption(c.payload, m.payload, copier.Option{DeepCopy: true}); err != nil {
			panic(fmt.Sprintf("obj: cloning %s manipulator: %v", m.kind, err))
		}
	}
	return c
}

// Lines serializes the manipulator: the directive line followed by its
// sub-directive lines (wheel, detents, key frames).
func (m *Manipulator) Lines(r Resolver) ([]string, error) {
	switch m.kind {
	case ManipNone, ManipNoop:
		return []string{m.kind.String()}, nil
	case ManipPanel:
		return []string{m.Panel().Cockpit.String()}, nil
	}
	f := &fieldWriter{r: r}
	m.payload.write(f)
	if f.err != nil {
		return nil, fmt.Errorf("error writing %s: %w", m.kind, f.err)
	}
	head := make([]string, 0, len(f.fields)+3)
	head = append(head, m.kind.String(), m.Cursor.String())
	head = append(head, f.fields...)
	head = append(head, m.Tooltip)
	return append([]string{Line(head...)}, f.trailing...), nil
}

// Wheel returns the wheel sub-attribute, or nil when the kind has none.
func (m *Manipulator) Wheel() *Wheel {
	if w, ok := m.payload.(interface{ wheel() *Wheel }); ok {
		return w.wheel()
	}
	return nil
}

// DetentRanges returns the detent ranges of drag axis and drag rotate manipulators.
func (m *Manipulator) DetentRanges() []DetentRange {
	switch p := m.payload.(type) {
	case *DragAxis:
		return p.Detents
	case *DragRotate:
		return p.Detents
	}
	return nil
}

// AddDetentRange appends a detent range. It reports false when the kind has no detents.
func (m *Manipulator) AddDetentRange(d DetentRange) bool {
	switch p := m.payload.(type) {
	case *DragAxis:
		p.Detents = append(p.Detents, d)
	case *DragRotate:
		p.Detents = append(p.Detents, d)
	default:
		return false
	}
	return true
}

// Panel returns the payload of a panel manipulator.
func (m *Manipulator) Panel() *Panel { p, _ := m.payload.(*Panel); return p }

// AxisRange returns the payload of axis knob and axis switch manipulators.
func (m *Manipulator) AxisRange() *AxisRange { p, _ := m.payload.(*AxisRange); return p }

// CommandRef returns the payload of single command manipulators.
func (m *Manipulator) CommandRef() *CommandRef { p, _ := m.payload.(*CommandRef); return p }

// CommandAxis returns the payload of a command axis manipulator.
func (m *Manipulator) CommandAxis() *CommandAxis { p, _ := m.payload.(*CommandAxis); return p }

// CommandPair returns the payload of command knob and command switch manipulators.
func (m *Manipulator) CommandPair() *CommandPair { p, _ := m.payload.(*CommandPair); return p }

// DeltaWrap returns the payload of delta and wrap manipulators.
func (m *Manipulator) DeltaWrap() *DeltaWrap { p, _ := m.payload.(*DeltaWrap); return p }

// DragAxis returns the payload of a drag axis manipulator.
func (m *Manipulator) DragAxis() *DragAxis { p, _ := m.payload.(*DragAxis); return p }

// DragAxisPix returns the payload of a drag axis pix manipulator.
func (m *Manipulator) DragAxisPix() *DragAxisPix { p, _ := m.payload.(*DragAxisPix); return p }

// DragRotate returns the payload of a drag rotate manipulator.
func (m *Manipulator) DragRotate() *DragRotate { p, _ := m.payload.(*DragRotate); return p }

// DragXY returns the payload of a drag xy manipulator.
func (m *Manipulator) DragXY() *DragXY { p, _ := m.payload.(*DragXY); return p }

// Push returns the payload of a push manipulator.
func (m *Manipulator) Push() *Push { p, _ := m.payload.(*Push); return p }

// Radio returns the payload of a radio manipulator.
func (m *Manipulator) Radio() *Radio { p, _ := m.payload.(*Radio); return p }

// Toggle returns the payload of a toggle manipulator.
func (m *Manipulator) Toggle() *Toggle { p, _ := m.payload.(*Toggle); return p }

// fieldWriter collects directive fields and keeps the first resolution error.
type fieldWriter struct {
	r        Resolver
	fields   []string
	trailing []string
	err      error
}

func (f *fieldWriter) floats(vs ...float32) {
	for _, v := range vs {
		f.fields = append(f.fields, FormatFloat(v))
	}
}

func (f *fieldWriter) int(v int) {
	f.fields = append(f.fields, strconv.Itoa(v))
}

func (f *fieldWriter) point(p Point3) {
	f.fields = append(f.fields, p.fields()...)
}

func (f *fieldWriter) dataref(name string) {
	f.fields = append(f.fields, f.resolve(name, f.r.Dataref))
}

func (f *fieldWriter) command(name string) {
	f.fields = append(f.fields, f.resolve(name, f.r.Command))
}

func (f *fieldWriter) resolve(name string, fn func(string) (string, error)) string {
	if name == "" || f.err != nil {
		return Ref(name)
	}
	v, err := fn(name)
	if err != nil {
		f.err = err
		return ""
	}
	return Ref(v)
}

func (f *fieldWriter) line(s string) {
	f.trailing = append(f.trailing, s)
}

func (f *fieldWriter) wheel(w Wheel) {
	if w.Enabled {
		f.line(w.String())
	}
}
