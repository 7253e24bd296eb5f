package obj

// Wheel is the mouse wheel step embedded in several manipulator kinds.
type Wheel struct {
	Enabled bool
	Delta   float32
}

// Equal compares two wheel sub-attributes.
func (w Wheel) Equal(o Wheel) bool {
	return w.Enabled == o.Enabled && FloatEqual(w.Delta, o.Delta)
}

func (w Wheel) String() string { return Line(KeyManipWheel, FormatFloat(w.Delta)) }

// DetentedAxis makes a drag axis manipulator snap along a second axis.
type DetentedAxis struct {
	Enabled    bool
	Dir        Point3
	VMin, VMax float32
	Dataref    string
}

// Equal compares two detented axis sub-attributes.
func (d DetentedAxis) Equal(o DetentedAxis) bool {
	return d.Enabled == o.Enabled && d.Dir.Equal(o.Dir) &&
		FloatEqual(d.VMin, o.VMin) && FloatEqual(d.VMax, o.VMax) && d.Dataref == o.Dataref
}

// DetentRange is one notch of a detented manipulator. Start should not exceed End.
type DetentRange struct {
	Start, End, Height float32
}

// Equal compares two detent ranges.
func (d DetentRange) Equal(o DetentRange) bool {
	return FloatEqual(d.Start, o.Start) && FloatEqual(d.End, o.End) && FloatEqual(d.Height, o.Height)
}

func (d DetentRange) String() string {
	return Line(KeyAxisDetentRange, FormatFloat(d.Start), FormatFloat(d.End), FormatFloat(d.Height))
}

// KeyFrame maps a dataref value to a rotation angle of a drag rotate manipulator.
type KeyFrame struct {
	Value, Angle float32
}

// Equal compares two key frames.
func (k KeyFrame) Equal(o KeyFrame) bool {
	return FloatEqual(k.Value, o.Value) && FloatEqual(k.Angle, o.Angle)
}

func (k KeyFrame) String() string {
	return Line(KeyManipKeyFrame, FormatFloat(k.Value), FormatFloat(k.Angle))
}

func equalSlices[T interface{ Equal(T) bool }](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Panel takes its behaviour from the cockpit attribute of the geometry.
type Panel struct {
	Cockpit Cockpit
}

func (p *Panel) equal(o payload) bool {
	r, ok := o.(*Panel)
	return ok && p.Cockpit.Equal(r.Cockpit)
}

func (p *Panel) write(*fieldWriter) {}

// AxisRange is the payload of axis knob and axis switch manipulators.
type AxisRange struct {
	Min, Max    float32
	Click, Hold float32
	Dataref     string
	Wheel       Wheel
}

func (p *AxisRange) wheel() *Wheel { return &p.Wheel }

func (p *AxisRange) equal(o payload) bool {
	r, ok := o.(*AxisRange)
	return ok && FloatEqual(p.Min, r.Min) && FloatEqual(p.Max, r.Max) &&
		FloatEqual(p.Click, r.Click) && FloatEqual(p.Hold, r.Hold) &&
		p.Dataref == r.Dataref && p.Wheel.Equal(r.Wheel)
}

func (p *AxisRange) write(f *fieldWriter) {
	f.floats(p.Min, p.Max, p.Click, p.Hold)
	f.dataref(p.Dataref)
	f.wheel(p.Wheel)
}

// CommandRef is the payload of manipulators bound to a single command.
type CommandRef struct {
	Command string
}

func (p *CommandRef) equal(o payload) bool {
	r, ok := o.(*CommandRef)
	return ok && p.Command == r.Command
}

func (p *CommandRef) write(f *fieldWriter) {
	f.command(p.Command)
}

// CommandAxis fires one command per drag direction along an axis.
type CommandAxis struct {
	Dir      Point3
	Positive string
	Negative string
}

func (p *CommandAxis) equal(o payload) bool {
	r, ok := o.(*CommandAxis)
	return ok && p.Dir.Equal(r.Dir) && p.Positive == r.Positive && p.Negative == r.Negative
}

func (p *CommandAxis) write(f *fieldWriter) {
	f.point(p.Dir)
	f.command(p.Positive)
	f.command(p.Negative)
}

// CommandPair is the payload of command knob and command switch manipulators.
type CommandPair struct {
	Positive string
	Negative string
	Wheel    Wheel
}

func (p *CommandPair) wheel() *Wheel { return &p.Wheel }

func (p *CommandPair) equal(o payload) bool {
	r, ok := o.(*CommandPair)
	return ok && p.Positive == r.Positive && p.Negative == r.Negative && p.Wheel.Equal(r.Wheel)
}

func (p *CommandPair) write(f *fieldWriter) {
	f.command(p.Positive)
	f.command(p.Negative)
	f.wheel(p.Wheel)
}

// DeltaWrap is the payload of delta and wrap manipulators.
type DeltaWrap struct {
	Down, Hold float32
	Min, Max   float32
	Dataref    string
	Wheel      Wheel
}

func (p *DeltaWrap) wheel() *Wheel { return &p.Wheel }

func (p *DeltaWrap) equal(o payload) bool {
	r, ok := o.(*DeltaWrap)
	return ok && FloatEqual(p.Down, r.Down) && FloatEqual(p.Hold, r.Hold) &&
		FloatEqual(p.Min, r.Min) && FloatEqual(p.Max, r.Max) &&
		p.Dataref == r.Dataref && p.Wheel.Equal(r.Wheel)
}

func (p *DeltaWrap) write(f *fieldWriter) {
	f.floats(p.Down, p.Hold, p.Min, p.Max)
	f.dataref(p.Dataref)
	f.wheel(p.Wheel)
}

// DragAxis maps a drag along a direction onto a dataref range.
type DragAxis struct {
	Dir      Point3
	V1, V2   float32
	Dataref  string
	Wheel    Wheel
	Detented DetentedAxis
	Detents  []DetentRange
}

func (p *DragAxis) wheel() *Wheel { return &p.Wheel }

func (p *DragAxis) equal(o payload) bool {
	r, ok := o.(*DragAxis)
	return ok && p.Dir.Equal(r.Dir) && FloatEqual(p.V1, r.V1) && FloatEqual(p.V2, r.V2) &&
		p.Dataref == r.Dataref && p.Wheel.Equal(r.Wheel) &&
		p.Detented.Equal(r.Detented) && equalSlices(p.Detents, r.Detents)
}

func (p *DragAxis) write(f *fieldWriter) {
	f.point(p.Dir)
	f.floats(p.V1, p.V2)
	f.dataref(p.Dataref)
	f.wheel(p.Wheel)
	if !p.Detented.Enabled {
		return
	}
	drf := f.resolve(p.Detented.Dataref, f.r.Dataref)
	d := p.Detented
	f.line(Line(KeyAxisDetented, d.Dir.String(), FormatFloat(d.VMin), FormatFloat(d.VMax), drf))
	for _, r := range p.Detents {
		f.line(r.String())
	}
}

// DragAxisPix maps a horizontal pixel drag onto a dataref range.
type DragAxisPix struct {
	DxPix   int
	Step    int
	Exp     float32
	V1, V2  float32
	Dataref string
	Wheel   Wheel
}

func (p *DragAxisPix) wheel() *Wheel { return &p.Wheel }

func (p *DragAxisPix) equal(o payload) bool {
	r, ok := o.(*DragAxisPix)
	return ok && p.DxPix == r.DxPix && p.Step == r.Step && FloatEqual(p.Exp, r.Exp) &&
		FloatEqual(p.V1, r.V1) && FloatEqual(p.V2, r.V2) &&
		p.Dataref == r.Dataref && p.Wheel.Equal(r.Wheel)
}

func (p *DragAxisPix) write(f *fieldWriter) {
	f.int(p.DxPix)
	f.int(p.Step)
	f.floats(p.Exp, p.V1, p.V2)
	f.dataref(p.Dataref)
	f.wheel(p.Wheel)
}

// DragRotate rotates around an axis through a pivot while dragging, with an
// optional lift along the axis driven by a second dataref.
type DragRotate struct {
	Pivot          Point3
	Axis           Point3
	Angle1, Angle2 float32
	Lift           float32
	V1Min, V1Max   float32
	V2Min, V2Max   float32
	Dataref1       string
	Dataref2       string
	Keys           []KeyFrame
	Detents        []DetentRange
}

func (p *DragRotate) equal(o payload) bool {
	r, ok := o.(*DragRotate)
	return ok && p.Pivot.Equal(r.Pivot) && p.Axis.Equal(r.Axis) &&
		FloatEqual(p.Angle1, r.Angle1) && FloatEqual(p.Angle2, r.Angle2) &&
		FloatEqual(p.Lift, r.Lift) &&
		FloatEqual(p.V1Min, r.V1Min) && FloatEqual(p.V1Max, r.V1Max) &&
		FloatEqual(p.V2Min, r.V2Min) && FloatEqual(p.V2Max, r.V2Max) &&
		p.Dataref1 == r.Dataref1 && p.Dataref2 == r.Dataref2 &&
		equalSlices(p.Keys, r.Keys) && equalSlices(p.Detents, r.Detents)
}

func (p *DragRotate) write(f *fieldWriter) {
	f.point(p.Pivot)
	f.point(p.Axis)
	f.floats(p.Angle1, p.Angle2, p.Lift, p.V1Min, p.V1Max, p.V2Min, p.V2Max)
	f.dataref(p.Dataref1)
	f.dataref(p.Dataref2)
	for _, k := range p.Keys {
		f.line(k.String())
	}
	for _, r := range p.Detents {
		f.line(r.String())
	}
}

// DragXY maps a two dimensional drag onto two datarefs.
type DragXY struct {
	X, Y       float32
	XMin, XMax float32
	YMin, YMax float32
	XDataref   string
	YDataref   string
}

func (p *DragXY) equal(o payload) bool {
	r, ok := o.(*DragXY)
	return ok && FloatEqual(p.X, r.X) && FloatEqual(p.Y, r.Y) &&
		FloatEqual(p.XMin, r.XMin) && FloatEqual(p.XMax, r.XMax) &&
		FloatEqual(p.YMin, r.YMin) && FloatEqual(p.YMax, r.YMax) &&
		p.XDataref == r.XDataref && p.YDataref == r.YDataref
}

func (p *DragXY) write(f *fieldWriter) {
	f.floats(p.X, p.Y, p.XMin, p.XMax, p.YMin, p.YMax)
	f.dataref(p.XDataref)
	f.dataref(p.YDataref)
}

// Push writes Down while the mouse is held and Up on release.
type Push struct {
	Down, Up float32
	Dataref  string
	Wheel    Wheel
}

func (p *Push) wheel() *Wheel { return &p.Wheel }

func (p *Push) equal(o payload) bool {
	r, ok := o.(*Push)
	return ok && FloatEqual(p.Down, r.Down) && FloatEqual(p.Up, r.Up) &&
		p.Dataref == r.Dataref && p.Wheel.Equal(r.Wheel)
}

func (p *Push) write(f *fieldWriter) {
	f.floats(p.Down, p.Up)
	f.dataref(p.Dataref)
	f.wheel(p.Wheel)
}

// Radio writes Down on click.
type Radio struct {
	Down    float32
	Dataref string
	Wheel   Wheel
}

func (p *Radio) wheel() *Wheel { return &p.Wheel }

func (p *Radio) equal(o payload) bool {
	r, ok := o.(*Radio)
	return ok && FloatEqual(p.Down, r.Down) && p.Dataref == r.Dataref && p.Wheel.Equal(r.Wheel)
}

func (p *Radio) write(f *fieldWriter) {
	f.floats(p.Down)
	f.dataref(p.Dataref)
	f.wheel(p.Wheel)
}

// Toggle flips the dataref between On and Off.
type Toggle struct {
	On, Off float32
	Dataref string
	Wheel   Wheel
}

func (p *Toggle) wheel() *Wheel { return &p.Wheel }

func (p *Toggle) equal(o payload) bool {
	r, ok := o.(*Toggle)
	return ok && FloatEqual(p.On, r.On) && FloatEqual(p.Off, r.Off) &&
		p.Dataref == r.Dataref && p.Wheel.Equal(r.Wheel)
}

func (p *Toggle) write(f *fieldWriter) {
	f.floats(p.On, p.Off)
	f.dataref(p.Dataref)
	f.wheel(p.Wheel)
}
