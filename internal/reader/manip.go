package reader

import (
	"github.com/xplnobj/codec/pkg/obj"
)

func (r *Reader) readManipulator(kw string) bool {
	switch kw {
	case obj.KeyManipWheel:
		r.readWheel()
	case obj.KeyAxisDetented:
		r.readDetented()
	case obj.KeyAxisDetentRange:
		r.readDetentRange()
	case obj.KeyManipKeyFrame:
		r.readKeyFrame()
	default:
		kind, ok := obj.ParseManipKind(kw)
		if !ok || kind == obj.ManipPanel {
			return false
		}
		if kind == obj.ManipNone {
			r.hasManip = false
			r.l.OnManipNone()
			break
		}
		r.manip, r.hasManip = kind, true
		r.l.OnManip(r.parseManip(kind))
	}
	r.stats.Manips++
	return true
}

// parseManip reads the fields of a manipulator line in directive order.
func (r *Reader) parseManip(kind obj.ManipKind) *obj.Manipulator {
	m := obj.NewManipulator(kind)
	if kind == obj.ManipNoop {
		return m
	}

	r.tk.SkipSpace()
	name := r.tk.ExtractWord()
	cursor, ok := obj.ParseCursor(name)
	if !ok {
		r.warn("Unknown manipulator cursor", "cursor", name, "manipulator", kind.String())
	}
	m.Cursor = cursor

	switch kind {
	case obj.ManipAxisKnob, obj.ManipAxisSwitchLeftRight, obj.ManipAxisSwitchUpDown:
		p := m.AxisRange()
		p.Min, p.Max, p.Click, p.Hold = r.float(), r.float(), r.float(), r.float()
		p.Dataref = r.ref()
	case obj.ManipCommand, obj.ManipCommandKnob2, obj.ManipCommandSwitchLeftRight2, obj.ManipCommandSwitchUpDown2:
		m.CommandRef().Command = r.ref()
	case obj.ManipCommandAxis:
		p := m.CommandAxis()
		p.Dir = r.point()
		p.Positive, p.Negative = r.ref(), r.ref()
	case obj.ManipCommandKnob, obj.ManipCommandSwitchLeftRight, obj.ManipCommandSwitchUpDown:
		p := m.CommandPair()
		p.Positive, p.Negative = r.ref(), r.ref()
	case obj.ManipDelta, obj.ManipWrap:
		p := m.DeltaWrap()
		p.Down, p.Hold, p.Min, p.Max = r.float(), r.float(), r.float(), r.float()
		p.Dataref = r.ref()
	case obj.ManipDragAxis:
		p := m.DragAxis()
		p.Dir = r.point()
		p.V1, p.V2 = r.float(), r.float()
		p.Dataref = r.ref()
	case obj.ManipDragAxisPix:
		p := m.DragAxisPix()
		p.DxPix, p.Step = r.tk.ExtractInt(), r.tk.ExtractInt()
		p.Exp, p.V1, p.V2 = r.float(), r.float(), r.float()
		p.Dataref = r.ref()
	case obj.ManipDragRotate:
		p := m.DragRotate()
		p.Pivot, p.Axis = r.point(), r.point()
		p.Angle1, p.Angle2, p.Lift = r.float(), r.float(), r.float()
		p.V1Min, p.V1Max, p.V2Min, p.V2Max = r.float(), r.float(), r.float(), r.float()
		p.Dataref1, p.Dataref2 = r.ref(), r.ref()
	case obj.ManipDragXY:
		p := m.DragXY()
		p.X, p.Y = r.float(), r.float()
		p.XMin, p.XMax, p.YMin, p.YMax = r.float(), r.float(), r.float(), r.float()
		p.XDataref, p.YDataref = r.ref(), r.ref()
	case obj.ManipPush:
		p := m.Push()
		p.Down, p.Up = r.float(), r.float()
		p.Dataref = r.ref()
	case obj.ManipRadio:
		p := m.Radio()
		p.Down = r.float()
		p.Dataref = r.ref()
	case obj.ManipToggle:
		p := m.Toggle()
		p.On, p.Off = r.float(), r.float()
		p.Dataref = r.ref()
	}
	m.Tooltip = r.rest()
	return m
}

// subDirective reports whether the active manipulator accepts a sub-directive
// and logs an error when it does not.
func (r *Reader) subDirective(kw string, accepts func(obj.ManipKind) bool) bool {
	if !r.hasManip {
		r.logError("Manipulator sub-directive without a manipulator", "keyword", kw)
		return false
	}
	if !accepts(r.manip) {
		r.logError("Manipulator sub-directive is not supported by the active manipulator",
			"keyword", kw, "manipulator", r.manip.String())
		return false
	}
	return true
}

func (r *Reader) readWheel() {
	if !r.subDirective(obj.KeyManipWheel, obj.ManipKind.HasWheel) {
		return
	}
	r.l.OnManipWheel(obj.Wheel{Enabled: true, Delta: r.float()})
}

func (r *Reader) readDetented() {
	isDragAxis := func(k obj.ManipKind) bool { return k == obj.ManipDragAxis }
	if !r.subDirective(obj.KeyAxisDetented, isDragAxis) {
		return
	}
	d := obj.DetentedAxis{Enabled: true, Dir: r.point()}
	d.VMin, d.VMax = r.float(), r.float()
	d.Dataref = r.ref()
	r.l.OnAxisDetented(d)
}

func (r *Reader) readDetentRange() {
	if !r.subDirective(obj.KeyAxisDetentRange, obj.ManipKind.HasDetents) {
		return
	}
	d := obj.DetentRange{Start: r.float(), End: r.float(), Height: r.float()}
	if d.Start > d.End {
		r.warn("Detent range start is greater than its end", "start", d.Start, "end", d.End)
	}
	r.l.OnAxisDetentRange(d)
}

func (r *Reader) readKeyFrame() {
	isDragRotate := func(k obj.ManipKind) bool { return k == obj.ManipDragRotate }
	if !r.subDirective(obj.KeyManipKeyFrame, isDragRotate) {
		return
	}
	r.l.OnManipKeyFrame(obj.KeyFrame{Value: r.float(), Angle: r.float()})
}
