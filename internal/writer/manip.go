package writer

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/xplnobj/codec/pkg/obj"
)

// ErrSequence is returned when ManipWriter.Write runs before the attribute
// writer reported the object's cockpit state.
var ErrSequence = errors.New("manipulator written before cockpit attribute")

// ManipWriter writes manipulator lines only when the effective manipulator
// changes. While a cockpit attribute is active it arms its own panel
// manipulator, so a cockpit object without a manipulator gets an explicit
// ATTR_manip_none.
//
// The active manipulator is borrowed from the scene and never modified. The
// writer owns only the panel manipulator and the copies it makes of
// requested panels.
type ManipWriter struct {
	logger *slog.Logger

	active    *obj.Manipulator
	panelMode bool
	panel     *obj.Manipulator
	count     int
}

// NewManipWriter creates a manipulator writer.
func NewManipWriter(logger *slog.Logger) *ManipWriter {
	return &ManipWriter{logger: logger, panel: obj.NewManipulator(obj.ManipPanel)}
}

// Count returns the number of lines written since the last Reset.
func (w *ManipWriter) Count() int { return w.count }

// Reset clears the state and the counter. Call it between documents.
func (w *ManipWriter) Reset() {
	w.active = nil
	w.panelMode = false
	w.count = 0
	w.panel = obj.NewManipulator(obj.ManipPanel)
}

// SetPanelEnabled enters panel mode with cockpit c and arms the panel manipulator.
func (w *ManipWriter) SetPanelEnabled(c obj.Cockpit) {
	w.panelMode = true
	w.panel.Panel().Cockpit = c
	w.active = w.panel
}

// SetPanelDisabled leaves panel mode and forgets the active manipulator.
func (w *ManipWriter) SetPanelDisabled() {
	w.active = nil
	w.panelMode = false
}

// Write emits the lines for the manipulator m of an object whose cockpit
// attribute is cockpit. The attribute writer must have processed the same
// object first.
func (w *ManipWriter) Write(out Output, m *obj.Manipulator, cockpit *obj.Cockpit) error {
	if w.panelMode != (cockpit != nil) {
		return fmt.Errorf("%w: panel mode is %t", ErrSequence, w.panelMode)
	}

	eff := w.effective(m, cockpit)
	if eff == nil {
		if w.active == nil {
			return nil
		}
		if err := out.PrintLine(obj.ManipNone.String()); err != nil {
			return err
		}
		w.count++
		w.active = nil
		return nil
	}

	if w.active != nil && eff.Equal(w.active) {
		w.active = eff
		return nil
	}
	lines, err := eff.Lines(out)
	if err != nil {
		return fmt.Errorf("error writing manipulator: %w", err)
	}
	for _, l := range lines {
		if err := out.PrintLine(l); err != nil {
			return err
		}
	}
	w.count += len(lines)
	w.active = eff
	return nil
}

// effective validates m and returns the manipulator to compare and write, or
// nil when the object has none.
func (w *ManipWriter) effective(m *obj.Manipulator, cockpit *obj.Cockpit) *obj.Manipulator {
	if m == nil {
		return nil
	}
	switch m.Kind() {
	case obj.ManipNone:
		if !w.panelMode {
			w.logger.Warn("Manipulator none is set automatically when needed, ignored")
			return nil
		}
	case obj.ManipPanel:
		if !w.panelMode {
			w.logger.Error("Panel manipulator needs a cockpit attribute, ignored",
				"attributes", obj.KeyCockpit+", "+obj.KeyCockpitRegion+", "+obj.KeyCockpitDevice)
			return nil
		}
		p := m.Clone()
		p.Panel().Cockpit = *cockpit
		return p
	case obj.ManipDragAxis:
		d := m.DragAxis()
		if len(d.Detents) > 0 && !d.Detented.Enabled {
			w.logger.Warn("Drag axis has detent ranges but the detented axis is not enabled")
		}
		w.checkDetents(m.Kind(), d.Detents)
	case obj.ManipDragRotate:
		d := m.DragRotate()
		w.checkDetents(m.Kind(), d.Detents)
		if n := len(d.Keys); n > 0 {
			first := obj.KeyFrame{Value: d.V1Min, Angle: d.Angle1}
			last := obj.KeyFrame{Value: d.V1Max, Angle: d.Angle2}
			if d.Keys[0].Equal(first) || d.Keys[n-1].Equal(last) {
				w.logger.Warn("Drag rotate key frames repeat the manipulator's own min and max values",
					"first", d.Keys[0].String(), "last", d.Keys[n-1].String())
			}
		}
	}
	return m
}

func (w *ManipWriter) checkDetents(kind obj.ManipKind, ranges []obj.DetentRange) {
	for i, r := range ranges {
		if r.Start > r.End {
			w.logger.Error("Detent range start is greater than its end",
				"manipulator", kind.String(), "index", i, "start", r.Start, "end", r.End)
		}
	}
}
