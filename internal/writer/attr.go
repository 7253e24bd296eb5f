package writer

import (
	"github.com/xplnobj/codec/pkg/obj"
)

// diff emits an attribute line whenever the value differs from the last one
// written and the disable line when the attribute goes away.
type diff[T interface{ Equal(T) bool }] struct {
	disable   string
	enable    func(v T, r Resolver) (string, error)
	onEnable  func(v T)
	onDisable func()

	last *T
}

func (d *diff[T]) write(out Output, cur *T) (int, error) {
	switch {
	case cur == nil && d.last == nil:
		return 0, nil
	case cur == nil:
		d.last = nil
		if err := out.PrintLine(d.disable); err != nil {
			return 0, err
		}
		if d.onDisable != nil {
			d.onDisable()
		}
		return 1, nil
	case d.last != nil && (*d.last).Equal(*cur):
		v := *cur
		d.last = &v
		return 0, nil
	}

	line, err := d.enable(*cur, out)
	if err != nil {
		return 0, err
	}
	if err := out.PrintLine(line); err != nil {
		return 0, err
	}
	if d.onEnable != nil {
		d.onEnable(*cur)
	}
	v := *cur
	d.last = &v
	return 1, nil
}

func (d *diff[T]) reset() { d.last = nil }

func stringer[T interface{ String() string }](v T, _ Resolver) (string, error) {
	return v.String(), nil
}

// toggle is a diff over a flag with fixed lines for both states.
type toggle struct {
	on, off string
	active  bool
}

func (t *toggle) write(out Output, cur bool) (int, error) {
	if cur == t.active {
		return 0, nil
	}
	line := t.off
	if cur {
		line = t.on
	}
	if err := out.PrintLine(line); err != nil {
		return 0, err
	}
	t.active = cur
	return 1, nil
}

// AttrWriter writes the per object attributes as differences against the
// previous object. Cockpit changes are forwarded to the ManipWriter, so for
// each object Write must run before ManipWriter.Write.
type AttrWriter struct {
	count int

	draped      toggle
	solidCamera toggle
	noDraw      toggle
	noShadow    toggle

	hard       diff[obj.Hard]
	shiny      diff[obj.Shiny]
	blend      diff[obj.Blend]
	polyOffset diff[obj.PolyOffset]
	lightLevel diff[obj.LightLevel]
	cockpit    diff[obj.Cockpit]
}

// NewAttrWriter creates an attribute writer driving the panel mode of manips.
func NewAttrWriter(manips *ManipWriter) *AttrWriter {
	w := &AttrWriter{
		draped:      toggle{on: obj.KeyDraped, off: obj.KeyNoDraped},
		solidCamera: toggle{on: obj.KeySolidCamera, off: obj.KeyNoSolidCamera},
		noDraw:      toggle{on: obj.KeyDrawDisable, off: obj.KeyDrawEnable},
		noShadow:    toggle{on: obj.KeyNoShadow, off: obj.KeyShadow},
		hard:        diff[obj.Hard]{disable: obj.KeyNoHard, enable: stringer[obj.Hard]},
		shiny:       diff[obj.Shiny]{disable: obj.Shiny{}.String(), enable: stringer[obj.Shiny]},
		blend:       diff[obj.Blend]{disable: obj.KeyBlend, enable: stringer[obj.Blend]},
		polyOffset:  diff[obj.PolyOffset]{disable: obj.PolyOffset{}.String(), enable: stringer[obj.PolyOffset]},
		lightLevel:  diff[obj.LightLevel]{disable: obj.KeyLightLevelReset, enable: obj.LightLevel.Line},
		cockpit:     diff[obj.Cockpit]{disable: obj.KeyNoCockpit, enable: stringer[obj.Cockpit]},
	}
	if manips != nil {
		w.cockpit.onEnable = manips.SetPanelEnabled
		w.cockpit.onDisable = manips.SetPanelDisabled
	}
	return w
}

// Count returns the number of lines written since the last Reset.
func (w *AttrWriter) Count() int { return w.count }

// Reset forgets the previous object and the counter. Call it between documents.
func (w *AttrWriter) Reset() {
	w.count = 0
	for _, t := range []*toggle{&w.draped, &w.solidCamera, &w.noDraw, &w.noShadow} {
		t.active = false
	}
	w.hard.reset()
	w.shiny.reset()
	w.blend.reset()
	w.polyOffset.reset()
	w.lightLevel.reset()
	w.cockpit.reset()
}

// Write emits the attribute lines needed to move from the previous object's
// state to a.
func (w *AttrWriter) Write(out Output, a *obj.AttrSet) error {
	toggles := []struct {
		t   *toggle
		cur bool
	}{
		{&w.draped, a.Draped},
		{&w.solidCamera, a.SolidCamera},
		{&w.noDraw, a.NoDraw},
		{&w.noShadow, a.NoShadow},
	}
	for _, t := range toggles {
		n, err := t.t.write(out, t.cur)
		w.count += n
		if err != nil {
			return err
		}
	}

	steps := []func() (int, error){
		func() (int, error) { return w.hard.write(out, a.Hard) },
		func() (int, error) { return w.shiny.write(out, a.Shiny) },
		func() (int, error) { return w.blend.write(out, a.Blend) },
		func() (int, error) { return w.polyOffset.write(out, a.PolyOffset) },
		func() (int, error) { return w.lightLevel.write(out, a.LightLevel) },
		func() (int, error) { return w.cockpit.write(out, a.Cockpit) },
	}
	for _, step := range steps {
		n, err := step()
		w.count += n
		if err != nil {
			return err
		}
	}
	return nil
}
