package writer

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/xplnobj/codec/pkg/obj"
)

// Options control optional output of the document writer.
type Options struct {
	// MarkObjects appends object, transform and LOD names as ## comments.
	MarkObjects bool
	// CheckInstancing logs every object that keeps the document from being
	// drawn instanced.
	CheckInstancing bool
}

// Stats counts the lines of the last written document by component.
type Stats struct {
	Global   int `json:"global"`
	Attrs    int `json:"attrs"`
	Manips   int `json:"manips"`
	Anims    int `json:"anims"`
	Geometry int `json:"geometry"`
	Lights   int `json:"lights"`
}

// Total returns the number of counted lines.
func (s Stats) Total() int { return s.Global + s.Attrs + s.Manips + s.Anims + s.Geometry + s.Lights }

// DocumentWriter writes complete documents. It is not safe for concurrent
// use; state is reset at the start of every Write.
type DocumentWriter struct {
	logger  *slog.Logger
	opts    Options
	metrics *metrics

	globals *GlobalWriter
	attrs   *AttrWriter
	manips  *ManipWriter

	anims    int
	geometry int
	lights   int
}

// NewDocumentWriter creates a document writer.
func NewDocumentWriter(logger *slog.Logger, opts Options) (*DocumentWriter, error) {
	m, err := newMetrics()
	if err != nil {
		return nil, err
	}
	manips := NewManipWriter(logger)
	return &DocumentWriter{
		logger:  logger,
		opts:    opts,
		metrics: m,
		globals: NewGlobalWriter(),
		attrs:   NewAttrWriter(manips),
		manips:  manips,
	}, nil
}

// Stats returns the counters of the last written document.
func (w *DocumentWriter) Stats() Stats {
	return Stats{
		Global:   w.globals.Count(),
		Attrs:    w.attrs.Count(),
		Manips:   w.manips.Count(),
		Anims:    w.anims,
		Geometry: w.geometry,
		Lights:   w.lights,
	}
}

func (w *DocumentWriter) reset() {
	w.globals.Reset()
	w.manips.Reset()
	w.attrs.Reset()
	w.anims = 0
	w.geometry = 0
	w.lights = 0
}

// Write writes doc to out.
func (w *DocumentWriter) Write(ctx context.Context, out Output, doc *obj.Document) error {
	w.reset()
	if w.opts.CheckInstancing {
		for _, issue := range CheckInstancing(doc) {
			w.logger.Error(fmt.Sprintf("Instancing is broken on %q", issue.Object), "reason", issue.Reason)
		}
	}
	err := w.write(out, doc)
	w.metrics.record(ctx, w.Stats(), err)
	if err != nil {
		return fmt.Errorf("error writing document: %w", err)
	}
	return nil
}

func (w *DocumentWriter) write(out Output, doc *obj.Document) error {
	for _, l := range []string{obj.HeaderIBM, obj.HeaderVersion, obj.HeaderFormat, ""} {
		if err := out.PrintLine(l); err != nil {
			return err
		}
	}
	if err := w.globals.Write(out, &doc.Global); err != nil {
		return err
	}
	if err := w.writeGeometry(out, doc); err != nil {
		return err
	}

	single := len(doc.LODs) == 1
	for _, lod := range doc.LODs {
		if lod.Root.Animated() {
			w.logger.Error("LOD can't be animated, animation ignored", "lod", lod.Name)
		}
		if !single || !obj.FloatEqual(lod.Near, lod.Far) {
			line := obj.Line(obj.KeyLOD, obj.FormatFloat(lod.Near), obj.FormatFloat(lod.Far))
			if err := out.PrintLine(w.mark(line, lod.Name)); err != nil {
				return err
			}
		}
		if err := w.writeChildren(out, lod.Root); err != nil {
			return err
		}
	}
	return nil
}

func (w *DocumentWriter) mark(line, name string) string {
	if !w.opts.MarkObjects || name == "" {
		return line
	}
	return line + " ## " + name
}

func (w *DocumentWriter) geometryLine(out Output, line string) error {
	if err := out.PrintLine(line); err != nil {
		return err
	}
	w.geometry++
	return nil
}

func (w *DocumentWriter) writeGeometry(out Output, doc *obj.Document) error {
	if len(doc.Indices)%3 != 0 {
		return fmt.Errorf("index count %d is not a multiple of 3", len(doc.Indices))
	}
	counts := obj.Line(obj.KeyPointCounts, strconv.Itoa(len(doc.Vertices)), "0",
		strconv.Itoa(len(doc.Lights)), strconv.Itoa(len(doc.Indices)))
	if err := w.geometryLine(out, counts); err != nil {
		return err
	}
	for _, v := range doc.Vertices {
		line := obj.Line(obj.KeyVT, v.Position.String(), v.Normal.String(), obj.FormatFloat(v.S), obj.FormatFloat(v.T))
		if err := w.geometryLine(out, line); err != nil {
			return err
		}
	}
	for _, l := range doc.Lights {
		if err := w.geometryLine(out, l.Line()); err != nil {
			return err
		}
	}

	idx := doc.Indices
	for len(idx) >= 10 {
		fields := make([]string, 0, 11)
		fields = append(fields, obj.KeyIDX10)
		for _, i := range idx[:10] {
			fields = append(fields, strconv.FormatUint(uint64(i), 10))
		}
		if err := w.geometryLine(out, obj.Line(fields...)); err != nil {
			return err
		}
		idx = idx[10:]
	}
	for _, i := range idx {
		if err := w.geometryLine(out, obj.Line(obj.KeyIDX, strconv.FormatUint(uint64(i), 10))); err != nil {
			return err
		}
	}
	return nil
}

func (w *DocumentWriter) writeChildren(out Output, t *obj.Transform) error {
	for _, n := range t.Children {
		var err error
		switch v := n.(type) {
		case *obj.Mesh:
			err = w.writeMesh(out, v)
		case *obj.Transform:
			err = w.writeTransform(out, v)
		case *obj.PointLights:
			line := obj.Line(obj.KeyLights, strconv.Itoa(v.Offset), strconv.Itoa(v.Count))
			err = w.lightLine(out, w.mark(line, v.Name))
		case obj.Emitter:
			err = w.writeEmitter(out, v)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// writeMesh keeps the attribute-then-manipulator order ManipWriter relies on.
func (w *DocumentWriter) writeMesh(out Output, m *obj.Mesh) error {
	if err := w.attrs.Write(out, &m.Attr); err != nil {
		return fmt.Errorf("error writing attributes of %q: %w", m.Name, err)
	}
	if err := w.manips.Write(out, m.Attr.Manip, m.Attr.Cockpit); err != nil {
		return fmt.Errorf("error writing manipulator of %q: %w", m.Name, err)
	}
	line := obj.Line(obj.KeyTris, strconv.Itoa(m.Offset), strconv.Itoa(m.Count))
	return w.geometryLine(out, w.mark(line, m.Name))
}

func (w *DocumentWriter) lightLine(out Output, line string) error {
	if err := out.PrintLine(line); err != nil {
		return err
	}
	w.lights++
	return nil
}

func (w *DocumentWriter) writeEmitter(out Output, e obj.Emitter) error {
	line, err := e.Line(out)
	if err != nil {
		return fmt.Errorf("error writing %q: %w", e.Label(), err)
	}
	return w.lightLine(out, w.mark(line, e.Label()))
}

func (w *DocumentWriter) writeTransform(out Output, t *obj.Transform) error {
	if !t.Animated() {
		return w.writeChildren(out, t)
	}
	if len(t.Children) == 0 {
		w.logger.Debug("Skipping animated transform without objects", "transform", t.Name)
		return nil
	}

	a := &animWriter{out: out, logger: w.logger.With("transform", t.Name)}
	a.line(w.mark(obj.KeyAnimBegin, t.Name))
	for _, k := range t.Visibility {
		a.visibility(k)
	}
	for _, m := range t.Motions {
		switch v := m.(type) {
		case obj.AnimTrans:
			a.trans(v)
		case obj.AnimRotate:
			a.rotate(v)
		}
	}
	if a.err != nil {
		return a.err
	}
	w.anims += a.count

	if err := w.writeChildren(out, t); err != nil {
		return err
	}
	if err := out.PrintLine(w.mark(obj.KeyAnimEnd, t.Name)); err != nil {
		return err
	}
	w.anims++
	return nil
}
