package writer

import (
	"fmt"
	"log/slog"

	"github.com/xplnobj/codec/pkg/obj"
)

// animWriter writes the animation lines of one transform and keeps the first
// error, so the callers can write line after line and check once.
type animWriter struct {
	out    Output
	logger *slog.Logger
	count  int
	err    error
}

func (a *animWriter) line(fields ...string) {
	if a.err != nil {
		return
	}
	if a.err = a.out.PrintLine(obj.Line(fields...)); a.err == nil {
		a.count++
	}
}

func (a *animWriter) dataref(name string) string {
	if a.err != nil || name == "" {
		return obj.Ref(name)
	}
	v, err := a.out.Dataref(name)
	if err != nil {
		a.err = fmt.Errorf("error writing animation: %w", err)
		return ""
	}
	return obj.Ref(v)
}

func (a *animWriter) loop(v *float32) {
	if v != nil {
		a.line(obj.KeyAnimKeyframeLoop, obj.FormatFloat(*v))
	}
}

func (a *animWriter) visibility(k obj.VisibilityKey) {
	kw := obj.KeyAnimHide
	if k.Show {
		kw = obj.KeyAnimShow
	}
	if k.Dataref == "" {
		a.logger.Error("Visibility key without a dataref, skipped", "keyword", kw)
		return
	}
	a.line(kw, obj.FormatFloat(k.V1), obj.FormatFloat(k.V2), a.dataref(k.Dataref))
	a.loop(k.Loop)
}

// trans writes one or two keys as ANIM_trans and more keys as a keyed block.
func (a *animWriter) trans(t obj.AnimTrans) {
	switch n := len(t.Keys); {
	case n == 0:
		a.logger.Error("Translation without keys, skipped")
	case n <= 2:
		k1, k2 := t.Keys[0], t.Keys[n-1]
		a.line(obj.KeyAnimTrans, k1.Position.String(), k2.Position.String(),
			obj.FormatFloat(k1.Value), obj.FormatFloat(k2.Value), a.dataref(t.Dataref))
		a.loop(t.Loop)
	case t.Dataref == "":
		a.logger.Error("Keyed translation without a dataref, skipped", "keys", n)
	default:
		a.line(obj.KeyAnimTransBegin, a.dataref(t.Dataref))
		for _, k := range t.Keys {
			a.line(obj.KeyAnimTransKey, obj.FormatFloat(k.Value), k.Position.String())
		}
		a.loop(t.Loop)
		a.line(obj.KeyAnimTransEnd)
	}
}

// rotate writes one or two keys as ANIM_rotate and more keys as a keyed block.
func (a *animWriter) rotate(r obj.AnimRotate) {
	switch n := len(r.Keys); {
	case n == 0:
		a.logger.Error("Rotation without keys, skipped")
	case n <= 2:
		k1, k2 := r.Keys[0], r.Keys[n-1]
		a.line(obj.KeyAnimRotate, r.Axis.String(),
			obj.FormatFloat(k1.Angle), obj.FormatFloat(k2.Angle),
			obj.FormatFloat(k1.Value), obj.FormatFloat(k2.Value), a.dataref(r.Dataref))
		a.loop(r.Loop)
	case r.Dataref == "":
		a.logger.Error("Keyed rotation without a dataref, skipped", "keys", n)
	default:
		a.line(obj.KeyAnimRotateBegin, r.Axis.String(), a.dataref(r.Dataref))
		for _, k := range r.Keys {
			a.line(obj.KeyAnimRotateKey, obj.FormatFloat(k.Value), obj.FormatFloat(k.Angle))
		}
		a.loop(r.Loop)
		a.line(obj.KeyAnimRotateEnd)
	}
}
