package reader

import (
	"strings"

	"github.com/xplnobj/codec/pkg/obj"
)

func (r *Reader) readLights(line int) error {
	offset := r.tk.ExtractInt()
	count := r.tk.ExtractInt()
	comment := r.rest()

	switch {
	case offset < 0 || count < 0 || offset > r.lightCount || count > r.lightCount-offset:
		return fatalf(ErrIndexRange, line, "%s %d %d exceeds %d light vertices", obj.KeyLights, offset, count, r.lightCount)
	case count == 0:
		r.warn("Empty "+obj.KeyLights+" range skipped", "offset", offset)
		return nil
	}
	r.stats.Lights++
	r.l.OnLights(offset, count, comment)
	return nil
}

func (r *Reader) color() obj.Color {
	return obj.Color{R: r.float(), G: r.float(), B: r.float(), A: r.float()}
}

func (r *Reader) word() string {
	r.tk.SkipSpace()
	return r.tk.ExtractWord()
}

func (r *Reader) readEmitter(kw string) bool {
	var e obj.Emitter
	switch kw {
	case obj.KeyLightNamed:
		l := &obj.LightNamed{Light: r.word(), Position: r.point()}
		if l.Light == "" {
			r.logError("Light without a name, skipped", "keyword", kw)
			return true
		}
		l.Name = objectName(r.rest())
		e = l
	case obj.KeyLightParam:
		l := &obj.LightParam{Light: r.word(), Position: r.point()}
		if l.Light == "" {
			r.logError("Light without a name, skipped", "keyword", kw)
			return true
		}
		params, comment, _ := strings.Cut(r.rest(), "#")
		l.Params = strings.TrimSpace(params)
		l.Name = objectName(comment)
		e = l
	case obj.KeyLightCustom:
		l := &obj.LightCustom{Position: r.point(), Color: r.color(), Size: r.float()}
		l.S1, l.T1, l.S2, l.T2 = r.float(), r.float(), r.float(), r.float()
		l.Dataref = r.ref()
		l.Name = objectName(r.rest())
		e = l
	case obj.KeyLightSpillCustom:
		l := &obj.LightSpillCustom{Position: r.point(), Color: r.color(), Size: r.float()}
		l.Direction = r.point()
		l.SemiRaw = r.float()
		l.Dataref = r.ref()
		l.Name = objectName(r.rest())
		e = l
	case obj.KeySmokeBlack, obj.KeySmokeWhite:
		s := &obj.Smoke{Type: obj.SmokeBlack, Position: r.point(), Size: r.float()}
		if kw == obj.KeySmokeWhite {
			s.Type = obj.SmokeWhite
		}
		s.Name = objectName(r.rest())
		e = s
	default:
		return false
	}
	r.stats.Lights++
	r.l.OnEmitter(e)
	return true
}
