package reader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xplnobj/codec/pkg/obj"
)

const header = "I\n800\nOBJ\n\n"

// geometry returns a header and a pool of three vertices with the given indices.
func geometry(indices ...int) string {
	var b strings.Builder
	b.WriteString(header)
	fmt.Fprintf(&b, "POINT_COUNTS 3 0 0 %d\n", len(indices))
	b.WriteString("VT 0 0 0 0 1 0 0 0\nVT 1 0 0 0 1 0 1 0\nVT 0 0 1 0 1 0 0 1\n")
	for _, i := range indices {
		fmt.Fprintf(&b, "IDX %d\n", i)
	}
	b.WriteString("\n")
	return b.String()
}

func triangle(body string) []byte {
	return []byte(geometry(0, 1, 2) + body)
}

func newTestReader() (*Reader, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(logger), &buf
}

type names struct{}

func (names) Dataref(name string) (string, error) { return name, nil }
func (names) Command(name string) (string, error) { return name, nil }

// recorder keeps a readable trace of the events it receives.
type recorder struct {
	BaseListener
	events  []string
	manips  []*obj.Manipulator
	trans   []obj.AnimTrans
	rotates []obj.AnimRotate
	visible []obj.VisibilityKey
	lights  []obj.LightVertex
}

func (r *recorder) add(format string, args ...any) {
	r.events = append(r.events, strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (r *recorder) OnTexture(path string) { r.add("texture %s", path) }
func (r *recorder) OnLOD(near, far float32, comment string) { r.add("lod %v %v %s", near, far, comment) }
func (r *recorder) OnReset() { r.add("reset") }
func (r *recorder) OnManipNone() { r.add("manip none") }
func (r *recorder) OnManipWheel(w obj.Wheel) { r.add("%s", w.String()) }
func (r *recorder) OnAxisDetented(d obj.DetentedAxis) { r.add("detented %s", d.Dir) }
func (r *recorder) OnAxisDetentRange(d obj.DetentRange) { r.add("%s", d.String()) }
func (r *recorder) OnManipKeyFrame(k obj.KeyFrame) { r.add("%s", k.String()) }
func (r *recorder) OnTris(offset, count int, comment string) { r.add("tris %d %d %s", offset, count, comment) }
func (r *recorder) OnAnimBegin() { r.add("begin") }
func (r *recorder) OnAnimEnd() { r.add("end") }
func (r *recorder) OnFinished() { r.add("finished") }
func (r *recorder) OnLightVertices(v []obj.LightVertex) { r.lights = v }
func (r *recorder) OnLights(offset, count int, comment string) { r.add("lights %d %d %s", offset, count, comment) }

func (r *recorder) OnEmitter(e obj.Emitter) {
	line, _ := e.Line(names{})
	r.add("%s|%s", line, e.Label())
}

func (r *recorder) OnHard(h *obj.Hard) {
	if h == nil {
		r.add("hard nil")
		return
	}
	r.add("%s", h.String())
}

func (r *recorder) OnShiny(s *obj.Shiny) {
	if s == nil {
		r.add("shiny nil")
		return
	}
	r.add("%s", s.String())
}

func (r *recorder) OnCockpit(c *obj.Cockpit) {
	if c == nil {
		r.add("cockpit nil")
		return
	}
	r.add("%s", c.String())
}

func (r *recorder) OnManip(m *obj.Manipulator) {
	lines, _ := m.Lines(names{})
	r.manips = append(r.manips, m)
	r.add("manip %s", strings.Join(lines, "|"))
}

func (r *recorder) OnVisibility(k obj.VisibilityKey) {
	r.visible = append(r.visible, k)
	r.add("visibility")
}

func (r *recorder) OnTranslate(a obj.AnimTrans) {
	r.trans = append(r.trans, a)
	r.add("trans")
}

func (r *recorder) OnRotate(a obj.AnimRotate) {
	r.rotates = append(r.rotates, a)
	r.add("rotate")
}

func read(t *testing.T, buf []byte) (*recorder, Stats, string) {
	t.Helper()
	r, log := newTestReader()
	rec := &recorder{}
	require.NoError(t, r.Read(buf, rec))
	return rec, r.Stats(), log.String()
}

func TestRead_Fatal(t *testing.T) {
	tests := []struct {
		name string
		buf  string
		kind FatalKind
		line int
	}{
		{"bad platform", "X\n800\nOBJ\n", ErrHeader, 1},
		{"bad version", "I\n700\nOBJ\n", ErrHeader, 2},
		{"bad format tag", "A\n800\nOBJX\n", ErrHeader, 3},
		{"missing counts", header + "TEXTURE a.png\n", ErrCounts, 0},
		{"missing vertices", header + "POINT_COUNTS 2 0 0 0\nVT 0 0 0 0 1 0 0 0\n", ErrCounts, 0},
		{"too many indices", header + "POINT_COUNTS 0 0 0 3\nIDX10 0 0 0 0 0 0 0 0 0 0\n", ErrCounts, 6},
		{"index count alignment", geometry(0, 1), ErrTrisAlignment, 0},
		{"tris beyond indices", string(triangle("TRIS 0 6\n")), ErrIndexRange, 0},
		{"tris count zero", string(triangle("TRIS 0 0\n")), ErrTrisAlignment, 0},
		{"tris count alignment", geometry(0, 1, 2, 0, 1, 2) + "TRIS 0 4\n", ErrTrisAlignment, 0},
		{"tris offset alignment", geometry(0, 1, 2, 0, 1, 2) + "TRIS 1 3\n", ErrTrisAlignment, 0},
		{"index out of vertex range", geometry(0, 1, 5) + "TRIS 0 3\n", ErrIndexRange, 0},
		{"tris offset plus count wraps", string(triangle("TRIS 4611686018427387906 4611686018427387906\n")), ErrIndexRange, 13},
		{"tris count past end", string(triangle("TRIS 3 9223372036854775806\n")), ErrIndexRange, 13},
		{"index beyond 32 bits", strings.Replace(geometry(7, 1, 2), "IDX 7", "IDX 4294967296", 1) + "TRIS 0 3\n", ErrIndexRange, 9},
		{"index saturates", strings.Replace(geometry(0, 7, 2), "IDX 7", "IDX 99999999999999999999999", 1), ErrIndexRange, 10},
		{"huge counts", header + "POINT_COUNTS 9223372036854775807 0 0 99999999999999999999\n", ErrCounts, 0},
		{"missing light vertices", header + "POINT_COUNTS 0 0 2 0\nVLIGHT 0 0 0 1 1 1\n", ErrCounts, 0},
		{"too many light vertices", header + "POINT_COUNTS 0 0 1 3\nVLIGHT 0 0 0 1 1 1\nVLIGHT 0 0 0 1 1 1\n", ErrCounts, 7},
		{"lights beyond pool", header + "POINT_COUNTS 0 0 1 0\nVLIGHT 0 0 0 1 1 1\nLIGHTS 0 2\n", ErrIndexRange, 7},
		{"lights offset plus count wraps", header + "POINT_COUNTS 0 0 1 0\nVLIGHT 0 0 0 1 1 1\nLIGHTS 1 9223372036854775807\n", ErrIndexRange, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestReader()
			rec := &recorder{}
			err := r.Read([]byte(tt.buf), rec)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrFatal))

			var fe *FatalError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.kind, fe.Kind)
			if tt.line > 0 {
				assert.Equal(t, tt.line, fe.Line)
			}
			assert.NotContains(t, rec.events, "finished")
		})
	}
}

func TestRead_Events(t *testing.T) {
	buf := triangle(`ATTR_LOD 0 1000 ## near
ATTR_hard concrete
ATTR_cockpit
ATTR_manip_command_knob hand sim/up sim/down Turn me
ATTR_manip_wheel 0.5
TRIS 0 3 ## knob
ANIM_begin
ANIM_trans 0 0 0 0 1 0 0 1 sim/lift
ANIM_keyframe_loop 4
TRIS 0 3
ANIM_end
ATTR_no_cockpit
ATTR_manip_none
`)
	rec, stats, log := read(t, buf)

	assert.Equal(t, []string{
		"lod 0 1000 ## near",
		"ATTR_hard concrete",
		"ATTR_cockpit",
		"manip ATTR_manip_command_knob hand sim/up sim/down Turn me",
		"ATTR_manip_wheel 0.5",
		"tris 0 3 ## knob",
		"begin",
		"trans",
		"tris 0 3",
		"end",
		"cockpit nil",
		"manip none",
		"finished",
	}, rec.events)

	require.Len(t, rec.trans, 1)
	a := rec.trans[0]
	assert.Equal(t, "sim/lift", a.Dataref)
	assert.Equal(t, []obj.TransKey{{Value: 0}, {Value: 1, Position: obj.Point3{Y: 1}}}, a.Keys)
	require.NotNil(t, a.Loop)
	assert.Equal(t, float32(4), *a.Loop)

	assert.Equal(t, Stats{
		Vertices: 3,
		Indices:  3,
		Tris:     2,
		LODs:     1,
		Attrs:    3,
		Manips:   3,
		Anims:    3,
	}, stats)
	assert.NotContains(t, log, "level=WARN")
	assert.NotContains(t, log, "level=ERROR")
}

func TestRead_Globals(t *testing.T) {
	buf := []byte(header + `TEXTURE tex.png
TEXTURE_LIT tex_LIT.png
REQUIRE_DRY
GLOBAL_no_blend 0.3
ATTR_layer_group runways -2
SLOPE_LIMIT -1 1 -2 2
COCKPIT_REGION 0 0 512 512
DEBUG
POINT_COUNTS 0 0 0 0
`)
	r, _ := newTestReader()
	doc, err := r.ReadDocument(buf)
	require.NoError(t, err)

	g := doc.Global
	assert.Equal(t, "tex.png", g.Texture)
	assert.Equal(t, "tex_LIT.png", g.TextureLit)
	assert.Equal(t, obj.Dry, g.WetDry)
	assert.Equal(t, &obj.Blend{Type: obj.BlendNo, Ratio: 0.3}, g.Blend)
	assert.Equal(t, &obj.LayerGroup{Layer: obj.LayerRunways, Offset: -2}, g.LayerGroup)
	assert.Equal(t, &obj.SlopeLimit{MinPitch: -1, MaxPitch: 1, MinRoll: -2, MaxRoll: 2}, g.SlopeLimit)
	assert.Equal(t, []obj.CockpitRegion{{Right: 512, Top: 512}}, g.CockpitRegions)
	assert.True(t, g.Debug)
	assert.Equal(t, 8, r.Stats().GlobalAttrs)
}

func TestRead_Recoverable(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		warnings int
		errors   int
		unknown  int
		log      string
	}{
		{
			name:   "wheel without manipulator",
			body:   "ATTR_manip_wheel 1\n",
			errors: 1,
			log:    "Manipulator sub-directive without a manipulator",
		},
		{
			name:   "wheel on a command manipulator",
			body:   "ATTR_manip_command hand sim/cmd\nATTR_manip_wheel 1\n",
			errors: 1,
			log:    "not supported by the active manipulator",
		},
		{
			name:   "wheel after a cockpit change",
			body:   "ATTR_manip_command_knob hand a b\nATTR_cockpit\nATTR_manip_wheel 1\n",
			errors: 1,
			log:    "Manipulator sub-directive without a manipulator",
		},
		{
			name:   "detented axis on a drag rotate manipulator",
			body:   "ATTR_manip_drag_rotate hand 0 0 0 0 0 1 0 90 0 0 1 0 1 a b\nATTR_axis_detented 1 0 0 0 1 a\n",
			errors: 1,
			log:    "not supported by the active manipulator",
		},
		{
			name:   "key frame after manipulator none",
			body:   "ATTR_manip_drag_rotate hand 0 0 0 0 0 1 0 90 0 0 1 0 1 a b\nATTR_manip_none\nATTR_manip_keyframe 0 0\n",
			errors: 1,
			log:    "Manipulator sub-directive without a manipulator",
		},
		{
			name:     "inverted detent range",
			body:     "ATTR_manip_drag_axis hand 1 0 0 0 1 a\nATTR_axis_detent_range 1 0 0\n",
			warnings: 1,
			log:      "Detent range start is greater than its end",
		},
		{
			name:     "unknown cursor",
			body:     "ATTR_manip_command pointy sim/cmd\n",
			warnings: 1,
			log:      "Unknown manipulator cursor",
		},
		{
			name:     "unknown surface",
			body:     "ATTR_hard lava\n",
			warnings: 1,
			log:      "Unknown surface",
		},
		{
			name:   "bad cockpit region",
			body:   "ATTR_cockpit_region 7\n",
			errors: 1,
			log:    "Incorrect cockpit region number",
		},
		{
			name:   "stray key frame loop",
			body:   "ANIM_keyframe_loop 2\n",
			errors: 1,
			log:    "is specified without an animation",
		},
		{
			name:   "keyed translation without end",
			body:   "ANIM_begin\nANIM_trans_begin sim/x\nANIM_trans_key 0 0 0 0\nTRIS 0 3\nANIM_end\n",
			errors: 1,
			log:    "ANIM_trans_end is missing",
		},
		{
			name:    "unknown directive",
			body:    "ATTR_sparkle 3\n",
			unknown: 1,
		},
		{
			name: "deprecated directive",
			body: "ATTR_no_cull\n",
		},
		{
			name:     "empty texture",
			body:     "TEXTURE\n",
			warnings: 1,
			log:      "Texture is not specified",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stats, log := read(t, triangle(tt.body))
			assert.Equal(t, tt.warnings, stats.Warnings)
			assert.Equal(t, tt.errors, stats.Errors)
			assert.Equal(t, tt.unknown, stats.Unknown)
			if tt.log != "" {
				assert.Contains(t, log, tt.log)
			}
		})
	}
}

func TestRead_KeepsLineAfterBrokenBlock(t *testing.T) {
	rec, stats, _ := read(t, triangle("ANIM_begin\nANIM_rotate_begin 0 1 0 sim/r\nANIM_rotate_key 0 0\nTRIS 0 3\nANIM_end\n"))
	assert.Equal(t, []string{"begin", "tris 0 3", "end", "finished"}, rec.events)
	assert.Equal(t, 1, stats.Tris)
}

func TestRead_KeyedAnimations(t *testing.T) {
	tests := []struct {
		name string
		body string
		loop *float32
	}{
		{
			name: "no loop",
			body: "ANIM_trans_begin sim/x\nANIM_trans_key 0 0 0 0\nANIM_trans_key 1 0 1 0\nANIM_trans_key 2 0 3 0\nANIM_trans_end\n",
		},
		{
			name: "loop inside the block",
			body: "ANIM_trans_begin sim/x\nANIM_trans_key 0 0 0 0\nANIM_trans_key 1 0 1 0\nANIM_trans_key 2 0 3 0\nANIM_keyframe_loop 3\nANIM_trans_end\n",
			loop: obj.Float(3),
		},
		{
			name: "loop after the block",
			body: "ANIM_trans_begin sim/x\nANIM_trans_key 0 0 0 0\nANIM_trans_key 1 0 1 0\nANIM_trans_key 2 0 3 0\nANIM_trans_end\nANIM_keyframe_loop 5\n",
			loop: obj.Float(5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, stats, _ := read(t, triangle("ANIM_begin\n"+tt.body+"TRIS 0 3\nANIM_end\n"))
			assert.Equal(t, []string{"begin", "trans", "tris 0 3", "end", "finished"}, rec.events)
			assert.Zero(t, stats.Errors)

			require.Len(t, rec.trans, 1)
			a := rec.trans[0]
			assert.Equal(t, "sim/x", a.Dataref)
			assert.Equal(t, []obj.TransKey{
				{Value: 0},
				{Value: 1, Position: obj.Point3{Y: 1}},
				{Value: 2, Position: obj.Point3{Y: 3}},
			}, a.Keys)
			assert.Equal(t, tt.loop, a.Loop)
		})
	}
}

func TestRead_KeyedRotation(t *testing.T) {
	rec, _, _ := read(t, triangle("ANIM_begin\nANIM_rotate_begin 0 1 0 sim/r\nANIM_rotate_key 0 0\nANIM_rotate_key 1 45\nANIM_rotate_key 2 180\nANIM_rotate_end\nTRIS 0 3\nANIM_end\n"))
	require.Len(t, rec.rotates, 1)
	a := rec.rotates[0]
	assert.Equal(t, obj.Point3{Y: 1}, a.Axis)
	assert.Equal(t, "sim/r", a.Dataref)
	assert.Equal(t, []obj.RotateKey{{Value: 0, Angle: 0}, {Value: 1, Angle: 45}, {Value: 2, Angle: 180}}, a.Keys)
	assert.Nil(t, a.Loop)
}

func TestRead_SimpleAnimations(t *testing.T) {
	rec, _, _ := read(t, triangle(`ANIM_begin
ANIM_hide 0 0.5 sim/hide
ANIM_show 0.5 1 none
ANIM_keyframe_loop 1
ANIM_trans 0 1 0 0 1 0 0 1 sim/static
ANIM_trans 0 1 0 0 1 0 1 1 sim/parked
ANIM_rotate 1 0 0 0 90 0 1 sim/turn
ANIM_rotate 1 0 0 45 45 0 1 sim/fixed
ANIM_rotate 1 0 0 0 90 1 1 sim/latched
ANIM_rotate 1 0 0 30 30 2 2 sim/stuck
TRIS 0 3
ANIM_end
`))
	require.Len(t, rec.visible, 2)
	assert.Equal(t, obj.VisibilityKey{V1: 0, V2: 0.5, Dataref: "sim/hide"}, rec.visible[0])
	assert.True(t, rec.visible[1].Show)
	assert.Empty(t, rec.visible[1].Dataref)
	assert.Equal(t, obj.Float(1), rec.visible[1].Loop)

	// Only identical keys collapse to one.
	require.Len(t, rec.trans, 2)
	assert.Len(t, rec.trans[0].Keys, 2)
	assert.Len(t, rec.trans[1].Keys, 1)
	require.Len(t, rec.rotates, 4)
	assert.Len(t, rec.rotates[0].Keys, 2)
	assert.Equal(t, []obj.RotateKey{{Value: 0, Angle: 45}, {Value: 1, Angle: 45}}, rec.rotates[1].Keys)
	assert.Equal(t, []obj.RotateKey{{Value: 1, Angle: 0}, {Value: 1, Angle: 90}}, rec.rotates[2].Keys)
	assert.Equal(t, []obj.RotateKey{{Value: 2, Angle: 30}}, rec.rotates[3].Keys)
}

func TestRead_AttributeSwitches(t *testing.T) {
	rec, _, _ := read(t, triangle("ATTR_shiny_rat 0.5\nATTR_shiny_rat 0.0001\nATTR_hard_deck water\nATTR_no_hard\nATTR_reset\n"))
	assert.Equal(t, []string{
		"ATTR_shiny_rat 0.5",
		"shiny nil",
		"ATTR_hard_deck water",
		"hard nil",
		"reset",
		"finished",
	}, rec.events)
}

func TestRead_ManipulatorFields(t *testing.T) {
	rec, _, _ := read(t, triangle(`ATTR_manip_drag_axis hand 1 0 0 0 10 sim/slide Slide it
ATTR_axis_detented 0 1 0 0 2 sim/detent
ATTR_axis_detent_range 0 1 0.5
ATTR_manip_drag_rotate rotate_small 0 0 0 0 0 1 0 90 0 0 1 0 1 sim/a none
ATTR_manip_keyframe 0.5 45
ATTR_manip_noop
ATTR_manip_toggle button 1 0 sim/t
`))
	assert.Equal(t, []string{
		"manip ATTR_manip_drag_axis hand 1 0 0 0 10 sim/slide Slide it",
		"detented 0 1 0",
		"ATTR_axis_detent_range 0 1 0.5",
		"manip ATTR_manip_drag_rotate rotate_small 0 0 0 0 0 1 0 90 0 0 1 0 1 sim/a none",
		"ATTR_manip_keyframe 0.5 45",
		"manip ATTR_manip_noop",
		"manip ATTR_manip_toggle button 1 0 sim/t",
		"finished",
	}, rec.events)

	require.Len(t, rec.manips, 4)
	p := rec.manips[1].DragRotate()
	require.NotNil(t, p)
	assert.Equal(t, "sim/a", p.Dataref1)
	assert.Empty(t, p.Dataref2)
	assert.Equal(t, obj.CursorButton, rec.manips[3].Cursor)
}

func TestReadFile(t *testing.T) {
	r := New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	err := r.ReadFile("testdata/missing.obj", &recorder{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading object file")
}

func TestRead_StrictNumbers(t *testing.T) {
	buf := []byte(strings.Replace(geometry(0, 1, 2), "VT 1 0 0 0 1 0 1 0", "VT 1 0 0 0 1 0 1-2 0", 1) + "TRIS 0 3\n")

	r, _ := newTestReader()
	doc, err := r.ReadDocument(buf)
	require.NoError(t, err)
	assert.Equal(t, float32(-12), doc.Vertices[1].S)
	assert.Zero(t, r.Stats().Warnings)

	var log bytes.Buffer
	strict := New(slog.New(slog.NewTextHandler(&log, nil)), StrictNumbers())
	doc, err = strict.ReadDocument(buf)
	require.NoError(t, err)
	assert.Equal(t, float32(0), doc.Vertices[1].S)
	assert.Equal(t, float32(1), doc.Vertices[1].Position.X)
	assert.Equal(t, 1, strict.Stats().Warnings)
	assert.Contains(t, log.String(), "Malformed number read as 0")
}

func TestRead_LightsAndSmoke(t *testing.T) {
	buf := header + `POINT_COUNTS 0 0 2 0
VLIGHT 1 2 3 1 0 0
VLIGHT 0 0 0 0 1 0.5

LIGHTS 0 2 ## beacons
LIGHT_NAMED airplane_beacon 0 1 0
LIGHT_PARAM full_custom_halo 1 1 1 0.5 0.5 1 ## halo
LIGHT_CUSTOM 0 0 0 1 1 1 1 0.2 0 0 1 1 sim/lights/nav ## nav
LIGHT_SPILL_CUSTOM 0 2 0 1 0.9 0.8 1 5 0 -1 0 0.5 none
smoke_black 0 3 0 2
smoke_white 1 3 0 1.5 ## steam
LIGHTS 1 0
LIGHT_NAMED
`
	rec, stats, log := read(t, []byte(buf))

	assert.Equal(t, []obj.LightVertex{
		{Position: obj.Point3{X: 1, Y: 2, Z: 3}, R: 1},
		{G: 1, B: 0.5},
	}, rec.lights)
	assert.Equal(t, []string{
		"lights 0 2 ## beacons",
		"LIGHT_NAMED airplane_beacon 0 1 0|",
		"LIGHT_PARAM full_custom_halo 1 1 1 0.5 0.5 1|halo",
		"LIGHT_CUSTOM 0 0 0 1 1 1 1 0.2 0 0 1 1 sim/lights/nav|nav",
		"LIGHT_SPILL_CUSTOM 0 2 0 1 0.9 0.8 1 5 0 -1 0 0.5 none|",
		"smoke_black 0 3 0 2|",
		"smoke_white 1 3 0 1.5|steam",
		"finished",
	}, rec.events)

	assert.Equal(t, 7, stats.Lights)
	assert.Equal(t, 1, stats.Warnings)
	assert.Equal(t, 1, stats.Errors)
	assert.Contains(t, log, "Empty LIGHTS range skipped")
	assert.Contains(t, log, "Light without a name, skipped")
}
