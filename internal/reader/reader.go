// Package reader parses object files and reports their directives to a Listener.
package reader

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"slices"
	"strings"

	"github.com/xplnobj/codec/internal/tokenizer"
	"github.com/xplnobj/codec/pkg/obj"
)

// Counts come from the file; larger pools grow as records are read.
const maxPrealloc = 1 << 16

// Reader parses one buffer at a time. It is not safe for concurrent use; give
// every goroutine its own Reader.
type Reader struct {
	logger  *slog.Logger
	metrics *metrics

	tk    *tokenizer.Tokenizer
	l     Listener
	stats Stats

	vertexCount int
	indices     []uint32
	lightCount  int

	// Kind of the manipulator currently applied to new faces, if any.
	manip    obj.ManipKind
	hasManip bool

	// Set when a handler stopped on a line it did not consume.
	keepLine bool

	strictNumbers bool
}

// Option configures a Reader.
type Option func(*Reader)

// StrictNumbers parses every float field as a standard literal. A malformed
// field reads as 0 and is counted as a warning, where the default scanner
// would guess a value ("1-2" reads as -12).
func StrictNumbers() Option {
	return func(r *Reader) { r.strictNumbers = true }
}

// New creates a reader logging recoverable problems to logger.
func New(logger *slog.Logger, opts ...Option) *Reader {
	m, err := newMetrics()
	if err != nil {
		logger.Warn("Failed to create reader metrics", "error", err)
		m = noopMetrics()
	}
	r := &Reader{logger: logger, metrics: m}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Stats returns the counters of the last read.
func (r *Reader) Stats() Stats { return r.stats }

// ReadFile reads the object file at path.
func (r *Reader) ReadFile(path string, l Listener) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading object file: %w", err)
	}
	if err := r.Read(buf, l); err != nil {
		return fmt.Errorf("error reading %s: %w", path, err)
	}
	return nil
}

// Read parses buf and calls l for every directive. A returned error is a
// *FatalError; recoverable problems are only logged and counted.
func (r *Reader) Read(buf []byte, l Listener) error {
	r.tk = tokenizer.New(buf)
	r.l = l
	r.stats = Stats{}
	r.indices = nil
	r.vertexCount = 0
	r.lightCount = 0
	r.hasManip = false
	r.keepLine = false

	err := r.read()
	r.metrics.record(context.Background(), r.stats)
	return err
}

func (r *Reader) read() error {
	if err := r.readHeader(); err != nil {
		return err
	}
	if err := r.readGeometry(); err != nil {
		return err
	}

	for !r.tk.IsEnd() {
		if err := r.readDirective(); err != nil {
			return err
		}
		if r.keepLine {
			r.keepLine = false
			continue
		}
		r.tk.NextLine()
	}
	r.l.OnFinished()
	return nil
}

func (r *Reader) readHeader() error {
	platform := r.tk.ExtractWord()
	if platform != obj.HeaderApple && platform != obj.HeaderIBM {
		return fatalf(ErrHeader, 1, "platform must be %s or %s, got %q", obj.HeaderIBM, obj.HeaderApple, platform)
	}
	r.tk.NextLine()

	version := r.tk.ExtractWord()
	if version != obj.HeaderVersion {
		return fatalf(ErrHeader, 2, "version must be %s, got %q", obj.HeaderVersion, version)
	}
	r.tk.NextLine()

	if !r.tk.Match(obj.HeaderFormat) {
		return fatalf(ErrHeader, 3, "format tag must be %s", obj.HeaderFormat)
	}
	r.tk.NextLine()
	return nil
}

func (r *Reader) readGeometry() error {
	var vertices, lines, lights, indices int
	gotCounts := false
	for !r.tk.IsEnd() {
		line := r.tk.Line()
		if r.tk.Match(obj.KeyPointCounts) {
			vertices = r.tk.ExtractInt()
			lines = r.tk.ExtractInt()
			lights = r.tk.ExtractInt()
			indices = r.tk.ExtractInt()
			if vertices < 0 || lines < 0 || lights < 0 || indices < 0 {
				return fatalf(ErrCounts, line, "negative %s value", obj.KeyPointCounts)
			}
			r.tk.NextLine()
			gotCounts = true
			break
		}
		kw := r.keyword()
		if !r.readGlobal(kw) {
			r.unknown(kw)
		}
		r.tk.NextLine()
	}
	if !gotCounts {
		return fatalf(ErrCounts, 0, "%s is missing", obj.KeyPointCounts)
	}
	if lines > 0 {
		r.logger.Debug("Line records are not read", "lines", lines)
	}

	verts := make([]obj.Vertex, 0, min(vertices, maxPrealloc))
	idx := make([]uint32, 0, min(indices, maxPrealloc))
	lightVerts := make([]obj.LightVertex, 0, min(lights, maxPrealloc))
	for !r.tk.IsEnd() && (len(verts) < vertices || len(idx) < indices || len(lightVerts) < lights) {
		line := r.tk.Line()
		switch {
		case r.tk.Match(obj.KeyVT):
			if len(verts) == vertices {
				return fatalf(ErrCounts, line, "more than %d vertices", vertices)
			}
			verts = append(verts, r.vertex())
		case r.tk.Match(obj.KeyVLight):
			if len(lightVerts) == lights {
				return fatalf(ErrCounts, line, "more than %d light vertices", lights)
			}
			lightVerts = append(lightVerts, obj.LightVertex{Position: r.point(), R: r.float(), G: r.float(), B: r.float()})
		case r.tk.Match(obj.KeyIDX10):
			if indices-len(idx) < 10 {
				return fatalf(ErrCounts, line, "more than %d indices", indices)
			}
			for range 10 {
				v, err := r.index(line)
				if err != nil {
					return err
				}
				idx = append(idx, v)
			}
		case r.tk.Match(obj.KeyIDX):
			if len(idx) == indices {
				return fatalf(ErrCounts, line, "more than %d indices", indices)
			}
			v, err := r.index(line)
			if err != nil {
				return err
			}
			idx = append(idx, v)
		}
		r.tk.NextLine()
	}

	if len(verts) != vertices {
		return fatalf(ErrCounts, 0, "declared %d vertices, found %d", vertices, len(verts))
	}
	if len(idx) != indices {
		return fatalf(ErrCounts, 0, "declared %d indices, found %d", indices, len(idx))
	}
	if len(lightVerts) != lights {
		return fatalf(ErrCounts, 0, "declared %d light vertices, found %d", lights, len(lightVerts))
	}
	if len(idx)%3 != 0 {
		return fatalf(ErrTrisAlignment, 0, "index count %d is not a multiple of 3", len(idx))
	}

	r.vertexCount = len(verts)
	r.indices = idx
	r.lightCount = len(lightVerts)
	r.stats.Vertices = len(verts)
	r.stats.Indices = len(idx)
	r.l.OnVertices(verts)
	r.l.OnIndices(idx)
	r.l.OnLightVertices(lightVerts)
	return nil
}

func (r *Reader) vertex() obj.Vertex {
	var v obj.Vertex
	v.Position = r.point()
	v.Normal = r.point()
	v.S = r.float()
	v.T = r.float()
	return v
}

func (r *Reader) index(line int) (uint32, error) {
	v := r.tk.ExtractInt()
	switch {
	case v < 0:
		r.warn("Negative index replaced with 0", "value", v)
		return 0, nil
	case uint64(v) > math.MaxUint32:
		return 0, fatalf(ErrIndexRange, line, "index %d does not fit 32 bits", v)
	}
	return uint32(v), nil
}

func (r *Reader) readDirective() error {
	line := r.tk.Line()
	kw := r.keyword()
	switch {
	case kw == "" || strings.HasPrefix(kw, "#"):
		return nil
	case kw == obj.KeyTris:
		return r.readTris(line)
	case kw == obj.KeyLights:
		return r.readLights(line)
	case r.readEmitter(kw):
	case r.readAttribute(kw):
	case r.readAnimation(kw):
	case r.readManipulator(kw):
	case kw == obj.KeyLOD:
		r.readLOD()
	case r.readGlobal(kw):
	case slices.Contains(obj.DeprecatedKeys, kw):
		r.logger.Debug("Ignoring deprecated attribute", "keyword", kw, "line", line)
	default:
		r.unknown(kw)
	}
	return nil
}

// keyword consumes the first word of the line.
func (r *Reader) keyword() string {
	r.tk.SkipSpace()
	return r.tk.ExtractWord()
}

func (r *Reader) unknown(kw string) {
	if kw == "" || strings.HasPrefix(kw, "#") {
		return
	}
	r.stats.Unknown++
	r.logger.Debug("Skipping unknown directive", "keyword", kw, "line", r.tk.Line())
}

func (r *Reader) warn(msg string, args ...any) {
	r.stats.Warnings++
	r.logger.Warn(msg, append(args, "line", r.tk.Line())...)
}

func (r *Reader) logError(msg string, args ...any) {
	r.stats.Errors++
	r.logger.Error(msg, append(args, "line", r.tk.Line())...)
}

func (r *Reader) float() float32 {
	if !r.strictNumbers {
		return r.tk.ExtractFloat()
	}
	v, ok := r.tk.ExtractFloatStrict()
	if !ok {
		r.warn("Malformed number read as 0")
	}
	return v
}

func (r *Reader) point() obj.Point3 {
	return obj.Point3{X: r.float(), Y: r.float(), Z: r.float()}
}

// ref reads a dataref or command name; none is the empty name.
func (r *Reader) ref() string {
	r.tk.SkipSpace()
	w := r.tk.ExtractWord()
	if w == obj.NoneRef {
		return ""
	}
	return w
}

// rest returns the remainder of the line without surrounding spaces.
func (r *Reader) rest() string {
	r.tk.SkipSpace()
	return strings.TrimSpace(r.tk.ExtractLineTilEOL())
}

func (r *Reader) readTris(line int) error {
	offset := r.tk.ExtractInt()
	count := r.tk.ExtractInt()
	comment := r.rest()

	switch {
	case offset < 0 || count < 0 || offset > len(r.indices) || count > len(r.indices)-offset:
		return fatalf(ErrIndexRange, line, "%s %d %d exceeds %d indices", obj.KeyTris, offset, count, len(r.indices))
	case count == 0:
		return fatalf(ErrTrisAlignment, line, "%s count is 0", obj.KeyTris)
	case count%3 != 0:
		return fatalf(ErrTrisAlignment, line, "%s count %d is not a multiple of 3", obj.KeyTris, count)
	case offset%3 != 0:
		return fatalf(ErrTrisAlignment, line, "%s offset %d is not a multiple of 3", obj.KeyTris, offset)
	}
	for _, v := range r.indices[offset : offset+count] {
		if int(v) >= r.vertexCount {
			return fatalf(ErrIndexRange, line, "index %d is out of range of %d vertices", v, r.vertexCount)
		}
	}

	r.stats.Tris++
	r.l.OnTris(offset, count, comment)
	return nil
}

func (r *Reader) readLOD() {
	near := r.float()
	far := r.float()
	r.stats.LODs++
	r.l.OnLOD(near, far, r.rest())
}
