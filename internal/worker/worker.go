package worker

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"gorm.io/datatypes"

	"github.com/xplnobj/codec/internal/cache"
	"github.com/xplnobj/codec/internal/geo"
	"github.com/xplnobj/codec/internal/logging"
	"github.com/xplnobj/codec/internal/model"
	"github.com/xplnobj/codec/internal/queue"
	"github.com/xplnobj/codec/internal/reader"
	"github.com/xplnobj/codec/internal/writer"
	"github.com/xplnobj/codec/pkg/obj"
)

// Job is one object file to convert. An empty Target discards the output
// and only collects statistics.
type Job struct {
	ID     int
	Source string
	Target string
}

// Result is the outcome of a Job.
type Result struct {
	Job        Job
	Conversion model.Conversion
	Read       reader.Stats
	Write      writer.Stats
	Err        error
}

// Recorder stores conversion records. storage.Backend satisfies it.
type Recorder interface {
	RecordConversion(c *model.Conversion) error
}

// Reporter publishes conversion records, for example to InfluxDB.
type Reporter interface {
	WriteConversion(c *model.Conversion) error
}

// Dependencies holds all dependencies for the worker manager
type Dependencies struct {
	Logger   *slog.Logger
	Recorder Recorder        // optional
	Reporter Reporter        // optional
	Resolver writer.Resolver // nil means writer.PassThrough
	Options  writer.Options

	// StrictNumbers rejects malformed float fields instead of guessing.
	StrictNumbers bool
}

// Manager converts object files on a pool of goroutines. Every job gets its
// own reader and writer.
type Manager struct {
	deps        Dependencies
	concurrency int
	completed   cache.SafeCounter
	failed      cache.SafeCounter
}

// NewManager creates a new worker manager
func NewManager(deps Dependencies, concurrency int) *Manager {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Resolver == nil {
		deps.Resolver = writer.PassThrough{}
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Manager{
		deps:        deps,
		concurrency: concurrency,
	}
}

// Completed returns how many jobs finished, including failed ones.
func (m *Manager) Completed() int { return m.completed.Value() }

// Failed returns how many jobs failed.
func (m *Manager) Failed() int { return m.failed.Value() }

// Run converts all jobs and returns their results ordered by job ID. Jobs
// not started before ctx is done fail with the context error.
func (m *Manager) Run(ctx context.Context, jobs []Job) []Result {
	pending := queue.From(jobs)
	results := queue.New[Result]()

	workers := min(m.concurrency, len(jobs))
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ctx.Err() == nil {
				job, ok := pending.Pop()
				if !ok {
					return
				}
				results.Push(m.Convert(ctx, job))
			}
		}()
	}
	wg.Wait()

	for _, job := range pending.GetAndEmpty() {
		results.Push(Result{Job: job, Err: ctx.Err()})
	}

	out := results.GetAndEmpty()
	sort.Slice(out, func(i, j int) bool { return out[i].Job.ID < out[j].Job.ID })
	return out
}

// Convert reads job.Source, writes it to job.Target and records the outcome.
func (m *Manager) Convert(ctx context.Context, job Job) Result {
	ctx = logging.WithAttrs(ctx, slog.Int("job", job.ID), slog.String("path", job.Source))
	log := m.deps.Logger.With("job", job.ID, "path", job.Source)

	start := time.Now()
	res := Result{Job: job}
	res.Conversion = model.Conversion{
		Time:   start.UTC(),
		Source: job.Source,
		Target: job.Target,
	}

	res.Err = m.convert(ctx, log, &res)
	res.Conversion.DurationMs = float64(time.Since(start).Microseconds()) / 1000
	res.Conversion.Lines = res.Write.Total()
	res.Conversion.Warnings = res.Read.Warnings
	res.Conversion.Errors = res.Read.Errors
	res.Conversion.ReadStats = marshalStats(res.Read)
	res.Conversion.WriteStats = marshalStats(res.Write)

	m.completed.Inc()
	if res.Err != nil {
		m.failed.Inc()
		res.Conversion.Error = sql.NullString{String: res.Err.Error(), Valid: true}
		m.deps.Logger.ErrorContext(ctx, "Conversion failed", "error", res.Err)
	} else {
		m.deps.Logger.InfoContext(ctx, "Converted",
			"lines", res.Conversion.Lines,
			"warnings", res.Conversion.Warnings,
			"duration", time.Since(start))
	}

	if m.deps.Recorder != nil {
		if err := m.deps.Recorder.RecordConversion(&res.Conversion); err != nil {
			m.deps.Logger.ErrorContext(ctx, "Error recording conversion", "error", err)
		}
	}
	if m.deps.Reporter != nil {
		if err := m.deps.Reporter.WriteConversion(&res.Conversion); err != nil {
			m.deps.Logger.ErrorContext(ctx, "Error reporting conversion", "error", err)
		}
	}
	return res
}

func (m *Manager) convert(ctx context.Context, log *slog.Logger, res *Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var opts []reader.Option
	if m.deps.StrictNumbers {
		opts = append(opts, reader.StrictNumbers())
	}
	r := reader.New(log, opts...)
	doc, err := r.ReadDocumentFile(res.Job.Source)
	res.Read = r.Stats()
	if err != nil {
		return err
	}

	fp, err := geo.DocumentFootprint(doc)
	switch {
	case err == nil:
		res.Conversion.Footprint = fp.WKT()
		res.Conversion.Area = fp.Area()
	case !errors.Is(err, geo.ErrNoVertices):
		log.Warn("Failed to compute footprint", "error", err)
	}

	w, err := writer.NewDocumentWriter(log, m.deps.Options)
	if err != nil {
		return fmt.Errorf("creating document writer: %w", err)
	}

	if res.Job.Target == "" {
		err = writeDocument(ctx, w, io.Discard, m.deps.Resolver, doc)
		res.Write = w.Stats()
		return err
	}

	if err := os.MkdirAll(filepath.Dir(res.Job.Target), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.Create(res.Job.Target)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	err = writeDocument(ctx, w, f, m.deps.Resolver, doc)
	res.Write = w.Stats()
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("error closing %s: %w", res.Job.Target, cerr)
	}
	if err != nil {
		os.Remove(res.Job.Target)
	}
	return err
}

func writeDocument(ctx context.Context, w *writer.DocumentWriter, out io.Writer, r writer.Resolver, doc *obj.Document) error {
	sink := writer.NewStreamSink(out, r)
	if err := w.Write(ctx, sink, doc); err != nil {
		return err
	}
	return sink.Flush()
}

func marshalStats(v any) datatypes.JSON {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(data)
}
