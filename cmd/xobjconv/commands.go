package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/mitchellh/go-homedir"

	"github.com/xplnobj/codec/internal/config"
	"github.com/xplnobj/codec/internal/dispatcher"
	"github.com/xplnobj/codec/internal/reader"
	"github.com/xplnobj/codec/internal/refs"
	"github.com/xplnobj/codec/internal/worker"
	"github.com/xplnobj/codec/internal/writer"
)

// flags creates a flag set for a subcommand that reports to stderr.
func (a *app) flags(name, args string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: %s %s %s\n", AppName, name, args)
		fs.PrintDefaults()
	}
	return fs
}

// expandAll resolves a leading ~ in every path.
func expandAll(paths []string) ([]string, error) {
	out := make([]string, len(paths))
	for i, p := range paths {
		e, err := homedir.Expand(p)
		if err != nil {
			return nil, fmt.Errorf("error expanding %s: %w", p, err)
		}
		out[i] = e
	}
	return out, nil
}

// converter builds a worker manager that records into the storage backend
// and resolves numeric references through it.
func (a *app) converter(ctx context.Context, mark bool, concurrency int) (*worker.Manager, error) {
	backend, err := a.openStorage()
	if err != nil {
		return nil, err
	}
	deps := worker.Dependencies{
		Logger:   a.logger,
		Recorder: backend,
		Resolver: refs.NewResolver(backend, a.logger),
		Options: writer.Options{
			MarkObjects:     mark || config.GetBool("writer.markObjects"),
			CheckInstancing: config.GetBool("writer.checkInstancing"),
		},

		StrictNumbers: config.GetBool("reader.strictNumbers"),
	}
	if r := a.reporter(ctx); r != nil {
		deps.Reporter = r
	}
	return worker.NewManager(deps, concurrency), nil
}

func (a *app) cmdConvert(ctx context.Context, e dispatcher.Event) (any, error) {
	flags := a.flags("convert", "[-mark] <in.obj> <out.obj>")
	mark := flags.Bool("mark", false, "append object names as ## comments")
	if err := flags.Parse(e.Args); err != nil {
		return nil, err
	}
	if flags.NArg() != 2 {
		flags.Usage()
		return nil, errUsage
	}
	paths, err := expandAll(flags.Args())
	if err != nil {
		return nil, err
	}

	m, err := a.converter(ctx, *mark, 1)
	if err != nil {
		return nil, err
	}
	res := m.Convert(ctx, worker.Job{ID: 1, Source: paths[0], Target: paths[1]})
	printResult(a.stdout, res)
	return res.Conversion, res.Err
}

// keepReferences writes numeric reference ids unresolved. Stats only count
// lines, so no definitions are needed.
type keepReferences struct{}

func (keepReferences) Dataref(name string) (string, error) { return name, nil }
func (keepReferences) Command(name string) (string, error) { return name, nil }

// fileStats is the JSON form of one stats row.
type fileStats struct {
	File      string       `json:"file"`
	Read      reader.Stats `json:"read"`
	Lines     int          `json:"lines"`
	Footprint string       `json:"footprint,omitempty"`
	Area      float64      `json:"area"`
	Error     string       `json:"error,omitempty"`
}

func (a *app) cmdStats(ctx context.Context, e dispatcher.Event) (any, error) {
	flags := a.flags("stats", "[-json] <file.obj>...")
	asJSON := flags.Bool("json", false, "print JSON instead of a table")
	if err := flags.Parse(e.Args); err != nil {
		return nil, err
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return nil, errUsage
	}
	paths, err := expandAll(flags.Args())
	if err != nil {
		return nil, err
	}

	jobs := make([]worker.Job, len(paths))
	for i, p := range paths {
		jobs[i] = worker.Job{ID: i + 1, Source: p}
	}
	m := worker.NewManager(worker.Dependencies{
		Logger:   a.logger,
		Resolver: keepReferences{},
	}, config.GetInt("worker.concurrency"))
	results := m.Run(ctx, jobs)

	rows := make([]fileStats, len(results))
	var total reader.Stats
	for i, res := range results {
		rows[i] = fileStats{
			File:      res.Job.Source,
			Read:      res.Read,
			Lines:     res.Conversion.Lines,
			Footprint: res.Conversion.Footprint,
			Area:      res.Conversion.Area,
		}
		if res.Err != nil {
			rows[i].Error = res.Err.Error()
		}
		total.Add(res.Read)
	}

	if *asJSON {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rows); err != nil {
			return nil, fmt.Errorf("error encoding stats: %w", err)
		}
	} else {
		tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "FILE\tVERTICES\tTRIS\tLIGHTS\tLODS\tATTRS\tMANIPS\tANIMS\tWARN\tERR\tAREA")
		for _, r := range rows {
			if r.Error != "" {
				fmt.Fprintf(tw, "%s\t%s\n", r.File, r.Error)
				continue
			}
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%.2f\n", r.File,
				r.Read.Vertices, r.Read.Tris, r.Read.Lights, r.Read.LODs, r.Read.Attrs, r.Read.Manips,
				r.Read.Anims, r.Read.Warnings, r.Read.Errors, r.Area)
		}
		if len(rows) > 1 {
			fmt.Fprintf(tw, "total\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t\n",
				total.Vertices, total.Tris, total.Lights, total.LODs, total.Attrs, total.Manips,
				total.Anims, total.Warnings, total.Errors)
		}
		if err := tw.Flush(); err != nil {
			return nil, err
		}
	}

	if n := m.Failed(); n > 0 {
		return rows, fmt.Errorf("%d of %d files could not be read", n, len(rows))
	}
	return rows, nil
}

func (a *app) cmdHistory(ctx context.Context, e dispatcher.Event) (any, error) {
	flags := a.flags("history", "[-n count]")
	limit := flags.Int("n", 20, "show at most this many recent conversions, 0 for all")
	if err := flags.Parse(e.Args); err != nil {
		return nil, err
	}
	backend, err := a.openStorage()
	if err != nil {
		return nil, err
	}
	conversions, err := backend.Conversions()
	if err != nil {
		return nil, fmt.Errorf("error listing conversions: %w", err)
	}
	if *limit > 0 && len(conversions) > *limit {
		conversions = conversions[len(conversions)-*limit:]
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTIME\tSOURCE\tLINES\tWARN\tERR\tAREA\tERROR")
	for _, c := range conversions {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\t%.2f\t%s\n", c.ID, c.Time.Format(time.DateTime),
			c.Source, c.Lines, c.Warnings, c.Errors, c.Area, c.Error.String)
	}
	return conversions, tw.Flush()
}
