package main

import (
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-shellwords"

	"github.com/xplnobj/codec/internal/config"
	"github.com/xplnobj/codec/internal/dispatcher"
	"github.com/xplnobj/codec/internal/monitor"
	"github.com/xplnobj/codec/internal/worker"
)

// ObjExt is the extension of object files picked up from directories.
const ObjExt = ".obj"

func isObjFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ObjExt)
}

// collectJobs walks every input and maps each object file to a target under
// outDir, keeping paths relative to the directory it was found in.
func collectJobs(inputs []string, outDir string) ([]worker.Job, error) {
	var jobs []worker.Job
	add := func(source, rel string) {
		jobs = append(jobs, worker.Job{
			ID:     len(jobs) + 1,
			Source: source,
			Target: filepath.Join(outDir, rel),
		})
	}

	for _, in := range inputs {
		info, err := os.Stat(in)
		if err != nil {
			return nil, fmt.Errorf("error reading input: %w", err)
		}
		if !info.IsDir() {
			add(in, filepath.Base(in))
			continue
		}
		err = filepath.WalkDir(in, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !isObjFile(path) {
				return nil
			}
			rel, err := filepath.Rel(in, path)
			if err != nil {
				return err
			}
			add(path, rel)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("error walking %s: %w", in, err)
		}
	}
	return jobs, nil
}

// readJobList parses a job list. Each line holds a source and an optional
// target, shell quoted. A missing target maps the source under outDir.
func readJobList(path, outDir string) ([]worker.Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("can't open job list: %w", err)
	}
	defer f.Close()

	var jobs []worker.Job
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words, err := shellwords.Parse(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		job := worker.Job{ID: len(jobs) + 1, Source: words[0]}
		switch len(words) {
		case 1:
			if outDir == "" {
				return nil, fmt.Errorf("%s:%d: no target and no -out directory", path, lineNo)
			}
			job.Target = filepath.Join(outDir, filepath.Base(words[0]))
		case 2:
			job.Target = words[1]
		default:
			return nil, fmt.Errorf("%s:%d: expected source and target, got %d fields", path, lineNo, len(words))
		}
		jobs = append(jobs, job)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading job list: %w", err)
	}
	return jobs, nil
}

func (a *app) cmdBatch(ctx context.Context, e dispatcher.Event) (any, error) {
	flags := a.flags("batch", "-out <dir> [-list file] [-j n] [-mark] <dir|file>...")
	outDir := flags.String("out", "", "output directory")
	list := flags.String("list", "", "file of shell quoted \"source [target]\" lines")
	concurrency := flags.Int("j", config.GetInt("worker.concurrency"), "files converted in parallel")
	mark := flags.Bool("mark", false, "append object names as ## comments")
	if err := flags.Parse(e.Args); err != nil {
		return nil, err
	}
	if *list == "" && (*outDir == "" || flags.NArg() == 0) {
		flags.Usage()
		return nil, errUsage
	}
	expanded, err := expandAll(append([]string{*outDir, *list}, flags.Args()...))
	if err != nil {
		return nil, err
	}
	out, listPath, inputs := expanded[0], expanded[1], expanded[2:]

	var jobs []worker.Job
	if listPath != "" {
		if jobs, err = readJobList(listPath, out); err != nil {
			return nil, err
		}
	}
	if len(inputs) > 0 {
		found, err := collectJobs(inputs, out)
		if err != nil {
			return nil, err
		}
		for _, j := range found {
			j.ID = len(jobs) + 1
			jobs = append(jobs, j)
		}
	}
	if len(jobs) == 0 {
		fmt.Fprintln(a.stdout, "no object files found")
		return nil, nil
	}

	m, err := a.converter(ctx, *mark, *concurrency)
	if err != nil {
		return nil, err
	}
	a.logger.Info("Starting batch", "jobs", len(jobs), "concurrency", *concurrency)
	mon := monitor.NewService(monitor.Dependencies{
		Logger:     a.logger,
		Progress:   m,
		Total:      len(jobs),
		StatusPath: a.statusPath(),
	})
	if err := mon.Start(); err != nil {
		a.logger.Warn("Status monitor not started", "error", err)
	}
	results := m.Run(ctx, jobs)
	mon.Stop()
	for _, res := range results {
		printResult(a.stdout, res)
	}
	fmt.Fprintf(a.stdout, "%d converted, %d failed\n", m.Completed()-m.Failed(), m.Failed())

	if n := m.Failed(); n > 0 {
		return results, fmt.Errorf("%d of %d conversions failed", n, len(jobs))
	}
	return results, nil
}

// statusPath is the batch status file next to the log file, or "" when
// logging to stderr.
func (a *app) statusPath() string {
	if a.logFile == nil {
		return ""
	}
	return filepath.Join(filepath.Dir(a.logFile.Name()), "status.txt")
}
