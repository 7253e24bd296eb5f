package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/xplnobj/codec/internal/dispatcher"
	"github.com/xplnobj/codec/internal/worker"
)

// watchSettle is how long a file must stay unchanged before it is converted.
const watchSettle = 200 * time.Millisecond

func (a *app) cmdWatch(ctx context.Context, e dispatcher.Event) (any, error) {
	flags := a.flags("watch", "-out <dir> [-mark] <dir>")
	outDir := flags.String("out", "", "output directory")
	mark := flags.Bool("mark", false, "append object names as ## comments")
	if err := flags.Parse(e.Args); err != nil {
		return nil, err
	}
	if *outDir == "" || flags.NArg() != 1 {
		flags.Usage()
		return nil, errUsage
	}
	paths, err := expandAll([]string{*outDir, flags.Arg(0)})
	if err != nil {
		return nil, err
	}

	m, err := a.converter(ctx, *mark, 1)
	if err != nil {
		return nil, err
	}
	return nil, a.watch(ctx, m, paths[1], paths[0])
}

// watch converts object files below root into outDir each time they are
// written, until ctx is done.
func (a *app) watch(ctx context.Context, m *worker.Manager, root, outDir string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if within(outDir, path) {
				return filepath.SkipDir
			}
			return w.Add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("error watching %s: %w", root, err)
	}
	a.logger.Info("Watching for changes", "root", root, "out", outDir)

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(watchSettle / 2)
	defer ticker.Stop()
	id := 0

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if within(outDir, ev.Name) {
				continue
			}
			if ev.Has(fsnotify.Create) && isDir(ev.Name) {
				if err := w.Add(ev.Name); err != nil {
					a.logger.Warn("Failed to watch new directory", "path", ev.Name, "error", err)
				}
				continue
			}
			if (ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) && isObjFile(ev.Name) {
				pending[ev.Name] = time.Now()
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			a.logger.Error("Watcher error", "error", err)

		case now := <-ticker.C:
			for path, changed := range pending {
				if now.Sub(changed) < watchSettle {
					continue
				}
				delete(pending, path)
				rel, err := filepath.Rel(root, path)
				if err != nil {
					rel = filepath.Base(path)
				}
				id++
				res := m.Convert(ctx, worker.Job{ID: id, Source: path, Target: filepath.Join(outDir, rel)})
				printResult(a.stdout, res)
			}
		}
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// within reports whether path is dir or below it.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
