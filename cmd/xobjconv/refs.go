package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/xplnobj/codec/internal/config"
	"github.com/xplnobj/codec/internal/dispatcher"
	"github.com/xplnobj/codec/internal/refs"
	"github.com/xplnobj/codec/internal/storage"
)

func (a *app) cmdRefs(ctx context.Context, e dispatcher.Event) (any, error) {
	if len(e.Args) == 0 {
		fmt.Fprintf(a.stderr, "usage: %s refs import|export|snapshot [args]\n", AppName)
		return nil, errUsage
	}
	args := e.Args[1:]
	switch e.Args[0] {
	case "import":
		return a.refsImport(args)
	case "export":
		return a.refsExport(args)
	case "snapshot":
		return a.refsSnapshot(args)
	default:
		fmt.Fprintf(a.stderr, "unknown refs command: %s\n", e.Args[0])
		return nil, errUsage
	}
}

// refCounts reports how many definitions an import or export touched.
type refCounts struct {
	Datarefs int
	Commands int
}

func (a *app) refsImport(args []string) (any, error) {
	flags := a.flags("refs import", "[-datarefs file] [-commands file]")
	datarefsPath := flags.String("datarefs", config.GetString("refs.datarefs"), "datarefs file (.txt, .yaml or .toml)")
	commandsPath := flags.String("commands", config.GetString("refs.commands"), "commands file (.txt, .yaml or .toml)")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if *datarefsPath == "" && *commandsPath == "" {
		flags.Usage()
		return nil, errUsage
	}
	paths, err := expandAll([]string{*datarefsPath, *commandsPath})
	if err != nil {
		return nil, err
	}

	backend, err := a.openStorage()
	if err != nil {
		return nil, err
	}

	var counts refCounts
	if paths[0] != "" {
		d, err := refs.LoadDatarefs(paths[0])
		if err != nil {
			return nil, err
		}
		if err := refs.Check(d); err != nil {
			return nil, fmt.Errorf("error checking %s: %w", paths[0], err)
		}
		if err := backend.SaveDatarefs(d); err != nil {
			return nil, fmt.Errorf("error saving datarefs: %w", err)
		}
		counts.Datarefs = len(d)
		a.logger.Info("Imported datarefs", "path", paths[0], "count", len(d), "lastID", refs.LastID(d))
	}
	if paths[1] != "" {
		c, err := refs.LoadCommands(paths[1])
		if err != nil {
			return nil, err
		}
		if err := refs.Check(c); err != nil {
			return nil, fmt.Errorf("error checking %s: %w", paths[1], err)
		}
		if err := backend.SaveCommands(c); err != nil {
			return nil, fmt.Errorf("error saving commands: %w", err)
		}
		counts.Commands = len(c)
		a.logger.Info("Imported commands", "path", paths[1], "count", len(c), "lastID", refs.LastID(c))
	}

	fmt.Fprintf(a.stdout, "imported %d datarefs, %d commands\n", counts.Datarefs, counts.Commands)
	return counts, nil
}

func (a *app) refsExport(args []string) (any, error) {
	flags := a.flags("refs export", "[-datarefs file] [-commands file]")
	datarefsPath := flags.String("datarefs", "", "write datarefs to this file")
	commandsPath := flags.String("commands", "", "write commands to this file")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if *datarefsPath == "" && *commandsPath == "" {
		flags.Usage()
		return nil, errUsage
	}
	paths, err := expandAll([]string{*datarefsPath, *commandsPath})
	if err != nil {
		return nil, err
	}

	backend, err := a.openStorage()
	if err != nil {
		return nil, err
	}

	var counts refCounts
	if paths[0] != "" {
		d, err := backend.Datarefs()
		if err != nil {
			return nil, fmt.Errorf("error listing datarefs: %w", err)
		}
		if err := refs.SaveDatarefs(paths[0], d); err != nil {
			return nil, err
		}
		counts.Datarefs = len(d)
	}
	if paths[1] != "" {
		c, err := backend.Commands()
		if err != nil {
			return nil, fmt.Errorf("error listing commands: %w", err)
		}
		if err := refs.SaveCommands(paths[1], c); err != nil {
			return nil, err
		}
		counts.Commands = len(c)
	}

	fmt.Fprintf(a.stdout, "exported %d datarefs, %d commands\n", counts.Datarefs, counts.Commands)
	return counts, nil
}

func (a *app) refsSnapshot(args []string) (any, error) {
	flags := a.flags("refs snapshot", "<file.db>")
	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return nil, errUsage
	}
	paths, err := expandAll(flags.Args())
	if err != nil {
		return nil, err
	}

	backend, err := a.openStorage()
	if err != nil {
		return nil, err
	}
	s, ok := backend.(storage.Snapshotter)
	if !ok {
		return nil, errors.New("storage backend does not support snapshots, use storage.type sqlite")
	}
	if err := s.Snapshot(paths[0]); err != nil {
		return nil, fmt.Errorf("error writing snapshot: %w", err)
	}
	fmt.Fprintf(a.stdout, "snapshot written to %s\n", paths[0])
	return paths[0], nil
}
