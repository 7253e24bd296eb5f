package refs

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/xplnobj/codec/internal/model"
)

// Format is the encoding of a definition file.
type Format int

const (
	FormatText Format = iota
	FormatYAML
	FormatTOML
)

// FormatOf picks the format from the file extension. Anything that is not
// YAML or TOML is read as the plain text format.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatText
	}
}

type datarefEntry struct {
	ID          *uint64 `yaml:"id,omitempty" toml:"id,omitempty"`
	Key         string  `yaml:"key" toml:"key"`
	Type        string  `yaml:"type,omitempty" toml:"type,omitempty"`
	Writable    bool    `yaml:"writable,omitempty" toml:"writable,omitempty"`
	Units       string  `yaml:"units,omitempty" toml:"units,omitempty"`
	Description string  `yaml:"description,omitempty" toml:"description,omitempty"`
}

type commandEntry struct {
	ID          *uint64 `yaml:"id,omitempty" toml:"id,omitempty"`
	Key         string  `yaml:"key" toml:"key"`
	Description string  `yaml:"description,omitempty" toml:"description,omitempty"`
}

type definitions struct {
	Datarefs []datarefEntry `yaml:"datarefs,omitempty" toml:"datarefs,omitempty"`
	Commands []commandEntry `yaml:"commands,omitempty" toml:"commands,omitempty"`
}

func decode(f Format, data []byte) (definitions, error) {
	var defs definitions
	var err error
	switch f {
	case FormatYAML:
		err = yaml.Unmarshal(data, &defs)
	case FormatTOML:
		err = toml.Unmarshal(data, &defs)
	default:
		return defs, fmt.Errorf("format %d is not structured", f)
	}
	return defs, err
}

func encode(f Format, defs definitions) ([]byte, error) {
	switch f {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(defs); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatTOML:
		return toml.Marshal(defs)
	default:
		return nil, fmt.Errorf("format %d is not structured", f)
	}
}

func toDatarefs(entries []datarefEntry) []model.Dataref {
	out := make([]model.Dataref, len(entries))
	for i, e := range entries {
		out[i] = model.Dataref{RefID: e.ID, Key: e.Key, Type: e.Type, Writable: e.Writable, Units: e.Units, Description: e.Description}
	}
	return out
}

func fromDatarefs(datarefs []model.Dataref) []datarefEntry {
	out := make([]datarefEntry, len(datarefs))
	for i, d := range datarefs {
		out[i] = datarefEntry{ID: d.RefID, Key: d.Key, Type: d.Type, Writable: d.Writable, Units: d.Units, Description: d.Description}
	}
	return out
}

func toCommands(entries []commandEntry) []model.Command {
	out := make([]model.Command, len(entries))
	for i, e := range entries {
		out[i] = model.Command{RefID: e.ID, Key: e.Key, Description: e.Description}
	}
	return out
}

func fromCommands(commands []model.Command) []commandEntry {
	out := make([]commandEntry, len(commands))
	for i, c := range commands {
		out[i] = commandEntry{ID: c.RefID, Key: c.Key, Description: c.Description}
	}
	return out
}

// DecodeDatarefs reads datarefs in the given format.
func DecodeDatarefs(r io.Reader, f Format) ([]model.Dataref, error) {
	if f == FormatText {
		return ReadDatarefs(r)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	defs, err := decode(f, data)
	if err != nil {
		return nil, fmt.Errorf("error decoding datarefs: %w", err)
	}
	return toDatarefs(defs.Datarefs), nil
}

// EncodeDatarefs writes datarefs in the given format.
func EncodeDatarefs(w io.Writer, f Format, datarefs []model.Dataref) error {
	if f == FormatText {
		return WriteDatarefs(w, datarefs)
	}
	data, err := encode(f, definitions{Datarefs: fromDatarefs(datarefs)})
	if err != nil {
		return fmt.Errorf("error encoding datarefs: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// DecodeCommands reads commands in the given format.
func DecodeCommands(r io.Reader, f Format) ([]model.Command, error) {
	if f == FormatText {
		return ReadCommands(r)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	defs, err := decode(f, data)
	if err != nil {
		return nil, fmt.Errorf("error decoding commands: %w", err)
	}
	return toCommands(defs.Commands), nil
}

// EncodeCommands writes commands in the given format.
func EncodeCommands(w io.Writer, f Format, commands []model.Command) error {
	if f == FormatText {
		return WriteCommands(w, commands)
	}
	data, err := encode(f, definitions{Commands: fromCommands(commands)})
	if err != nil {
		return fmt.Errorf("error encoding commands: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// LoadDatarefs reads a datarefs file, choosing the format by extension.
func LoadDatarefs(path string) ([]model.Dataref, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("can't open file %s: %w", path, err)
	}
	defer f.Close()
	return DecodeDatarefs(f, FormatOf(path))
}

// SaveDatarefs writes a datarefs file, choosing the format by extension.
func SaveDatarefs(path string, datarefs []model.Dataref) error {
	return saveFile(path, func(w io.Writer) error {
		return EncodeDatarefs(w, FormatOf(path), datarefs)
	})
}

// LoadCommands reads a commands file, choosing the format by extension.
func LoadCommands(path string) ([]model.Command, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("can't open file %s: %w", path, err)
	}
	defer f.Close()
	return DecodeCommands(f, FormatOf(path))
}

// SaveCommands writes a commands file, choosing the format by extension.
func SaveCommands(path string, commands []model.Command) error {
	return saveFile(path, func(w io.Writer) error {
		return EncodeCommands(w, FormatOf(path), commands)
	})
}

func saveFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("can't create file %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
