// Package refs reads and writes dataref and command definition files and
// resolves id-form references against a storage backend.
package refs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xplnobj/codec/internal/model"
	"github.com/xplnobj/codec/internal/writer"
)

// ErrDuplicate is returned by Check when two definitions share an id or key.
var ErrDuplicate = errors.New("duplicate definition")

// ParseID parses an id-form reference such as "000042".
func ParseID(name string) (uint64, error) {
	if !writer.IsID(name) {
		return 0, fmt.Errorf("%q is not an id", name)
	}
	id, err := strconv.ParseUint(name, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", name, err)
	}
	return id, nil
}

// FormatID renders an id the way definition files store it.
func FormatID(id uint64) string {
	return fmt.Sprintf("%06d", id)
}

// ReadDatarefs parses a tab separated datarefs file. The first line is a
// header and is skipped, as are empty lines and lines starting with '#'.
// Columns are: optional id, key, type, writable ('y'), units, description.
func ReadDatarefs(r io.Reader) ([]model.Dataref, error) {
	var out []model.Dataref
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for n := 0; sc.Scan(); n++ {
		line := strings.TrimRight(sc.Text(), "\r")
		if n == 0 || line == "" || line[0] == '#' {
			continue
		}
		values := strings.Split(line, "\t")

		var d model.Dataref
		pos := 0
		if writer.IsID(values[pos]) {
			id, err := ParseID(values[pos])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", n+1, err)
			}
			d.RefID = &id
			pos++
		}
		fields := []*string{&d.Key, &d.Type, nil, &d.Units, &d.Description}
		for _, f := range fields {
			if pos == len(values) {
				break
			}
			if f == nil {
				d.Writable = strings.HasPrefix(values[pos], "y")
			} else {
				*f = values[pos]
			}
			pos++
		}
		out = append(out, d)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("error reading datarefs: %w", err)
	}
	return out, nil
}

// WriteDatarefs writes datarefs in the format ReadDatarefs accepts,
// starting with an empty header line.
func WriteDatarefs(w io.Writer, datarefs []model.Dataref) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("\n")
	for _, d := range datarefs {
		if d.RefID != nil {
			bw.WriteString(FormatID(*d.RefID) + "\t")
		}
		bw.WriteString(d.Key)
		if d.Type != "" {
			writable := "n"
			if d.Writable {
				writable = "y"
			}
			bw.WriteString("\t" + d.Type + "\t" + writable)
			if d.Units != "" {
				bw.WriteString("\t" + d.Units)
				if d.Description != "" {
					bw.WriteString("\t" + d.Description)
				}
			}
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

// ReadCommands parses a commands file. Each line holds an optional id,
// the key and a free text description separated by whitespace. Empty lines
// and lines starting with '#' are skipped.
func ReadCommands(r io.Reader) ([]model.Command, error) {
	var out []model.Command
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}

		var c model.Command
		first, rest := cut(line)
		if writer.IsID(first) {
			id, err := ParseID(first)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", n, err)
			}
			c.RefID = &id
			first, rest = cut(rest)
		}
		c.Key = first
		c.Description = rest
		out = append(out, c)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("error reading commands: %w", err)
	}
	return out, nil
}

func cut(s string) (string, string) {
	i := strings.IndexAny(s, " \t")
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimSpace(s[i:])
}

// WriteCommands writes commands in the format ReadCommands accepts.
func WriteCommands(w io.Writer, commands []model.Command) error {
	const sep = "    "
	bw := bufio.NewWriter(w)
	for _, c := range commands {
		if c.RefID != nil {
			bw.WriteString(FormatID(*c.RefID) + sep)
		}
		bw.WriteString(c.Key)
		if c.Description != "" {
			bw.WriteString(sep + c.Description)
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

// LastID returns the highest id in use, or 0.
func LastID[T model.Dataref | model.Command](defs []T) uint64 {
	var last uint64
	for _, d := range defs {
		if id := refID(d); id != nil && *id > last {
			last = *id
		}
	}
	return last
}

func refID[T model.Dataref | model.Command](d T) *uint64 {
	switch v := any(d).(type) {
	case model.Dataref:
		return v.RefID
	case model.Command:
		return v.RefID
	}
	return nil
}

func refKey[T model.Dataref | model.Command](d T) string {
	switch v := any(d).(type) {
	case model.Dataref:
		return v.Key
	case model.Command:
		return v.Key
	}
	return ""
}

// Check reports the first id or key that is defined twice.
func Check[T model.Dataref | model.Command](defs []T) error {
	ids := make(map[uint64]bool, len(defs))
	keys := make(map[string]bool, len(defs))
	for _, d := range defs {
		if id := refID(d); id != nil {
			if ids[*id] {
				return fmt.Errorf("id %s: %w", FormatID(*id), ErrDuplicate)
			}
			ids[*id] = true
		}
		key := refKey(d)
		if keys[key] {
			return fmt.Errorf("key %q: %w", key, ErrDuplicate)
		}
		keys[key] = true
	}
	return nil
}
