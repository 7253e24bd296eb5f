package memory

import (
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xplnobj/codec/internal/model"
)

// ExportName is the base name of the export file inside the output directory.
const ExportName = "xobjconv.json"

// Export is the root JSON structure written on Close.
type Export struct {
	Datarefs    []model.Dataref    `json:"datarefs"`
	Commands    []model.Command    `json:"commands"`
	Conversions []model.Conversion `json:"conversions"`
}

// exportJSON writes the stored data to the output directory
func (b *Backend) exportJSON() error {
	export := Export{
		Datarefs:    nonNil(b.datarefs),
		Commands:    nonNil(b.commands),
		Conversions: nonNil(b.conversions),
	}

	filename := ExportName
	if b.cfg.CompressOutput {
		filename += ".gz"
	}
	outputPath := filepath.Join(b.cfg.OutputDir, filename)

	if err := os.MkdirAll(b.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var err error
	if b.cfg.CompressOutput {
		err = writeGzipJSON(outputPath, export)
	} else {
		err = writeJSON(outputPath, export)
	}
	if err != nil {
		return err
	}

	b.lastExportPath = outputPath
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return make([]T, 0)
	}
	return s
}

func writeJSON(path string, data Export) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	return encoder.Encode(data)
}

func writeGzipJSON(path string, data Export) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	gzWriter := gzip.NewWriter(f)
	defer gzWriter.Close()

	encoder := json.NewEncoder(gzWriter)
	return encoder.Encode(data)
}

// readExport loads the export from dir, preferring the compressed file.
// path is empty when neither file exists.
func readExport(dir string) (exp Export, path string, err error) {
	for _, name := range []string{ExportName + ".gz", ExportName} {
		p := filepath.Join(dir, name)
		f, err := os.Open(p)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return exp, "", fmt.Errorf("failed to open export: %w", err)
		}
		defer f.Close()

		var r io.Reader = f
		if filepath.Ext(p) == ".gz" {
			gz, err := gzip.NewReader(f)
			if err != nil {
				return exp, "", fmt.Errorf("failed to read export %s: %w", p, err)
			}
			defer gz.Close()
			r = gz
		}
		if err := json.NewDecoder(r).Decode(&exp); err != nil {
			return exp, "", fmt.Errorf("failed to decode export %s: %w", p, err)
		}
		return exp, p, nil
	}
	return exp, "", nil
}
