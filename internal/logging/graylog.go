package logging

import (
	"fmt"
	"log/slog"

	"github.com/Graylog2/go-gelf/gelf"
)

// NewGraylogHandler creates a JSON handler that ships records to a Graylog
// GELF UDP input.
func NewGraylogHandler(address, level string) (slog.Handler, error) {
	w, err := gelf.NewWriter(address)
	if err != nil {
		return nil, fmt.Errorf("creating graylog writer: %w", err)
	}
	w.Facility = "xobjconv"
	return slog.NewJSONHandler(w, handlerOptions(parseLevel(level))), nil
}
