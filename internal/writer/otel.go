package writer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/xplnobj/codec/internal/writer"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

type metrics struct {
	lines     metric.Int64Counter
	documents metric.Int64Counter
}

func newMetrics() (*metrics, error) {
	m := meter()

	lines, err := m.Int64Counter(
		"xobj.writer.lines",
		metric.WithDescription("Lines written, by component"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating lines counter: %w", err)
	}

	documents, err := m.Int64Counter(
		"xobj.writer.documents",
		metric.WithDescription("Documents written, by result"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating documents counter: %w", err)
	}

	return &metrics{lines: lines, documents: documents}, nil
}

func (m *metrics) record(ctx context.Context, s Stats, err error) {
	components := []struct {
		name  string
		value int
	}{
		{"global", s.Global},
		{"attribute", s.Attrs},
		{"manipulator", s.Manips},
		{"animation", s.Anims},
		{"geometry", s.Geometry},
		{"light", s.Lights},
	}
	for _, c := range components {
		if c.value > 0 {
			m.lines.Add(ctx, int64(c.value), metric.WithAttributes(attribute.String("component", c.name)))
		}
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.documents.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
