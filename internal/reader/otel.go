package reader

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/xplnobj/codec/internal/reader"

type metrics struct {
	directives  metric.Int64Counter
	recoverable metric.Int64Counter
}

// newMetrics uses the global OTel meter, which is a no-op unless a provider is installed.
func newMetrics() (*metrics, error) {
	m := otel.Meter(instrumentationName)

	directives, err := m.Int64Counter(
		"xobj.reader.directives",
		metric.WithDescription("Directives read, by family"),
	)
	if err != nil {
		return nil, err
	}

	recoverable, err := m.Int64Counter(
		"xobj.reader.recoverable",
		metric.WithDescription("Recoverable problems logged while reading"),
	)
	if err != nil {
		return nil, err
	}

	return &metrics{directives: directives, recoverable: recoverable}, nil
}

func noopMetrics() *metrics {
	m := noop.NewMeterProvider().Meter(instrumentationName)
	directives, _ := m.Int64Counter("xobj.reader.directives")
	recoverable, _ := m.Int64Counter("xobj.reader.recoverable")
	return &metrics{directives: directives, recoverable: recoverable}
}

func (m *metrics) record(ctx context.Context, s Stats) {
	families := []struct {
		name  string
		value int
	}{
		{"global", s.GlobalAttrs},
		{"attribute", s.Attrs},
		{"manipulator", s.Manips},
		{"animation", s.Anims},
		{"tris", s.Tris},
		{"light", s.Lights},
		{"lod", s.LODs},
		{"unknown", s.Unknown},
	}
	for _, f := range families {
		if f.value > 0 {
			m.directives.Add(ctx, int64(f.value), metric.WithAttributes(attribute.String("family", f.name)))
		}
	}
	if s.Warnings > 0 {
		m.recoverable.Add(ctx, int64(s.Warnings), metric.WithAttributes(attribute.String("level", "warn")))
	}
	if s.Errors > 0 {
		m.recoverable.Add(ctx, int64(s.Errors), metric.WithAttributes(attribute.String("level", "error")))
	}
}
