package dispatcher

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/xplnobj/codec/internal/dispatcher"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// metrics counts command runs, failures and run time.
type metrics struct {
	processed metric.Int64Counter
	failed    metric.Int64Counter
	duration  metric.Float64Histogram
}

func newMetrics() (*metrics, error) {
	m := meter()
	var (
		out metrics
		err error
	)

	out.processed, err = m.Int64Counter(
		"xobj.commands.processed",
		metric.WithDescription("Total commands run"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating processed counter: %w", err)
	}

	out.failed, err = m.Int64Counter(
		"xobj.commands.failed",
		metric.WithDescription("Total commands that returned an error"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating failed counter: %w", err)
	}

	out.duration, err = m.Float64Histogram(
		"xobj.commands.duration",
		metric.WithDescription("Command run time"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}
	return &out, nil
}

func (m *metrics) record(ctx context.Context, attrs metric.MeasurementOption, elapsed time.Duration, err error) {
	m.processed.Add(ctx, 1, attrs)
	m.duration.Record(ctx, float64(elapsed.Microseconds())/1000, attrs)
	if err != nil {
		m.failed.Add(ctx, 1, attrs)
	}
}
