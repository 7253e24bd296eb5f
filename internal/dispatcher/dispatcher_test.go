package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// testLogger implements Logger for testing
type testLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *testLogger) Debug(msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("DEBUG: %s %v", msg, keysAndValues))
}

func (l *testLogger) Info(msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("INFO: %s %v", msg, keysAndValues))
}

func (l *testLogger) Error(msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("ERROR: %s %v", msg, keysAndValues))
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *testLogger) {
	logger := &testLogger{}

	d, err := New(logger)
	if err != nil {
		t.Fatalf("failed to create dispatcher: %v", err)
	}

	return d, logger
}

func TestDispatcher_Handler(t *testing.T) {
	d, _ := newTestDispatcher(t)

	var got Event
	d.Register("convert", func(_ context.Context, e Event) (any, error) {
		got = e
		return "result", nil
	})

	result, err := d.Dispatch(context.Background(), Event{Command: "convert", Args: []string{"in.obj", "out.obj"}})

	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if result != "result" {
		t.Errorf("expected 'result', got %v", result)
	}
	if len(got.Args) != 2 || got.Args[1] != "out.obj" {
		t.Errorf("unexpected args %v", got.Args)
	}
	if got.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	d, _ := newTestDispatcher(t)

	_, err := d.Dispatch(context.Background(), Event{Command: "unknown"})

	if err == nil || !strings.Contains(err.Error(), "unknown command: unknown") {
		t.Errorf("expected unknown command error, got %v", err)
	}
}

func TestDispatcher_Timeout(t *testing.T) {
	d, _ := newTestDispatcher(t)

	d.Register("slow", func(ctx context.Context, e Event) (any, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(5 * time.Second):
			return "finished", nil
		}
	}, Timeout(20*time.Millisecond))

	_, err := d.Dispatch(context.Background(), Event{Command: "slow"})

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestDispatcher_ContextPassedThrough(t *testing.T) {
	d, _ := newTestDispatcher(t)

	type key struct{}
	d.Register("ctx", func(ctx context.Context, e Event) (any, error) {
		return ctx.Value(key{}), nil
	})

	ctx := context.WithValue(context.Background(), key{}, "value")
	result, _ := d.Dispatch(ctx, Event{Command: "ctx"})

	if result != "value" {
		t.Errorf("expected context value, got %v", result)
	}
}

func TestDispatcher_LoggedHandler(t *testing.T) {
	d, logger := newTestDispatcher(t)

	d.Register("stats", func(context.Context, Event) (any, error) {
		return "ok", nil
	}, Logged())

	d.Dispatch(context.Background(), Event{Command: "stats", Args: []string{"a", "b"}})

	logger.mu.Lock()
	defer logger.mu.Unlock()

	if len(logger.messages) != 2 {
		t.Errorf("expected 2 log messages, got %d", len(logger.messages))
	}
}

func TestDispatcher_LoggedHandlerError(t *testing.T) {
	d, logger := newTestDispatcher(t)

	d.Register("broken", func(context.Context, Event) (any, error) {
		return nil, fmt.Errorf("test error")
	}, Logged())

	d.Dispatch(context.Background(), Event{Command: "broken"})

	logger.mu.Lock()
	defer logger.mu.Unlock()

	hasError := false
	for _, msg := range logger.messages {
		if strings.HasPrefix(msg, "ERROR") {
			hasError = true
			break
		}
	}

	if !hasError {
		t.Error("expected error log message")
	}
}

func TestDispatcher_HasHandler(t *testing.T) {
	d, _ := newTestDispatcher(t)

	d.Register("refs", func(context.Context, Event) (any, error) { return nil, nil })

	if !d.HasHandler("refs") {
		t.Error("expected handler to exist")
	}

	if d.HasHandler("batch") {
		t.Error("expected handler to not exist")
	}
}

func TestDispatcher_Commands(t *testing.T) {
	d, _ := newTestDispatcher(t)
	noop := func(context.Context, Event) (any, error) { return nil, nil }

	d.Register("stats", noop, Describe("print statistics"))
	d.Register("convert", noop, Describe("rewrite a file"), Logged())
	d.Register("batch", noop)

	cmds := d.Commands()

	want := []Command{
		{Name: "batch"},
		{Name: "convert", Description: "rewrite a file"},
		{Name: "stats", Description: "print statistics"},
	}
	if len(cmds) != len(want) {
		t.Fatalf("expected %d commands, got %d", len(want), len(cmds))
	}
	for i := range want {
		if cmds[i] != want[i] {
			t.Errorf("command %d: expected %+v, got %+v", i, want[i], cmds[i])
		}
	}
}

func TestDispatcher_Metrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	prev := otel.GetMeterProvider()
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	t.Cleanup(func() { otel.SetMeterProvider(prev) })

	d, _ := newTestDispatcher(t)
	d.Register("convert", func(_ context.Context, e Event) (any, error) {
		if len(e.Args) != 2 {
			return nil, errors.New("usage")
		}
		return nil, nil
	})

	ctx := context.Background()
	d.Dispatch(ctx, Event{Command: "convert", Args: []string{"in.obj", "out.obj"}})
	d.Dispatch(ctx, Event{Command: "convert", Args: []string{"in.obj"}})

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}

	sums := map[string]int64{}
	var durations uint64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					sums[m.Name] += dp.Value
				}
			case metricdata.Histogram[float64]:
				for _, dp := range data.DataPoints {
					durations += dp.Count
				}
			}
		}
	}

	if sums["xobj.commands.processed"] != 2 {
		t.Errorf("expected 2 processed, got %d", sums["xobj.commands.processed"])
	}
	if sums["xobj.commands.failed"] != 1 {
		t.Errorf("expected 1 failed, got %d", sums["xobj.commands.failed"])
	}
	if durations != 2 {
		t.Errorf("expected 2 duration samples, got %d", durations)
	}
}
