package dispatcher

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Event is one invocation of a command line subcommand.
type Event struct {
	Command   string
	Args      []string
	Timestamp time.Time
}

// HandlerFunc processes an event and returns a result.
type HandlerFunc func(context.Context, Event) (any, error)

// Logger interface for pluggable logging.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Option configures handler registration.
type Option func(*config)

type config struct {
	description string
	timeout     time.Duration
	logged      bool
}

// Describe sets the one line help text shown by Commands.
func Describe(text string) Option {
	return func(c *config) {
		c.description = text
	}
}

// Timeout cancels the handler's context after d.
func Timeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// Logged adds debug logging to the handler.
func Logged() Option {
	return func(c *config) {
		c.logged = true
	}
}

// Command describes a registered command.
type Command struct {
	Name        string
	Description string
}

// Dispatcher routes events to registered handlers.
type Dispatcher struct {
	handlers     map[string]HandlerFunc
	descriptions map[string]string
	logger       Logger
	metrics      *metrics
}

// New creates a new Dispatcher with the given logger. Metrics go to the
// global OTel meter provider, which is a no-op unless one is installed.
func New(logger Logger) (*Dispatcher, error) {
	m, err := newMetrics()
	if err != nil {
		return nil, err
	}
	return &Dispatcher{
		handlers:     make(map[string]HandlerFunc),
		descriptions: make(map[string]string),
		logger:       logger,
		metrics:      m,
	}, nil
}

// Register adds a handler for the given command with optional configuration.
func (d *Dispatcher) Register(command string, h HandlerFunc, opts ...Option) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	handler := d.withMetrics(command, h)

	if cfg.timeout > 0 {
		handler = withTimeout(cfg.timeout, handler)
	}

	if cfg.logged {
		handler = d.withLogging(command, handler)
	}

	d.handlers[command] = handler
	d.descriptions[command] = cfg.description
}

// Dispatch routes an event to its registered handler.
func (d *Dispatcher) Dispatch(ctx context.Context, e Event) (any, error) {
	h, ok := d.handlers[e.Command]
	if !ok {
		return nil, fmt.Errorf("unknown command: %s", e.Command)
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	return h(ctx, e)
}

// HasHandler returns true if a handler is registered for the command.
func (d *Dispatcher) HasHandler(command string) bool {
	_, ok := d.handlers[command]
	return ok
}

// Commands lists the registered commands sorted by name.
func (d *Dispatcher) Commands() []Command {
	out := make([]Command, 0, len(d.handlers))
	for name := range d.handlers {
		out = append(out, Command{Name: name, Description: d.descriptions[name]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (d *Dispatcher) withMetrics(command string, h HandlerFunc) HandlerFunc {
	cmdAttr := metric.WithAttributes(attribute.String("command", command))

	return func(ctx context.Context, e Event) (any, error) {
		start := time.Now()
		result, err := h(ctx, e)
		d.metrics.record(ctx, cmdAttr, time.Since(start), err)
		return result, err
	}
}

func withTimeout(timeout time.Duration, h HandlerFunc) HandlerFunc {
	return func(ctx context.Context, e Event) (any, error) {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return h(ctx, e)
	}
}

func (d *Dispatcher) withLogging(command string, h HandlerFunc) HandlerFunc {
	return func(ctx context.Context, e Event) (any, error) {
		start := time.Now()
		d.logger.Debug("handling command", "command", command, "args", len(e.Args))

		result, err := h(ctx, e)

		if err != nil {
			d.logger.Error("command failed", "command", command, "duration", time.Since(start), "error", err)
		} else {
			d.logger.Debug("command complete", "command", command, "duration", time.Since(start))
		}

		return result, err
	}
}
