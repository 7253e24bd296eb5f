package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"github.com/xplnobj/codec/internal/config"
	"github.com/xplnobj/codec/internal/dispatcher"
	"github.com/xplnobj/codec/internal/influx"
	"github.com/xplnobj/codec/internal/logging"
	intOtel "github.com/xplnobj/codec/internal/otel"
	"github.com/xplnobj/codec/internal/storage"
)

// BuildDate can be set at build time via ldflags
var (
	CurrentVersion string = "0.0.1"
	BuildDate      string = "unknown"

	AppName string = "xobjconv"
)

// errUsage is returned when the command line is incomplete. Usage has
// already been printed.
var errUsage = errors.New("invalid usage")

// app holds the services shared by all commands.
type app struct {
	stdout io.Writer
	stderr io.Writer
	start  time.Time

	logManager *logging.SlogManager
	logger     *slog.Logger
	zl         zerolog.Logger
	logFile    *os.File
	otel       *intOtel.Provider

	dispatcher *dispatcher.Dispatcher

	backend storage.Backend
	influx  *influx.Manager
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(AppName, flag.ContinueOnError)
	fs.SetOutput(stderr)
	configDir := fs.String("config", ".", "directory holding "+config.FileName)
	logLevel := fs.String("log-level", "", "override the configured log level")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	a, err := newApp(ctx, *configDir, *logLevel, stdout, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer a.close(ctx)

	rest := fs.Args()
	if len(rest) == 0 || !a.dispatcher.HasHandler(rest[0]) {
		a.usage()
		return 2
	}

	_, err = a.dispatcher.Dispatch(ctx, dispatcher.Event{Command: rest[0], Args: rest[1:]})
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage), errors.Is(err, flag.ErrHelp):
		return 2
	default:
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
}

func newApp(ctx context.Context, configDir, logLevel string, stdout, stderr io.Writer) (*app, error) {
	a := &app{
		stdout:     stdout,
		stderr:     stderr,
		start:      time.Now(),
		logManager: logging.NewSlogManager(),
	}

	configDir, err := homedir.Expand(configDir)
	if err != nil {
		return nil, fmt.Errorf("error expanding config path: %w", err)
	}
	configErr := config.Load(configDir)
	if logLevel != "" {
		viper.Set("logLevel", logLevel)
	}

	var logOut io.Writer = stderr
	if logsDir := config.GetString("logsDir"); logsDir != "" {
		a.logFile, err = logging.OpenLogFile(logsDir, AppName, a.start)
		if err != nil {
			fmt.Fprintf(stderr, "Failed to create log file, logging to stderr: %v\n", err)
		} else {
			logOut = a.logFile
		}
	}

	// Initialize OTel provider if enabled (after log file is created)
	otelCfg := config.GetOTelConfig()
	var otelLogProvider *sdklog.LoggerProvider
	if otelCfg.Enabled {
		a.otel, err = intOtel.New(intOtel.Config{
			Enabled:      otelCfg.Enabled,
			ServiceName:  otelCfg.ServiceName,
			BatchTimeout: otelCfg.BatchTimeout,
			LogWriter:    logOut,
			Endpoint:     otelCfg.Endpoint,
			Insecure:     otelCfg.Insecure,
		})
		if err != nil {
			fmt.Fprintf(stderr, "Failed to initialize OTel provider: %v\n", err)
		} else {
			otelLogProvider = a.otel.LoggerProvider()
		}
	}

	if config.GetBool("graylog.enabled") {
		h, err := logging.NewGraylogHandler(config.GetString("graylog.address"), config.GetString("logLevel"))
		if err != nil {
			fmt.Fprintf(stderr, "Failed to connect to Graylog: %v\n", err)
		} else {
			a.logManager.AddHandler(h)
		}
	}

	a.logManager.Setup(logOut, config.GetString("logLevel"), otelLogProvider)
	a.logger = a.logManager.Logger()
	a.zl = logging.NewZerolog(logOut, config.GetString("logLevel"))

	if configErr != nil {
		a.logger.Warn("Failed to load config, using defaults!", "error", configErr)
	} else {
		a.logger.Info("Loaded config", "dir", configDir)
	}
	a.logger.Info("Starting", "version", CurrentVersion, "build", BuildDate)

	a.dispatcher, err = dispatcher.New(a.logger)
	if err != nil {
		return nil, fmt.Errorf("creating dispatcher: %w", err)
	}
	a.register()
	return a, nil
}

// register adds every subcommand to the dispatcher.
func (a *app) register() {
	d := a.dispatcher
	d.Register("convert", a.cmdConvert, dispatcher.Logged(),
		dispatcher.Describe("convert <in.obj> <out.obj>: read and rewrite one object file"))
	d.Register("stats", a.cmdStats, dispatcher.Logged(),
		dispatcher.Describe("stats [-json] <file.obj>...: print read statistics and footprints"))
	batchOpts := []dispatcher.Option{dispatcher.Logged(),
		dispatcher.Describe("batch -out <dir> [-list file] [-j n] <dir|file>...: convert many files in parallel")}
	if limit := config.GetDuration("worker.timeout"); limit > 0 {
		batchOpts = append(batchOpts, dispatcher.Timeout(limit))
	}
	d.Register("batch", a.cmdBatch, batchOpts...)
	d.Register("watch", a.cmdWatch, dispatcher.Logged(),
		dispatcher.Describe("watch -out <dir> <dir>: convert object files whenever they change"))
	d.Register("refs", a.cmdRefs, dispatcher.Logged(),
		dispatcher.Describe("refs import|export|snapshot: manage dataref and command definitions"))
	d.Register("history", a.cmdHistory, dispatcher.Logged(),
		dispatcher.Describe("history [-n count]: list recorded conversions"))
	d.Register("version", func(context.Context, dispatcher.Event) (any, error) {
		fmt.Fprintf(a.stdout, "%s %s (%s)\n", AppName, CurrentVersion, BuildDate)
		return nil, nil
	}, dispatcher.Describe("version: print the version"))
}

func (a *app) usage() {
	fmt.Fprintf(a.stderr, "usage: %s [-config dir] [-log-level level] <command> [args]\n\ncommands:\n", AppName)
	for _, c := range a.dispatcher.Commands() {
		fmt.Fprintf(a.stderr, "  %s\n", c.Description)
	}
}

// close releases the storage backend and flushes telemetry.
func (a *app) close(ctx context.Context) {
	if a.backend != nil {
		if err := a.backend.Close(); err != nil {
			a.logger.Error("Error closing storage backend", "error", err)
		}
	}
	if a.influx != nil {
		if err := a.influx.Close(); err != nil {
			a.logger.Error("Error closing InfluxDB manager", "error", err)
		}
	}

	flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if a.otel != nil {
		a.logCounters(flushCtx)
	}
	a.logger.Info("Finished", "duration", time.Since(a.start))

	if err := a.logManager.Flush(flushCtx); err != nil {
		fmt.Fprintf(a.stderr, "Failed to flush logs: %v\n", err)
	}
	if a.otel != nil {
		if err := a.otel.Shutdown(flushCtx); err != nil {
			fmt.Fprintf(a.stderr, "Failed to shut down OTel provider: %v\n", err)
		}
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}

// logCounters writes the totals of the reader, writer and command counters.
func (a *app) logCounters(ctx context.Context) {
	counters, err := a.otel.Counters(ctx)
	if err != nil {
		a.logger.Warn("Failed to collect metrics", "error", err)
		return
	}
	attrs := make([]any, 0, 2*len(counters))
	for _, c := range counters {
		attrs = append(attrs, c.Name, c.Value)
	}
	a.logger.Info("Metrics", attrs...)
}

// reporter connects to InfluxDB when enabled. It returns nil otherwise, or
// when the connection could not be set up.
func (a *app) reporter(ctx context.Context) *influx.Manager {
	if a.influx != nil || !config.GetBool("influx.enabled") {
		return a.influx
	}
	backup := filepath.Join(config.GetString("logsDir"), "influx_backup.lp.gz")
	m := influx.NewManager(a.zl, backup)
	if err := m.Connect(ctx); err != nil {
		a.logger.Warn("InfluxDB reporting disabled", "error", err)
		return nil
	}
	a.influx = m
	return m
}
