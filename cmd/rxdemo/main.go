// Command rxdemo loads a pipeline description, runs it and prints every
// value it delivers.
//
//	rxdemo --config ./cmd/rxdemo/config.yml
//	rxdemo --spec ./pipeline.yml --otel
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/kbukum/rxkit/config"
	"github.com/kbukum/rxkit/logger"
	"github.com/kbukum/rxkit/observability"
	"github.com/kbukum/rxkit/pipeline"
	"github.com/kbukum/rxkit/stream"
	"github.com/kbukum/rxkit/version"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		logger.Error("rxdemo failed", logger.Fields(logger.FieldError, err.Error()))
		os.Exit(1)
	}
}

type flags struct {
	configFile  string
	envFile     string
	specFile    string
	showVersion bool
	otel        bool
}

func parseFlags(args []string, out io.Writer) (flags, error) {
	var f flags
	fs := pflag.NewFlagSet(serviceName, pflag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVarP(&f.configFile, "config", "c", "", "Path to config.yml (searched for when empty)")
	fs.StringVar(&f.envFile, "env-file", "", "Path to a .env file (searched for when empty)")
	fs.StringVarP(&f.specFile, "spec", "s", "", "Pipeline YAML file, replaces the pipeline section of the config")
	fs.BoolVar(&f.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&f.otel, "otel", false, "Export metrics and traces over OTLP HTTP")
	return f, fs.Parse(args)
}

func run(ctx context.Context, args []string, out io.Writer) error {
	f, err := parseFlags(args, out)
	if stderrors.Is(err, pflag.ErrHelp) {
		return nil
	}
	if err != nil {
		return err
	}
	if f.showVersion {
		_, err := fmt.Fprintln(out, version.Get().String())
		return err
	}

	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}

	logger.Init(cfg.Logging)
	logger.RegisterDefaults("stream", "pipeline")
	log := logger.Get("pipeline")

	src, err := pipeline.Build(cfg.Pipeline)
	if err != nil {
		return err
	}
	name := cfg.Pipeline.Name

	if cfg.Telemetry.Enabled {
		shutdown, err := initTelemetry(ctx, cfg)
		if err != nil {
			return err
		}
		defer shutdown()

		metrics, err := observability.NewMetrics(observability.Meter(serviceName))
		if err != nil {
			return err
		}
		src = observability.Metered(src, metrics, name)
		src = observability.Traced(ctx, src, observability.Tracer(serviceName), name)
	}
	src = observability.Logged(src, logger.Get("stream"), name)

	log.Info("running pipeline", logger.Fields(
		"name", name,
		"pipeline", cfg.Pipeline.String(),
		"version", version.Get().Short(),
	))

	start := time.Now()
	var count int
	var writeErr error
	completed := stream.ForEach(src, func(v int) bool {
		if _, writeErr = fmt.Fprintln(out, v); writeErr != nil {
			return false
		}
		count++
		return true
	})
	if writeErr != nil {
		return writeErr
	}

	fields := logger.DurationFields("run", time.Since(start))
	fields[logger.FieldCount] = count
	fields[logger.FieldStatus] = status(completed)
	log.Info("pipeline finished", fields)
	return nil
}

func loadConfig(f flags) (*AppConfig, error) {
	var opts []config.LoaderOption
	if f.configFile != "" {
		opts = append(opts, config.WithConfigFile(f.configFile))
	}
	if f.envFile != "" {
		opts = append(opts, config.WithEnvFile(f.envFile))
	}

	cfg := &AppConfig{}
	if err := config.LoadConfig(serviceName, cfg, opts...); err != nil {
		return nil, err
	}
	if f.specFile != "" {
		spec, err := pipeline.LoadFile(f.specFile)
		if err != nil {
			return nil, err
		}
		cfg.Pipeline = spec
	}
	if f.otel {
		cfg.Telemetry.Enabled = true
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func initTelemetry(ctx context.Context, cfg *AppConfig) (func(), error) {
	tc := observability.DefaultTracerConfig(cfg.Name)
	tc.ServiceVersion = version.Get().Short()
	tc.Environment = cfg.Environment
	tc.Endpoint = cfg.Telemetry.Endpoint
	tc.Insecure = cfg.Telemetry.Insecure
	tc.SampleRate = cfg.Telemetry.SampleRate

	tp, err := observability.InitTracer(ctx, tc)
	if err != nil {
		return nil, err
	}

	mc := observability.DefaultMeterConfig(cfg.Name)
	mc.ServiceVersion = tc.ServiceVersion
	mc.Environment = cfg.Environment
	mc.Endpoint = cfg.Telemetry.Endpoint
	mc.Insecure = cfg.Telemetry.Insecure

	mp, err := observability.InitMeter(ctx, &mc)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}

	return func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mp.Shutdown(sctx); err != nil {
			logger.Warn("meter shutdown", logger.ErrorFields("shutdown", err))
		}
		if err := tp.Shutdown(sctx); err != nil {
			logger.Warn("tracer shutdown", logger.ErrorFields("shutdown", err))
		}
	}, nil
}

func status(completed bool) string {
	if completed {
		return "completed"
	}
	return "incomplete"
}
