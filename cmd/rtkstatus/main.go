// cmd/rtkstatus/main.go
package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tamzrod/rtk-status/internal/api"
	"github.com/tamzrod/rtk-status/internal/config"
	"github.com/tamzrod/rtk-status/internal/gnss"
	"github.com/tamzrod/rtk-status/internal/indicator"
	"github.com/tamzrod/rtk-status/internal/logging"
	"github.com/tamzrod/rtk-status/internal/metrics"
	"github.com/tamzrod/rtk-status/internal/status"
	"github.com/tamzrod/rtk-status/internal/survey"
	"github.com/tamzrod/rtk-status/internal/writer"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: rtkstatus <config.yaml>")
	}

	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)

	logger := logging.Setup(cfg.Logging)

	// --------------------
	// Status context
	// --------------------

	profile, _ := status.ParseProfile(cfg.Device.Profile)
	policy, _ := status.ParsePolicy(cfg.Device.Transitions)

	dev := status.NewDevice(status.Options{
		Profile: profile,
		Policy:  policy,
		OnTransition: func(from, to status.OperatingMode) {
			metrics.ModeTransitionsTotal.WithLabelValues(to.String()).Inc()
			logger.Info("mode changed", "from", from, "to", to, "screen", status.SelectScreen(to))
		},
	})
	dev.SetAvailable(status.PeripheralConfigStore, true)

	logger.Info("device ready",
		"name", cfg.Device.Name,
		"profile", profile,
		"transitions", cfg.Device.Transitions,
		"role", cfg.Device.Role,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// ---- survey controller (base builds only) ----
	var ctrl *survey.Controller
	if profile != status.ProfileRover {
		ctrl, err = survey.New(surveyConfig(cfg.Base), dev, logger)
		if err != nil {
			log.Fatalf("survey controller failed: %v", err)
		}
		if cfg.Device.Role == "base" {
			if err := ctrl.Start(time.Now()); err != nil {
				log.Fatalf("base start failed: %v", err)
			}
		}
	}

	// ---- receiver ----
	var sink gnss.AccuracySink
	if ctrl != nil {
		sink = ctrl
	}

	mon, src, closeGNSS, err := gnss.Build(cfg.GNSS, dev, sink, logger)
	if err != nil {
		log.Fatalf("gnss build failed: %v", err)
	}
	defer closeGNSS()

	go func() {
		err := mon.Run(ctx, src)
		if errors.Is(err, io.EOF) {
			logger.Error("receiver stream ended")
			cancel()
			return
		}
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("receiver stopped", "err", err)
			cancel()
		}
	}()

	// ---- status block export (optional) ----
	var exporter *writer.Exporter
	if cfg.Export.Endpoint != "" {
		sw, closeWriter, err := writer.Build(cfg.Export, cfg.Device.Name)
		if err != nil {
			log.Fatalf("status writer failed: %v", err)
		}
		defer closeWriter()
		exporter = writer.NewExporter(sw, dev, logger)
	}

	// ---- HTTP API (optional) ----
	if cfg.API.Listen != "" {
		srv := api.NewServer(api.Options{
			Listen:            cfg.API.Listen,
			AllowOrigins:      cfg.API.AllowOrigins,
			DeviceName:        cfg.Device.Name,
			FastBlinkAccuracy: cfg.Base.FastBlinkAccuracyM,
		}, dev, ctrl, logger)

		go func() {
			if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("api stopped", "err", err)
			}
		}()
	}

	// --------------------
	// Orchestrator (1 Hz ticks + export cadence)
	// --------------------

	run(ctx, orchestrator{
		dev:       dev,
		ctrl:      ctrl,
		mon:       mon,
		exporter:  exporter,
		interval:  time.Duration(cfg.Export.IntervalMs) * time.Millisecond,
		fastBelow: cfg.Base.FastBlinkAccuracyM,
		log:       logger,
	})

	logger.Info("shutting down")
}

func surveyConfig(b config.BaseConfig) survey.Config {
	c := survey.Config{
		StartAccuracy:  b.StartAccuracyM,
		TargetAccuracy: b.TargetAccuracyM,
		MinDuration:    time.Duration(b.MinSurveyS) * time.Second,
	}
	if b.Coordinates == "fixed" {
		c.Coordinates = survey.CoordinatesFixed
	}
	return c
}

type orchestrator struct {
	dev       *status.Device
	ctrl      *survey.Controller
	mon       *gnss.Monitor
	exporter  *writer.Exporter
	interval  time.Duration
	fastBelow float64
	log       *slog.Logger
}

func run(ctx context.Context, o orchestrator) {
	secTicker := time.NewTicker(time.Second)
	defer secTicker.Stop()

	exportTicker := time.NewTicker(o.interval)
	defer exportTicker.Stop()

	var lights indicator.Lights

	// Full block write on start (identity re-assert) if enabled.
	o.export(time.Now())

	for {
		select {
		case <-ctx.Done():
			return

		case now := <-secTicker.C:
			lights = o.step(now, lights)

		case now := <-exportTicker.C:
			o.export(now)
		}
	}
}

// step runs one 1 Hz pass: survey watchdog, fix timeout, then metrics and
// lights from the resulting state. It returns the lights for the next pass.
func (o orchestrator) step(now time.Time, lights indicator.Lights) indicator.Lights {
	if o.ctrl != nil {
		if _, err := o.ctrl.Tick(now); err != nil {
			o.log.Warn("survey watchdog", "err", err)
		}
	}
	if _, err := o.mon.Tick(now); err != nil {
		o.log.Warn("fix timeout", "err", err)
	}

	metrics.Observe(o.snapshot(now))

	var acc float64
	var ok bool
	if o.ctrl != nil {
		acc, ok = o.ctrl.LastAccuracy()
	}
	next := indicator.Evaluate(o.dev, acc, ok, o.fastBelow)
	if next != lights {
		o.log.Debug("lights",
			"radio", next.Radio,
			"base", next.Base,
			"base_state", next.BaseState,
		)
	}
	return next
}

func (o orchestrator) snapshot(now time.Time) status.Snapshot {
	if o.ctrl != nil {
		return o.ctrl.Snapshot(now)
	}
	return o.dev.Snapshot()
}

func (o orchestrator) export(now time.Time) {
	if o.exporter == nil {
		return
	}
	// errors are logged by the exporter
	_ = o.exporter.Export(o.snapshot(now))
}
