// internal/survey/survey_test.go
package survey

import (
	"testing"
	"time"

	"github.com/tamzrod/rtk-status/internal/status"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newController(t *testing.T, cfg Config, opts status.Options) (*Controller, *status.Device) {
	t.Helper()
	dev := status.NewDevice(opts)
	c, err := New(cfg, dev, nil)
	if err != nil {
		t.Fatalf("New() err=%v", err)
	}
	return c, dev
}

func surveyConfig() Config {
	return Config{
		Coordinates:    CoordinatesSurvey,
		StartAccuracy:  5.0,
		TargetAccuracy: 2.0,
		MinDuration:    60 * time.Second,
	}
}

func TestNew_RejectsBadAccuracy(t *testing.T) {
	dev := status.NewDevice(status.Options{})

	if _, err := New(Config{StartAccuracy: 1, TargetAccuracy: 2}, dev, nil); err == nil {
		t.Fatalf("expected error for target looser than start")
	}
	if _, err := New(Config{}, dev, nil); err == nil {
		t.Fatalf("expected error for zero accuracies")
	}
	if _, err := New(Config{Coordinates: CoordinatesFixed}, dev, nil); err != nil {
		t.Fatalf("fixed base needs no accuracies: %v", err)
	}
	if _, err := New(surveyConfig(), nil, nil); err == nil {
		t.Fatalf("expected error for nil device")
	}
}

func TestSurvey_StartsAndConverges(t *testing.T) {
	c, dev := newController(t, surveyConfig(), status.Options{Policy: status.PolicyGuarded})

	if err := c.Start(t0); err != nil {
		t.Fatalf("Start err=%v", err)
	}
	if dev.Mode() != status.BaseSurveyNotStarted {
		t.Fatalf("mode: got %s", dev.Mode())
	}

	// too coarse to start
	if err := c.Observe(8.0, t0); err != nil {
		t.Fatalf("Observe err=%v", err)
	}
	if dev.Mode() != status.BaseSurveyNotStarted {
		t.Fatalf("survey started above start accuracy")
	}

	if err := c.Observe(4.0, t0.Add(time.Second)); err != nil {
		t.Fatalf("Observe err=%v", err)
	}
	if dev.Mode() != status.BaseSurveyStarted {
		t.Fatalf("mode: got %s want base_survey_started", dev.Mode())
	}

	// accurate enough but before MinDuration
	_ = c.Observe(1.5, t0.Add(30*time.Second))
	if dev.Mode() != status.BaseSurveyStarted {
		t.Fatalf("converged before minimum duration")
	}
	if got := c.Elapsed(t0.Add(30 * time.Second)); got != 29*time.Second {
		t.Fatalf("elapsed: got %v want 29s", got)
	}

	_ = c.Observe(1.5, t0.Add(61*time.Second))
	if dev.Mode() != status.BaseTransmitting {
		t.Fatalf("mode: got %s want base_transmitting", dev.Mode())
	}
	if dev.Screen() != status.ScreenBaseTransmitting {
		t.Fatalf("screen: got %s", dev.Screen())
	}
}

func TestSurvey_WatchdogBoundary(t *testing.T) {
	c, dev := newController(t, surveyConfig(), status.Options{})

	_ = c.Start(t0)
	_ = c.Observe(4.0, t0)

	restarted, err := c.Tick(t0.Add(status.SurveyTimeout - time.Second))
	if err != nil || restarted {
		t.Fatalf("restart before timeout: restarted=%v err=%v", restarted, err)
	}
	if dev.Mode() != status.BaseSurveyStarted {
		t.Fatalf("mode: got %s", dev.Mode())
	}

	restarted, err = c.Tick(t0.Add(status.SurveyTimeout))
	if err != nil || !restarted {
		t.Fatalf("no restart at exactly the timeout: restarted=%v err=%v", restarted, err)
	}
	if dev.Mode() != status.BaseSurveyNotStarted {
		t.Fatalf("mode: got %s want base_survey_not_started", dev.Mode())
	}
	if c.Restarts() != 1 {
		t.Fatalf("restarts: got %d want 1", c.Restarts())
	}
	if s := c.Snapshot(t0.Add(status.SurveyTimeout)); s.SurveyRestarts != 1 || s.SurveySeconds != 0 {
		t.Fatalf("snapshot survey fields: %+v", s)
	}
}

func TestSurvey_ConvergenceBeatsWatchdog(t *testing.T) {
	c, dev := newController(t, surveyConfig(), status.Options{})

	_ = c.Start(t0)
	_ = c.Observe(4.0, t0)
	_ = c.Observe(1.0, t0.Add(status.SurveyTimeout))

	if dev.Mode() != status.BaseTransmitting {
		t.Fatalf("mode: got %s want base_transmitting", dev.Mode())
	}
	if c.Restarts() != 0 {
		t.Fatalf("watchdog fired on converging sample")
	}
}

func TestSurvey_ObserveRunsWatchdog(t *testing.T) {
	c, dev := newController(t, surveyConfig(), status.Options{})

	_ = c.Start(t0)
	_ = c.Observe(4.0, t0)
	_ = c.Observe(3.0, t0.Add(status.SurveyTimeout+time.Minute))

	if dev.Mode() != status.BaseSurveyNotStarted {
		t.Fatalf("mode: got %s want base_survey_not_started", dev.Mode())
	}
}

func TestSurvey_AdoptsExternalStart(t *testing.T) {
	c, dev := newController(t, surveyConfig(), status.Options{})

	_, _ = dev.TransitionTo(status.BaseSurveyStarted)

	if restarted, _ := c.Tick(t0); restarted {
		t.Fatalf("external survey restarted immediately")
	}
	if restarted, _ := c.Tick(t0.Add(status.SurveyTimeout)); !restarted {
		t.Fatalf("adopted survey never timed out")
	}
}

func TestFixedBase_FollowsWifi(t *testing.T) {
	c, dev := newController(t, Config{Coordinates: CoordinatesFixed}, status.Options{Policy: status.PolicyGuarded})

	dev.SetLinkState(status.LinkWifiNoConnection)
	if err := c.Start(t0); err != nil {
		t.Fatalf("Start err=%v", err)
	}
	if dev.Mode() != status.BaseFixedWifiStarted {
		t.Fatalf("mode: got %s want base_fixed_wifi_started", dev.Mode())
	}

	dev.SetLinkState(status.LinkWifiConnected)
	if err := c.SyncLink(dev.LinkState()); err != nil {
		t.Fatalf("SyncLink err=%v", err)
	}
	if dev.Mode() != status.BaseFixedWifiConnected {
		t.Fatalf("mode: got %s want base_fixed_wifi_connected", dev.Mode())
	}

	_ = c.SyncLink(status.LinkBluetoothConnected)
	if dev.Mode() != status.BaseFixedTransmitting {
		t.Fatalf("mode: got %s want base_fixed_transmitting", dev.Mode())
	}
	if dev.Screen() != status.ScreenBaseFixedTransmitting {
		t.Fatalf("screen: got %s", dev.Screen())
	}

	if err := c.Stop(); err != nil {
		t.Fatalf("Stop err=%v", err)
	}
	if dev.Mode() != status.RoverNoFix {
		t.Fatalf("mode after stop: got %s", dev.Mode())
	}
}

func TestSyncLink_IgnoredWhileSurveying(t *testing.T) {
	c, dev := newController(t, surveyConfig(), status.Options{})

	_ = c.Start(t0)
	_ = c.SyncLink(status.LinkWifiConnected)
	if dev.Mode() != status.BaseSurveyNotStarted {
		t.Fatalf("link sync moved a surveying base: %s", dev.Mode())
	}
}
