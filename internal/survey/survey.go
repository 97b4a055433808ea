// internal/survey/survey.go
package survey

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/tamzrod/rtk-status/internal/metrics"
	"github.com/tamzrod/rtk-status/internal/status"
)

// Coordinates selects how the base learns its own position.
type Coordinates uint8

const (
	// CoordinatesSurvey averages fixes (survey-in) before transmitting.
	CoordinatesSurvey Coordinates = iota
	// CoordinatesFixed transmits from a pre-set coordinate immediately.
	CoordinatesFixed
)

// Config is the survey-in tuning. Accuracies are horizontal, in meters.
type Config struct {
	Coordinates Coordinates

	// StartAccuracy is the accuracy the receiver must reach before
	// survey-in starts.
	StartAccuracy float64

	// TargetAccuracy and MinDuration together define convergence.
	TargetAccuracy float64
	MinDuration    time.Duration
}

// Controller drives the base branch of the operating mode.
// It is the only writer of base modes in normal operation.
type Controller struct {
	mu  sync.Mutex
	cfg Config
	dev *status.Device
	log *slog.Logger

	startedAt time.Time
	restarts  uint32

	lastAcc float64
	hasAcc  bool
}

// New creates a controller for dev.
func New(cfg Config, dev *status.Device, log *slog.Logger) (*Controller, error) {
	if dev == nil {
		return nil, errors.New("survey: device required")
	}
	if cfg.Coordinates == CoordinatesSurvey {
		if cfg.StartAccuracy <= 0 || cfg.TargetAccuracy <= 0 {
			return nil, errors.New("survey: accuracies must be > 0")
		}
		if cfg.TargetAccuracy > cfg.StartAccuracy {
			return nil, fmt.Errorf(
				"survey: target accuracy %.2fm looser than start accuracy %.2fm",
				cfg.TargetAccuracy,
				cfg.StartAccuracy,
			)
		}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Controller{cfg: cfg, dev: dev, log: log.With("component", "survey")}, nil
}

// Start enters the base role.
func (c *Controller) Start(now time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.startedAt = time.Time{}

	if c.cfg.Coordinates == CoordinatesFixed {
		return c.transition(transmitMode(true, c.dev.LinkState()))
	}
	return c.transition(status.BaseSurveyNotStarted)
}

// Stop leaves the base role. The device resets to RoverNoFix.
func (c *Controller) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.startedAt = time.Time{}
	return c.transition(status.RoverNoFix)
}

// Observe feeds one horizontal accuracy estimate taken at now.
// Convergence is checked before the watchdog, so a converging sample at the
// timeout boundary wins.
func (c *Controller) Observe(accuracy float64, now time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastAcc = accuracy
	c.hasAcc = true

	switch c.dev.Mode() {
	case status.BaseSurveyNotStarted:
		if accuracy <= c.cfg.StartAccuracy {
			c.startedAt = now
			c.log.Info("survey-in started", "accuracy_m", accuracy)
			return c.transitionFrom(status.BaseSurveyNotStarted, status.BaseSurveyStarted)
		}

	case status.BaseSurveyStarted:
		c.adopt(now)
		elapsed := now.Sub(c.startedAt)
		if accuracy <= c.cfg.TargetAccuracy && elapsed >= c.cfg.MinDuration {
			c.startedAt = time.Time{}
			c.log.Info("survey-in converged", "accuracy_m", accuracy, "elapsed", elapsed)
			return c.transitionFrom(status.BaseSurveyStarted, transmitMode(false, c.dev.LinkState()))
		}
		_, err := c.watchdog(now)
		return err
	}

	return nil
}

// Tick runs the survey-in watchdog. A survey held in BaseSurveyStarted for
// status.SurveyTimeout or longer is restarted from BaseSurveyNotStarted.
func (c *Controller) Tick(now time.Time) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dev.Mode() != status.BaseSurveyStarted {
		c.startedAt = time.Time{}
		return false, nil
	}
	c.adopt(now)
	return c.watchdog(now)
}

// SyncLink moves a transmitting base onto the Wi-Fi variant matching link.
func (c *Controller) SyncLink(link status.LinkState) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.dev.Mode()
	if !m.IsTransmitting() {
		return nil
	}
	fixed := m.IsFixedBase()
	_, err := c.dev.TransitionIf(func(cur status.OperatingMode) bool {
		return cur.IsTransmitting() && cur.IsFixedBase() == fixed
	}, transmitMode(fixed, link))
	if err != nil {
		return fmt.Errorf("survey: %w", err)
	}
	return nil
}

// Elapsed returns how long the current survey-in has been running.
func (c *Controller) Elapsed(now time.Time) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dev.Mode() != status.BaseSurveyStarted || c.startedAt.IsZero() {
		return 0
	}
	return now.Sub(c.startedAt)
}

// Restarts returns the number of watchdog restarts since start-up.
func (c *Controller) Restarts() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.restarts
}

// LastAccuracy returns the most recent accuracy estimate, if any.
func (c *Controller) LastAccuracy() (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastAcc, c.hasAcc
}

// Snapshot returns the device snapshot with the survey fields filled.
func (c *Controller) Snapshot(now time.Time) status.Snapshot {
	s := c.dev.Snapshot()
	s.SurveySeconds = saturate16(uint64(c.Elapsed(now) / time.Second))
	s.SurveyRestarts = saturate16(uint64(c.Restarts()))
	return s
}

// ---- internal ----

// adopt starts the clock for a survey entered by someone else.
func (c *Controller) adopt(now time.Time) {
	if c.startedAt.IsZero() {
		c.startedAt = now
	}
}

func (c *Controller) watchdog(now time.Time) (bool, error) {
	elapsed := now.Sub(c.startedAt)
	if elapsed < status.SurveyTimeout {
		return false, nil
	}

	c.startedAt = time.Time{}
	c.restarts++
	metrics.SurveyRestartsTotal.Inc()
	c.log.Warn("survey-in timed out, restarting", "elapsed", elapsed, "restarts", c.restarts)

	return true, c.transitionFrom(status.BaseSurveyStarted, status.BaseSurveyNotStarted)
}

func (c *Controller) transition(m status.OperatingMode) error {
	if _, err := c.dev.TransitionTo(m); err != nil {
		return fmt.Errorf("survey: %w", err)
	}
	return nil
}

// transitionFrom moves to m only if the device is still in from.
func (c *Controller) transitionFrom(from, m status.OperatingMode) error {
	_, err := c.dev.TransitionIf(func(cur status.OperatingMode) bool { return cur == from }, m)
	if err != nil {
		return fmt.Errorf("survey: %w", err)
	}
	return nil
}

func transmitMode(fixed bool, link status.LinkState) status.OperatingMode {
	switch {
	case link == status.LinkWifiConnected && fixed:
		return status.BaseFixedWifiConnected
	case link == status.LinkWifiConnected:
		return status.BaseWifiConnected
	case link == status.LinkWifiNoConnection && fixed:
		return status.BaseFixedWifiStarted
	case link == status.LinkWifiNoConnection:
		return status.BaseWifiStarted
	case fixed:
		return status.BaseFixedTransmitting
	default:
		return status.BaseTransmitting
	}
}

func saturate16(v uint64) uint16 {
	if v > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(v)
}
