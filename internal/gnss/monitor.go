// internal/gnss/monitor.go
package gnss

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	nmea "github.com/adrianmo/go-nmea"

	"github.com/tamzrod/rtk-status/internal/metrics"
	"github.com/tamzrod/rtk-status/internal/status"
)

// Config is the minimal runtime config the monitor needs.
type Config struct {
	// FixTimeout is how long the rover keeps its fix without a GGA sentence.
	FixTimeout time.Duration
}

// Monitor turns an NMEA stream into rover fix modes and base accuracy samples.
// It writes rover modes only while the device is in the rover family.
type Monitor struct {
	cfg  Config
	dev  *status.Device
	sink AccuracySink
	log  *slog.Logger

	mu      sync.Mutex
	lastGGA time.Time
	raw     io.Writer
}

// New creates a monitor. sink may be nil when no base role is configured.
func New(cfg Config, dev *status.Device, sink AccuracySink, log *slog.Logger) (*Monitor, error) {
	if dev == nil {
		return nil, errors.New("gnss: device required")
	}
	if cfg.FixTimeout <= 0 {
		return nil, errors.New("gnss: fix timeout must be > 0")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Monitor{cfg: cfg, dev: dev, sink: sink, log: log.With("component", "gnss")}, nil
}

// SetRawLog tees every received line to w (nil disables).
func (m *Monitor) SetRawLog(w io.Writer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw = w
}

// HandleLine processes exactly one NMEA line received at now.
// Sentence types other than GGA and GST are counted and ignored.
func (m *Monitor) HandleLine(line string, now time.Time) (Reading, error) {
	line = strings.TrimSpace(line)
	res := Reading{At: now}
	if line == "" {
		return res, nil
	}

	m.tee(line)

	s, err := nmea.Parse(line)
	if err != nil {
		metrics.NMEAErrorsTotal.Inc()
		return res, fmt.Errorf("gnss: parse: %w", err)
	}
	res.Type = s.DataType()
	metrics.NMEASentencesTotal.WithLabelValues(res.Type).Inc()

	switch v := s.(type) {
	case nmea.GGA:
		res.HasFix = true
		res.FixQuality = v.FixQuality
		res.Mode = RoverMode(v.FixQuality)

		m.mu.Lock()
		m.lastGGA = now
		m.mu.Unlock()

		return res, m.applyRover(res.Mode)

	case nmea.GST:
		res.HasAccuracy = true
		res.Accuracy = math.Hypot(v.STDLat, v.STDLong)

		if m.sink != nil && m.dev.Mode().IsBase() {
			return res, m.sink.Observe(res.Accuracy, now)
		}
	}

	return res, nil
}

// Tick drops the rover back to RoverNoFix when no GGA arrived within the
// fix timeout. It reports whether the fix was dropped.
func (m *Monitor) Tick(now time.Time) (bool, error) {
	mode := m.dev.Mode()
	if !mode.IsRover() || mode == status.RoverNoFix {
		return false, nil
	}

	m.mu.Lock()
	last := m.lastGGA
	m.mu.Unlock()

	if !last.IsZero() && now.Sub(last) < m.cfg.FixTimeout {
		return false, nil
	}

	changed, err := m.dev.TransitionIf(status.OperatingMode.IsRover, status.RoverNoFix)
	if err != nil {
		return false, fmt.Errorf("gnss: %w", err)
	}
	if changed {
		m.log.Warn("fix lost: no GGA within timeout", "timeout", m.cfg.FixTimeout, "mode", mode)
	}
	return changed, nil
}

func (m *Monitor) applyRover(mode status.OperatingMode) error {
	// base role owns the mode; the base profile has no rover fixes
	if !m.dev.Mode().IsRover() || !m.dev.Profile().Reachable(mode) {
		return nil
	}

	// a base start may land between the check above and this write
	changed, err := m.dev.TransitionIf(status.OperatingMode.IsRover, mode)
	if err != nil {
		return fmt.Errorf("gnss: %w", err)
	}
	if changed {
		m.log.Info("fix quality changed", "to", mode)
	}
	return nil
}

func (m *Monitor) tee(line string) {
	m.mu.Lock()
	w := m.raw
	m.mu.Unlock()

	if w == nil {
		return
	}
	if _, err := io.WriteString(w, line+"\r\n"); err != nil {
		m.log.Warn("raw log write failed", "err", err)
	}
}
