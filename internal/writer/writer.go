// internal/writer/writer.go
package writer

import (
	"log/slog"

	"github.com/tamzrod/rtk-status/internal/metrics"
	"github.com/tamzrod/rtk-status/internal/status"
)

// Exporter delivers snapshots through a StatusWriter and keeps the
// serial-output peripheral flag in step with delivery health.
type Exporter struct {
	sw  StatusWriter
	dev *status.Device
	log *slog.Logger

	failing bool
}

// NewExporter wraps sw. The serial-output peripheral goes online on the
// first successful write.
func NewExporter(sw StatusWriter, dev *status.Device, log *slog.Logger) *Exporter {
	if log == nil {
		log = slog.Default()
	}
	return &Exporter{sw: sw, dev: dev, log: log.With("component", "export")}
}

// Export writes one snapshot. Errors are logged and counted, never fatal.
func (e *Exporter) Export(s status.Snapshot) error {
	err := e.sw.WriteStatus(s)
	if err != nil {
		metrics.StatusWritesTotal.WithLabelValues("error").Inc()
		e.dev.SetAvailable(status.PeripheralSerialOutput, false)
		if !e.failing {
			e.log.Warn("status write failed", "err", err)
		}
		e.failing = true
		return err
	}

	metrics.StatusWritesTotal.WithLabelValues("ok").Inc()
	e.dev.SetAvailable(status.PeripheralSerialOutput, true)
	if e.failing {
		e.log.Info("status writes recovered")
	}
	e.failing = false
	return nil
}
