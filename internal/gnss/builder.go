// internal/gnss/builder.go
package gnss

import (
	"io"
	"log/slog"
	"time"

	cfg "github.com/tamzrod/rtk-status/internal/config"
	"github.com/tamzrod/rtk-status/internal/status"
)

// Build constructs a Monitor and opens its serial source.
// The data log is optional: a failure there is logged and the monitor runs
// without it. The returned closer releases the port and the log.
func Build(c cfg.GNSSConfig, dev *status.Device, sink AccuracySink, log *slog.Logger) (*Monitor, io.Reader, func() error, error) {
	m, err := New(
		Config{FixTimeout: time.Duration(c.FixTimeoutMs) * time.Millisecond},
		dev,
		sink,
		log,
	)
	if err != nil {
		return nil, nil, nil, err
	}

	name, err := ResolvePort(c.Port)
	if err != nil {
		return nil, nil, nil, err
	}

	// fail fast at startup
	port, err := OpenPort(name, c.Baud)
	if err != nil {
		return nil, nil, nil, err
	}
	m.log.Info("receiver port open", "port", name, "baud", c.Baud)

	var dl *DataLog
	if c.LogDir != "" {
		dl, err = OpenDataLog(c.LogDir, dev, time.Now())
		if err != nil {
			m.log.Warn("data log disabled", "err", err)
		} else {
			m.SetRawLog(dl)
			m.log.Info("data log open", "path", dl.Path())
		}
	}

	closeAll := func() error {
		var last error
		if err := port.Close(); err != nil {
			last = err
		}
		if dl != nil {
			if err := dl.Close(); err != nil {
				last = err
			}
		}
		return last
	}

	return m, port, closeAll, nil
}
