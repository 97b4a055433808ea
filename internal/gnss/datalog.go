// internal/gnss/datalog.go
package gnss

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/tamzrod/rtk-status/internal/status"
)

// DataLog is the raw NMEA log on local storage.
// Opening it brings the storage and logging peripherals online.
type DataLog struct {
	mu   sync.Mutex
	f    *os.File
	dev  *status.Device
	path string
}

// OpenDataLog creates dir if needed and opens a new log file named after now.
func OpenDataLog(dir string, dev *status.Device, now time.Time) (*DataLog, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		dev.SetAvailable(status.PeripheralStorage, false)
		return nil, fmt.Errorf("gnss: data log dir: %w", err)
	}
	dev.SetAvailable(status.PeripheralStorage, true)

	path := filepath.Join(dir, "nmea-"+now.UTC().Format("20060102-150405")+".log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("gnss: data log open: %w", err)
	}
	dev.SetAvailable(status.PeripheralLogging, true)

	return &DataLog{f: f, dev: dev, path: path}, nil
}

// Path returns the log file path.
func (l *DataLog) Path() string { return l.path }

func (l *DataLog) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.f == nil {
		return 0, os.ErrClosed
	}
	n, err := l.f.Write(p)
	if err != nil {
		// storage went away under us
		l.dev.SetAvailable(status.PeripheralLogging, false)
	}
	return n, err
}

// Close stops logging. Storage stays online.
func (l *DataLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	l.dev.SetAvailable(status.PeripheralLogging, false)
	return err
}
