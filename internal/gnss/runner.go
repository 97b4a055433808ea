// internal/gnss/runner.go
package gnss

import (
	"bufio"
	"context"
	"errors"
	"io"
	"time"
)

// MaxLineLength bounds one received line. NMEA sentences are 82 bytes; longer
// newline-free runs (UBX or RTCM frames on a shared port) are discarded.
const MaxLineLength = 4096

// Run reads NMEA lines from src until ctx is done or src ends.
// One goroutine per receiver. Parse failures are logged and skipped.
// If src is an io.Closer it is closed when ctx is done, to unblock the read.
func (m *Monitor) Run(ctx context.Context, src io.Reader) error {
	if c, ok := src.(io.Closer); ok {
		stop := context.AfterFunc(ctx, func() { _ = c.Close() })
		defer stop()
	}

	sc := bufio.NewScanner(src)
	sc.Buffer(make([]byte, 0, 1024), 2*MaxLineLength)
	sc.Split(m.splitLines)
	for sc.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err := m.HandleLine(sc.Text(), time.Now()); err != nil {
			m.log.Debug("nmea line rejected", "err", err)
		}
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err := sc.Err(); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return io.EOF
}

// splitLines is bufio.ScanLines that drops over-long runs instead of failing.
func (m *Monitor) splitLines(data []byte, atEOF bool) (int, []byte, error) {
	advance, token, err := bufio.ScanLines(data, atEOF)
	if advance == 0 && token == nil && err == nil && len(data) >= MaxLineLength {
		m.log.Debug("discarding over-long receiver data", "bytes", len(data))
		return len(data), nil, nil
	}
	return advance, token, err
}
