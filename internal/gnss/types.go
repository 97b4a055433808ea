// internal/gnss/types.go
package gnss

import (
	"time"

	nmea "github.com/adrianmo/go-nmea"

	"github.com/tamzrod/rtk-status/internal/status"
)

// AccuracySink receives horizontal accuracy estimates while the device is a base.
type AccuracySink interface {
	Observe(accuracy float64, now time.Time) error
}

// Reading is what one NMEA line contributed. Zero fields mean "not in this line".
type Reading struct {
	At   time.Time
	Type string // NMEA data type, e.g. GGA

	HasFix     bool
	FixQuality string
	Mode       status.OperatingMode

	HasAccuracy bool
	Accuracy    float64 // horizontal 1-sigma, meters
}

// RoverMode maps a GGA fix quality indicator to a rover operating mode.
func RoverMode(quality string) status.OperatingMode {
	switch quality {
	case nmea.GPS, nmea.DGPS, nmea.PPS:
		return status.RoverFix
	case nmea.FRTK:
		return status.RoverRtkFloat
	case nmea.RTK:
		return status.RoverRtkFix
	default:
		// invalid, estimated (dead reckoning), manual, simulation
		return status.RoverNoFix
	}
}
