// internal/indicator/indicator.go
package indicator

import (
	"time"

	"github.com/tamzrod/rtk-status/internal/status"
)

// Pattern is what an LED shows.
type Pattern uint8

const (
	Off Pattern = iota
	BlinkSlow
	BlinkFast
	Solid
)

// Blink periods (full on+off cycle).
const (
	SlowPeriod = 2 * time.Second
	FastPeriod = 500 * time.Millisecond
)

func (p Pattern) String() string {
	switch p {
	case Off:
		return "off"
	case BlinkSlow:
		return "blink_slow"
	case BlinkFast:
		return "blink_fast"
	case Solid:
		return "solid"
	default:
		return "unknown"
	}
}

// On reports the LED level at now, measured from epoch.
// Blinking patterns spend the first half of each period on.
func (p Pattern) On(epoch, now time.Time) bool {
	switch p {
	case Solid:
		return true
	case BlinkSlow:
		return phaseOn(now.Sub(epoch), SlowPeriod)
	case BlinkFast:
		return phaseOn(now.Sub(epoch), FastPeriod)
	default:
		return false
	}
}

func phaseOn(d, period time.Duration) bool {
	if d < 0 {
		d = -d
	}
	return d%period < period/2
}

// BaseState is the base status LED state: rover mode (off), surveying in
// (blinking), survey complete / transmitting RTCM (solid).
type BaseState uint8

const (
	BaseOff BaseState = iota
	BaseSurveyingInNotStarted // base requested, position accuracy too low
	BaseSurveyingInSlow
	BaseSurveyingInFast
	BaseTransmitting
)

func (b BaseState) String() string {
	switch b {
	case BaseOff:
		return "base_off"
	case BaseSurveyingInNotStarted:
		return "surveying_in_not_started"
	case BaseSurveyingInSlow:
		return "surveying_in_slow"
	case BaseSurveyingInFast:
		return "surveying_in_fast"
	case BaseTransmitting:
		return "transmitting"
	default:
		return "unknown"
	}
}

// RadioPattern maps the radio link to its LED: off, blinking while waiting
// for a connection, solid once connected.
func RadioPattern(l status.LinkState) Pattern {
	switch l {
	case status.LinkBluetoothNoConnection, status.LinkWifiNoConnection:
		return BlinkSlow
	case status.LinkBluetoothConnected, status.LinkWifiConnected:
		return Solid
	default:
		return Off
	}
}

// Base derives the base LED state. accuracy is the latest survey accuracy
// estimate (ok=false when none); below fastBelow the survey blinks fast.
func Base(m status.OperatingMode, accuracy float64, ok bool, fastBelow float64) BaseState {
	switch {
	case m == status.BaseSurveyNotStarted:
		return BaseSurveyingInNotStarted
	case m == status.BaseSurveyStarted:
		if ok && accuracy < fastBelow {
			return BaseSurveyingInFast
		}
		return BaseSurveyingInSlow
	case m.IsTransmitting():
		return BaseTransmitting
	default:
		return BaseOff
	}
}

// Pattern maps a base LED state to its blink pattern.
func (b BaseState) Pattern() Pattern {
	switch b {
	case BaseSurveyingInNotStarted, BaseSurveyingInSlow:
		return BlinkSlow
	case BaseSurveyingInFast:
		return BlinkFast
	case BaseTransmitting:
		return Solid
	default:
		return Off
	}
}

// Lights is the pair of status LEDs at one instant.
type Lights struct {
	Radio     Pattern
	Base      Pattern
	BaseState BaseState
}

// Evaluate derives both LEDs from the device.
func Evaluate(dev *status.Device, accuracy float64, ok bool, fastBelow float64) Lights {
	bs := Base(dev.Mode(), accuracy, ok, fastBelow)
	return Lights{
		Radio:     RadioPattern(dev.LinkState()),
		Base:      bs.Pattern(),
		BaseState: bs,
	}
}
