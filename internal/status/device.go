// internal/status/device.go
package status

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// Options configures a Device. The zero value is the full profile with
// permissive transitions.
type Options struct {
	Profile Profile
	Policy  Policy

	// OnTransition, when set, is called after every mode change.
	// It is not called when the requested mode equals the current one.
	OnTransition func(from, to OperatingMode)
}

// Device is the shared status context of one receiver.
// Mode and screen change together under mu; the lock is never held across
// IO or hooks. Link and peripheral flags are independent atomic words.
type Device struct {
	opts Options

	mu     sync.Mutex
	mode   OperatingMode
	screen DisplayScreen

	link atomic.Uint32

	online [peripheralCount]atomic.Bool
}

// NewDevice returns a Device in the power-on state:
// RoverNoFix, ScreenRover, LinkOff, every peripheral offline.
func NewDevice(opts Options) *Device {
	d := &Device{opts: opts}
	d.Reset()
	return d
}

// Reset restores the power-on state (soft reset). No hook fires.
func (d *Device) Reset() {
	d.mu.Lock()
	d.mode = RoverNoFix
	d.screen = SelectScreen(RoverNoFix)
	d.mu.Unlock()

	d.link.Store(uint32(LinkOff))
	for i := range d.online {
		d.online[i].Store(false)
	}
}

// Profile returns the configured profile.
func (d *Device) Profile() Profile { return d.opts.Profile }

// ---- OPERATING MODE ----

// Mode returns the current operating mode.
func (d *Device) Mode() OperatingMode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

// Screen returns the screen currently selected for rendering.
func (d *Device) Screen() DisplayScreen {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.screen
}

// TransitionTo moves the device to mode m and reselects the screen.
//
// Requesting the current mode is a no-op and reports changed=false.
// The permissive policy accepts any move. The guarded policy rejects moves
// outside Allowed with ErrTransitionNotAllowed. Modes the profile cannot reach
// are rejected with ErrModeUnavailable under either policy.
func (d *Device) TransitionTo(m OperatingMode) (bool, error) {
	return d.TransitionIf(nil, m)
}

// TransitionIf is TransitionTo applied only while when(current mode) holds.
// The check and the move happen atomically; a false predicate reports
// changed=false and no error. A nil predicate always holds.
func (d *Device) TransitionIf(when func(OperatingMode) bool, m OperatingMode) (bool, error) {
	if !d.opts.Profile.Reachable(m) {
		return false, fmt.Errorf("%w: %s (profile=%s)", ErrModeUnavailable, m, d.opts.Profile)
	}

	d.mu.Lock()
	from := d.mode
	if from == m || (when != nil && !when(from)) {
		d.mu.Unlock()
		return false, nil
	}
	if d.opts.Policy == PolicyGuarded && !Allowed(from, m) {
		d.mu.Unlock()
		return false, fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, from, m)
	}
	d.mode = m
	d.screen = SelectScreen(m)
	d.mu.Unlock()

	if d.opts.OnTransition != nil {
		d.opts.OnTransition(from, m)
	}
	return true, nil
}

// ReportBaseFault switches the screen to ScreenBaseFailed while the device is
// in a base mode. It reports whether the screen changed. The next mode change
// selects the screen from the mode again.
func (d *Device) ReportBaseFault() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.mode.IsBase() || d.screen == ScreenBaseFailed {
		return false
	}
	d.screen = ScreenBaseFailed
	return true
}

// ---- LINK ----

// SetLinkState overwrites the radio state. No transition validation.
func (d *Device) SetLinkState(l LinkState) { d.link.Store(uint32(l)) }

// LinkState returns the current radio state.
func (d *Device) LinkState() LinkState { return LinkState(d.link.Load()) }

// ---- PERIPHERALS ----

// SetAvailable records whether peripheral p is online. Idempotent.
// Unknown peripherals are ignored.
func (d *Device) SetAvailable(p Peripheral, ok bool) {
	if p >= peripheralCount {
		return
	}
	d.online[p].Store(ok)
}

// IsAvailable reports whether peripheral p is online.
func (d *Device) IsAvailable(p Peripheral) bool {
	if p >= peripheralCount {
		return false
	}
	return d.online[p].Load()
}

// Peripherals returns the online flags as a bitmask, bit n = Peripheral(n).
func (d *Device) Peripherals() uint16 {
	var mask uint16
	for i := range d.online {
		if d.online[i].Load() {
			mask |= 1 << uint(i)
		}
	}
	return mask
}

// Snapshot copies the device-owned fields. Survey fields are left zero;
// the survey controller fills them.
func (d *Device) Snapshot() Snapshot {
	d.mu.Lock()
	mode, screen := d.mode, d.screen
	d.mu.Unlock()

	return Snapshot{
		Mode:        mode,
		Screen:      screen,
		Link:        d.LinkState(),
		Peripherals: d.Peripherals(),
	}
}
