// internal/status/transition.go
package status

import (
	"errors"
	"fmt"
)

var (
	// ErrTransitionNotAllowed is returned by a guarded Device for a move
	// outside the transition table.
	ErrTransitionNotAllowed = errors.New("status: transition not allowed")

	// ErrModeUnavailable is returned when the mode is not part of the
	// configured profile, or is not a declared mode at all.
	ErrModeUnavailable = errors.New("status: mode unavailable in profile")
)

// Profile selects which operating modes a build of the firmware can reach.
type Profile uint8

const (
	// ProfileFull reaches every mode.
	ProfileFull Profile = iota
	// ProfileBase reaches the base tracks plus RoverNoFix (power-on and reset).
	ProfileBase
	// ProfileRover reaches the rover family only.
	ProfileRover
)

func (p Profile) String() string {
	switch p {
	case ProfileFull:
		return "full"
	case ProfileBase:
		return "base"
	case ProfileRover:
		return "rover"
	default:
		return fmt.Sprintf("profile(%d)", uint8(p))
	}
}

// ParseProfile resolves a profile name. Empty means full.
func ParseProfile(s string) (Profile, error) {
	switch s {
	case "", "full":
		return ProfileFull, nil
	case "base":
		return ProfileBase, nil
	case "rover":
		return ProfileRover, nil
	default:
		return 0, fmt.Errorf("status: unknown profile %q", s)
	}
}

// Reachable reports whether m exists in profile p.
func (p Profile) Reachable(m OperatingMode) bool {
	if !m.Valid() {
		return false
	}
	switch p {
	case ProfileBase:
		return m == RoverNoFix || m.IsBase()
	case ProfileRover:
		return m.IsRover()
	default:
		return true
	}
}

// Policy decides whether TransitionTo validates moves.
type Policy uint8

const (
	// PolicyPermissive accepts any mode from any mode.
	PolicyPermissive Policy = iota
	// PolicyGuarded only accepts moves listed by Allowed.
	PolicyGuarded
)

// ParsePolicy resolves a policy name. Empty means permissive.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "permissive":
		return PolicyPermissive, nil
	case "guarded":
		return PolicyGuarded, nil
	default:
		return 0, fmt.Errorf("status: unknown transition policy %q", s)
	}
}

// Allowed reports whether from -> to is a legal move in the guarded table.
//
// Rover fix quality is reported by the receiver and may jump tiers in either
// direction. Any mode may reset to RoverNoFix. Entering the base role starts
// at BaseSurveyNotStarted or directly on the fixed-coordinate track.
func Allowed(from, to OperatingMode) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from == to || to == RoverNoFix {
		return true
	}

	switch {
	case from.IsRover():
		return to.IsRover() || to == BaseSurveyNotStarted || to.IsFixedBase()

	case from == BaseSurveyNotStarted:
		return to == BaseSurveyStarted

	case from == BaseSurveyStarted:
		// converged, or watchdog restart
		return to == BaseSurveyNotStarted || sameTransmitTrack(from, to)

	case from.IsSurveyBase():
		return to == BaseSurveyNotStarted || sameTransmitTrack(from, to)

	case from.IsFixedBase():
		return sameTransmitTrack(from, to)
	}

	return false
}

// sameTransmitTrack reports whether to is a transmitting state on the same
// base track as from (survey-in or fixed coordinates).
func sameTransmitTrack(from, to OperatingMode) bool {
	if !to.IsTransmitting() {
		return false
	}
	return from.IsFixedBase() == to.IsFixedBase()
}
