// internal/status/screen_test.go
package status

import "testing"

func TestSelectScreen_RoverNeverBase(t *testing.T) {
	for _, m := range AllOperatingModes() {
		if !m.IsRover() {
			continue
		}
		got := SelectScreen(m)
		if got != ScreenRover && got != ScreenRoverRtcm {
			t.Fatalf("mode %s: got screen %s, want rover or rover_rtcm", m, got)
		}
	}
}

func TestSelectScreen_SurveyBaseScreens(t *testing.T) {
	allowed := map[DisplayScreen]bool{
		ScreenBaseSurveyingNotStarted: true,
		ScreenBaseSurveyingStarted:    true,
		ScreenBaseTransmitting:        true,
		ScreenBaseFailed:              true,
	}

	for _, m := range AllOperatingModes() {
		if !m.IsSurveyBase() {
			continue
		}
		if got := SelectScreen(m); !allowed[got] {
			t.Fatalf("mode %s: got screen %s outside the survey base screens", m, got)
		}
	}
}

func TestSelectScreen_Mapping(t *testing.T) {
	cases := []struct {
		mode OperatingMode
		want DisplayScreen
	}{
		{RoverNoFix, ScreenRover},
		{RoverFix, ScreenRover},
		{RoverRtkFloat, ScreenRoverRtcm},
		{RoverRtkFix, ScreenRoverRtcm},
		{BaseSurveyNotStarted, ScreenBaseSurveyingNotStarted},
		{BaseSurveyStarted, ScreenBaseSurveyingStarted},
		{BaseTransmitting, ScreenBaseTransmitting},
		{BaseWifiStarted, ScreenBaseTransmitting},
		{BaseWifiConnected, ScreenBaseTransmitting},
		{BaseFixedTransmitting, ScreenBaseFixedTransmitting},
		{BaseFixedWifiStarted, ScreenBaseFixedTransmitting},
		{BaseFixedWifiConnected, ScreenBaseFixedTransmitting},
	}

	for _, c := range cases {
		if got := SelectScreen(c.mode); got != c.want {
			t.Fatalf("SelectScreen(%s) = %s, want %s", c.mode, got, c.want)
		}
	}
}

func TestSelectScreen_UnknownModeFails(t *testing.T) {
	if got := SelectScreen(OperatingMode(999)); got != ScreenBaseFailed {
		t.Fatalf("unknown mode: got %s, want base_failed", got)
	}
}
