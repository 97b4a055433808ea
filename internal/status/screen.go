// internal/status/screen.go
package status

// SelectScreen maps an operating mode to the screen the renderer draws.
// Pure and total: anything outside the known modes lands on ScreenBaseFailed.
func SelectScreen(m OperatingMode) DisplayScreen {
	switch m {
	case RoverNoFix, RoverFix:
		return ScreenRover

	case RoverRtkFloat, RoverRtkFix:
		// RTK float/fix only happens while corrections are arriving.
		return ScreenRoverRtcm

	case BaseSurveyNotStarted:
		return ScreenBaseSurveyingNotStarted

	case BaseSurveyStarted:
		return ScreenBaseSurveyingStarted

	case BaseTransmitting, BaseWifiStarted, BaseWifiConnected:
		return ScreenBaseTransmitting

	case BaseFixedTransmitting, BaseFixedWifiStarted, BaseFixedWifiConnected:
		return ScreenBaseFixedTransmitting

	default:
		return ScreenBaseFailed
	}
}
