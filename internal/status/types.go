// internal/status/types.go
package status

import "fmt"

// ---- OPERATING MODE ----

// OperatingMode is the receiver's overall mode. RoverNoFix at power-on.
type OperatingMode uint16

const (
	RoverNoFix OperatingMode = iota
	RoverFix
	RoverRtkFloat
	RoverRtkFix
	BaseSurveyNotStarted // base requested, position accuracy still too low
	BaseSurveyStarted
	BaseTransmitting
	BaseWifiStarted
	BaseWifiConnected
	BaseFixedTransmitting
	BaseFixedWifiStarted
	BaseFixedWifiConnected

	operatingModeCount
)

var operatingModeNames = [...]string{
	RoverNoFix:             "rover_no_fix",
	RoverFix:               "rover_fix",
	RoverRtkFloat:          "rover_rtk_float",
	RoverRtkFix:            "rover_rtk_fix",
	BaseSurveyNotStarted:   "base_survey_not_started",
	BaseSurveyStarted:      "base_survey_started",
	BaseTransmitting:       "base_transmitting",
	BaseWifiStarted:        "base_wifi_started",
	BaseWifiConnected:      "base_wifi_connected",
	BaseFixedTransmitting:  "base_fixed_transmitting",
	BaseFixedWifiStarted:   "base_fixed_wifi_started",
	BaseFixedWifiConnected: "base_fixed_wifi_connected",
}

func (m OperatingMode) String() string {
	if m < operatingModeCount {
		return operatingModeNames[m]
	}
	return fmt.Sprintf("operating_mode(%d)", uint16(m))
}

// Valid reports whether m is one of the declared modes.
func (m OperatingMode) Valid() bool { return m < operatingModeCount }

// IsRover reports whether m belongs to the rover family.
func (m OperatingMode) IsRover() bool { return m <= RoverRtkFix }

// IsBase reports whether m belongs to either base track.
func (m OperatingMode) IsBase() bool { return m.IsSurveyBase() || m.IsFixedBase() }

// IsSurveyBase reports whether m belongs to the surveyed-coordinate base track.
func (m OperatingMode) IsSurveyBase() bool {
	return m >= BaseSurveyNotStarted && m <= BaseWifiConnected
}

// IsFixedBase reports whether m belongs to the fixed-coordinate base track.
func (m OperatingMode) IsFixedBase() bool {
	return m >= BaseFixedTransmitting && m <= BaseFixedWifiConnected
}

// IsTransmitting reports whether the base is broadcasting corrections.
func (m OperatingMode) IsTransmitting() bool {
	return m >= BaseTransmitting && m < operatingModeCount
}

// ParseOperatingMode resolves a snake_case mode name.
func ParseOperatingMode(s string) (OperatingMode, error) {
	for i, n := range operatingModeNames {
		if n == s {
			return OperatingMode(i), nil
		}
	}
	return 0, fmt.Errorf("status: unknown operating mode %q", s)
}

// AllOperatingModes returns every declared mode in declaration order.
func AllOperatingModes() []OperatingMode {
	out := make([]OperatingMode, 0, operatingModeCount)
	for m := OperatingMode(0); m < operatingModeCount; m++ {
		out = append(out, m)
	}
	return out
}

// ---- DISPLAY SCREEN ----

// DisplayScreen is the screen the renderer should draw.
type DisplayScreen uint16

const (
	ScreenRover                   DisplayScreen = iota
	ScreenRoverRtcm                             // RTCM received (RTK float/fix)
	ScreenBaseSurveyingNotStarted               // waiting for min accuracy before survey-in
	ScreenBaseSurveyingStarted                  // mean and elapsed time
	ScreenBaseTransmitting                      // RTCM packets transmitted
	ScreenBaseFailed
	ScreenBaseFixedTransmitting

	displayScreenCount
)

var displayScreenNames = [...]string{
	ScreenRover:                   "rover",
	ScreenRoverRtcm:               "rover_rtcm",
	ScreenBaseSurveyingNotStarted: "base_surveying_not_started",
	ScreenBaseSurveyingStarted:    "base_surveying_started",
	ScreenBaseTransmitting:        "base_transmitting",
	ScreenBaseFailed:              "base_failed",
	ScreenBaseFixedTransmitting:   "base_fixed_transmitting",
}

func (s DisplayScreen) String() string {
	if s < displayScreenCount {
		return displayScreenNames[s]
	}
	return fmt.Sprintf("display_screen(%d)", uint16(s))
}

// ---- LINK STATE ----

// LinkState is the radio status. One value covers both radios, so Bluetooth
// and Wi-Fi can never be reported active together.
type LinkState uint16

const (
	LinkOff LinkState = iota
	LinkBluetoothNoConnection // Wi-Fi is off
	LinkBluetoothConnected
	LinkWifiNoConnection // Bluetooth is off
	LinkWifiConnected

	linkStateCount
)

var linkStateNames = [...]string{
	LinkOff:                   "off",
	LinkBluetoothNoConnection: "bluetooth_no_connection",
	LinkBluetoothConnected:    "bluetooth_connected",
	LinkWifiNoConnection:      "wifi_no_connection",
	LinkWifiConnected:         "wifi_connected",
}

func (l LinkState) String() string {
	if l < linkStateCount {
		return linkStateNames[l]
	}
	return fmt.Sprintf("link_state(%d)", uint16(l))
}

// Valid reports whether l is one of the declared link states.
func (l LinkState) Valid() bool { return l < linkStateCount }

func (l LinkState) BluetoothOn() bool {
	return l == LinkBluetoothNoConnection || l == LinkBluetoothConnected
}

func (l LinkState) BluetoothConnected() bool { return l == LinkBluetoothConnected }

func (l LinkState) WifiOn() bool {
	return l == LinkWifiNoConnection || l == LinkWifiConnected
}

func (l LinkState) WifiConnected() bool { return l == LinkWifiConnected }

// ParseLinkState resolves a snake_case link state name.
func ParseLinkState(s string) (LinkState, error) {
	for i, n := range linkStateNames {
		if n == s {
			return LinkState(i), nil
		}
	}
	return 0, fmt.Errorf("status: unknown link state %q", s)
}

// ---- PERIPHERALS ----

// Peripheral names an optional on-board subsystem that may be on or offline.
type Peripheral uint8

const (
	PeripheralStorage Peripheral = iota
	PeripheralDisplay
	PeripheralLogging
	PeripheralSerialOutput
	PeripheralConfigStore

	peripheralCount
)

var peripheralNames = [...]string{
	PeripheralStorage:      "storage",
	PeripheralDisplay:      "display",
	PeripheralLogging:      "logging",
	PeripheralSerialOutput: "serial_output",
	PeripheralConfigStore:  "config_store",
}

func (p Peripheral) String() string {
	if p < peripheralCount {
		return peripheralNames[p]
	}
	return fmt.Sprintf("peripheral(%d)", uint8(p))
}

// ParsePeripheral resolves a snake_case peripheral name.
func ParsePeripheral(s string) (Peripheral, error) {
	for i, n := range peripheralNames {
		if n == s {
			return Peripheral(i), nil
		}
	}
	return 0, fmt.Errorf("status: unknown peripheral %q", s)
}

// AllPeripherals returns every peripheral kind.
func AllPeripherals() []Peripheral {
	out := make([]Peripheral, 0, peripheralCount)
	for p := Peripheral(0); p < peripheralCount; p++ {
		out = append(out, p)
	}
	return out
}
