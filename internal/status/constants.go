// internal/status/constants.go
package status

import "time"

// SurveyTimeout is how long a base may stay in survey-in before it restarts.
// Not configurable.
const SurveyTimeout = 900 * time.Second

// Device Status Block layout constants.
// These values define the protocol and MUST NOT be configurable.

// ---- BLOCK GEOMETRY ----

// SlotsPerDevice is the fixed number of logical slots per device.
const SlotsPerDevice = 20

// ---- SLOT INDICES ----

// SlotOperatingMode holds the current OperatingMode.
const SlotOperatingMode = 0

// SlotDisplayScreen holds the current DisplayScreen.
const SlotDisplayScreen = 1

// SlotLinkState holds the current LinkState.
const SlotLinkState = 2

// SlotPeripherals holds the peripheral online bitmask (bit n = Peripheral n).
const SlotPeripherals = 3

// SlotSurveySeconds holds the elapsed survey-in time, saturating at 65535.
const SlotSurveySeconds = 4

// SlotSurveyRestarts holds the number of survey-in watchdog restarts.
const SlotSurveyRestarts = 5

// SlotLiveCount is the number of live slots starting at slot 0.
const SlotLiveCount = 6

// ---- RESERVED RANGE ----

// Slots 6-10 are reserved for future use.
const SlotReservedStart = 6
const SlotReservedEnd = 10

// ---- DEVICE NAME ----

// SlotDeviceNameStart is the first slot used for the device name.
// Device name is always placed at the END of the status block.
const SlotDeviceNameStart = 11

// SlotDeviceNameSlots is the number of slots reserved for the device name.
const SlotDeviceNameSlots = 8

// SlotDeviceNameEnd is the last slot used for the device name (inclusive).
const SlotDeviceNameEnd = SlotDeviceNameStart + SlotDeviceNameSlots - 1

// ---- LIMITS ----

// DeviceNameMaxChars is the maximum number of ASCII characters stored for device name.
const DeviceNameMaxChars = 16
