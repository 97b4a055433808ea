// internal/status/snapshot.go
package status

// Snapshot represents exactly what the writer is allowed to deliver.
// It contains no logic and no memory of the past beyond current state.
type Snapshot struct {
	Mode        OperatingMode
	Screen      DisplayScreen
	Link        LinkState
	Peripherals uint16 // bit n = Peripheral(n)

	SurveySeconds  uint16 // saturates at 65535
	SurveyRestarts uint16
}

// Slots returns the live slot values (slots 0..SlotLiveCount-1) in slot order.
func (s Snapshot) Slots() [SlotLiveCount]uint16 {
	var v [SlotLiveCount]uint16
	v[SlotOperatingMode] = uint16(s.Mode)
	v[SlotDisplayScreen] = uint16(s.Screen)
	v[SlotLinkState] = uint16(s.Link)
	v[SlotPeripherals] = s.Peripherals
	v[SlotSurveySeconds] = s.SurveySeconds
	v[SlotSurveyRestarts] = s.SurveyRestarts
	return v
}
