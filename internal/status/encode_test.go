// internal/status/encode_test.go
package status

import "testing"

func TestEncode_Layout(t *testing.T) {
	s := Snapshot{
		Mode:           BaseSurveyStarted,
		Screen:         ScreenBaseSurveyingStarted,
		Link:           LinkWifiNoConnection,
		Peripherals:    0x05,
		SurveySeconds:  120,
		SurveyRestarts: 2,
	}

	regs := Encode(s, "BASE-01")
	if len(regs) != SlotsPerDevice {
		t.Fatalf("block size: got %d want %d", len(regs), SlotsPerDevice)
	}

	if regs[SlotOperatingMode] != uint16(BaseSurveyStarted) {
		t.Fatalf("mode slot: got %d", regs[SlotOperatingMode])
	}
	if regs[SlotLinkState] != uint16(LinkWifiNoConnection) {
		t.Fatalf("link slot: got %d", regs[SlotLinkState])
	}
	if regs[SlotSurveySeconds] != 120 || regs[SlotSurveyRestarts] != 2 {
		t.Fatalf("survey slots: got %d/%d", regs[SlotSurveySeconds], regs[SlotSurveyRestarts])
	}

	for i := SlotReservedStart; i <= SlotReservedEnd; i++ {
		if regs[i] != 0 {
			t.Fatalf("reserved slot %d not zero: %d", i, regs[i])
		}
	}

	// "BA" = 0x4241
	if regs[SlotDeviceNameStart] != 0x4241 {
		t.Fatalf("name slot 0: got %#04x want 0x4241", regs[SlotDeviceNameStart])
	}
	// "1" then NUL
	if regs[SlotDeviceNameStart+3] != 0x3100 {
		t.Fatalf("name slot 3: got %#04x want 0x3100", regs[SlotDeviceNameStart+3])
	}
}

func TestEncodeDeviceName_TruncateAndSanitize(t *testing.T) {
	regs := EncodeDeviceName("ABCDEFGHIJKLMNOPQRSTU")
	if len(regs) != SlotDeviceNameSlots {
		t.Fatalf("name regs: got %d", len(regs))
	}
	// last pair is "OP"
	if regs[7] != uint16('O')<<8|uint16('P') {
		t.Fatalf("truncation: got %#04x", regs[7])
	}

	regs = EncodeDeviceName("A\x01")
	if regs[0] != uint16('A')<<8|uint16('?') {
		t.Fatalf("sanitize: got %#04x", regs[0])
	}
}
