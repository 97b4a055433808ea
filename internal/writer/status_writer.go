// internal/writer/status_writer.go
package writer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tamzrod/rtk-status/internal/status"
)

// deviceStatusWriter is the concrete implementation used by the exporter.
type deviceStatusWriter struct {
	plan Plan
	cli  endpointClient

	needFull bool
	last     status.Snapshot
}

const statusAreaHoldingRegisters byte = 3

var slotNames = [status.SlotLiveCount]string{
	status.SlotOperatingMode:  "operating_mode",
	status.SlotDisplayScreen:  "display_screen",
	status.SlotLinkState:      "link_state",
	status.SlotPeripherals:    "peripherals",
	status.SlotSurveySeconds:  "survey_seconds",
	status.SlotSurveyRestarts: "survey_restarts",
}

// NewDeviceStatusWriter builds a status writer for plan over cli.
func NewDeviceStatusWriter(plan Plan, cli endpointClient) *deviceStatusWriter {
	return &deviceStatusWriter{
		plan:     plan,
		cli:      cli,
		needFull: true, // full re-assert on first successful write
	}
}

// WriteStatus delivers a device status snapshot into status memory.
// The first call writes the whole block (device name included); later calls
// write only the live slots that changed. On any write failure, the next
// successful call will re-assert the full block.
func (sw *deviceStatusWriter) WriteStatus(s status.Snapshot) error {
	if sw == nil {
		return errors.New("status writer: disabled")
	}
	if sw.cli == nil {
		return fmt.Errorf("status writer: missing client for endpoint %s", sw.plan.Endpoint)
	}

	baseAddr := sw.baseAddr()
	unitID := sw.plan.UnitID

	// ------------------------------------------------------------
	// Full block write (identity re-assert)
	// ------------------------------------------------------------
	if sw.needFull {
		regs := status.Encode(s, sw.plan.DeviceName)

		if err := sw.cli.WriteRegisters(
			statusAreaHoldingRegisters,
			unitID,
			baseAddr,
			regs,
		); err != nil {
			sw.needFull = true
			return fmt.Errorf("status writer: full block write failed: %w", err)
		}

		sw.needFull = false
		sw.last = s
		return nil
	}

	// ------------------------------------------------------------
	// Incremental: one register per changed live slot
	// ------------------------------------------------------------
	var errs []string

	prev := sw.last.Slots()
	next := s.Slots()

	for slot := 0; slot < status.SlotLiveCount; slot++ {
		if prev[slot] == next[slot] {
			continue
		}
		if err := sw.cli.WriteRegisters(
			statusAreaHoldingRegisters,
			unitID,
			baseAddr+uint16(slot),
			[]uint16{next[slot]},
		); err != nil {
			errs = append(errs, fmt.Sprintf("slot%d %s write failed: %v", slot, slotNames[slot], err))
		}
	}

	if len(errs) > 0 {
		// Any partial failure introduces doubt; re-assert on next success.
		sw.needFull = true
		return errors.New("status writer: " + strings.Join(errs, " | "))
	}

	sw.last = s
	return nil
}

func (sw *deviceStatusWriter) baseAddr() uint16 {
	// Each device owns a fixed SlotsPerDevice block.
	return sw.plan.BaseSlot * status.SlotsPerDevice
}
