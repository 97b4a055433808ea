// internal/writer/builder.go
package writer

import (
	"errors"
	"fmt"
	"time"

	cfg "github.com/tamzrod/rtk-status/internal/config"
	"github.com/tamzrod/rtk-status/internal/writer/ingest"
)

// BuildPlan converts the export config into a Writer Plan.
// Assumes config has already passed validation.
func BuildPlan(e cfg.ExportConfig, deviceName string) (Plan, error) {
	if e.Endpoint == "" {
		return Plan{}, errors.New("writer: export.endpoint required")
	}

	return Plan{
		Endpoint:   e.Endpoint,
		UnitID:     e.UnitID,
		BaseSlot:   e.BaseSlot,
		DeviceName: deviceName,
	}, nil
}

// BuildEndpointClient creates the client for the configured protocol.
func BuildEndpointClient(e cfg.ExportConfig) (endpointClient, func() error, error) {
	timeout := time.Duration(e.TimeoutMs) * time.Millisecond

	switch e.Protocol {
	case "", "modbus":
		c, err := dialModbus(e.Endpoint, timeout)
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil

	case "ingest":
		c, err := ingest.NewEndpointClient(ingest.Config{
			Endpoint: e.Endpoint,
			Timeout:  timeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil

	default:
		return nil, nil, fmt.Errorf("writer: unsupported protocol %q", e.Protocol)
	}
}

// Build wires plan, client and status writer for the export config.
func Build(e cfg.ExportConfig, deviceName string) (StatusWriter, func() error, error) {
	plan, err := BuildPlan(e, deviceName)
	if err != nil {
		return nil, nil, err
	}

	cli, closeFn, err := BuildEndpointClient(e)
	if err != nil {
		return nil, nil, err
	}

	return NewDeviceStatusWriter(plan, cli), closeFn, nil
}
