// internal/writer/modbus.go
package writer

import (
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/goburrow/modbus"
)

// modbusStatusClient writes the status block to a Modbus TCP server with FC16.
// One TCP handler per endpoint; the unit id is switched per request, so
// requests are serialized.
type modbusStatusClient struct {
	endpoint string

	mu      sync.Mutex
	handler *modbus.TCPClientHandler
	client  modbus.Client
}

func dialModbus(endpoint string, timeout time.Duration) (*modbusStatusClient, error) {
	h := modbus.NewTCPClientHandler(endpoint)
	h.Timeout = timeout
	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("writer: modbus connect %s: %w", endpoint, err)
	}
	return &modbusStatusClient{
		endpoint: endpoint,
		handler:  h,
		client:   modbus.NewClient(h),
	}, nil
}

func (c *modbusStatusClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handler.Close()
}

// WriteRegisters implements endpointClient. Only holding registers are
// writable from a Modbus master. The handler reconnects on the next request
// after a transport failure.
func (c *modbusStatusClient) WriteRegisters(area byte, unitID uint8, addr uint16, regs []uint16) error {
	if area != statusAreaHoldingRegisters {
		return fmt.Errorf("writer: modbus %s: area %d is not writable", c.endpoint, area)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.handler.SlaveId = unitID
	if _, err := c.client.WriteMultipleRegisters(addr, uint16(len(regs)), registerBytes(regs)); err != nil {
		return fmt.Errorf("writer: modbus %s unit %d @%d: %w", c.endpoint, unitID, addr, err)
	}
	return nil
}

// registerBytes lays registers out in Modbus wire order (big-endian).
func registerBytes(regs []uint16) []byte {
	out := make([]byte, 2*len(regs))
	for i, r := range regs {
		binary.BigEndian.PutUint16(out[2*i:], r)
	}
	return out
}
