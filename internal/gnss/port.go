// internal/gnss/port.go
package gnss

import (
	"errors"
	"fmt"
	"io"
	"sort"

	tarm "github.com/tarm/serial"
	bugst "go.bug.st/serial"
)

// PortAuto asks Open to pick the first serial port the OS reports.
const PortAuto = "auto"

// listPorts is replaced in tests.
var listPorts = bugst.GetPortsList

// Discover returns the serial ports present on the system, sorted.
func Discover() ([]string, error) {
	ports, err := listPorts()
	if err != nil {
		return nil, fmt.Errorf("gnss: list ports: %w", err)
	}
	sort.Strings(ports)
	return ports, nil
}

// ResolvePort turns a configured port into a device path.
func ResolvePort(port string) (string, error) {
	if port != "" && port != PortAuto {
		return port, nil
	}
	ports, err := Discover()
	if err != nil {
		return "", err
	}
	if len(ports) == 0 {
		return "", errors.New("gnss: no serial ports found")
	}
	return ports[0], nil
}

// OpenPort opens the receiver's serial port. Reads block until data arrives;
// closing the port unblocks them.
func OpenPort(name string, baud int) (io.ReadWriteCloser, error) {
	p, err := tarm.OpenPort(&tarm.Config{
		Name: name,
		Baud: baud,
	})
	if err != nil {
		return nil, fmt.Errorf("gnss: open %s: %w", name, err)
	}
	return p, nil
}
