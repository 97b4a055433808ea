// internal/writer/ingest/client_test.go
package ingest

import (
	"bytes"
	"errors"
	"io"
	"net"
	"testing"
	"time"
)

func TestPacket_Layout(t *testing.T) {
	pkt := Packet(3, 7, 0x0102, []uint16{0xAABB, 0x0001})

	want := []byte{
		'R', 'I', 0x01, 0x03,
		0x00, 0x07,
		0x01, 0x02,
		0x00, 0x02,
		0xAA, 0xBB, 0x00, 0x01,
	}
	if !bytes.Equal(pkt, want) {
		t.Fatalf("packet:\n got % x\nwant % x", pkt, want)
	}
}

// serveOnce accepts one connection, records the packet and answers resp.
func serveOnce(t *testing.T, resp byte) (string, <-chan []byte) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	got := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		hdr := make([]byte, headerLen)
		if _, err := io.ReadFull(conn, hdr); err != nil {
			return
		}
		n := int(hdr[8])<<8 | int(hdr[9])
		body := make([]byte, 2*n)
		if _, err := io.ReadFull(conn, body); err != nil {
			return
		}
		got <- append(hdr, body...)
		_, _ = conn.Write([]byte{resp})
	}()

	return ln.Addr().String(), got
}

func TestWriteRegisters_OK(t *testing.T) {
	addr, got := serveOnce(t, respOK)

	c, err := NewEndpointClient(Config{Endpoint: addr, Timeout: time.Second})
	if err != nil {
		t.Fatalf("NewEndpointClient err=%v", err)
	}

	if err := c.WriteRegisters(3, 1, 40, []uint16{5}); err != nil {
		t.Fatalf("WriteRegisters err=%v", err)
	}

	select {
	case pkt := <-got:
		if !bytes.Equal(pkt, Packet(3, 1, 40, []uint16{5})) {
			t.Fatalf("server saw % x", pkt)
		}
	case <-time.After(time.Second):
		t.Fatalf("server never saw the packet")
	}
}

func TestWriteRegisters_Rejected(t *testing.T) {
	addr, _ := serveOnce(t, respRejected)

	c, _ := NewEndpointClient(Config{Endpoint: addr, Timeout: time.Second})
	if err := c.WriteRegisters(3, 1, 0, []uint16{1}); !errors.Is(err, ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
}

func TestNewEndpointClient_RequiresEndpoint(t *testing.T) {
	if _, err := NewEndpointClient(Config{}); err == nil {
		t.Fatalf("expected error, got nil")
	}
}
