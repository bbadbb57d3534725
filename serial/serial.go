// Package serial adapts a host serial device to the modem.Port contract.
//
// The modem driver needs counted, non-blocking access to its UART: it asks
// how many bytes are waiting, how much transmit room is left, and moves at
// most that many. Host serial APIs block instead, so this adapter pairs
// the device with two single-producer/single-consumer rings and a pump
// goroutine per direction. The driver side touches only the rings and
// never blocks.
package serial

import (
	"log/slog"

	goserial "go.bug.st/serial"

	"i4.energy/across/celllink/ring"
)

// DefaultBufferSize is the per-direction ring capacity. It is deliberately
// modest: the driver is designed to throttle against a shallow FIFO.
const DefaultBufferSize = 256

// Port is a buffered serial connection implementing modem.Port.
type Port struct {
	dev  goserial.Port
	log  *slog.Logger
	rx   *ring.Buffer
	tx   *ring.Buffer
	done chan struct{}

	// txWake nudges the write pump when bytes are queued.
	txWake chan struct{}
}

// Options tune an Open call. The zero value is usable.
type Options struct {
	// BufferSize overrides DefaultBufferSize for both rings.
	BufferSize int
	// Logger receives pump errors. When nil, errors silently end the pumps;
	// the driver then sees no further traffic on the port.
	Logger *slog.Logger
}

// Open opens the named device at the given baud rate, 8N1, and starts the
// transfer pumps.
func Open(name string, baud int, opts Options) (*Port, error) {
	mode := &goserial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   goserial.NoParity,
		StopBits: goserial.OneStopBit,
	}
	dev, err := goserial.Open(name, mode)
	if err != nil {
		return nil, err
	}

	size := opts.BufferSize
	if size <= 0 {
		size = DefaultBufferSize
	}
	p := &Port{
		dev:    dev,
		log:    opts.Logger,
		rx:     ring.New(size),
		tx:     ring.New(size),
		done:   make(chan struct{}),
		txWake: make(chan struct{}, 1),
	}
	go p.readPump()
	go p.writePump()
	return p, nil
}

// Close stops the pumps and closes the device.
func (p *Port) Close() error {
	close(p.done)
	return p.dev.Close()
}

// BytesAvailable returns the number of received bytes waiting to be read.
func (p *Port) BytesAvailable() int {
	return p.rx.Available()
}

// SpaceAvailable returns the free space in the transmit ring.
func (p *Port) SpaceAvailable() int {
	return p.tx.Space()
}

// ReadByte removes and returns one received byte.
func (p *Port) ReadByte() byte {
	return p.rx.Pull()
}

// Read copies up to len(buf) received bytes into buf.
func (p *Port) Read(buf []byte) int {
	return p.rx.PullSlice(buf)
}

// Write queues up to len(buf) bytes for transmission and returns the
// number accepted.
func (p *Port) Write(buf []byte) int {
	n := p.tx.PushSlice(buf)
	if n > 0 {
		select {
		case p.txWake <- struct{}{}:
		default:
		}
	}
	return n
}

// FlushReceiveBuffers discards everything received but not yet read.
func (p *Port) FlushReceiveBuffers() {
	p.rx.Flush()
	if err := p.dev.ResetInputBuffer(); err != nil && p.log != nil {
		p.log.Warn("reset input buffer failed", "error", err)
	}
}

// ReadBufferSize returns the capacity of the receive ring.
func (p *Port) ReadBufferSize() int {
	return p.rx.Capacity()
}

// readPump copies bytes from the device into the receive ring. Bytes that
// arrive while the ring is full are dropped; the driver's pull requests
// are sized so that cannot happen during normal operation.
func (p *Port) readPump() {
	buf := make([]byte, 64)
	for {
		select {
		case <-p.done:
			return
		default:
		}
		n, err := p.dev.Read(buf)
		if err != nil {
			if p.log != nil {
				p.log.Error("serial read failed", "error", err)
			}
			return
		}
		if n == 0 {
			continue
		}
		if copied := p.rx.PushSlice(buf[:n]); copied < n && p.log != nil {
			p.log.Warn("receive ring full, dropping bytes", "dropped", n-copied)
		}
	}
}

// writePump drains the transmit ring into the device.
func (p *Port) writePump() {
	buf := make([]byte, 64)
	for {
		if p.tx.IsEmpty() {
			select {
			case <-p.done:
				return
			case <-p.txWake:
			}
			continue
		}
		n := p.tx.PullSlice(buf)
		off := 0
		for off < n {
			w, err := p.dev.Write(buf[off:n])
			if err != nil {
				if p.log != nil {
					p.log.Error("serial write failed", "error", err)
				}
				return
			}
			off += w
		}
	}
}
