package modem

import (
	"testing"

	"i4.energy/across/celllink/ring"
)

// scriptPort is a test double standing in for the modem's UART. Replies
// are fed into the receive side byte for byte; everything the driver
// transmits is collected for inspection. Space is freely configurable so
// tests can starve the transmit path.
type scriptPort struct {
	rx      *ring.Buffer
	written []byte
	space   int
}

func newScriptPort() *scriptPort {
	return &scriptPort{
		rx:    ring.New(256),
		space: 256,
	}
}

func (p *scriptPort) BytesAvailable() int { return p.rx.Available() }
func (p *scriptPort) SpaceAvailable() int { return p.space }
func (p *scriptPort) ReadByte() byte      { return p.rx.Pull() }

func (p *scriptPort) Read(buf []byte) int { return p.rx.PullSlice(buf) }

func (p *scriptPort) Write(buf []byte) int {
	p.written = append(p.written, buf...)
	return len(buf)
}

func (p *scriptPort) FlushReceiveBuffers() { p.rx.Flush() }
func (p *scriptPort) ReadBufferSize() int  { return p.rx.Capacity() }

// feed queues modem output for the driver to read.
func (p *scriptPort) feed(s string) {
	p.rx.PushSlice([]byte(s))
}

// take returns and clears everything the driver has transmitted.
func (p *scriptPort) take() string {
	s := string(p.written)
	p.written = nil
	return s
}

func newTestDevice(t *testing.T) (*Device, *scriptPort) {
	t.Helper()
	p := newScriptPort()
	d, err := New(Config{Port: p, BufferSize: 256})
	if err != nil {
		t.Fatalf("unexpected error from New(): %v", err)
	}
	return d, p
}

func runTicks(d *Device, n int) {
	for i := 0; i < n; i++ {
		d.Run()
	}
}

// expectWrite ticks the driver until it has transmitted exactly want, then
// clears the transcript.
func expectWrite(t *testing.T, d *Device, p *scriptPort, want string) {
	t.Helper()
	for i := 0; i < 20 && string(p.written) != want; i++ {
		d.Run()
	}
	if got := p.take(); got != want {
		t.Fatalf("transmitted %q, want %q", got, want)
	}
}

// completeInit walks the driver through its initialization ladder with
// scripted replies and leaves it parked in the dormant state.
func completeInit(t *testing.T, d *Device, p *scriptPort) {
	t.Helper()
	d.SetAPN("internet")

	steps := []struct{ cmd, reply string }{
		{"AT\r\n", "OK\r\n"},
		{"ATE0\r\n", "OK\r\n"},
		{"AT+CPIN?\r\n", "+CPIN: READY\r\nOK\r\n"},
		{"AT+CSQ\r\n", "+CSQ: 15,99\r\nOK\r\n"},
		{"AT+CREG?\r\n", "+CREG: 0,1\r\nOK\r\n"},
		{"AT+CSTT=\"internet\"\r\n", "OK\r\n"},
		{"AT+CGATT=1\r\n", "OK\r\n"},
		{"AT+CIPMUX=1\r\n", "OK\r\n"},
		{"AT+CIPRXGET=1\r\n", "OK\r\n"},
	}
	for _, step := range steps {
		expectWrite(t, d, p, step.cmd)
		p.feed(step.reply)
		runTicks(d, 4)
	}
	if d.sendState != stateDormant {
		t.Fatalf("expected dormant state after init, got %d", d.sendState)
	}
}

// completeConnect drives an initialized driver through DNS resolution and
// the TCP open.
func completeConnect(t *testing.T, d *Device, p *scriptPort) {
	t.Helper()
	d.SetHostPort("example.com", 80)
	if !d.Connect() {
		t.Fatal("Connect() refused with APN configured")
	}

	expectWrite(t, d, p, "AT+CDNSGIP=\"example.com\"\r\n")
	p.feed("OK\r\n")
	p.feed("+CDNSGIP: 1,\"example.com\",\"93.184.216.34\"\r\n")
	runTicks(d, 4)

	expectWrite(t, d, p, "AT+CIPSTART=0,\"TCP\",\"93.184.216.34\",80\r\n")
	p.feed("OK\r\n")
	p.feed("0, CONNECT OK\r\n")
	runTicks(d, 4)

	if d.State() != Connected {
		t.Fatalf("expected Connected, got %v", d.State())
	}
}

// checkInvariants asserts the properties that must hold at every tick
// boundary.
func checkInvariants(t *testing.T, d *Device) {
	t.Helper()
	if d.bytesToReceive < 0 {
		t.Fatalf("bytesToReceive went negative: %d", d.bytesToReceive)
	}
	if r := d.RSSI(); r > 31 && r != 99 && r != 255 {
		t.Fatalf("rssi outside domain: %d", r)
	}
	lineRead := d.flags&flagLineRead != 0
	if lineRead != (d.bytesToRead == 0) {
		t.Fatalf("lineRead=%v with bytesToRead=%d", lineRead, d.bytesToRead)
	}
	if d.idLen >= idStringMaxLength {
		t.Fatalf("identity string overruns its buffer: %d", d.idLen)
	}
}
