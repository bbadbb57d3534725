// Package modem implements a cooperative driver that turns a byte link to
// a SIMCom-family cellular modem into a single reliable TCP-style data
// pipe.
//
// The driver never blocks and owns no goroutines: the host advances it by
// calling Run from its main loop, typically once per millisecond. Each tick
// moves at most one step of the AT conversation, throttled against the
// serial FIFO's free space, so the driver is usable from firmware-style
// super-loops as well as ordinary programs.
//
// Usage:
//
//	dev, err := modem.New(modem.Config{Port: port})
//	if err != nil { return err }
//	dev.SetAPN("internet")
//	dev.SetHostPort("example.com", 7)
//	dev.Connect()
//	for {
//		dev.Run()
//		// dev.Write / dev.Read move payload through the pipe
//	}
package modem

import (
	"log/slog"

	"i4.energy/across/celllink/at"
	"i4.energy/across/celllink/ring"
)

const (
	// lineMaxLength bounds one assembled response line.
	lineMaxLength = 80
	// idStringMaxLength bounds a stored identity string, terminator included.
	idStringMaxLength = 16
	// ipMaxLength holds a dotted-quad IPv4 address.
	ipMaxLength = 16
)

// Device drives one modem and one data connection. It is not safe for
// concurrent use: all methods except Read, Write, BytesAvailable and
// SpaceAvailable must be called from the goroutine that calls Run. The
// data rings are single-producer/single-consumer, so one other goroutine
// may feed Write and drain Read.
type Device struct {
	port     Port
	readBuf  *ring.Buffer
	writeBuf *ring.Buffer
	log      *slog.Logger

	profile      Profile
	closeToken   []byte
	connectReply []byte
	connectFail  []byte
	closeReply   []byte

	apn        string
	host       []byte
	ip         [ipMaxLength]byte
	ipLen      int
	remotePort uint16

	line     [lineMaxLength]byte
	lineFill int
	lineLen  int

	sendState    int8
	replyState   int8
	connectState ConnectState
	flags        uint8

	bytesToWrite   int
	bytesToReceive int
	bytesToRead    int

	// pullPending is set between an AT+CIPRXGET=2 request and its reply,
	// so a slow modem is not asked twice for the same data.
	pullPending bool

	// waitForReply is the line prefix whose arrival completes the command
	// in flight; nil means no command is outstanding.
	waitForReply []byte

	// connectCritical marks the in-flight command as part of the attach or
	// open handshake, so an ERROR reply maps to ConnectionError instead of
	// a generic reset.
	connectCritical bool

	rssi       uint8
	registered bool

	idString  [idStringMaxLength]byte
	idLen     int
	idPending IDKind
	idCapture bool
}

// New constructs a Device around the given configuration. The Port and the
// data rings are borrowed for the lifetime of the Device.
func New(cfg Config) (*Device, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.setDefaults()

	d := &Device{
		port:         cfg.Port,
		readBuf:      cfg.ReadBuffer,
		writeBuf:     cfg.WriteBuffer,
		log:          cfg.Logger,
		profile:      cfg.Profile,
		closeToken:   []byte(cfg.Profile.CloseToken),
		connectReply: []byte(cfg.Profile.ConnectReply),
		connectFail:  []byte(cfg.Profile.ConnectFail),
		closeReply:   []byte(cfg.Profile.CloseReply),
	}
	d.resetStates()
	return d, nil
}

// resetStates returns the driver to its factory state. Configured APN,
// host and port survive; everything in flight is discarded.
func (d *Device) resetStates() {
	d.port.FlushReceiveBuffers()
	d.readBuf.Flush()
	d.writeBuf.Flush()
	d.lineFill = 0
	d.lineLen = 0
	d.sendState = stateProbe
	d.replyState = 0
	d.connectState = NotConnected
	d.bytesToWrite = 0
	d.bytesToReceive = 0
	d.bytesToRead = 0
	d.waitForReply = nil
	d.connectCritical = false
	d.pullPending = false
	d.flags = flagLineRead
	d.rssi = at.RSSIUnknown
	d.registered = false
	d.ipLen = 0
	d.idString[0] = 0
	d.idLen = 0
	d.idPending = IDNone
	d.idCapture = false
}

// SetAPN sets the access point name used for the PDP context. It takes
// effect at the next connect; connecting without an APN is refused.
func (d *Device) SetAPN(apn string) {
	d.apn = apn
}

// SetHostPort sets the destination. The host is a DNS name resolved
// through the modem; it takes effect at the next connect.
func (d *Device) SetHostPort(host string, port uint16) {
	d.host = []byte(host)
	d.remotePort = port
}

// Connect requests that the data connection be brought up. It reports
// false if no APN is configured; true means the attempt has started, not
// that it succeeded. Progress is observed via State.
func (d *Device) Connect() bool {
	if d.apn == "" {
		return false
	}
	d.flags |= flagConnectPending
	return true
}

// Disconnect requests an orderly teardown of the data connection.
func (d *Device) Disconnect() {
	d.flags |= flagDisconnectPending
}

// Write stages payload bytes for transmission and returns the number
// accepted. It never blocks; bytes beyond the free buffer space are
// rejected and should be retried later.
func (d *Device) Write(p []byte) int {
	return d.writeBuf.PushSlice(p)
}

// Read drains received payload bytes into p and returns the number copied.
func (d *Device) Read(p []byte) int {
	return d.readBuf.PullSlice(p)
}

// BytesAvailable returns the number of received payload bytes ready for Read.
func (d *Device) BytesAvailable() int {
	return d.readBuf.Available()
}

// SpaceAvailable returns the number of payload bytes Write can accept.
func (d *Device) SpaceAvailable() int {
	return d.writeBuf.Space()
}

// State returns the externally visible connection state.
func (d *Device) State() ConnectState {
	return d.connectState
}

// IP returns the resolved address of the current destination, or the empty
// string before resolution.
func (d *Device) IP() string {
	return string(d.ip[:d.ipLen])
}

// RequestRSSI asks for a fresh signal reading. RSSI reports the refresh
// sentinel until the modem answers.
func (d *Device) RequestRSSI() {
	d.rssi = at.RSSIRefresh
}

// RSSI returns the last signal reading: 0..31 for a measurement, 99 when
// the modem could not measure, 255 while a refresh is outstanding.
func (d *Device) RSSI() uint8 {
	return d.rssi
}

// RequestIDString stages an identity query. The result is fetched during
// the next idle moment on the wire and read back with IDString.
func (d *Device) RequestIDString(kind IDKind) {
	d.idString[0] = 0
	d.idLen = 0
	d.idCapture = false
	d.idPending = kind
}

// IDString returns the most recently fetched identity string, or the empty
// string while a query is still outstanding.
func (d *Device) IDString() string {
	return string(d.idString[:d.idLen])
}

// SerialLock hands exclusive use of the underlying port to the caller, for
// out-of-band conversations with the modem. It is refused while a reply is
// outstanding. SerialUnlock returns control to the driver.
func (d *Device) SerialLock() bool {
	if d.waitForReply != nil || d.replyState != 0 || d.pullPending {
		return false
	}
	d.flags |= flagSerialLocked
	return true
}

// SerialUnlock returns port ownership to the driver.
func (d *Device) SerialUnlock() {
	d.flags &^= flagSerialLocked
}

// SerialWrite writes directly to the port. It is a no-op unless the caller
// holds the serial lock.
func (d *Device) SerialWrite(p []byte) int {
	if d.flags&flagSerialLocked == 0 {
		return 0
	}
	return d.port.Write(p)
}

// SerialRead reads directly from the port. It is a no-op unless the caller
// holds the serial lock.
func (d *Device) SerialRead(p []byte) int {
	if d.flags&flagSerialLocked == 0 {
		return 0
	}
	return d.port.Read(p)
}

// fillLine assembles modem output into the line buffer. It reports true
// when a complete line is ready: terminated by a newline, by the send
// prompt (which the modem does not newline-terminate), or by the buffer
// filling up.
func (d *Device) fillLine() bool {
	if d.flags&flagLineRead == 0 || d.flags&flagSerialLocked != 0 {
		return false
	}
	for d.port.BytesAvailable() > 0 {
		c := d.port.ReadByte()
		d.line[d.lineFill] = c
		d.lineFill++
		if c == '\n' || c == at.Prompt || d.lineFill == lineMaxLength {
			d.lineLen = d.lineFill
			d.lineFill = 0
			return true
		}
	}
	return false
}

// lineView returns the current assembled line, trailing CR/LF included.
func (d *Device) lineView() []byte {
	return d.line[:d.lineLen]
}

func (d *Device) debugf(msg string) {
	if d.log == nil {
		return
	}
	d.log.Debug(msg,
		slog.Int("sendState", int(d.sendState)),
		slog.Int("replyState", int(d.replyState)),
		slog.String("connectState", d.connectState.String()),
		slog.String("line", string(at.TrimLine(d.lineView()))),
	)
}
