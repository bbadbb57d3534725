package modem

import "i4.energy/across/celllink/at"

// Emitters either queue their whole command into the serial transmit path
// or decline without side effects, so a declined emit is simply retried on
// a later tick. None of them block.
const (
	// minSpaceForSend is the worst-case envelope of an AT+CIPSEND command:
	// verb, mux index, a five-digit length and both terminator pairs.
	minSpaceForSend = 22
	// rxHeaderSlack reserves room in the receive FIFO for the +CIPRXGET
	// response framing around a data pull.
	rxHeaderSlack = 8
	// dnsCommandOverhead is the room reserved for the fixed part of an
	// AT+CDNSGIP command around the quoted hostname (15 bytes) plus slack.
	dnsCommandOverhead = 20
)

var (
	crlf     = []byte(at.CRLF)
	quoteEnd = []byte("\"" + at.CRLF)
	okBytes  = []byte(at.OK)
	simReady = []byte(at.SimReady)
	prompt   = []byte{at.Prompt}

	cmdDNSPrefix  = []byte(at.CmdDNSPrefix)
	cmdSendPrefix = []byte(at.CmdSendPrefix)
	cmdPullPrefix = []byte(at.CmdPullPrefix)
	cmdOpenPrefix = []byte(at.CmdOpenPrefix)
	quoteComma    = []byte(`",`)
)

// sendCommand writes cmd plus the line terminator. The caller has already
// established that the transmit buffer has room.
func (d *Device) sendCommand(cmd string) {
	d.port.Write([]byte(cmd))
	d.port.Write(crlf)
}

// emitCommand is the space-checked form of sendCommand.
func (d *Device) emitCommand(cmd string) bool {
	if d.port.SpaceAvailable() < len(cmd)+len(crlf) {
		return false
	}
	d.sendCommand(cmd)
	return true
}

// sendDNSQuery asks the modem to resolve the configured host.
func (d *Device) sendDNSQuery() bool {
	if d.port.SpaceAvailable() < len(d.host)+dnsCommandOverhead {
		return false
	}
	d.port.Write(cmdDNSPrefix)
	d.port.Write(d.host)
	d.port.Write(quoteEnd)
	return true
}

// sendOpen asks the modem to open the TCP connection to the resolved
// address and the configured port.
func (d *Device) sendOpen() bool {
	if d.port.SpaceAvailable() < len(cmdOpenPrefix)+d.ipLen+dnsCommandOverhead {
		return false
	}
	var num [8]byte
	d.port.Write(cmdOpenPrefix)
	d.port.Write(d.ip[:d.ipLen])
	d.port.Write(quoteComma)
	d.port.Write(at.AppendUint(num[:0], int(d.remotePort)))
	d.port.Write(crlf)
	return true
}

// prepareSending stages the next outbound burst: it sizes the burst so the
// payload is guaranteed to fit behind the command, announces it with
// AT+CIPSEND and arms the prompt wait. The payload itself is sent by
// sendData once the prompt arrives.
func (d *Device) prepareSending() bool {
	space := d.port.SpaceAvailable()
	if space < minSpaceForSend {
		return false
	}
	d.bytesToWrite = d.writeBuf.Available()
	if d.bytesToWrite > space-minSpaceForSend {
		d.bytesToWrite = space - minSpaceForSend
	}

	var num [8]byte
	d.port.Write(cmdSendPrefix)
	d.port.Write(at.AppendUint(num[:0], d.bytesToWrite))
	d.port.Write(crlf)
	d.waitForReply = prompt
	return true
}

// sendData moves exactly the announced burst from the write ring into the
// serial transmit path.
func (d *Device) sendData() {
	var chunk [32]byte
	for d.bytesToWrite > 0 {
		n := d.bytesToWrite
		if n > len(chunk) {
			n = len(chunk)
		}
		n = d.writeBuf.PullSlice(chunk[:n])
		if n == 0 {
			break
		}
		d.port.Write(chunk[:n])
		d.bytesToWrite -= n
	}
	d.bytesToWrite = 0
	d.waitForReply = okBytes
}

// sendRxPull requests the next slice of pending inbound data. The request
// is sized against the receive FIFO (minus response framing slack), the
// free space in the read ring and the modem's own per-pull limit, so the
// reply can never overrun any of them.
func (d *Device) sendRxPull() bool {
	free := d.port.ReadBufferSize() - d.port.BytesAvailable()
	if free <= rxHeaderSlack || d.readBuf.Space() == 0 {
		return false
	}
	n := free - rxHeaderSlack
	if n > d.bytesToReceive {
		n = d.bytesToReceive
	}
	if n > d.readBuf.Space() {
		n = d.readBuf.Space()
	}
	if n > d.profile.MaxPullSize {
		n = d.profile.MaxPullSize
	}

	var num [8]byte
	d.port.Write(cmdPullPrefix)
	d.port.Write(at.AppendUint(num[:0], n))
	d.port.Write(crlf)
	return true
}

// sendIdentityRequest issues the staged identity query, if any, and arms
// the capture of its reply line.
func (d *Device) sendIdentityRequest() bool {
	var cmd string
	switch d.idPending {
	case IDManufacturer:
		cmd = at.CmdManufacturer
	case IDModel:
		cmd = at.CmdModel
	case IDIMEI:
		cmd = at.CmdIMEI
	case IDIMSI:
		cmd = at.CmdIMSI
	default:
		return false
	}
	if !d.emitCommand(cmd) {
		return false
	}
	d.idPending = IDNone
	d.idCapture = true
	d.waitForReply = okBytes
	return true
}
