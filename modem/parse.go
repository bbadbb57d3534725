package modem

import (
	"bytes"

	"i4.energy/across/celllink/at"
)

// processLine dispatches one assembled response line. Specific parsers run
// first; anything they do not claim falls through to the generic reply
// matching that drives the state machine.
func (d *Device) processLine() {
	line := d.lineView()
	d.debugf("modem line")

	if d.idCapture && d.captureIdentity(line) {
		return
	}
	if d.parseDNSReply(line) {
		return
	}
	if rssi, ok := at.ParseCSQ(line); ok {
		d.rssi = rssi
		return
	}
	if reg, ok := at.Registered(line); ok {
		d.registered = reg
		return
	}
	if n, ok := at.ParseRxQuery(line); ok {
		d.bytesToReceive += n
		return
	}
	if n, ok := at.ParseRxData(line); ok {
		d.bytesToReceive -= n
		if d.bytesToReceive < 0 {
			d.bytesToReceive = 0
		}
		d.bytesToRead += n
		d.pullPending = false
		d.replyState = 0
		// Payload bytes follow immediately; suspend line assembly until
		// they have been drained into the read ring.
		d.flags &^= flagLineRead
		return
	}
	d.checkConnectionState(line)

	if d.waitForReply != nil && bytes.HasPrefix(line, d.waitForReply) {
		d.waitForReply = nil
		d.connectCritical = false
		d.replyState++
		return
	}
	if at.IsFinalOK(line) {
		// A bare OK closes the transaction in flight.
		d.connectCritical = false
		d.idCapture = false
		d.replyState = 0
		return
	}
	if at.IsError(line) {
		d.waitForReply = nil
		d.replyState = 0
		if d.connectCritical {
			d.connectCritical = false
			d.connectState = ConnectionError
			return
		}
		d.connectState = GenericError
		d.flags |= flagResetPending
		return
	}
	if bytes.HasPrefix(line, d.connectFail) {
		d.waitForReply = nil
		d.connectCritical = false
		d.connectState = ConnectionError
	}
}

// parseDNSReply handles both +CDNSGIP forms. A resolution failure forces a
// reinitialization; a structurally broken success line is a terminal DNS
// error because retrying the same name cannot help.
func (d *Device) parseDNSReply(line []byte) bool {
	ip, ok, malformed := at.ParseDNSReply(line)
	if malformed {
		d.connectState = DNSError
		return true
	}
	if ok {
		n := copy(d.ip[:ipMaxLength-1], ip)
		d.ipLen = n
		return true
	}
	if at.DNSFailed(line) {
		d.flags |= flagResetPending
		return true
	}
	return false
}

// checkConnectionState watches for unsolicited connection events: the data
// notification and the model-specific close token.
func (d *Device) checkConnectionState(line []byte) {
	if at.RxPending(line) {
		d.flags |= flagDataPending
		return
	}
	if bytes.HasPrefix(line, d.closeToken) {
		d.waitForReply = nil
		d.flags &^= flagIPConnected
	}
}

// captureIdentity stores the first non-echo line after an identity query.
// Command echoes and result codes are skipped so the capture works whether
// or not the modem still has echo enabled.
func (d *Device) captureIdentity(line []byte) bool {
	if at.IsEcho(line) || at.IsFinalOK(line) || at.IsError(line) {
		return false
	}
	trimmed := at.TrimLine(line)
	if len(trimmed) == 0 {
		return false
	}
	n := copy(d.idString[:idStringMaxLength-1], trimmed)
	d.idLen = n
	d.idCapture = false
	return true
}
