package modem

import "i4.energy/across/celllink/at"

// Send states. The ladder from stateProbe to stateRxMode runs once after
// power-on or reset; stateDormant is the parked state between connections.
const (
	stateProbe int8 = iota
	stateEchoOff
	stateSIMCheck
	stateSignal
	stateNetReg
	stateDefinePDP
	stateAttach
	stateMux
	stateRxMode
	stateDormant
	stateDNSQuery
	stateDNSWait
	stateOpen
	stateConnecting
	stateConnected
	stateClosing
	stateClosingWait
)

// Run advances the driver by one tick. It never blocks; the host calls it
// from its main loop. Work is strictly prioritized within a tick: raw
// payload reception, then response dispatch, then reset handling, then
// connection requests, then staged identity and signal queries, then the
// inbound data query and pulls, then outbound bursts, and only then the
// next command of the initialization ladder.
func (d *Device) Run() {
	if d.bytesToRead > 0 {
		d.receive()
		return
	}

	if d.fillLine() {
		d.processLine()
	}

	if d.flags&flagResetPending != 0 {
		d.flags &^= flagResetPending
		d.resetStates()
		return
	}

	if d.flags&flagSerialLocked != 0 {
		return
	}

	d.handleDisconnect()
	d.handleConnect()

	// Status queries outrank data movement: with traffic flowing in both
	// directions the reply slot frees up between transactions, and this is
	// the only moment a staged identity or signal request can claim it.
	if d.waitForReply == nil && !d.pullPending && d.bytesToWrite == 0 &&
		d.serviceRequests() {
		return
	}

	if d.flags&flagDataPending != 0 && d.bytesToReceive == 0 &&
		d.flags&flagLineRead != 0 && d.waitForReply == nil {
		if d.emitCommand(at.CmdRxQuery) {
			d.flags &^= flagDataPending
			d.waitForReply = okBytes
		}
		return
	}

	if d.bytesToReceive > 0 && d.flags&flagLineRead != 0 &&
		d.waitForReply == nil && !d.pullPending {
		if d.sendRxPull() {
			d.pullPending = true
		}
		return
	}

	if d.flags&flagIPConnected != 0 && (d.bytesToWrite > 0 || !d.writeBuf.IsEmpty()) {
		if d.bytesToWrite > 0 && d.waitForReply == nil {
			// The prompt has been consumed; the burst goes out now.
			d.sendData()
			return
		}
		if d.waitForReply == nil && d.replyState == 0 {
			d.prepareSending()
			return
		}
		if d.waitForReply != nil {
			return
		}
	}

	d.runMachine()
}

// receive drains raw payload bytes from the serial FIFO into the read
// ring. Line assembly resumes once the announced byte count has arrived.
func (d *Device) receive() {
	n := d.port.BytesAvailable()
	if n > d.bytesToRead {
		n = d.bytesToRead
	}
	for i := 0; i < n; i++ {
		d.readBuf.Push(d.port.ReadByte())
	}
	d.bytesToRead -= n
	if d.bytesToRead == 0 {
		d.flags |= flagLineRead
	}
}

// handleDisconnect honours a pending disconnect request. With a socket up
// it starts an orderly close; parked or failed connections drop straight
// back to the dormant state. A request during initialization is discarded,
// there is nothing to tear down yet.
func (d *Device) handleDisconnect() {
	if d.flags&flagDisconnectPending == 0 {
		return
	}
	d.flags &^= flagDisconnectPending
	if d.sendState < stateDormant {
		return
	}
	if d.flags&flagIPConnected != 0 {
		d.advance(stateClosing)
		return
	}
	d.connectState = NotConnected
	d.waitForReply = nil
	d.advance(stateDormant)
}

// handleConnect starts a connection attempt once the ladder has reached
// the dormant state. The pending flag survives until then, so a connect
// requested during initialization is picked up as soon as possible.
func (d *Device) handleConnect() {
	if d.flags&flagConnectPending == 0 || d.sendState != stateDormant {
		return
	}
	if d.waitForReply != nil {
		return
	}
	d.flags &^= flagConnectPending
	d.connectState = Connecting
	d.ipLen = 0
	d.advance(stateDNSQuery)
}

// runMachine issues the next command of the send-state ladder. It only
// acts when no reply is outstanding.
func (d *Device) runMachine() {
	if d.waitForReply != nil {
		return
	}

	switch d.sendState {
	case stateProbe:
		if d.emitCommand(at.CmdAT) {
			d.waitForReply = okBytes
			d.advance(stateEchoOff)
		}

	case stateEchoOff:
		if d.emitCommand(at.CmdEchoOff) {
			d.waitForReply = okBytes
			d.advance(stateSIMCheck)
		}

	case stateSIMCheck:
		if d.emitCommand(at.CmdSimStatus) {
			d.waitForReply = simReady
			d.advance(stateSignal)
		}

	case stateSignal:
		// +CPIN: READY released the wait; the query's own final OK resets
		// replyState and must arrive before the next command goes out.
		if d.replyState != 0 {
			return
		}
		if d.emitCommand(at.CmdSignal) {
			d.waitForReply = okBytes
			d.advance(stateNetReg)
		}

	case stateNetReg:
		if d.registered {
			d.advance(stateDefinePDP)
			return
		}
		// Not registered yet: poll again.
		if d.emitCommand(at.CmdNetReg) {
			d.waitForReply = okBytes
		}

	case stateDefinePDP:
		if d.apn == "" {
			return
		}
		if d.sendPDPDefinition() {
			d.waitForReply = okBytes
			d.advance(stateAttach)
		}

	case stateAttach:
		if d.emitCommand(at.CmdAttach) {
			d.waitForReply = okBytes
			d.connectCritical = true
			d.advance(stateMux)
		}

	case stateMux:
		if d.emitCommand(at.CmdMux) {
			d.waitForReply = okBytes
			d.advance(stateRxMode)
		}

	case stateRxMode:
		if d.emitCommand(at.CmdRxMode) {
			d.waitForReply = okBytes
			d.advance(stateDormant)
		}

	case stateDormant:
		d.replyState = 0

	case stateDNSQuery:
		if d.sendDNSQuery() {
			d.waitForReply = okBytes
			d.advance(stateDNSWait)
		}

	case stateDNSWait:
		if d.connectState == DNSError {
			return
		}
		if d.ipLen > 0 {
			d.advance(stateOpen)
		}

	case stateOpen:
		if d.sendOpen() {
			d.waitForReply = d.connectReply
			d.connectCritical = true
			d.advance(stateConnecting)
		}

	case stateConnecting:
		if d.connectState == ConnectionError {
			return
		}
		// The connect reply has been matched.
		d.replyState = 0
		d.flags |= flagIPConnected
		d.connectState = Connected
		d.advance(stateConnected)

	case stateConnected:
		if d.flags&flagIPConnected == 0 {
			// The modem reported the socket closed underneath us.
			d.connectState = NotConnected
			d.advance(stateDormant)
			return
		}
		d.replyState = 0

	case stateClosing:
		if d.emitCommand(at.CmdClose) {
			d.waitForReply = d.closeReply
			d.advance(stateClosingWait)
		}

	case stateClosingWait:
		d.replyState = 0
		d.flags &^= flagIPConnected
		d.connectState = NotConnected
		d.advance(stateDormant)
	}
}

// serviceRequests serves application-level status queries: a staged
// identity query first, then a signal refresh. It reports whether a
// command went out.
func (d *Device) serviceRequests() bool {
	if d.flags&flagLineRead == 0 {
		return false
	}
	if d.idPending != IDNone {
		return d.sendIdentityRequest()
	}
	if d.rssi == at.RSSIRefresh && d.emitCommand(at.CmdSignal) {
		d.waitForReply = okBytes
		return true
	}
	return false
}

// sendPDPDefinition emits the model-specific PDP context command with the
// configured APN.
func (d *Device) sendPDPDefinition() bool {
	if d.port.SpaceAvailable() < len(d.profile.PDPPrefix)+len(d.apn)+3 {
		return false
	}
	d.port.Write([]byte(d.profile.PDPPrefix))
	d.port.Write([]byte(d.apn))
	d.port.Write(quoteEnd)
	return true
}

// advance moves the ladder to the next send state.
func (d *Device) advance(next int8) {
	d.sendState = next
	d.debugf("send state advance")
}
