package modem

//go:generate go tool mockgen -source=port.go -destination=mock_port.go -package=modem

// Port represents the byte pipe between the driver and the modem's UART.
//
// A Port is assumed to be already open. Unlike an io.ReadWriter it exposes
// counted occupancy and free space, because the engine throttles every
// command and payload burst against a small serial FIFO and must decide
// without blocking whether a full write fits. Typical implementations wrap
// a host serial device (see the serial package) or an in-memory script used
// for testing.
//
// All methods must be non-blocking. Read and Write transfer at most as many
// bytes as BytesAvailable and SpaceAvailable report and return the count
// actually moved.
type Port interface {
	// BytesAvailable returns the number of received bytes waiting to be read.
	BytesAvailable() int
	// SpaceAvailable returns the free space in the transmit buffer.
	SpaceAvailable() int
	// ReadByte removes and returns one received byte. Callers must check
	// BytesAvailable first; the result on an empty buffer is stale data.
	ReadByte() byte
	// Read copies up to len(p) received bytes into p.
	Read(p []byte) int
	// Write queues up to len(p) bytes for transmission.
	Write(p []byte) int
	// FlushReceiveBuffers discards all received but unread bytes.
	FlushReceiveBuffers()
	// ReadBufferSize returns the fixed capacity of the receive buffer.
	ReadBufferSize() int
}
