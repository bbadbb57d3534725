package modem

import "errors"

var (
	// ErrNoPort is returned when a Device is constructed without a Port.
	//
	// This indicates a configuration error. A Port is required in order to
	// reach the modem.
	ErrNoPort = errors.New("no port configured")

	// ErrBufferTooSmall is returned when a supplied read or write ring holds
	// fewer than minBufferSize bytes.
	//
	// A ring that small leaves the receive path room for only a few bytes
	// per pull request.
	ErrBufferTooSmall = errors.New("data buffer too small")
)
