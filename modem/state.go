package modem

// ConnectState represents the externally visible state of the data
// connection. The driver moves through Connecting on its way up; the two
// error states are terminal until the application disconnects or the
// engine resets itself.
type ConnectState int8

const (
	// NotConnected is the initial state and the state after teardown.
	NotConnected ConnectState = iota
	// Connecting is reported from the moment a connect is accepted until
	// the TCP open completes.
	Connecting
	// Connected means the data pipe is up in both directions.
	Connected
	// ConnectionError means the modem rejected the attach or the TCP open.
	ConnectionError
	// DNSError means the hostname could not be resolved or the reply was
	// structurally broken.
	DNSError
	// GenericError is entered on an unexpected ERROR or +CME ERROR reply.
	GenericError
)

// String returns a human-readable representation of the connect state.
func (s ConnectState) String() string {
	switch s {
	case NotConnected:
		return "NotConnected"
	case Connecting:
		return "Connecting"
	case Connected:
		return "Connected"
	case ConnectionError:
		return "ConnectionError"
	case DNSError:
		return "DNSError"
	case GenericError:
		return "GenericError"
	default:
		return "Unknown"
	}
}

// IDKind selects which identity string RequestIDString queries.
type IDKind int8

const (
	IDNone IDKind = iota
	IDManufacturer
	IDModel
	IDIMEI
	IDIMSI
)

// State flags. lineRead gates the line assembler: it is cleared while raw
// payload bytes are streaming so response framing is not corrupted.
const (
	flagLineRead uint8 = 1 << iota
	flagSerialLocked
	flagIPConnected
	flagDisconnectPending
	flagConnectPending
	flagResetPending
	flagDataPending
)
