package at

const (
	// Terminal control
	CRLF   = "\r\n"
	Prompt = '>'

	// Final result codes
	OK       = "OK"
	ERROR    = "ERROR"
	CmeError = "+CME ERROR"

	// Commands issued by the connection engine
	CmdAT        = "AT"
	CmdEchoOff   = "ATE0"
	CmdSimStatus = "AT+CPIN?"
	CmdSignal    = "AT+CSQ"
	CmdNetReg    = "AT+CREG?"
	CmdAttach    = "AT+CGATT=1"
	CmdMux       = "AT+CIPMUX=1"
	CmdRxMode    = "AT+CIPRXGET=1"
	CmdRxQuery   = "AT+CIPRXGET=4,0"
	CmdClose     = "AT+CIPCLOSE=0"

	// Command prefixes completed with arguments at emit time
	CmdDNSPrefix  = `AT+CDNSGIP="`
	CmdSendPrefix = "AT+CIPSEND=0,"
	CmdPullPrefix = "AT+CIPRXGET=2,0,"
	CmdOpenPrefix = `AT+CIPSTART=0,"TCP","`

	// Identity queries
	CmdManufacturer = "AT+CGMI"
	CmdModel        = "AT+CGMM"
	CmdIMEI         = "AT+CGSN"
	CmdIMSI         = "AT+CIMI"

	// Intermediate replies matched by the engine
	SimReady = "+CPIN: READY"
)

// Signal strength values outside the 0..31 measurement range.
// RSSIUnknown is reported by the modem when no measurement is possible;
// RSSIRefresh is the driver-side sentinel meaning a fresh reading has been
// requested but not yet answered.
const (
	RSSIUnknown = 99
	RSSIRefresh = 255
)

// Response prefixes recognized by the parsers in this package.
var (
	prefixDNSReply  = []byte("+CDNSGIP: 1")
	prefixDNSFail   = []byte("+CDNSGIP: 0")
	prefixRxQuery   = []byte("+CIPRXGET: 4,0,")
	prefixRxData    = []byte("+CIPRXGET: 2,0,")
	prefixRxPending = []byte("+CIPRXGET: 1,0")
	prefixCSQ       = []byte("+CSQ: ")
	prefixNetReg    = []byte("+CREG: ")
	prefixEcho      = []byte("AT")

	errorBytes    = []byte(ERROR)
	cmeErrorBytes = []byte(CmeError)
)
