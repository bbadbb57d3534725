package modem

// Profile captures the differences between SIMCom modem models that the
// shared engine cannot paper over: the unsolicited token announcing a lost
// connection, the replies to open and close on a multiplexed socket, and
// the largest single data pull the firmware accepts.
//
// The engine matches every token as a line prefix. Callers targeting a
// model not covered here can supply their own Profile.
type Profile struct {
	// Name identifies the model in logs.
	Name string
	// CloseToken is the unsolicited line announcing that the peer or the
	// network closed the socket.
	CloseToken string
	// ConnectReply confirms a successful TCP open.
	ConnectReply string
	// ConnectFail announces a failed TCP open.
	ConnectFail string
	// CloseReply confirms a locally requested close.
	CloseReply string
	// PDPPrefix starts the PDP context definition command; the engine
	// appends the quoted APN.
	PDPPrefix string
	// MaxPullSize caps the byte count in a single AT+CIPRXGET=2 request.
	MaxPullSize int
}

// SIM800 returns the profile for the SIM800 series.
func SIM800() Profile {
	return Profile{
		Name:         "SIM800",
		CloseToken:   "0, CLOSED",
		ConnectReply: "0, CONNECT OK",
		ConnectFail:  "0, CONNECT FAIL",
		CloseReply:   "0, CLOSE OK",
		PDPPrefix:    `AT+CSTT="`,
		MaxPullSize:  1460,
	}
}

// SIM7500 returns the profile for the SIM7500/7600 series, which signals a
// dropped bearer instead of a per-socket close.
func SIM7500() Profile {
	return Profile{
		Name:         "SIM7500",
		CloseToken:   "+PDP: DEACT",
		ConnectReply: "0, CONNECT OK",
		ConnectFail:  "0, CONNECT FAIL",
		CloseReply:   "0, CLOSE OK",
		PDPPrefix:    `AT+CGSOCKCONT=1,"IP","`,
		MaxPullSize:  1500,
	}
}
