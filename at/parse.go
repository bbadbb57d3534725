// Package at holds the wire-level vocabulary of SIMCom-style AT modems:
// the command strings the driver produces and bounded parsers for the
// response lines it consumes.
//
// Parsers operate on a single assembled line, which may still carry its
// trailing CR/LF. They are pure predicates: they extract values and report
// whether the line matched, and never allocate on the match path.
package at

import "bytes"

// maxUintDigits bounds every integer field on the wire. Five digits cover
// the largest value a modem reports in a CIPRXGET or CIPSEND exchange.
const maxUintDigits = 5

// ParseUint reads a decimal integer from the start of s. It accepts at most
// maxUintDigits digits and reports failure on empty input or overflow, so a
// hostile line cannot produce a silently wrapped count.
func ParseUint(s []byte) (int, bool) {
	n := 0
	i := 0
	for ; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		if i == maxUintDigits {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	if i == 0 {
		return 0, false
	}
	return n, true
}

// AppendUint appends the decimal form of n to dst. Negative values append
// nothing; the engine never emits them.
func AppendUint(dst []byte, n int) []byte {
	if n < 0 {
		return dst
	}
	var tmp [20]byte
	i := len(tmp)
	for {
		i--
		tmp[i] = byte('0' + n%10)
		n /= 10
		if n == 0 {
			break
		}
	}
	return append(dst, tmp[i:]...)
}

// ParseDNSReply matches a +CDNSGIP success line and extracts the resolved
// address (the second quoted field). A success line with a quote count
// outside [4,10] is structurally broken; for those malformed is true and
// ok is false.
func ParseDNSReply(line []byte) (ip []byte, ok bool, malformed bool) {
	if !bytes.HasPrefix(line, prefixDNSReply) {
		return nil, false, false
	}
	quotes := 0
	for _, c := range line {
		if c == '"' {
			quotes++
		}
	}
	if quotes < 4 || quotes > 10 {
		return nil, false, true
	}
	// The address sits between the third and fourth quote.
	seen := 0
	start := -1
	for i, c := range line {
		if c != '"' {
			continue
		}
		seen++
		if seen == 3 {
			start = i + 1
		} else if seen == 4 {
			return line[start:i], true, false
		}
	}
	return nil, false, true
}

// DNSFailed matches the +CDNSGIP failure form.
func DNSFailed(line []byte) bool {
	return bytes.HasPrefix(line, prefixDNSFail)
}

// ParseRxQuery matches "+CIPRXGET: 4,0,N" and returns N, the number of
// bytes the modem holds for this connection.
func ParseRxQuery(line []byte) (int, bool) {
	if !bytes.HasPrefix(line, prefixRxQuery) {
		return 0, false
	}
	return ParseUint(line[len(prefixRxQuery):])
}

// ParseRxData matches "+CIPRXGET: 2,0,N" and returns N, the number of raw
// payload bytes that follow this line on the wire.
func ParseRxData(line []byte) (int, bool) {
	if !bytes.HasPrefix(line, prefixRxData) {
		return 0, false
	}
	return ParseUint(line[len(prefixRxData):])
}

// RxPending matches the unsolicited "+CIPRXGET: 1,0" data notification.
func RxPending(line []byte) bool {
	return bytes.HasPrefix(line, prefixRxPending)
}

// ParseCSQ matches a +CSQ report and returns the RSSI field. Values outside
// the modem's documented domain (0..31 or 99) are rejected so a corrupt
// line cannot poison the reading.
func ParseCSQ(line []byte) (uint8, bool) {
	if !bytes.HasPrefix(line, prefixCSQ) {
		return 0, false
	}
	n, ok := ParseUint(line[len(prefixCSQ):])
	if !ok || (n > 31 && n != RSSIUnknown) {
		return 0, false
	}
	return uint8(n), true
}

// Registered matches a +CREG report and reports whether the modem is
// registered on its home network or roaming (status 1 or 5).
func Registered(line []byte) (registered bool, ok bool) {
	if !bytes.HasPrefix(line, prefixNetReg) {
		return false, false
	}
	rest := line[len(prefixNetReg):]
	comma := bytes.IndexByte(rest, ',')
	if comma < 0 || comma+1 >= len(rest) {
		return false, false
	}
	status := rest[comma+1]
	return status == '1' || status == '5', true
}

// IsEcho reports whether the line is a command echo or a stray leading CR,
// which identity capture must skip in case echo is still enabled.
func IsEcho(line []byte) bool {
	return bytes.HasPrefix(line, prefixEcho) || (len(line) > 0 && line[0] == '\r')
}

// TrimLine strips the trailing CR/LF a line assembler leaves in place.
func TrimLine(line []byte) []byte {
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line
}

// IsFinalOK reports whether the line is exactly the OK result code.
func IsFinalOK(line []byte) bool {
	t := TrimLine(line)
	return len(t) == 2 && t[0] == 'O' && t[1] == 'K'
}

// IsError reports whether the line is an ERROR or +CME ERROR result.
func IsError(line []byte) bool {
	t := TrimLine(line)
	return bytes.HasPrefix(t, errorBytes) || bytes.HasPrefix(t, cmeErrorBytes)
}
