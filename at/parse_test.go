package at_test

import (
	"bytes"
	"testing"

	"i4.energy/across/celllink/at"
)

func TestParseDNSReply(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		ip        string
		ok        bool
		malformed bool
	}{
		{
			name:  "Resolved address",
			input: "+CDNSGIP: 1,\"example.com\",\"93.184.216.34\"\r\n",
			ip:    "93.184.216.34",
			ok:    true,
		},
		{
			name:  "Resolved address with count field",
			input: "+CDNSGIP: 1,1,\"example.com\",\"93.184.216.34\"\r\n",
			ip:    "93.184.216.34",
			ok:    true,
		},
		{
			name:  "Two addresses",
			input: "+CDNSGIP: 1,\"example.com\",\"93.184.216.34\",\"93.184.216.35\"\r\n",
			ip:    "93.184.216.34",
			ok:    true,
		},
		{
			name:      "Missing address field",
			input:     "+CDNSGIP: 1,1,\"example.com\"\r\n",
			malformed: true,
		},
		{
			name:      "No quoted fields",
			input:     "+CDNSGIP: 1\r\n",
			malformed: true,
		},
		{
			name:  "Resolution failure is not a reply",
			input: "+CDNSGIP: 0\r\n",
		},
		{
			name:  "Unrelated line",
			input: "+CSQ: 15,99\r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ip, ok, malformed := at.ParseDNSReply([]byte(tt.input))
			if ok != tt.ok || malformed != tt.malformed {
				t.Fatalf("ParseDNSReply(%q) = (%q, %v, %v), want (%q, %v, %v)",
					tt.input, ip, ok, malformed, tt.ip, tt.ok, tt.malformed)
			}
			if tt.ok && string(ip) != tt.ip {
				t.Errorf("ParseDNSReply(%q) ip = %q, want %q", tt.input, ip, tt.ip)
			}
		})
	}
}

func TestDNSFailed(t *testing.T) {
	if !at.DNSFailed([]byte("+CDNSGIP: 0\r\n")) {
		t.Error("expected failure form to match")
	}
	if at.DNSFailed([]byte("+CDNSGIP: 1,\"a\",\"1.2.3.4\"\r\n")) {
		t.Error("success form must not match the failure parser")
	}
}

func TestParseRxForms(t *testing.T) {
	if n, ok := at.ParseRxQuery([]byte("+CIPRXGET: 4,0,50\r\n")); !ok || n != 50 {
		t.Errorf("ParseRxQuery = (%d, %v), want (50, true)", n, ok)
	}
	if n, ok := at.ParseRxData([]byte("+CIPRXGET: 2,0,1460\r\n")); !ok || n != 1460 {
		t.Errorf("ParseRxData = (%d, %v), want (1460, true)", n, ok)
	}
	if _, ok := at.ParseRxQuery([]byte("+CIPRXGET: 2,0,50\r\n")); ok {
		t.Error("mode 2 must not match the mode 4 parser")
	}
	if !at.RxPending([]byte("+CIPRXGET: 1,0\r\n")) {
		t.Error("expected data notification to match")
	}
	if at.RxPending([]byte("+CIPRXGET: 4,0,1\r\n")) {
		t.Error("mode 4 must not match the notification parser")
	}
}

func TestParseCSQ(t *testing.T) {
	tests := []struct {
		input string
		rssi  uint8
		ok    bool
	}{
		{"+CSQ: 17,99\r\n", 17, true},
		{"+CSQ: 0,0\r\n", 0, true},
		{"+CSQ: 31,99\r\n", 31, true},
		{"+CSQ: 99,99\r\n", 99, true},
		{"+CSQ: 42,99\r\n", 0, false},
		{"+CSQ: ,99\r\n", 0, false},
		{"+CREG: 0,1\r\n", 0, false},
	}

	for _, tt := range tests {
		rssi, ok := at.ParseCSQ([]byte(tt.input))
		if ok != tt.ok || rssi != tt.rssi {
			t.Errorf("ParseCSQ(%q) = (%d, %v), want (%d, %v)", tt.input, rssi, ok, tt.rssi, tt.ok)
		}
	}
}

func TestRegistered(t *testing.T) {
	tests := []struct {
		input      string
		registered bool
		ok         bool
	}{
		{"+CREG: 0,1\r\n", true, true},
		{"+CREG: 0,5\r\n", true, true},
		{"+CREG: 0,2\r\n", false, true},
		{"+CREG: 0,0\r\n", false, true},
		{"+CSQ: 17,99\r\n", false, false},
	}

	for _, tt := range tests {
		registered, ok := at.Registered([]byte(tt.input))
		if ok != tt.ok || registered != tt.registered {
			t.Errorf("Registered(%q) = (%v, %v), want (%v, %v)",
				tt.input, registered, ok, tt.registered, tt.ok)
		}
	}
}

func TestParseUint(t *testing.T) {
	tests := []struct {
		input string
		n     int
		ok    bool
	}{
		{"0", 0, true},
		{"50", 50, true},
		{"1460,99", 1460, true},
		{"99999", 99999, true},
		{"123456", 0, false},
		{"", 0, false},
		{",1", 0, false},
	}

	for _, tt := range tests {
		n, ok := at.ParseUint([]byte(tt.input))
		if ok != tt.ok || n != tt.n {
			t.Errorf("ParseUint(%q) = (%d, %v), want (%d, %v)", tt.input, n, ok, tt.n, tt.ok)
		}
	}
}

func TestAppendUint(t *testing.T) {
	for _, tt := range []struct {
		n    int
		want string
	}{
		{0, "0"},
		{7, "7"},
		{100, "100"},
		{65535, "65535"},
	} {
		got := at.AppendUint(nil, tt.n)
		if string(got) != tt.want {
			t.Errorf("AppendUint(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFinalForms(t *testing.T) {
	if !at.IsFinalOK([]byte("OK\r\n")) || !at.IsFinalOK([]byte("OK")) {
		t.Error("expected OK to be final")
	}
	if at.IsFinalOK([]byte("OKAY\r\n")) {
		t.Error("OKAY is not a final OK")
	}
	if !at.IsError([]byte("ERROR\r\n")) || !at.IsError([]byte("+CME ERROR: 30\r\n")) {
		t.Error("expected error forms to match")
	}
	if at.IsError([]byte("+CSQ: 15,99\r\n")) {
		t.Error("data line is not an error")
	}
}

func TestIsEcho(t *testing.T) {
	if !at.IsEcho([]byte("AT+CGMI\r\n")) {
		t.Error("command echo should be skipped")
	}
	if !at.IsEcho([]byte("\r\n")) {
		t.Error("bare CR line should be skipped")
	}
	if at.IsEcho([]byte("SIMCOM_Ltd\r\n")) {
		t.Error("identity payload must not be treated as echo")
	}
}

func TestTrimLine(t *testing.T) {
	got := at.TrimLine([]byte("SIMCOM_Ltd\r\n"))
	if !bytes.Equal(got, []byte("SIMCOM_Ltd")) {
		t.Errorf("TrimLine = %q", got)
	}
}
