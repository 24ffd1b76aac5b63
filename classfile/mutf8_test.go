package classfile

import "testing"

func TestDecodeModifiedUTF8(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
		ok   bool
	}{
		{"ascii", []byte("hello"), "hello", true},
		{"empty", nil, "", true},
		{"encoded nul", []byte{'a', 0xC0, 0x80, 'b'}, "a\x00b", true},
		{"two byte", []byte{0xC3, 0xA9}, "é", true},
		{"three byte", []byte{0xE2, 0x82, 0xAC}, "€", true},
		{"surrogate pair", []byte{0xED, 0xA0, 0xBD, 0xED, 0xB8, 0x80}, "\U0001F600", true},
		{"raw nul", []byte{'a', 0x00}, "a\x00", false},
		{"truncated two byte", []byte{0xC3}, "\xC3", false},
		{"bad continuation", []byte{0xE0, 0x41, 0x80}, "\xE0A\x80", false},
		{"four byte form", []byte{0xF0, 0x9F, 0x98, 0x80}, "\xF0\x9F\x98\x80", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := decodeModifiedUTF8(tt.in)
			if ok != tt.ok {
				t.Errorf("ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
