package classfile

import "unicode/utf16"

// decodeModifiedUTF8 decodes the class-file string encoding: NUL is
// written as 0xC0 0x80 and supplementary characters as two encoded
// surrogates of three bytes each. ok is false when the bytes are not
// well formed; the returned string is then a lossy conversion.
func decodeModifiedUTF8(b []byte) (s string, ok bool) {
	ascii := true
	for _, c := range b {
		if c == 0 || c >= 0x80 {
			ascii = false
			break
		}
	}
	if ascii {
		return string(b), true
	}

	units := make([]uint16, 0, len(b))
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c != 0 && c < 0x80:
			units = append(units, uint16(c))
			i++
		case c&0xE0 == 0xC0:
			if i+1 >= len(b) || b[i+1]&0xC0 != 0x80 {
				return string(b), false
			}
			units = append(units, uint16(c&0x1F)<<6|uint16(b[i+1]&0x3F))
			i += 2
		case c&0xF0 == 0xE0:
			if i+2 >= len(b) || b[i+1]&0xC0 != 0x80 || b[i+2]&0xC0 != 0x80 {
				return string(b), false
			}
			units = append(units, uint16(c&0x0F)<<12|uint16(b[i+1]&0x3F)<<6|uint16(b[i+2]&0x3F))
			i += 3
		default:
			return string(b), false
		}
	}
	return string(utf16.Decode(units)), true
}
