package client

import "strings"

const upperhex = "0123456789ABCDEF"

// EscapeFilename percent-encodes a filename the same way as ECMAScript
// encodeURIComponent(): every byte outside of A-Z a-z 0-9 - _ . ! ~ * ' ( )
// is encoded.
func EscapeFilename(filename string) string {
	var sb strings.Builder
	sb.Grow(len(filename))

	for i := 0; i < len(filename); i++ {
		c := filename[i]
		if isUnreserved(c) {
			sb.WriteByte(c)
			continue
		}

		sb.WriteByte('%')
		sb.WriteByte(upperhex[c>>4])
		sb.WriteByte(upperhex[c&15])
	}

	return sb.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}

	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}

	return false
}
