package appointment

import "strings"

const upperhex = "0123456789ABCDEF"

// EscapeComponent percent-encodes s the way browsers' encodeURIComponent
// does: UTF-8 bytes outside A-Z a-z 0-9 and -_.!~*'() are escaped, and
// spaces become %20 rather than '+'.
//
// url.QueryEscape differs on spaces and on !'()*, and WhatsApp links built
// by the old site used the browser rules.
func EscapeComponent(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !unreserved(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if unreserved(ch) {
			b.WriteByte(ch)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[ch>>4])
		b.WriteByte(upperhex[ch&15])
	}
	return b.String()
}

func unreserved(ch byte) bool {
	switch {
	case 'a' <= ch && ch <= 'z', 'A' <= ch && ch <= 'Z', '0' <= ch && ch <= '9':
		return true
	}
	switch ch {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
