package util

import (
	"fmt"
	"strings"
)

// DocumentKey maps an arbitrary id onto a valid ArangoDB document key.
// ArangoDB keys only allow letters, digits and _-:.@()+,=;$!*'%, so every
// other byte, and '%' itself, is percent-encoded. The mapping is reversible.
func DocumentKey(id string) string {
	var b strings.Builder
	for i := 0; i < len(id); i++ {
		c := id[i]
		if isKeyByte(c) {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}

func isKeyByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	return strings.IndexByte("_-:.@()+,=;$!*'", c) >= 0
}
