// Package hexcodec decodes the hex values found in configuration: keys,
// node ids, addresses and extra data.
package hexcodec

import (
	"encoding/hex"
	"strings"
)

// Decode decodes s after trimming surrounding space and one optional 0x or
// 0X prefix.
func Decode(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	return hex.DecodeString(s)
}
