package auth

import (
	"fmt"
	"strconv"
	"strings"
)

// UnescapeSecret decodes backslash escape sequences embedded in a secret, so
// a PEM key stored on one line with literal "\n" turns back into a multi-line
// key. Recognised escapes are \\ \' \" \a \b \f \n \r \t \v, octal \o to
// \ooo, \xhh, \uXXXX and \UXXXXXXXX. Unknown escapes are kept verbatim.
// Surrogate code points (U+D800 to U+DFFF) cannot be encoded as UTF-8 and
// are rejected.
func UnescapeSecret(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}

		if i+1 >= len(s) {
			return "", fmt.Errorf("%w: trailing backslash", ErrInvalidEscape)
		}
		i++

		switch e := s[i]; e {
		case '\n':
			// backslash-newline is a line continuation
		case '\\', '\'', '"':
			b.WriteByte(e)
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'v':
			b.WriteByte('\v')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			j := i
			for j < len(s) && j < i+3 && s[j] >= '0' && s[j] <= '7' {
				j++
			}
			v, _ := strconv.ParseUint(s[i:j], 8, 32)
			b.WriteRune(rune(v))
			i = j - 1
		case 'x', 'u', 'U':
			width := map[byte]int{'x': 2, 'u': 4, 'U': 8}[e]
			if i+1+width > len(s) {
				return "", fmt.Errorf("%w: truncated \\%c escape at position %d", ErrInvalidEscape, e, i-1)
			}
			v, err := strconv.ParseUint(s[i+1:i+1+width], 16, 32)
			if err != nil {
				return "", fmt.Errorf("%w: malformed \\%c escape at position %d", ErrInvalidEscape, e, i-1)
			}
			if v > 0x10FFFF {
				return "", fmt.Errorf("%w: \\%c escape out of range at position %d", ErrInvalidEscape, e, i-1)
			}
			if v >= 0xD800 && v <= 0xDFFF {
				return "", fmt.Errorf("%w: \\%c escape is a lone surrogate at position %d", ErrInvalidEscape, e, i-1)
			}
			b.WriteRune(rune(v))
			i += width
		default:
			b.WriteByte('\\')
			b.WriteByte(e)
		}
	}

	return b.String(), nil
}
