package emitter

import (
	"fmt"
	"strings"
)

var unescapes = map[byte]byte{
	'n':  '\n',
	'r':  '\r',
	'"':  '"',
	't':  '\t',
	'f':  '\f',
	'v':  '\v',
	'\\': '\\',
}

// Unescape decodes a header produced by Emit back into the embedded text.
// Segments are concatenated and continuation lines removed, the way a C
// compiler would see the macro value. NUL bytes dropped by Emit are not
// restored.
//
// It lets callers check a checked-in header against its source file without
// invoking a C compiler.
func Unescape(src string) (string, error) {
	i := strings.Index(src, "#define ")
	if i < 0 {
		return "", fmt.Errorf("no #define found")
	}
	nl := strings.IndexByte(src[i:], '\n')
	if nl < 0 {
		return "", fmt.Errorf("#define has no body")
	}
	body := src[i+nl+1:]

	var sb strings.Builder
	inLiteral := false
	for j := 0; j < len(body); j++ {
		c := body[j]
		if !inLiteral {
			switch c {
			case '"':
				inLiteral = true
			case ' ', '\t', '\n', '\\':
			default:
				return "", fmt.Errorf("unexpected %q at offset %d outside literal", c, j)
			}
			continue
		}

		switch c {
		case '"':
			inLiteral = false
		case '\\':
			if j+1 >= len(body) {
				return "", fmt.Errorf("dangling backslash at offset %d", j)
			}
			j++
			u, ok := unescapes[body[j]]
			if !ok {
				return "", fmt.Errorf("unknown escape \\%c at offset %d", body[j], j)
			}
			sb.WriteByte(u)
		case '\n':
			return "", fmt.Errorf("unterminated literal at offset %d", j)
		default:
			sb.WriteByte(c)
		}
	}
	if inLiteral {
		return "", fmt.Errorf("unterminated literal at end of input")
	}
	return sb.String(), nil
}
