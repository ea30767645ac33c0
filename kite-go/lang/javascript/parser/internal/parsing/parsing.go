// Package parsing implements input pre-processing for the javascript parser.
package parsing

import "unicode/utf8"

// TrimMaxLines trims src so that a maximum of maxLines lines are present.
// Lines are separated by one of \n, \r, \r\n, U+2028 or U+2029 as per the
// ECMAScript standard. It returns the potentially trimmed output and a
// boolean indicating if the input was trimmed.
func TrimMaxLines(src []byte, maxLines uint64) (out []byte, trimmed bool) {
	if maxLines == 0 {
		return src, false
	}

	var cntNL uint64
	for i := 0; i < len(src); i++ {
		w := 1
		switch {
		case src[i] == '\n' || src[i] == '\r':
		case src[i] >= utf8.RuneSelf:
			r, size := utf8.DecodeRune(src[i:])
			if r != '\u2028' && r != '\u2029' {
				i += size - 1
				continue
			}
			w = size
		default:
			continue
		}

		cntNL++
		if cntNL >= maxLines {
			return src[:i], true
		}

		if src[i] == '\r' && (i+1) < len(src) && src[i+1] == '\n' {
			// jump over the following \n when processing \r\n
			i++
		}
		i += w - 1
	}
	return src, false
}
