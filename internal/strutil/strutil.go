package strutil

import (
	"iter"
	"strings"
)

// CmpFold reports whether two ASCII strings are equal ignoring letter case.
func CmpFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := 0; i < len(a); i++ {
		if lower(a[i]) != lower(b[i]) {
			return false
		}
	}

	return true
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c | 0x20
	}

	return c
}

func LStripWS(str string) string {
	for i, c := range str {
		switch c {
		case ' ', '\t':
		default:
			return str[i:]
		}
	}

	return ""
}

func RStripWS(str string) string {
	for i := len(str); i > 0; i-- {
		switch str[i-1] {
		case ' ', '\t':
		default:
			return str[:i]
		}
	}

	return ""
}

// CutHeader splits a header value into the value itself and its parameters,
// stripping whitespaces between them.
func CutHeader(header string) (value, params string) {
	sep := strings.IndexByte(header, ';')
	if sep == -1 {
		return header, ""
	}

	return header[:sep], LStripWS(header[sep+1:])
}

func Unquote(str string) string {
	if len(str) > 1 && str[0] == '"' && str[len(str)-1] == '"' {
		return str[1 : len(str)-1]
	}

	return str
}

// WalkKV iterates over semicolon-separated key=value parameters, as found in
// Content-Disposition and Content-Type header values. Values are unquoted.
// A parameter without a value is yielded with an empty value.
func WalkKV(data string) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for len(data) > 0 {
			var pair string
			if sep := strings.IndexByte(data, ';'); sep == -1 {
				pair, data = data, ""
			} else {
				pair, data = data[:sep], LStripWS(data[sep+1:])
			}

			key, value, _ := strings.Cut(pair, "=")
			if !yield(RStripWS(key), Unquote(value)) {
				return
			}
		}
	}
}
