package query

import (
	"iter"
	"strings"
)

const escapeChar = '\\'

// Split returns the fields of s separated by every sep that is not escaped.
//
// A separator is escaped when it is preceded by an odd number of backslashes.
// Fields are yielded verbatim, escapes included, so they can be split again
// on a different separator. A trailing backslash with nothing after it is an
// ordinary character. The empty string has no fields.
//
// The sequence does no work until ranged over and can be ranged over again.
func Split(s string, sep byte) iter.Seq[string] {
	return func(yield func(string) bool) {
		if s == "" {
			return
		}
		start := 0
		for i := 0; i < len(s); i++ {
			if s[i] != sep || escaped(s, i) {
				continue
			}
			if !yield(s[start:i]) {
				return
			}
			start = i + 1
		}
		yield(s[start:])
	}
}

// SplitUnescaped splits s on sep and removes the escaping backslash from
// every escaped sep in the yielded fields.
func SplitUnescaped(s string, sep byte) iter.Seq[string] {
	return func(yield func(string) bool) {
		for field := range Split(s, sep) {
			if !yield(Unescape(field, sep)) {
				return
			}
		}
	}
}

// Unescape removes exactly one backslash in front of each escaped occurrence
// of any of seps. Other backslashes are left alone.
func Unescape(s string, seps ...byte) string {
	if strings.IndexByte(s, escapeChar) < 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == escapeChar && i+1 < len(s) && isSep(s[i+1], seps) && escaped(s, i+1) {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// escaped reports whether s[i] is preceded by an odd run of backslashes.
func escaped(s string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && s[j] == escapeChar; j-- {
		n++
	}
	return n%2 == 1
}

func isSep(c byte, seps []byte) bool {
	for _, sep := range seps {
		if c == sep {
			return true
		}
	}
	return false
}
