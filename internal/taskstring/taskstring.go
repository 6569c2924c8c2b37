// Package taskstring parses rake-style task strings such as
// "HardWorker[bob,5]" into a worker class name and its arguments.
//
// Arguments are separated by commas. A backslash escapes the next character,
// so "Mailer[a\,b,c]" has the two arguments "a,b" and "c". There is no
// quoting.
package taskstring

import "regexp"

var taskRe = regexp.MustCompile(`^([^\[]+)\[(.*)\]$`)

// Parse splits s into a name and its arguments.
//
// A string without a trailing bracket group, including one with unbalanced
// brackets like "Foo[", is returned whole as the name with no arguments.
// The returned slice is never nil.
func Parse(s string) (name string, args []string) {
	m := taskRe.FindStringSubmatch(s)
	if m == nil {
		return s, []string{}
	}
	if m[2] == "" {
		return m[1], []string{}
	}
	return m[1], splitArgs(m[2])
}

// splitArgs splits on unescaped commas. Whitespace directly before a comma or
// the end of input is dropped, as is whitespace directly after a comma.
// Escaped characters are never trimmed.
func splitArgs(s string) []string {
	var args []string
	rest := s
	for {
		tok, next, more := nextToken(rest)
		args = append(args, unescape(tok))
		if !more {
			return args
		}
		rest = trimLeftSpace(next)
	}
}

// nextToken returns the token up to the first unescaped comma with trailing
// whitespace removed, the input after that comma, and whether a comma was found.
func nextToken(s string) (tok, rest string, more bool) {
	end := 0
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == '\\' && i+1 < len(s):
			i += 2
			end = i
			continue
		case c == ',':
			return s[:end], s[i+1:], true
		case !isSpace(c):
			end = i + 1
		}
		i++
	}
	return s[:end], "", false
}

// unescape replaces each \X with X. A lone trailing backslash is kept.
func unescape(s string) string {
	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		buf = append(buf, s[i])
	}
	return string(buf)
}

func trimLeftSpace(s string) string {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return s[i:]
}

// isSpace matches the ASCII whitespace class: space, \t, \n, \v, \f, \r.
func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
