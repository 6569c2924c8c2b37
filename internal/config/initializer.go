package config

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	sidekiq "github.com/rootlyhq/sidekiq-client-cli"
)

var (
	optionsHashRe   = regexp.MustCompile(`(?s)Sidekiq\.default_(?:worker|job)_options\s*=\s*\{(.*?)\}`)
	optionsIndexRe  = regexp.MustCompile(`(?m)Sidekiq\.default_(?:worker|job)_options\[\s*(?:'(\w+)'|"(\w+)"|:(\w+))\s*\]\s*=\s*(.+?)\s*$`)
	redisHashRe     = regexp.MustCompile(`(?s)\.redis\s*=\s*\{(.*?)\}`)
	pairKeyRe       = regexp.MustCompile(`^(?:'(\w+)'|"(\w+)"|:(\w+))\s*=>\s*(.*)$|^(\w+):\s+(.*)$`)
	envIndexRe      = regexp.MustCompile(`^ENV\[\s*(?:'([^']*)'|"([^"]*)")\s*\]$`)
	envFetchRe      = regexp.MustCompile(`^ENV\.fetch\(\s*(?:'([^']*)'|"([^"]*)")\s*(?:,\s*(.+?))?\s*\)$`)
	intLiteralRe    = regexp.MustCompile(`^-?\d+$`)
	symbolLiteralRe = regexp.MustCompile(`^:(\w+)$`)
	serverBlockRe   = regexp.MustCompile(`\bconfigure_server\s*(do\b|\{)`)
	stringLiteralRe = regexp.MustCompile(`'(?:[^'\\]|\\.)*'|"(?:[^"\\]|\\.)*"`)
	blockOpenerRe   = regexp.MustCompile(`^\s*(?:if|unless|while|until|case|begin|def|class|module)\b`)
	doKeywordRe     = regexp.MustCompile(`\bdo\b`)
	endKeywordRe    = regexp.MustCompile(`\bend\b`)
)

// lookupFunc resolves ENV references, like os.LookupEnv.
type lookupFunc func(string) (string, bool)

// scanInitializer extracts default worker options and the client's Redis
// settings from a Sidekiq initializer. It understands literal assignments
// only:
//
//	Sidekiq.default_worker_options = { 'queue' => 'mailers', 'retry' => 3 }
//	Sidekiq.default_job_options['retry'] = false
//	config.redis = { url: ENV.fetch('REDIS_URL', 'redis://localhost:6379/0') }
//
// Values may be strings, symbols, booleans, integers, nil, ENV['X'] or
// ENV.fetch('X', fallback). Anything else is skipped. configure_server
// blocks never run in a client process and are ignored. Later assignments
// override earlier ones.
func scanInitializer(src string, lookup lookupFunc, logger sidekiq.Logger) (*File, error) {
	src = stripServerBlocks(stripComments(src))
	f := &File{}
	s := scanner{lookup: lookup, logger: logger}

	for _, a := range optionAssignments(src, s) {
		if err := s.applyOption(f, a.key, a.raw); err != nil {
			return nil, err
		}
	}

	for _, m := range redisHashRe.FindAllStringSubmatch(src, -1) {
		for key, raw := range s.pairs(m[1]) {
			v, ok := s.value(raw)
			str, isStr := v.(string)
			if !ok || !isStr {
				continue
			}
			switch key {
			case "url":
				f.RedisURL = str
			case "namespace":
				f.Namespace = str
			}
		}
	}

	return f, nil
}

type assignment struct {
	at  int
	key string
	raw string
}

// optionAssignments returns every default options assignment, hash and
// index forms alike, in source order.
func optionAssignments(src string, s scanner) []assignment {
	var out []assignment
	for _, m := range optionsHashRe.FindAllStringSubmatchIndex(src, -1) {
		for key, raw := range s.pairs(src[m[2]:m[3]]) {
			out = append(out, assignment{at: m[0], key: key, raw: raw})
		}
	}
	for _, m := range optionsIndexRe.FindAllStringSubmatchIndex(src, -1) {
		out = append(out, assignment{
			at:  m[0],
			key: firstNonEmpty(group(src, m, 1), group(src, m, 2), group(src, m, 3)),
			raw: group(src, m, 4),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].at < out[j].at })
	return out
}

// group returns submatch n of an index match, or "" if it did not take part.
func group(src string, m []int, n int) string {
	if m[2*n] < 0 {
		return ""
	}
	return src[m[2*n]:m[2*n+1]]
}

type scanner struct {
	lookup lookupFunc
	logger sidekiq.Logger
}

func (s scanner) applyOption(f *File, key, raw string) error {
	v, ok := s.value(raw)
	if !ok {
		return nil
	}
	switch key {
	case "queue":
		if q, isStr := v.(string); isStr {
			f.Queue = q
		}
	case "retry":
		r, err := coerceRetry(v)
		if err != nil {
			return err
		}
		if r.IsSet() {
			f.Retry = r
		}
	}
	return nil
}

// pairs splits the inside of a Ruby hash literal into key => raw value.
func (s scanner) pairs(body string) map[string]string {
	out := make(map[string]string)
	for _, item := range splitTopLevel(body) {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		m := pairKeyRe.FindStringSubmatch(item)
		if m == nil {
			s.logger.Debug("skipping unrecognized hash entry", "entry", item)
			continue
		}
		if key := firstNonEmpty(m[1], m[2], m[3]); key != "" {
			out[key] = m[4]
		} else {
			out[m[5]] = m[6]
		}
	}
	return out
}

// value evaluates a Ruby literal. ok is false for nil, unset ENV lookups and
// expressions it does not understand.
func (s scanner) value(raw string) (interface{}, bool) {
	raw = strings.TrimSpace(raw)

	if str, ok := unquote(raw); ok {
		return str, true
	}
	switch {
	case raw == "true":
		return true, true
	case raw == "false":
		return false, true
	case raw == "nil":
		return nil, false
	case intLiteralRe.MatchString(raw):
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, false
		}
		return n, true
	}
	if m := symbolLiteralRe.FindStringSubmatch(raw); m != nil {
		return m[1], true
	}
	if m := envIndexRe.FindStringSubmatch(raw); m != nil {
		if v, ok := s.lookup(firstNonEmpty(m[1], m[2])); ok {
			return v, true
		}
		return nil, false
	}
	if m := envFetchRe.FindStringSubmatch(raw); m != nil {
		if v, ok := s.lookup(firstNonEmpty(m[1], m[2])); ok {
			return v, true
		}
		if m[3] != "" {
			return s.value(m[3])
		}
		return nil, false
	}

	s.logger.Debug("skipping unsupported initializer value", "value", raw)
	return nil, false
}

// stripServerBlocks removes every configure_server block, in do/end or brace
// form. An unterminated block runs to the end of src.
func stripServerBlocks(src string) string {
	for {
		loc := serverBlockRe.FindStringSubmatchIndex(src)
		if loc == nil {
			return src
		}
		brace := src[loc[2]:loc[3]] == "{"
		end := blockEnd(src[loc[1]:], brace)
		src = src[:loc[0]] + src[loc[1]+end:]
	}
}

// blockEnd returns the offset in rest just past the token closing a block
// that is already open.
func blockEnd(rest string, brace bool) int {
	depth := 1
	offset := 0
	for _, line := range strings.SplitAfter(rest, "\n") {
		code := stringLiteralRe.ReplaceAllStringFunc(line, func(lit string) string {
			return strings.Repeat(" ", len(lit))
		})
		if brace {
			for i := 0; i < len(code); i++ {
				switch code[i] {
				case '{':
					depth++
				case '}':
					depth--
					if depth == 0 {
						return offset + i + 1
					}
				}
			}
		} else {
			if blockOpenerRe.MatchString(code) {
				depth++
			}
			depth += len(doKeywordRe.FindAllString(code, -1))
			for _, m := range endKeywordRe.FindAllStringIndex(code, -1) {
				depth--
				if depth == 0 {
					return offset + m[1]
				}
			}
		}
		offset += len(line)
	}
	return len(rest)
}

// splitTopLevel splits on commas outside quotes and parentheses.
func splitTopLevel(s string) []string {
	var (
		parts []string
		depth int
		quote byte
		start int
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			depth--
		case c == ',' && depth == 0:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}

// stripComments removes # comments that are not inside a string literal.
func stripComments(src string) string {
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		var quote byte
		for j := 0; j < len(line); j++ {
			c := line[j]
			if quote != 0 {
				if c == '\\' {
					j++
				} else if c == quote {
					quote = 0
				}
				continue
			}
			if c == '\'' || c == '"' {
				quote = c
			} else if c == '#' {
				lines[i] = line[:j]
				break
			}
		}
	}
	return strings.Join(lines, "\n")
}

// unquote returns the contents of a single- or double-quoted literal.
func unquote(s string) (string, bool) {
	if len(s) < 2 {
		return "", false
	}
	q := s[0]
	if (q != '\'' && q != '"') || s[len(s)-1] != q {
		return "", false
	}
	body := s[1 : len(s)-1]
	if strings.IndexByte(body, q) >= 0 && !strings.Contains(body, `\`+string(q)) {
		return "", false
	}
	return strings.NewReplacer(`\`+string(q), string(q), `\\`, `\`).Replace(body), true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
