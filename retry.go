package sidekiq

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

type retryKind uint8

const (
	retryUnset retryKind = iota
	retryBool
	retryCount
)

// Retry is a job's retry option. Sidekiq accepts either a boolean (retry with
// the default limit, or never) or a maximum number of retries. The zero value
// is unset, meaning the caller has not chosen and a default applies.
type Retry struct {
	kind    retryKind
	enabled bool
	count   int
}

// RetryEnabled returns a boolean retry option.
func RetryEnabled(enabled bool) Retry {
	return Retry{kind: retryBool, enabled: enabled}
}

// RetryCount returns a retry option limiting the job to n retries.
// Negative counts are clamped to zero.
func RetryCount(n int) Retry {
	if n < 0 {
		n = 0
	}
	return Retry{kind: retryCount, count: n}
}

// IsSet reports whether a value has been chosen. RetryEnabled(false) is set.
func (r Retry) IsSet() bool {
	return r.kind != retryUnset
}

// Bool returns the boolean value and whether r holds a boolean.
func (r Retry) Bool() (bool, bool) {
	return r.enabled, r.kind == retryBool
}

// Count returns the retry limit and whether r holds a count.
func (r Retry) Count() (int, bool) {
	return r.count, r.kind == retryCount
}

// Or returns r if it is set, otherwise def.
func (r Retry) Or(def Retry) Retry {
	if r.IsSet() {
		return r
	}
	return def
}

// String renders the value the way it appears in the job payload.
// Unset renders as the empty string.
func (r Retry) String() string {
	switch r.kind {
	case retryBool:
		return strconv.FormatBool(r.enabled)
	case retryCount:
		return strconv.Itoa(r.count)
	default:
		return ""
	}
}

// MarshalJSON encodes r as a JSON boolean or number. Unset encodes as true,
// Sidekiq's own default.
func (r Retry) MarshalJSON() ([]byte, error) {
	switch r.kind {
	case retryBool:
		return json.Marshal(r.enabled)
	case retryCount:
		return json.Marshal(r.count)
	default:
		return []byte("true"), nil
	}
}

// UnmarshalJSON accepts a JSON boolean or a non-negative integer.
func (r *Retry) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*r = Retry{}
	case bool:
		*r = RetryEnabled(t)
	case float64:
		if t < 0 || t != float64(int(t)) {
			return fmt.Errorf("sidekiq: invalid retry count %v", t)
		}
		*r = RetryCount(int(t))
	default:
		return fmt.Errorf("sidekiq: invalid retry value %s", data)
	}
	return nil
}

var (
	retryTrueRe  = regexp.MustCompile(`(?i)^(true|t|yes|y)$`)
	retryFalseRe = regexp.MustCompile(`(?i)^(false|f|no|n|0)$`)
	retryCountRe = regexp.MustCompile(`^\d+$`)
)

// ParseRetry coerces a textual retry option. The rules are tried in order:
//
//	true, t, yes, y       -> RetryEnabled(true)
//	false, f, no, n, 0    -> RetryEnabled(false)
//	digits                -> RetryCount(n)
//	anything else         -> unset
//
// Matching is case-insensitive. "0" hits the second rule, so it means false
// rather than a zero count.
func ParseRetry(s string) Retry {
	switch {
	case retryTrueRe.MatchString(s):
		return RetryEnabled(true)
	case retryFalseRe.MatchString(s):
		return RetryEnabled(false)
	case retryCountRe.MatchString(s):
		n, err := strconv.Atoi(s)
		if err != nil {
			return Retry{}
		}
		return RetryCount(n)
	}
	return Retry{}
}
