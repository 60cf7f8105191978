package core

import (
	"maps"
	"math"
	"strconv"
	"strings"
)

// FormState holds the raw text of a screen's fields. Set returns a new state
// and never mutates the receiver.
type FormState struct {
	fields []string
	values map[string]string
}

func NewFormState(fields ...string) FormState {
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		values[f] = ""
	}
	return FormState{fields: append([]string(nil), fields...), values: values}
}

func (f FormState) Set(name, value string) FormState {
	next := FormState{fields: f.fields, values: maps.Clone(f.values)}
	if next.values == nil {
		next.values = map[string]string{}
	}
	if _, known := next.values[name]; !known {
		next.fields = append(append([]string(nil), f.fields...), name)
	}
	next.values[name] = value
	return next
}

func (f FormState) Get(name string) string {
	return f.values[name]
}

// Fields returns field names in declaration order.
func (f FormState) Fields() []string {
	return append([]string(nil), f.fields...)
}

func (f FormState) Snapshot() map[string]string {
	return maps.Clone(f.values)
}

// Reset clears every field, keeping the set of names.
func (f FormState) Reset() FormState {
	return NewFormState(f.fields...)
}

// Float parses the leading number of a field, so "1500$" is 1500 and
// "1,200" is 1. Text with no leading number, or a non-finite value, counts
// as zero so the field always encodes as a JSON number.
func (f FormState) Float(name string) float64 {
	v, err := strconv.ParseFloat(leadingNumber(strings.TrimSpace(f.values[name])), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// leadingNumber returns the longest decimal prefix of s: sign, digits, an
// optional fraction and an optional exponent.
func leadingNumber(s string) string {
	i, digits := 0, 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	for i < len(s) && isDigit(s[i]) {
		i, digits = i+1, digits+1
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i, digits = i+1, digits+1
		}
	}
	if digits == 0 {
		return ""
	}
	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			end = k
		}
	}
	return s[:end]
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// List splits a comma-separated field and trims each item. Empty items are
// kept, so a blank field yields a single empty string.
func (f FormState) List(name string) []string {
	parts := strings.Split(f.values[name], ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
