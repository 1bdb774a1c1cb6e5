package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueKind tags the representation held by a ParamValue.
type ValueKind uint8

const (
	KindNumeric ValueKind = iota
	KindText
)

// ParamValue is either a number or a free-form observation such as "Negative".
// The zero value is Numeric(0).
type ParamValue struct {
	kind ValueKind
	num  float64
	text string
}

// Numeric wraps a measured number.
func Numeric(v float64) ParamValue {
	return ParamValue{kind: KindNumeric, num: v}
}

// Text wraps a textual observation.
func Text(s string) ParamValue {
	return ParamValue{kind: KindText, text: s}
}

// ParseValue interprets form input: finite numbers become Numeric, anything
// else is kept as Text.
func ParseValue(s string) ParamValue {
	if f, ok := parseFinite(s); ok {
		return Numeric(f)
	}
	return Text(s)
}

// Kind reports the tag of v.
func (v ParamValue) Kind() ValueKind { return v.kind }

// IsNumeric reports whether v holds a number.
func (v ParamValue) IsNumeric() bool { return v.kind == KindNumeric }

// Float returns the held number and true when v is Numeric.
func (v ParamValue) Float() (float64, bool) {
	if v.kind != KindNumeric {
		return 0, false
	}
	return v.num, true
}

// Number coerces v into a plottable number. Text is read up to the end of its
// leading number, so "0.659 g/cm3" yields 0.659. Text without a leading
// finite number yields 0.
func (v ParamValue) Number() float64 {
	if v.kind == KindNumeric {
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			return 0
		}
		return v.num
	}
	return leadingNumber(v.text)
}

// String renders the value the way it was entered.
func (v ParamValue) String() string {
	if v.kind == KindText {
		return v.text
	}
	return strconv.FormatFloat(v.num, 'f', -1, 64)
}

// MarshalJSON encodes numbers as JSON numbers and text as JSON strings.
func (v ParamValue) MarshalJSON() ([]byte, error) {
	if v.kind == KindText {
		return json.Marshal(v.text)
	}
	if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
		return []byte("0"), nil
	}
	return json.Marshal(v.num)
}

// UnmarshalJSON accepts a JSON number or a JSON string.
func (v *ParamValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = Numeric(0)
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode parameter value: %w", err)
		}
		*v = Text(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("decode parameter value: %w", err)
	}
	*v = Numeric(f)
	return nil
}

// leadingNumber parses the longest decimal prefix of s after leading spaces:
// optional sign, digits with an optional fraction, optional exponent.
func leadingNumber(s string) float64 {
	s = strings.TrimLeft(s, " \t\n\r\f\v")
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0
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

	f, ok := parseFinite(s[:end])
	if !ok {
		return 0
	}
	return f
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func parseFinite(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// QCParameter is one measured or observed property of a batch.
type QCParameter struct {
	Name   string     `json:"name"`
	Value  ParamValue `json:"value"`
	Unit   string     `json:"unit"`
	Method string     `json:"method,omitempty"`
	Min    *float64   `json:"min,omitempty"`
	Max    *float64   `json:"max,omitempty"`
}

// Clone copies p including its bounds.
func (p QCParameter) Clone() QCParameter {
	out := p
	out.Min = cloneFloat(p.Min)
	out.Max = cloneFloat(p.Max)
	return out
}

// CloneParameters deep-copies a parameter slice. A nil input stays nil.
func CloneParameters(params []QCParameter) []QCParameter {
	if params == nil {
		return nil
	}
	out := make([]QCParameter, len(params))
	for i, p := range params {
		out[i] = p.Clone()
	}
	return out
}

// Bound is a helper for building optional acceptance limits.
func Bound(v float64) *float64 {
	return &v
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
