package dartdoc

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Date layouts accepted by ParseDate.
const (
	DateYYYYMMDD = "yyyy.mm.dd"
	DateYYMMDD   = "yy.mm.dd"
	DateMMDD     = "mm.dd"
)

var dateRe = regexp.MustCompile(`^(\d{4})년\s*(\d{1,2})월\s*(\d{1,2})일`)

// ParseDate rewrites a Korean date ("2025년 11월 7일") using layout.
// Text that does not start with a date, or an unknown layout, is returned
// trimmed but otherwise unchanged.
func ParseDate(text, layout string) string {
	text = strings.TrimSpace(text)
	m := dateRe.FindStringSubmatch(text)
	if m == nil {
		return text
	}
	year, month, day := m[1], pad2(m[2]), pad2(m[3])
	switch layout {
	case DateYYYYMMDD:
		return year + "." + month + "." + day
	case DateYYMMDD:
		return year[2:] + "." + month + "." + day
	case DateMMDD:
		return month + "." + day
	}
	return text
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// NumberValue scales a formatted amount down by 10^shift and appends unit.
// Thousand separators, white space and a trailing "원" are ignored and
// parentheses mark a negative amount. Text that is not a number is
// returned unchanged.
func NumberValue(text string, shift int, unit string) string {
	s := strings.TrimSpace(text)
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.TrimSuffix(s, "원")
	s = strings.Join(strings.Fields(strings.ReplaceAll(s, ",", "")), "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return text
	}
	if negative {
		v = -v
	}
	v /= math.Pow10(shift)
	return strconv.FormatFloat(v, 'f', -1, 64) + unit
}

// Formatter rewrites leaf values of a query result.
type Formatter func(string) string

// ParseFormat parses a format expression: "date:<layout>" or
// "number:<shift>[:<unit>]". An empty expression yields nil.
func ParseFormat(expr string) (Formatter, error) {
	if expr == "" {
		return nil, nil
	}
	kind, arg, _ := strings.Cut(expr, ":")
	switch kind {
	case "date":
		switch arg {
		case DateYYYYMMDD, DateYYMMDD, DateMMDD:
			return func(s string) string { return ParseDate(s, arg) }, nil
		}
		return nil, Errorf(EINVALID, "unknown date layout %q", arg)
	case "number":
		shiftText, unit, _ := strings.Cut(arg, ":")
		shift, err := strconv.Atoi(shiftText)
		if err != nil || shift < 0 {
			return nil, Errorf(EINVALID, "invalid number shift %q", shiftText)
		}
		return func(s string) string { return NumberValue(s, shift, unit) }, nil
	}
	return nil, Errorf(EINVALID, "unknown format %q", expr)
}

// Apply returns a copy of n with f applied to every leaf.
func (f Formatter) Apply(n Node) Node {
	if f == nil {
		return n
	}
	switch v := n.(type) {
	case Leaf:
		return Leaf(f(string(v)))
	case Sequence:
		out := make(Sequence, 0, len(v))
		for _, item := range v {
			out = append(out, f.Apply(item))
		}
		return out
	case *Mapping:
		out := NewMapping()
		v.Each(func(key string, value Node) { out.Set(key, f.Apply(value)) })
		return out
	}
	return n
}
