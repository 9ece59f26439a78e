package quiz

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Kind tags the shape held by a Value.
type Kind int

const (
	KindUnset Kind = iota
	KindText
	KindNumber
	KindList
	// KindRaw keeps any other JSON shape untouched so the answer document
	// round-trips even when a front end sends something unexpected.
	KindRaw
)

// Value is one answer. Exactly one of text/list/raw is meaningful, selected by kind.
type Value struct {
	kind Kind
	text string
	list []string
	raw  json.RawMessage
}

func Text(s string) Value { return Value{kind: KindText, text: s} }

// Number holds a number-like answer (height, weight, BMI) in its textual form.
func Number(s string) Value { return Value{kind: KindNumber, text: s} }

func List(items ...string) Value {
	out := make([]string, len(items))
	copy(out, items)
	return Value{kind: KindList, list: out}
}

func (v Value) Kind() Kind { return v.kind }

// String returns the textual form of text and number answers. Lists and raw
// values have no single textual form and return "".
func (v Value) String() string {
	switch v.kind {
	case KindText, KindNumber:
		return v.text
	default:
		return ""
	}
}

func (v Value) Items() []string {
	if v.kind != KindList {
		return nil
	}
	out := make([]string, len(v.list))
	copy(out, v.list)
	return out
}

func (v Value) Float() (float64, bool) {
	if v.kind != KindText && v.kind != KindNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(v.text, ",", ".")), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Empty reports whether the answer carries nothing a validator could accept.
func (v Value) Empty() bool {
	switch v.kind {
	case KindText, KindNumber:
		return v.text == ""
	case KindList:
		return len(v.list) == 0
	case KindRaw:
		return len(v.raw) == 0
	default:
		return true
	}
}

func (v Value) Contains(item string) bool {
	for _, it := range v.list {
		if it == item {
			return true
		}
	}
	return false
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindText:
		return json.Marshal(v.text)
	case KindNumber:
		if _, err := strconv.ParseFloat(v.text, 64); err == nil {
			return []byte(v.text), nil
		}
		return json.Marshal(v.text)
	case KindList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	case KindRaw:
		return v.raw, nil
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*v = Value{}
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*v = Text(s)
		return nil
	case '[':
		var items []string
		if err := json.Unmarshal(trimmed, &items); err == nil {
			*v = Value{kind: KindList, list: items}
			return nil
		}
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err == nil {
			*v = Number(n.String())
			return nil
		}
	}

	raw := make(json.RawMessage, len(trimmed))
	copy(raw, trimmed)
	*v = Value{kind: KindRaw, raw: raw}
	return nil
}

// Answers is the answer set accumulated across a quiz session. Keys are only
// added or overwritten; multi-select keys shrink through Toggle.
type Answers map[Key]Value

func (a Answers) Get(k Key) Value { return a[k] }

func (a Answers) Text(k Key) string { return a[k].String() }

func (a Answers) Items(k Key) []string { return a[k].Items() }

func (a Answers) Float(k Key) (float64, bool) { return a[k].Float() }

func (a Answers) Has(k Key) bool {
	v, ok := a[k]
	return ok && !v.Empty()
}

// Toggle flips membership of item inside the list stored at k and returns the
// resulting list. A non-list value at k is replaced by a fresh list.
func (a Answers) Toggle(k Key, item string) []string {
	current := a[k]
	if current.kind != KindList {
		a[k] = List(item)
		return a[k].Items()
	}

	next := make([]string, 0, len(current.list)+1)
	found := false
	for _, it := range current.list {
		if it == item {
			found = true
			continue
		}
		next = append(next, it)
	}
	if !found {
		next = append(next, item)
	}
	a[k] = Value{kind: KindList, list: next}
	return a[k].Items()
}

func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		cp := v
		if v.list != nil {
			cp.list = append([]string(nil), v.list...)
		}
		if v.raw != nil {
			cp.raw = append(json.RawMessage(nil), v.raw...)
		}
		out[k] = cp
	}
	return out
}
