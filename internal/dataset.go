package maestrotop

import "strconv"

// Kind identifies one of the backend dataset categories. Each kind maps to
// exactly one backend resource and one cache slot.
type Kind string

const (
	// KindRoss is the per-processing-element engine summary data.
	KindRoss Kind = "ross"
	// KindEvent is the message/event trace data.
	KindEvent Kind = "event"
	// KindModel is the per-component model analysis time series.
	KindModel Kind = "model"
)

// Kinds lists every dataset kind the backend serves.
var Kinds = []Kind{KindRoss, KindEvent, KindModel}

// Category returns the backend file category the kind's data is parsed from.
func (k Kind) Category() string {
	switch k {
	case KindRoss:
		return "simulations"
	case KindEvent:
		return "events"
	case KindModel:
		return "models"
	}
	return ""
}

// Record is one row of a dataset: field name to scalar. Values arrive from
// JSON as float64 or string, and keys may be absent; every consumer goes
// through Number/Text so the missing-field behavior lives in one place.
type Record map[string]any

// Number returns the field as a float64. Strings that parse as numbers
// count; anything else reports false.
func (r Record) Number(key string) (float64, bool) {
	v, ok := r[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Text returns the field rendered as a string. Numeric values format with
// the shortest round-trip representation, so 1.0 and "1" compare equal.
func (r Record) Text(key string) (string, bool) {
	v, ok := r[key]
	if !ok {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return s, true
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64), true
	case int:
		return strconv.Itoa(s), true
	}
	return "", false
}

// Dataset is one backend-served table. Column order is advisory (it drives
// the selectable axes); row order is whatever the backend emitted. Datasets
// are shared read-only between views once loaded.
type Dataset struct {
	File    string
	Columns []string
	Data    []Record
}

// AxisOption is a selectable axis derived from a dataset's columns.
type AxisOption struct {
	Key     string
	Label   string
	Enabled bool
}
