package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ValueKind enumerates the variants a cell value can take.
type ValueKind uint8

const (
	// ValueEmpty is a blank cell or a value that was never read.
	ValueEmpty ValueKind = iota
	// ValueNumber is a numeric result.
	ValueNumber
	// ValueText is a string result.
	ValueText
	// ValueBool is a logical result.
	ValueBool
	// ValueError is a spreadsheet error marker such as #REF!.
	ValueError
)

var valueKindNames = [...]string{"empty", "number", "text", "bool", "error"}

// String returns the lower-case kind name.
func (k ValueKind) String() string {
	if int(k) < len(valueKindNames) {
		return valueKindNames[k]
	}
	return "unknown"
}

var errorMarkers = map[string]struct{}{
	"#NULL!": {}, "#DIV/0!": {}, "#VALUE!": {}, "#REF!": {}, "#NAME?": {},
	"#NUM!": {}, "#N/A": {}, "#GETTING_DATA": {}, "#SPILL!": {}, "#CALC!": {},
}

// CellValue is the last known result of a cell. The zero value is empty.
type CellValue struct {
	kind    ValueKind
	number  float64
	text    string
	boolean bool
}

// EmptyValue returns the empty variant.
func EmptyValue() CellValue { return CellValue{} }

// NumberValue returns a numeric variant.
func NumberValue(f float64) CellValue { return CellValue{kind: ValueNumber, number: f} }

// TextValue returns a text variant.
func TextValue(s string) CellValue { return CellValue{kind: ValueText, text: s} }

// BoolValue returns a logical variant.
func BoolValue(b bool) CellValue { return CellValue{kind: ValueBool, boolean: b} }

// ErrorValue returns an error-marker variant.
func ErrorValue(marker string) CellValue { return CellValue{kind: ValueError, text: marker} }

// ClassifyValue decides the variant of a raw textual cell value.
func ClassifyValue(raw string) CellValue {
	if raw == "" {
		return EmptyValue()
	}
	if _, ok := errorMarkers[strings.ToUpper(raw)]; ok {
		return ErrorValue(strings.ToUpper(raw))
	}
	switch strings.ToUpper(raw) {
	case "TRUE":
		return BoolValue(true)
	case "FALSE":
		return BoolValue(false)
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
		return NumberValue(f)
	}
	return TextValue(raw)
}

// Kind returns the variant.
func (v CellValue) Kind() ValueKind { return v.kind }

// IsEmpty reports whether the value is the empty variant.
func (v CellValue) IsEmpty() bool { return v.kind == ValueEmpty }

// Number returns the numeric payload.
func (v CellValue) Number() (float64, bool) { return v.number, v.kind == ValueNumber }

// Text returns the text payload.
func (v CellValue) Text() (string, bool) { return v.text, v.kind == ValueText }

// Bool returns the logical payload.
func (v CellValue) Bool() (bool, bool) { return v.boolean, v.kind == ValueBool }

// ErrorMarker returns the error marker payload.
func (v CellValue) ErrorMarker() (string, bool) { return v.text, v.kind == ValueError }

// String renders the value as a spreadsheet would display it.
func (v CellValue) String() string {
	switch v.kind {
	case ValueNumber:
		return strconv.FormatFloat(v.number, 'g', -1, 64)
	case ValueText, ValueError:
		return v.text
	case ValueBool:
		if v.boolean {
			return "TRUE"
		}
		return "FALSE"
	default:
		return ""
	}
}

type cellValueJSON struct {
	Kind   string   `json:"kind"`
	Number *float64 `json:"number,omitempty"`
	Text   *string  `json:"text,omitempty"`
	Bool   *bool    `json:"bool,omitempty"`
}

// MarshalJSON encodes the value with an explicit kind tag.
func (v CellValue) MarshalJSON() ([]byte, error) {
	out := cellValueJSON{Kind: v.kind.String()}
	switch v.kind {
	case ValueNumber:
		out.Number = &v.number
	case ValueText, ValueError:
		out.Text = &v.text
	case ValueBool:
		out.Bool = &v.boolean
	case ValueEmpty:
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a kind-tagged value.
func (v *CellValue) UnmarshalJSON(data []byte) error {
	var in cellValueJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	switch in.Kind {
	case "", "empty":
		*v = EmptyValue()
	case "number":
		if in.Number == nil {
			return With(ErrInvalidCellValue, "kind", in.Kind)
		}
		*v = NumberValue(*in.Number)
	case "text", "error":
		if in.Text == nil {
			return With(ErrInvalidCellValue, "kind", in.Kind)
		}
		if in.Kind == "error" {
			*v = ErrorValue(*in.Text)
		} else {
			*v = TextValue(*in.Text)
		}
	case "bool":
		if in.Bool == nil {
			return With(ErrInvalidCellValue, "kind", in.Kind)
		}
		*v = BoolValue(*in.Bool)
	default:
		return With(ErrInvalidCellValue, "kind", in.Kind)
	}
	return nil
}
