package domain

import (
	"strconv"
	"strings"
	"unique"

	"go.trai.ch/zerr"
)

const (
	// MaxColumns is the widest column index a worksheet supports (XFD).
	MaxColumns = 16384

	// MaxRows is the tallest row index a worksheet supports.
	MaxRows = 1048576
)

// CellKey is the interned, case-normalized identity of a cell.
// Two references with the same key denote the same cell.
type CellKey struct {
	h unique.Handle[string]
}

// String returns the canonical key text ("sheet!A1", sheet lower-cased).
func (k CellKey) String() string {
	return k.h.Value()
}

// CellReference addresses a single cell in a workbook.
// Address is always upper-case A1 notation without absolute markers.
type CellReference struct {
	Sheet   string `json:"sheet"`
	Address string `json:"address"`
}

// NewCellReference validates and normalizes a sheet/address pair.
func NewCellReference(sheet, address string) (CellReference, error) {
	sheet = unquoteSheet(strings.TrimSpace(sheet))
	if sheet == "" {
		return CellReference{}, With(ErrInvalidCellReference, "address", address)
	}

	addr := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(address), "$", ""))
	if _, _, err := SplitAddress(addr); err != nil {
		return CellReference{}, zerr.With(err, "sheet", sheet)
	}

	return CellReference{Sheet: sheet, Address: addr}, nil
}

// ParseCellReference parses "Sheet!A1", "'My Sheet'!$A$1" or a bare "A1".
// A bare address resolves to defaultSheet.
func ParseCellReference(s, defaultSheet string) (CellReference, error) {
	s = strings.TrimSpace(s)
	if i := strings.LastIndex(s, "!"); i >= 0 {
		return NewCellReference(s[:i], s[i+1:])
	}
	return NewCellReference(defaultSheet, s)
}

// MustCellReference is ParseCellReference for literals known to be valid.
func MustCellReference(s string) CellReference {
	ref, err := ParseCellReference(s, "")
	if err != nil {
		panic(err)
	}
	return ref
}

// Key returns the interned identity used for graph lookups.
func (r CellReference) Key() CellKey {
	return CellKey{h: unique.Make(strings.ToLower(r.Sheet) + "!" + r.Address)}
}

// Equal reports whether both references denote the same cell.
func (r CellReference) Equal(o CellReference) bool {
	return r.Key() == o.Key()
}

// IsZero reports whether the reference is unset.
func (r CellReference) IsZero() bool {
	return r.Sheet == "" && r.Address == ""
}

// Coordinates returns the 1-based column and row of the reference.
func (r CellReference) Coordinates() (col, row int) {
	col, row, _ = SplitAddress(r.Address)
	return col, row
}

// String renders the reference in workbook notation, quoting the sheet when needed.
func (r CellReference) String() string {
	return QuoteSheet(r.Sheet) + "!" + r.Address
}

// Compare orders references by sheet (case-insensitive), column, then row.
func (r CellReference) Compare(o CellReference) int {
	if c := strings.Compare(strings.ToLower(r.Sheet), strings.ToLower(o.Sheet)); c != 0 {
		return c
	}
	rc, rr := r.Coordinates()
	oc, or := o.Coordinates()
	if rc != oc {
		return rc - oc
	}
	return rr - or
}

// QuoteSheet wraps a sheet name in single quotes when it is not a plain identifier.
func QuoteSheet(sheet string) string {
	plain := sheet != ""
	for i, c := range sheet {
		isLetter := c == '_' || c == '.' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c > 127
		isDigit := c >= '0' && c <= '9'
		if !isLetter && !(isDigit && i > 0) {
			plain = false
			break
		}
	}
	if plain {
		return sheet
	}
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
}

func unquoteSheet(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return strings.ReplaceAll(s[1:len(s)-1], "''", "'")
	}
	return s
}

// SplitAddress parses an A1 address into 1-based column and row.
func SplitAddress(addr string) (col, row int, err error) {
	i := 0
	for i < len(addr) && isLetter(addr[i]) {
		i++
	}
	if i == 0 || i > 3 || i == len(addr) {
		return 0, 0, With(ErrInvalidCellReference, "address", addr)
	}

	col, err = ColumnNumber(addr[:i])
	if err != nil {
		return 0, 0, err
	}

	row, convErr := strconv.Atoi(addr[i:])
	if convErr != nil || row < 1 || row > MaxRows || addr[i] == '+' || addr[i] == '-' {
		return 0, 0, With(ErrInvalidCellReference, "address", addr)
	}
	return col, row, nil
}

// ColumnNumber converts column letters ("A", "AB") into a 1-based index.
func ColumnNumber(letters string) (int, error) {
	if letters == "" || len(letters) > 3 {
		return 0, With(ErrInvalidCellReference, "column", letters)
	}
	n := 0
	for i := 0; i < len(letters); i++ {
		c := letters[i]
		if !isLetter(c) {
			return 0, With(ErrInvalidCellReference, "column", letters)
		}
		n = n*26 + int(upper(c)-'A'+1)
	}
	if n > MaxColumns {
		return 0, With(ErrInvalidCellReference, "column", letters)
	}
	return n, nil
}

// ColumnName converts a 1-based column index into letters.
func ColumnName(n int) string {
	var buf [3]byte
	i := len(buf)
	for n > 0 && i > 0 {
		n--
		i--
		buf[i] = byte('A' + n%26)
		n /= 26
	}
	return string(buf[i:])
}

// CellAddress joins a column index and row into A1 notation.
func CellAddress(col, row int) string {
	return ColumnName(col) + strconv.Itoa(row)
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}
