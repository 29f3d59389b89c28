package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Dataset is a rectangular table handed over by the upload layer: every row has
// exactly len(Headers) cells. Callers guarantee the shape; nothing in the core
// re-validates it.
type Dataset struct {
	Headers []string `json:"headers"`
	Rows    [][]any  `json:"rows"`
}

// New builds a Dataset from headers and rows without copying
func New(headers []string, rows [][]any) Dataset {
	return Dataset{Headers: headers, Rows: rows}
}

// RowCount returns the number of data rows
func (d Dataset) RowCount() int { return len(d.Rows) }

// ColumnCount returns the number of columns
func (d Dataset) ColumnCount() int { return len(d.Headers) }

// Column returns the cells of column i in row order
func (d Dataset) Column(i int) []any {
	col := make([]any, len(d.Rows))
	for r, row := range d.Rows {
		if i < len(row) {
			col[r] = row[i]
		}
	}
	return col
}

// Head returns at most n leading rows
func (d Dataset) Head(n int) [][]any {
	if n >= len(d.Rows) {
		return d.Rows
	}
	return d.Rows[:n]
}

// CellKind is the runtime kind of a cell value
type CellKind string

const (
	KindEmpty   CellKind = "empty"
	KindString  CellKind = "string"
	KindNumber  CellKind = "number"
	KindBoolean CellKind = "boolean"
	KindOther   CellKind = "other"
)

// KindOf classifies a cell by its Go type. Blank strings count as empty.
func KindOf(v any) CellKind {
	switch t := v.(type) {
	case nil:
		return KindEmpty
	case string:
		if strings.TrimSpace(t) == "" {
			return KindEmpty
		}
		return KindString
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return KindNumber
	case bool:
		return KindBoolean
	default:
		return KindOther
	}
}

// IsEmpty reports whether a cell carries no value
func IsEmpty(v any) bool {
	return KindOf(v) == KindEmpty
}

// ToFloat converts numeric cells and numeric strings to float64. NaN and
// infinities are not numbers.
func ToFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float32:
		return finite(float64(t))
	case float64:
		return finite(t)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return finite(f)
	default:
		return 0, false
	}
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ToString renders a cell for display and distinct-value counting
func ToString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	default:
		if f, ok := ToFloat(v); ok {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return fmt.Sprint(v)
	}
}
