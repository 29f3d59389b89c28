package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"datasight/domain/dataset"
	"datasight/internal"
	apperrors "datasight/internal/errors"
	"datasight/ports"

	"github.com/xuri/excelize/v2"
)

// DataReader reads CSV and Excel files into datasets
type DataReader struct {
	config ReaderConfig
	logger *internal.Logger
}

// NewDataReader creates a reader; a nil logger discards output
func NewDataReader(config ReaderConfig, logger *internal.Logger) *DataReader {
	if logger == nil {
		logger = internal.NewNopLogger()
	}
	return &DataReader{config: config, logger: logger}
}

// fileType maps an extension to "csv" or "xlsx"
func fileType(filename string) (string, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		return "csv", true
	case ".xlsx", ".xlsm", ".xltx":
		return "xlsx", true
	default:
		return "", false
	}
}

// ReadFile reads a dataset from disk
func (r *DataReader) ReadFile(path string) (*dataset.Dataset, error) {
	if _, ok := fileType(path); !ok {
		return nil, apperrors.UnsupportedFile(filepath.Base(path))
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.InvalidInput(fmt.Sprintf("file not found: %s", path))
		}
		return nil, apperrors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	return r.ReadStream(f, filepath.Base(path))
}

// ReadStream reads a dataset from rd; filename only selects the format
func (r *DataReader) ReadStream(rd io.Reader, filename string) (*dataset.Dataset, error) {
	kind, ok := fileType(filename)
	if !ok {
		return nil, apperrors.UnsupportedFile(filename)
	}

	start := time.Now()
	var (
		rows [][]string
		err  error
	)
	switch kind {
	case "csv":
		rows, err = readCSV(rd)
	default:
		rows, err = r.readExcel(rd)
	}
	if err != nil {
		return nil, err
	}
	r.logger.Debug("[DataReader] %s %s read in %.2fms (%d raw rows)",
		strings.ToUpper(kind), filename, float64(time.Since(start).Nanoseconds())/1e6, len(rows))

	ds, err := r.buildDataset(rows)
	if err != nil {
		return nil, err
	}
	r.logger.Info("[DataReader] %s processed (%d columns, %d rows)", filename, ds.ColumnCount(), ds.RowCount())
	return ds, nil
}

func readCSV(rd io.Reader) ([][]string, error) {
	reader := csv.NewReader(rd)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.ParseFailed("failed to read CSV file", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

func (r *DataReader) readExcel(rd io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(rd)
	if err != nil {
		return nil, apperrors.ParseFailed("failed to open Excel file", err)
	}
	defer f.Close()

	sheet := r.config.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, apperrors.ParseFailed("Excel file has no sheets", nil)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.ParseFailed(fmt.Sprintf("failed to read sheet %q", sheet), err)
	}
	return rows, nil
}

// buildDataset drops blank rows and blank edge columns, squares the table off
// against the widest row and converts cells
func (r *DataReader) buildDataset(raw [][]string) (*dataset.Dataset, error) {
	var rows [][]string
	for _, row := range raw {
		if !blankRow(row) {
			rows = append(rows, row)
		}
	}
	if len(rows) == 0 {
		return nil, apperrors.ParseFailed("file has no header row", nil)
	}

	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	first, last := width, -1
	for col := 0; col < width; col++ {
		if !blankColumn(rows, col) {
			if col < first {
				first = col
			}
			last = col
		}
	}

	headers := make([]string, 0, last-first+1)
	for col := first; col <= last; col++ {
		h := strings.TrimSpace(cell(rows[0], col))
		if h == "" {
			h = fmt.Sprintf("Column %d", col-first+1)
		}
		headers = append(headers, h)
	}

	body := rows[1:]
	if r.config.MaxRows > 0 && len(body) > r.config.MaxRows {
		body = body[:r.config.MaxRows]
	}

	data := make([][]any, 0, len(body))
	for _, row := range body {
		out := make([]any, len(headers))
		for i := range headers {
			out[i] = r.coerce(cell(row, first+i))
		}
		data = append(data, out)
	}

	ds := dataset.New(headers, data)
	return &ds, nil
}

// coerce turns raw text into a typed cell; blanks become nil
func (r *DataReader) coerce(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if r.config.CoerceBooleans {
		switch strings.ToLower(s) {
		case "true":
			return true
		case "false":
			return false
		}
	}
	if r.config.CoerceNumbers && !leadingZero(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return f
		}
	}
	return s
}

// leadingZero keeps codes like "00123" as text
func leadingZero(s string) bool {
	s = strings.TrimPrefix(s, "-")
	return len(s) > 1 && s[0] == '0' && s[1] != '.'
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func blankColumn(rows [][]string, col int) bool {
	for _, row := range rows {
		if strings.TrimSpace(cell(row, col)) != "" {
			return false
		}
	}
	return true
}

var _ ports.DatasetReader = (*DataReader)(nil)
