package excel

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "datasight/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadStream_CSV(t *testing.T) {
	csv := "\ufeffDate,Sales,Active,Zip\n" +
		"2024-01-01,100,true,02139\n" +
		"\n" +
		"2024-01-02,  150.5 ,FALSE,\n"

	r := NewDataReader(DefaultReaderConfig(), nil)
	ds, err := r.ReadStream(strings.NewReader(csv), "sales.csv")
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Sales", "Active", "Zip"}, ds.Headers)
	require.Equal(t, 2, ds.RowCount())
	assert.Equal(t, []any{"2024-01-01", 100.0, true, "02139"}, ds.Rows[0])
	assert.Equal(t, []any{"2024-01-02", 150.5, false, nil}, ds.Rows[1])
}

func TestReadStream_TrimsEdgeColumnsAndSquaresRows(t *testing.T) {
	csv := ",Name,,Score,\n" +
		",Ann,,9\n" +
		",Bob,,7,,\n"

	ds, err := NewDataReader(DefaultReaderConfig(), nil).ReadStream(strings.NewReader(csv), "scores.csv")
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Column 2", "Score"}, ds.Headers)
	for _, row := range ds.Rows {
		assert.Len(t, row, 3)
	}
	assert.Equal(t, []any{"Bob", nil, 7.0}, ds.Rows[1])
}

func TestReadStream_HeaderOnly(t *testing.T) {
	ds, err := NewDataReader(DefaultReaderConfig(), nil).ReadStream(strings.NewReader("a,b,c\n"), "empty.csv")
	require.NoError(t, err)

	assert.Equal(t, 3, ds.ColumnCount())
	assert.Equal(t, 0, ds.RowCount())
}

func TestReadStream_NoCoercion(t *testing.T) {
	cfg := ReaderConfig{}
	ds, err := NewDataReader(cfg, nil).ReadStream(strings.NewReader("n,b\n1,true\n"), "raw.csv")
	require.NoError(t, err)

	assert.Equal(t, []any{"1", "true"}, ds.Rows[0])
}

func TestReadStream_MaxRowsAndNaN(t *testing.T) {
	cfg := DefaultReaderConfig()
	cfg.MaxRows = 2
	ds, err := NewDataReader(cfg, nil).ReadStream(strings.NewReader("v\nNaN\n2\n3\n"), "v.csv")
	require.NoError(t, err)

	require.Equal(t, 2, ds.RowCount())
	assert.Equal(t, "NaN", ds.Rows[0][0])
}

func TestReadStream_Errors(t *testing.T) {
	r := NewDataReader(DefaultReaderConfig(), nil)

	_, err := r.ReadStream(strings.NewReader("x"), "report.pdf")
	assert.Equal(t, apperrors.CodeUnsupportedFile, apperrors.GetCode(err))

	_, err = r.ReadStream(strings.NewReader("\n\n"), "blank.csv")
	assert.Equal(t, apperrors.CodeParseFailed, apperrors.GetCode(err))

	_, err = r.ReadStream(strings.NewReader("not a zip"), "broken.xlsx")
	assert.Equal(t, apperrors.CodeParseFailed, apperrors.GetCode(err))
}

func writeWorkbook(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		_, err := f.NewSheet(sheet)
		require.NoError(t, err)
	}
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &row))
	}

	path := filepath.Join(t.TempDir(), "book.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadFile_Excel(t *testing.T) {
	path := writeWorkbook(t, "Sheet1", [][]any{
		{"Region", "Revenue"},
		{"North", 120},
		{"South", 80.5},
	})

	ds, err := NewDataReader(DefaultReaderConfig(), nil).ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Region", "Revenue"}, ds.Headers)
	assert.Equal(t, []any{"North", 120.0}, ds.Rows[0])
	assert.Equal(t, []any{"South", 80.5}, ds.Rows[1])
}

func TestReadFile_ExcelNamedSheet(t *testing.T) {
	path := writeWorkbook(t, "Data", [][]any{{"k"}, {"v"}})

	cfg := DefaultReaderConfig()
	cfg.Sheet = "Data"
	ds, err := NewDataReader(cfg, nil).ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []any{"v"}, ds.Rows[0])

	cfg.Sheet = "Missing"
	_, err = NewDataReader(cfg, nil).ReadFile(path)
	assert.Equal(t, apperrors.CodeParseFailed, apperrors.GetCode(err))
}

func TestReadFile_NotFound(t *testing.T) {
	_, err := NewDataReader(DefaultReaderConfig(), nil).ReadFile(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.GetCode(err))
}

func TestReadFile_CSVOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "d.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0o644))

	ds, err := NewDataReader(DefaultReaderConfig(), nil).ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []any{1.0, 2.0}, ds.Rows[0])
}
