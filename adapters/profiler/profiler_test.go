package profiler

import (
	"fmt"
	"testing"

	"datasight/domain/dataset"
	"datasight/domain/profile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileMixedColumns(t *testing.T) {
	ds := dataset.New(
		[]string{"Name", "Age", "Score"},
		[][]any{
			{"Alice", 34, 88.5},
			{"Bob", "41", 92.0},
			{"Carol", 29, "79"},
			{"Dave", 52, 65.25},
			{"Eve", 38, 71},
		},
	)

	p := NewProfiler().Profile(ds)

	assert.Equal(t, map[string]profile.ColumnType{
		"Name":  profile.TypeString,
		"Age":   profile.TypeNumber,
		"Score": profile.TypeNumber,
	}, p.DataTypes)
	assert.True(t, p.HasNumeric)
	assert.True(t, p.HasText)
	// 5 distinct names over 5 rows is not below half the row count
	assert.False(t, p.HasCategories)
	assert.False(t, p.HasTimeSeries)
	assert.Equal(t, 5, p.SampleSize)
	assert.Equal(t, []string{"Age", "Score"}, p.NumericColumns())
}

func TestProfileEmptyRows(t *testing.T) {
	p := NewProfiler().Profile(dataset.New([]string{"a", "b", "c"}, nil))

	assert.Equal(t, 0, p.SampleSize)
	assert.False(t, p.HasTimeSeries)
	assert.False(t, p.HasCategories)
	assert.False(t, p.HasGeographic)
	assert.False(t, p.HasNumeric)
	assert.False(t, p.HasText)
	assert.Equal(t, profile.DataQuality{}, p.DataQuality)
	for _, h := range []string{"a", "b", "c"} {
		assert.Equal(t, profile.TypeString, p.DataTypes[h])
	}
}

func TestProfileTimeSeries(t *testing.T) {
	rows := make([][]any, 20)
	for i := range rows {
		rows[i] = []any{fmt.Sprintf("2024-01-%02d", i+1), float64(1000 + i*25)}
	}

	p := NewProfiler().Profile(dataset.New([]string{"Date", "Revenue"}, rows))

	assert.Equal(t, profile.TypeDate, p.DataTypes["Date"])
	assert.Equal(t, profile.TypeNumber, p.DataTypes["Revenue"])
	assert.True(t, p.HasTimeSeries)
	assert.True(t, p.HasNumeric)
	assert.False(t, p.HasText)
	assert.Equal(t, []string{"Date"}, p.DateColumns())
}

func TestInferType(t *testing.T) {
	pr := NewProfiler()

	tests := []struct {
		name     string
		sample   []any
		expected profile.ColumnType
	}{
		{"numeric strings", []any{"25", "34.5", "-2", "1e3"}, profile.TypeNumber},
		{"native numbers", []any{1, int64(2), float32(3.5)}, profile.TypeNumber},
		{"booleans", []any{true, "false", "TRUE"}, profile.TypeBoolean},
		{"iso dates", []any{"2024-03-01", "2024-03-02T10:00:00Z"}, profile.TypeDate},
		{"us dates", []any{"03/01/2024", "12/31/2023 23:59"}, profile.TypeDate},
		{"long dates", []any{"March 5, 2024", "Jan 2, 2006"}, profile.TypeDate},
		{"mixed number and text", []any{"12", "n/a"}, profile.TypeString},
		{"nan is not a number", []any{"NaN"}, profile.TypeString},
		{"no values", nil, profile.TypeString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, pr.inferType(tt.sample))
		})
	}
}

func TestSamplingWindowIsBounded(t *testing.T) {
	rows := make([][]any, 0, 12)
	rows = append(rows, []any{nil}, []any{""})
	for i := 0; i < profile.SampleWindow; i++ {
		rows = append(rows, []any{i})
	}
	// the 11th non-empty value is outside the sample
	rows = append(rows, []any{"not a number"})

	p := NewProfiler().Profile(dataset.New([]string{"Value"}, rows))
	assert.Equal(t, profile.TypeNumber, p.DataTypes["Value"])
}

func TestCategoriesDetection(t *testing.T) {
	regions := []string{"North", "South", "East", "West"}
	rows := make([][]any, 12)
	for i := range rows {
		rows[i] = []any{regions[i%len(regions)], i * 10}
	}

	p := NewProfiler().Profile(dataset.New([]string{"Segment", "Sales"}, rows))
	assert.True(t, p.HasCategories)
	assert.False(t, p.HasGeographic)
}

func TestCategoriesNeedFewerThanTwentyDistinct(t *testing.T) {
	rows := make([][]any, 100)
	for i := range rows {
		rows[i] = []any{fmt.Sprintf("product-%d", i%25)}
	}

	p := NewProfiler().Profile(dataset.New([]string{"Product"}, rows))
	assert.False(t, p.HasCategories)
}

func TestGeographicDetection(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		rows    [][]any
		want    bool
	}{
		{"header keyword", []string{"Country Code", "Sales"}, [][]any{{"US", 1}, {"FR", 2}}, true},
		{"snake case header", []string{"customer_address"}, [][]any{{"1 Main St"}}, true},
		{"camel case numeric", []string{"storeLat"}, [][]any{{40.7}, {34.0}}, true},
		{"value keyword", []string{"Scope"}, [][]any{{"Region"}, {"Global"}}, true},
		{"substring does not count", []string{"Population", "Statement"}, [][]any{{100, "x"}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProfiler().Profile(dataset.New(tt.headers, tt.rows))
			assert.Equal(t, tt.want, p.HasGeographic)
		})
	}
}

func TestDataQuality(t *testing.T) {
	ds := dataset.New(
		[]string{"A", "B"},
		[][]any{
			{1, "x"},
			{nil, "y"},
			{"three", ""},
			{4, "z"},
		},
	)

	q := NewProfiler().Profile(ds).DataQuality

	// 2 empty of 8 cells; column A has one string among numbers
	assert.InDelta(t, 0.75, q.Completeness, 1e-9)
	assert.InDelta(t, 0.875, q.Consistency, 1e-9)
	assert.InDelta(t, 0.8125, q.Accuracy, 1e-9)
}

func TestProfileIsDeterministic(t *testing.T) {
	ds := dataset.New(
		[]string{"City", "Date", "Units", "Active"},
		[][]any{
			{"Paris", "2024-01-01", 3, true},
			{"Lyon", "2024-01-02", 5, false},
			{"Paris", "2024-01-03", 8, true},
		},
	)

	pr := NewProfiler()
	first := pr.Profile(ds)
	want, err := first.Fingerprint()
	require.NoError(t, err)
	require.NotEmpty(t, want)
	for i := 0; i < 20; i++ {
		again := pr.Profile(ds)
		require.Equal(t, first, again)
		got, err := again.Fingerprint()
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	assert.Equal(t, profile.TypeBoolean, first.DataTypes["Active"])
	assert.True(t, first.HasGeographic)
}

func TestFingerprintDistinguishesProfiles(t *testing.T) {
	pr := NewProfiler()
	a := pr.Profile(dataset.New([]string{"Units"}, [][]any{{1}, {2}}))
	b := pr.Profile(dataset.New([]string{"Units"}, [][]any{{"one"}, {"two"}}))

	ha, err := a.Fingerprint()
	require.NoError(t, err)
	hb, err := b.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, ha, hb)
}
