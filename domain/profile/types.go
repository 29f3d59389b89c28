package profile

import (
	"datasight/domain/core"
)

// SampleWindow is how many leading non-empty values per column drive type inference
const SampleWindow = 10

// ColumnType is the inferred type of one column
type ColumnType string

const (
	TypeString  ColumnType = "string"
	TypeNumber  ColumnType = "number"
	TypeDate    ColumnType = "date"
	TypeBoolean ColumnType = "boolean"
)

// DataQuality holds dataset-level quality fractions, each in [0,1]
type DataQuality struct {
	Completeness float64 `json:"completeness"`
	Consistency  float64 `json:"consistency"`
	Accuracy     float64 `json:"accuracy"`
}

// DataProfile is the structural summary of a dataset. It is built once per
// pipeline run and treated as read-only afterwards.
type DataProfile struct {
	Headers       []string              `json:"headers"`
	DataTypes     map[string]ColumnType `json:"dataTypes"`
	HasTimeSeries bool                  `json:"hasTimeSeries"`
	HasCategories bool                  `json:"hasCategories"`
	HasGeographic bool                  `json:"hasGeographic"`
	HasNumeric    bool                  `json:"hasNumeric"`
	HasText       bool                  `json:"hasText"`
	SampleSize    int                   `json:"sampleSize"`
	DataQuality   DataQuality           `json:"dataQuality"`
}

// ColumnCount returns the number of profiled columns
func (p *DataProfile) ColumnCount() int {
	return len(p.Headers)
}

// NumericColumns returns header names typed as number, in header order.
// Duplicate header names are reported once.
func (p *DataProfile) NumericColumns() []string {
	return p.columnsOfType(TypeNumber)
}

// DateColumns returns header names typed as date, in header order
func (p *DataProfile) DateColumns() []string {
	return p.columnsOfType(TypeDate)
}

func (p *DataProfile) columnsOfType(t ColumnType) []string {
	seen := make(map[string]bool, len(p.Headers))
	var out []string
	for _, h := range p.Headers {
		if seen[h] {
			continue
		}
		seen[h] = true
		if p.DataTypes[h] == t {
			out = append(out, h)
		}
	}
	return out
}

// Fingerprint hashes the canonical JSON form of the profile
func (p *DataProfile) Fingerprint() (core.Hash, error) {
	return core.HashJSON(p)
}
