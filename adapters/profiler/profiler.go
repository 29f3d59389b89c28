package profiler

import (
	"math"
	"regexp"
	"strings"
	"time"
	"unicode"

	"datasight/domain/dataset"
	"datasight/domain/profile"
)

// geoKeywords flag a column as geographic when they appear as a whole word in
// its header or in one of its sampled values
var geoKeywords = map[string]bool{
	"country": true, "region": true, "state": true, "city": true, "location": true,
	"address": true, "lat": true, "lng": true, "latitude": true, "longitude": true,
}

// categoryDistinctLimit caps the distinct values a categorical column may hold
const categoryDistinctLimit = 20

var (
	isoDatePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
	usDatePrefix  = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}`)
)

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"02 Jan 2006",
	"Jan 2006",
	"January 2006",
	time.RFC1123,
	time.RFC1123Z,
	time.RFC822,
	time.RFC822Z,
	time.ANSIC,
}

// Profiler infers column types, dataset flags and quality scores. It holds no
// state and is safe for concurrent use.
type Profiler struct{}

// NewProfiler creates a new profiler
func NewProfiler() *Profiler {
	return &Profiler{}
}

// column is the per-column result before it is folded into the profile
type column struct {
	columnType  profile.ColumnType
	sampled     int
	categorical bool
	geographic  bool
}

// Profile builds the DataProfile of ds. Headers must be non-empty and every
// row must have len(ds.Headers) cells; the result for ragged input is
// unspecified.
func (p *Profiler) Profile(ds dataset.Dataset) *profile.DataProfile {
	result := &profile.DataProfile{
		Headers:    append([]string(nil), ds.Headers...),
		DataTypes:  make(map[string]profile.ColumnType, len(ds.Headers)),
		SampleSize: ds.RowCount(),
	}

	for i, header := range ds.Headers {
		col := p.profileColumn(header, ds.Column(i), ds.RowCount())
		// duplicate headers: the right-most column wins in the map, flags see all
		result.DataTypes[header] = col.columnType

		switch col.columnType {
		case profile.TypeDate:
			result.HasTimeSeries = true
		case profile.TypeNumber:
			result.HasNumeric = true
		case profile.TypeString:
			if col.sampled > 0 {
				result.HasText = true
			}
		}
		result.HasCategories = result.HasCategories || col.categorical
		result.HasGeographic = result.HasGeographic || col.geographic
	}

	result.DataQuality = p.computeQuality(ds)
	return result
}

// profileColumn classifies one column from its first SampleWindow non-empty values
func (p *Profiler) profileColumn(header string, values []any, rowCount int) column {
	sample := make([]any, 0, profile.SampleWindow)
	for _, v := range values {
		if dataset.IsEmpty(v) {
			continue
		}
		sample = append(sample, v)
		if len(sample) == profile.SampleWindow {
			break
		}
	}

	col := column{
		columnType: p.inferType(sample),
		sampled:    len(sample),
		geographic: matchesGeoKeyword(header),
	}

	if col.columnType == profile.TypeString && len(sample) > 0 {
		if !col.geographic {
			for _, v := range sample {
				if s, ok := v.(string); ok && matchesGeoKeyword(s) {
					col.geographic = true
					break
				}
			}
		}
		distinct := countDistinct(values)
		col.categorical = float64(distinct) < float64(rowCount)/2 && distinct < categoryDistinctLimit
	}

	return col
}

// inferType applies the number → boolean → date → string cascade to a sample
func (p *Profiler) inferType(sample []any) profile.ColumnType {
	if len(sample) == 0 {
		return profile.TypeString
	}
	if all(sample, isNumber) {
		return profile.TypeNumber
	}
	if all(sample, isBoolean) {
		return profile.TypeBoolean
	}
	if all(sample, isDate) {
		return profile.TypeDate
	}
	return profile.TypeString
}

// computeQuality scores completeness and type consistency over every cell
func (p *Profiler) computeQuality(ds dataset.Dataset) profile.DataQuality {
	totalCells := ds.RowCount() * ds.ColumnCount()
	if totalCells == 0 {
		return profile.DataQuality{}
	}

	emptyCells := 0
	mismatchCells := 0
	for i := range ds.Headers {
		reference := dataset.KindEmpty
		for _, v := range ds.Column(i) {
			kind := dataset.KindOf(v)
			if kind == dataset.KindEmpty {
				emptyCells++
				continue
			}
			if reference == dataset.KindEmpty {
				reference = kind
				continue
			}
			if kind != reference {
				mismatchCells++
			}
		}
	}

	completeness := clamp01(1 - float64(emptyCells)/float64(totalCells))
	consistency := clamp01(1 - float64(mismatchCells)/float64(totalCells))
	return profile.DataQuality{
		Completeness: completeness,
		Consistency:  consistency,
		Accuracy:     clamp01((completeness + consistency) / 2),
	}
}

func all(values []any, pred func(any) bool) bool {
	for _, v := range values {
		if !pred(v) {
			return false
		}
	}
	return true
}

func isNumber(v any) bool {
	_, ok := dataset.ToFloat(v)
	return ok
}

func isBoolean(v any) bool {
	switch t := v.(type) {
	case bool:
		return true
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		return s == "true" || s == "false"
	default:
		return false
	}
}

func isDate(v any) bool {
	switch t := v.(type) {
	case time.Time:
		return !t.IsZero()
	case string:
		s := strings.TrimSpace(t)
		if isoDatePrefix.MatchString(s) || usDatePrefix.MatchString(s) {
			return true
		}
		for _, layout := range dateLayouts {
			if _, err := time.Parse(layout, s); err == nil {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// matchesGeoKeyword splits s into words (separators and camelCase boundaries)
// and reports whether any word is a geography keyword
func matchesGeoKeyword(s string) bool {
	for _, word := range splitWords(s) {
		if geoKeywords[word] {
			return true
		}
	}
	return false
}

func splitWords(s string) []string {
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, strings.ToLower(string(current)))
			current = current[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if unicode.IsUpper(r) && i > 0 && unicode.IsLower(runes[i-1]) {
				flush()
			}
			current = append(current, r)
		default:
			flush()
		}
	}
	flush()
	return words
}

func countDistinct(values []any) int {
	seen := make(map[string]struct{})
	for _, v := range values {
		if dataset.IsEmpty(v) {
			continue
		}
		seen[dataset.ToString(v)] = struct{}{}
	}
	return len(seen)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
