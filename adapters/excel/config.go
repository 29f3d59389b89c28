package excel

// ReaderConfig controls how raw spreadsheet text becomes dataset cells
type ReaderConfig struct {
	Sheet          string `json:"sheet"`           // xlsx sheet to read; empty = first sheet
	CoerceNumbers  bool   `json:"coerce_numbers"`  // "12.5" -> float64
	CoerceBooleans bool   `json:"coerce_booleans"` // "TRUE"/"false" -> bool
	MaxRows        int    `json:"max_rows"`        // 0 = no limit
}

// DefaultReaderConfig returns sensible defaults for file ingestion
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		CoerceNumbers:  true,
		CoerceBooleans: true,
	}
}
