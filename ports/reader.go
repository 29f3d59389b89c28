package ports

import (
	"io"

	"datasight/domain/dataset"
)

// DatasetReader turns an uploaded file into a rectangular dataset. Fully empty
// rows and leading/trailing empty columns are trimmed before the core sees it.
type DatasetReader interface {
	ReadFile(path string) (*dataset.Dataset, error)
	ReadStream(r io.Reader, filename string) (*dataset.Dataset, error)
}
