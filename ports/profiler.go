package ports

import (
	"datasight/domain/dataset"
	"datasight/domain/profile"
)

// ProfilerPort builds the structural profile of a dataset
type ProfilerPort interface {
	Profile(ds dataset.Dataset) *profile.DataProfile
}
