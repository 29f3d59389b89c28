package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

func TestIDIsEmpty(t *testing.T) {
	assert.True(t, ID("").IsEmpty())
	assert.False(t, ID("not-empty").IsEmpty())
}

func TestParseReportID(t *testing.T) {
	valid := NewReportID()

	tests := []struct {
		input    string
		hasError bool
	}{
		{valid.String(), false},
		{"", true},
		{"   ", true},
		{"not-a-uuid", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseReportID(tt.input)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, valid, got)
		})
	}
}

func TestHashJSONIsStable(t *testing.T) {
	a, err := HashJSON(map[string]int{"b": 2, "a": 1})
	require.NoError(t, err)
	b, err := HashJSON(map[string]int{"a": 1, "b": 2})
	require.NoError(t, err)

	assert.True(t, a.Equals(b))
	assert.Len(t, a.String(), 64)
}

func TestProviderErrorWrapsTimeout(t *testing.T) {
	err := NewProviderError("Groq", ErrProviderTimeout)
	assert.True(t, IsTimeout(err))
	assert.Contains(t, err.Error(), "Groq")
}
