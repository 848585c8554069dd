package pricing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegionOf(t *testing.T) {
	assert.Equal(t, "us-central1", RegionOf("us-central1-a"))
	assert.Equal(t, "europe-west4", RegionOf("europe-west4-c"))
	assert.Equal(t, "us-east-1", RegionOf("us-east-1a"))
	assert.Equal(t, "eu-central-1", RegionOf("eu-central-1b"))
	assert.Equal(t, "global", RegionOf("global"))
	assert.Equal(t, "", RegionOf(""))
}

func TestHourlyRateDefaults(t *testing.T) {
	s := NewService()

	rate, ok := s.HourlyRate("e2-medium", "us-central1-a")
	require.True(t, ok)
	assert.Equal(t, 0.0332, rate)

	_, ok = s.HourlyRate("x9-imaginary-64", "us-central1-a")
	assert.False(t, ok)

	_, ok = s.HourlyRate("", "us-central1-a")
	assert.False(t, ok)

	assert.Equal(t, "USD", s.Currency())
}

func TestLoadFileMergesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.yaml")
	err := os.WriteFile(path, []byte(`
currency: EUR
machineTypes:
  e2-medium: 0.04
  c3-standard-4: 0.21
regions:
  europe-west1:
    e2-medium: 0.0368
`), 0o644)
	require.NoError(t, err)

	s, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "EUR", s.Currency())

	rate, ok := s.HourlyRate("e2-medium", "europe-west1-b")
	require.True(t, ok)
	assert.Equal(t, 0.0368, rate)

	rate, ok = s.HourlyRate("e2-medium", "us-central1-a")
	require.True(t, ok)
	assert.Equal(t, 0.04, rate)

	rate, ok = s.HourlyRate("c3-standard-4", "asia-east1-a")
	require.True(t, ok)
	assert.Equal(t, 0.21, rate)

	rate, ok = s.HourlyRate("n1-standard-1", "europe-west1-b")
	require.True(t, ok)
	assert.Equal(t, 0.0475, rate)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("machineTypes: [1, 2"), 0o644))
	_, err = LoadFile(path)
	assert.Error(t, err)

	s, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, "USD", s.Currency())
}
