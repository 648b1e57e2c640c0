package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSamplerKeepsWindow(t *testing.T) {
	s := NewSampler()
	_, ok := s.Latest()
	assert.False(t, ok)

	for i := range 25 {
		s.Add(Sample{Time: float64(i)})
	}
	got := s.Samples()
	require.Len(t, got, SampleWindow)
	assert.Equal(t, 5.0, got[0].Time)
	assert.Equal(t, 24.0, got[SampleWindow-1].Time)

	latest, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, 24.0, latest.Time)
}

func TestSamplerReturnsCopy(t *testing.T) {
	s := NewSampler()
	s.Add(Sample{Workers: 12})
	got := s.Samples()
	got[0].Workers = 99
	assert.Equal(t, 12, s.Samples()[0].Workers)
}
