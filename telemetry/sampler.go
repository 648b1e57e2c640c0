package telemetry

import "slices"

// SampleWindow is how many samples a Sampler keeps.
const SampleWindow = 20

// Sample is one point of the economy and army overview.
type Sample struct {
	Time        float64 `json:"time"`
	MineralRate float64 `json:"mineralRate"`
	GasRate     float64 `json:"gasRate"`
	SupplyUsed  int     `json:"supplyUsed"`
	Workers     int     `json:"workers"`
	Forces      int     `json:"forces"`
	ArmyLost    int     `json:"armyLost"`
	ArmyKilled  int     `json:"armyKilled"`
}

// Sampler keeps a rolling window of the most recent samples.
type Sampler struct {
	samples []Sample
}

func NewSampler() *Sampler {
	return &Sampler{samples: make([]Sample, 0, SampleWindow)}
}

// Add appends s, dropping the oldest sample once the window is full.
func (s *Sampler) Add(sample Sample) {
	if len(s.samples) == SampleWindow {
		copy(s.samples, s.samples[1:])
		s.samples = s.samples[:SampleWindow-1]
	}
	s.samples = append(s.samples, sample)
}

// Samples returns a copy, oldest first.
func (s *Sampler) Samples() []Sample { return slices.Clone(s.samples) }

func (s *Sampler) Latest() (Sample, bool) {
	if len(s.samples) == 0 {
		return Sample{}, false
	}
	return s.samples[len(s.samples)-1], true
}
