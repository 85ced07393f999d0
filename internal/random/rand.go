package random

import "time"

// Source supplies the uniform draws that pick the acting tracker.
type Source interface {
	// Float64 returns a uniform value in [0,1).
	Float64() float64
}

// SplitMix is a SplitMix64 generator. Not safe for concurrent use,
// every policy instance owns its own.
type SplitMix struct {
	state uint64
}

// New seeds a generator. Zero seed means seeded from the wall clock.
func New(seed int64) *SplitMix {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &SplitMix{state: splitmixSeed(seed)}
}

// Float64 returns a uniform in [0,1) using 53 random bits (double precision).
func (s *SplitMix) Float64() float64 {
	const inv53 = 1.0 / 9007199254740992.0 // 2^53
	return float64(s.Uint64()>>11) * inv53
}

// Uint64 is the canonical SplitMix64 step: x += golden; mix(x).
func (s *SplitMix) Uint64() uint64 {
	s.state += 0x9e3779b97f4a7c15
	return mix(s.state)
}

func mix(z uint64) uint64 {
	z ^= z >> 30
	z *= 0xbf58476d1ce4e5b9
	z ^= z >> 27
	z *= 0x94d049bb133111eb
	z ^= z >> 31
	return z
}

// splitmixSeed turns a signed seed into a decent 64-bit starting state.
func splitmixSeed(seed int64) uint64 {
	z := mix(uint64(seed) + 0x9e3779b97f4a7c15)
	if z == 0 {
		z = 0x9e3779b97f4a7c15
	}
	return z
}
