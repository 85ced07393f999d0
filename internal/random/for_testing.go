package random

// Sequence replays fixed draws in order and wraps around. Handy to force
// either branch of the victim selector.
type Sequence struct {
	draws []float64
	next  int
}

func NewSequence(draws ...float64) *Sequence {
	if len(draws) == 0 {
		draws = []float64{0}
	}
	return &Sequence{draws: draws}
}

func (s *Sequence) Float64() float64 {
	v := s.draws[s.next]
	s.next = (s.next + 1) % len(s.draws)
	return v
}
