package sim

import "github.com/Borislavv/go-lecar/model"

// Stats are split per access type like ChampSim's LLC report.
type Stats struct {
	Access   [model.NumAccessTypes]uint64
	Hit      [model.NumAccessTypes]uint64
	Miss     [model.NumAccessTypes]uint64
	Bypasses uint64
}

func (s *Stats) record(typ model.AccessType, hit bool) {
	i := int(typ)
	if i >= model.NumAccessTypes {
		i = int(model.Load)
	}
	s.Access[i]++
	if hit {
		s.Hit[i]++
	} else {
		s.Miss[i]++
	}
}

func (s Stats) Total() (access, hit, miss uint64) {
	for i := 0; i < model.NumAccessTypes; i++ {
		access += s.Access[i]
		hit += s.Hit[i]
		miss += s.Miss[i]
	}
	return
}

// MissRate is misses/accesses, zero for an idle cache.
func (s Stats) MissRate() float64 {
	access, _, miss := s.Total()
	if access == 0 {
		return 0
	}
	return float64(miss) / float64(access)
}
