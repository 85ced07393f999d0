package model

// AccessType mirrors the simulator's request kinds. The policy accepts it but does not act on it.
type AccessType uint8

const (
	Load AccessType = iota
	RFO
	Prefetch
	Writeback
)

// NumAccessTypes bounds per-type statistics arrays.
const NumAccessTypes = 4

func (t AccessType) String() string {
	switch t {
	case Load:
		return "LOAD"
	case RFO:
		return "RFO"
	case Prefetch:
		return "PREFETCH"
	case Writeback:
		return "WRITEBACK"
	default:
		return "UNKNOWN"
	}
}
