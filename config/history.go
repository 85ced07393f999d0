package config

// HistoryKey selects which address is written into the eviction history.
type HistoryKey string

const (
	// HistoryKeyIncoming records the address whose fill caused the eviction.
	HistoryKeyIncoming HistoryKey = "incoming"

	// HistoryKeyVictim records the address held by the evicted way.
	HistoryKeyVictim HistoryKey = "victim"
)

type HistoryCfg struct {
	// Capacity bounds the number of remembered evictions. Zero means Geometry.Capacity.
	Capacity uint64 `yaml:"capacity"`

	// Key defines the recorded address.
	// Supported values:
	//   - "incoming": the address passed to victim selection (default)
	//   - "victim":   the address of the line being evicted
	Key HistoryKey `yaml:"key"`

	// Len is the effective ledger capacity, derived from Capacity and Geometry.Capacity.
	// It is not read from YAML.
	Len uint64 // virtual: computed during init

	// IsVictimKeyed is derived from Key. It is not read from YAML.
	IsVictimKeyed bool // virtual: computed during init
}
