package config

type GeometryCfg struct {
	// Sets is the number of cache sets (S).
	Sets uint32 `yaml:"sets"`

	// Ways is the associativity (W). Victim way W means "bypass".
	Ways uint32 `yaml:"ways"`

	// BlockSize is the line size in bytes, used only by the host simulator
	// to block-align addresses. Must be a power of two.
	BlockSize uint32 `yaml:"block_size"`

	// HashedIndex selects the set by hashing the block number (xxh3) instead of
	// taking its low bits. Used only by the host simulator.
	HashedIndex bool `yaml:"hashed_index"`

	// Capacity is Sets*Ways in lines. It is not read from YAML.
	Capacity uint64 // virtual: computed during init
}
