package config

type LearningCfg struct {
	// Rate is the learning rate applied to the discounted regret on every history hit.
	// Example: 0.45.
	Rate float64 `yaml:"rate"`

	// InitialLRUWeight is the starting w_LRU; w_SRRIP starts at 1-InitialLRUWeight.
	// The initial LRU selection probability equals this value.
	InitialLRUWeight float64 `yaml:"initial_lru_weight"`

	// DiscountFloor is the decay factor reached after exactly Capacity cycles:
	//
	//   Discount = DiscountFloor ^ (1 / Capacity)
	//
	// Example:
	//   DiscountFloor: 0.005
	DiscountFloor float64 `yaml:"discount_floor"`

	// Discount is derived from DiscountFloor and Geometry.Capacity.
	// It is not read from YAML.
	Discount float64 // virtual: computed during init
}
