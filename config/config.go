package config

import (
	"errors"
	"fmt"
	"github.com/Borislavv/go-lecar/internal/weight"
	"gopkg.in/yaml.v3"
	"math"
	"os"
	"time"
)

var ErrInvalidConfig = errors.New("invalid config")

// Default returns the single-core ChampSim LLC configuration: 2048 sets, 16 ways, 64B lines.
func Default() *Policy {
	cfg := &Policy{
		Geometry: GeometryCfg{
			Sets:      2048,
			Ways:      16,
			BlockSize: 64,
		},
		Learning: LearningCfg{
			Rate:             0.45,
			InitialLRUWeight: 0.5,
			DiscountFloor:    0.005,
		},
		SRRIP:     SRRIPCfg{MaxRRPV: 3},
		History:   HistoryCfg{Key: HistoryKeyIncoming},
		Telemetry: &TelemetryCfg{Interval: 5 * time.Second},
	}
	cfg.AdjustConfig()
	return cfg
}

func (cfg *Policy) AdjustConfig() {
	if cfg.Geometry.BlockSize == 0 {
		cfg.Geometry.BlockSize = 64
	}
	cfg.Geometry.Capacity = uint64(cfg.Geometry.Sets) * uint64(cfg.Geometry.Ways)

	if cfg.Geometry.Capacity > 0 {
		cfg.Learning.Discount = weight.Discount(cfg.Learning.DiscountFloor, cfg.Geometry.Capacity)
	}

	if cfg.History.Key == "" {
		cfg.History.Key = HistoryKeyIncoming
	}
	cfg.History.IsVictimKeyed = cfg.History.Key == HistoryKeyVictim
	cfg.History.Len = cfg.History.Capacity
	if cfg.History.Len == 0 {
		cfg.History.Len = cfg.Geometry.Capacity
	}
}

func (cfg *Policy) Validate() error {
	switch {
	case cfg.Geometry.Sets == 0:
		return fmt.Errorf("%w: geometry.sets must be > 0", ErrInvalidConfig)
	case cfg.Geometry.Ways == 0:
		return fmt.Errorf("%w: geometry.ways must be > 0", ErrInvalidConfig)
	case cfg.Geometry.BlockSize&(cfg.Geometry.BlockSize-1) != 0:
		return fmt.Errorf("%w: geometry.block_size must be a power of two, got %d", ErrInvalidConfig, cfg.Geometry.BlockSize)
	case cfg.SRRIP.MaxRRPV == 0:
		return fmt.Errorf("%w: srrip.max_rrpv must be > 0", ErrInvalidConfig)
	case !(cfg.Learning.Rate >= 0) || math.IsInf(cfg.Learning.Rate, 1):
		return fmt.Errorf("%w: learning.rate must be finite and >= 0, got %v", ErrInvalidConfig, cfg.Learning.Rate)
	case !(cfg.Learning.InitialLRUWeight >= 0 && cfg.Learning.InitialLRUWeight <= 1):
		return fmt.Errorf("%w: learning.initial_lru_weight must be within [0,1], got %v", ErrInvalidConfig, cfg.Learning.InitialLRUWeight)
	case !(cfg.Learning.DiscountFloor > 0 && cfg.Learning.DiscountFloor < 1):
		return fmt.Errorf("%w: learning.discount_floor must be within (0,1), got %v", ErrInvalidConfig, cfg.Learning.DiscountFloor)
	case cfg.History.Key != HistoryKeyIncoming && cfg.History.Key != HistoryKeyVictim:
		return fmt.Errorf("%w: unknown history.key %q", ErrInvalidConfig, cfg.History.Key)
	}
	return nil
}

func LoadConfig(path string) (*Policy, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config yaml file %s: %w", path, err)
	}

	var cfg *Policy
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml from %s: %w", path, err)
	}
	if cfg == nil {
		return nil, fmt.Errorf("%w: empty config file %s", ErrInvalidConfig, path)
	}
	cfg.AdjustConfig()

	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}
	return cfg, nil
}
