package help

import (
	"github.com/Borislavv/go-lecar/config"
)

// Cfg is a single-set, two-way cache: small enough to reason about by hand.
func Cfg() *config.Policy {
	return Geometry(1, 2)
}

func Geometry(sets, ways uint32) *config.Policy {
	c := &config.Policy{
		Geometry: config.GeometryCfg{
			Sets:      sets,
			Ways:      ways,
			BlockSize: 64,
		},
		Learning: config.LearningCfg{
			Rate:             0.45,
			InitialLRUWeight: 0.5,
			DiscountFloor:    0.005,
		},
		SRRIP:   config.SRRIPCfg{MaxRRPV: 3},
		History: config.HistoryCfg{Key: config.HistoryKeyIncoming},
		Random:  config.RandomCfg{Seed: 1},
	}
	c.AdjustConfig()
	return c
}

// TelemetryCfg enables reports without the background logger.
func TelemetryCfg() *config.Policy {
	c := Cfg()
	c.Telemetry = &config.TelemetryCfg{}
	return c
}
