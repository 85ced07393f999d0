package config

// Policy groups configuration of every LeCaR subsystem.
// Telemetry can be disabled by setting it to nil.
type Policy struct {
	Geometry GeometryCfg `yaml:"geometry"`
	Learning LearningCfg `yaml:"learning"`
	SRRIP    SRRIPCfg    `yaml:"srrip"`
	History  HistoryCfg  `yaml:"history"`
	Random   RandomCfg   `yaml:"random"`

	// Telemetry configures heartbeat/final reports and the optional periodic stats logger.
	// If nil, a NoOp reporter is used.
	Telemetry *TelemetryCfg `yaml:"telemetry"`
}

// SRRIPCfg configures the re-reference interval tracker.
type SRRIPCfg struct {
	// MaxRRPV is the saturating value of the re-reference counter (2-bit SRRIP => 3).
	// Lines are inserted at MaxRRPV-1 and evicted at MaxRRPV.
	MaxRRPV uint32 `yaml:"max_rrpv"`
}

type RandomCfg struct {
	// Seed for the victim-policy coin. Zero means seeded from the wall clock.
	Seed int64 `yaml:"seed"`
}
