package config

import "time"

type TelemetryCfg struct {
	// Interval between periodic stats logs. Zero disables the background logger,
	// heartbeat and final reports are still emitted when the host asks for them.
	Interval time.Duration `yaml:"interval"`
}

func (cfg *TelemetryCfg) Enabled() bool {
	return cfg != nil
}
