package telemetry

// NoOpReporter is used when telemetry is disabled.
type NoOpReporter struct{}

func (NoOpReporter) HeartbeatReport() {}

func (NoOpReporter) FinalReport() {}

func (NoOpReporter) Close() error { return nil }
