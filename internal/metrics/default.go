package metrics

import "github.com/san-kum/ventsim/internal/vent"

// Default returns the metrics attached to every CLI run.
func Default(cfg vent.Config) []vent.Metric {
	return []vent.Metric{
		NewImpulse(cfg.Dt),
		NewOverpressureImpulse(cfg.AmbientPressure, cfg.Dt),
		NewTimeToPeak(),
		NewVentedMass(),
		NewMaxOutflow(),
	}
}
