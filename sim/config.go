package sim

import (
	"time"

	"github.com/airdelay-sim/airdelay-sim/sim/airport"
)

// DriverConfig groups the collaborators and defaults of a Driver.
// Zero-valued fields are replaced by the defaults in NewDriver.
type DriverConfig struct {
	Scheduler    Scheduler        // default TickerScheduler
	TickInterval time.Duration    // real time between ticks; default DefaultTickInterval
	Catalog      *airport.Catalog // default airport.DefaultCatalog()
	Presets      *PresetRegistry  // default DefaultPresetRegistry()
	Seed         int64            // master seed for PartitionedRNG
	Speed        Speed            // initial speed; default SpeedNormal
}

// DefaultDriverConfig returns a config with every default filled in.
func DefaultDriverConfig() DriverConfig {
	return DriverConfig{}.withDefaults()
}

func (c DriverConfig) withDefaults() DriverConfig {
	if c.Scheduler == nil {
		c.Scheduler = TickerScheduler{}
	}
	if c.TickInterval <= 0 {
		c.TickInterval = DefaultTickInterval
	}
	if c.Catalog == nil {
		c.Catalog = airport.DefaultCatalog()
	}
	if c.Presets == nil {
		c.Presets = DefaultPresetRegistry()
	}
	if !c.Speed.Valid() {
		c.Speed = SpeedNormal
	}
	return c
}
