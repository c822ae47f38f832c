package auction

// Config holds the countdown tuning for the coordinator.
type Config struct {
	// InitialTimerSec is the countdown a fresh lot starts with.
	InitialTimerSec int `yaml:"initial_timer_sec"`
	// AntiSnipeThresholdSec: a bid accepted with fewer seconds than this
	// remaining resets the countdown to AntiSnipeResetSec.
	AntiSnipeThresholdSec int `yaml:"anti_snipe_threshold_sec"`
	AntiSnipeResetSec     int `yaml:"anti_snipe_reset_sec"`
	// MaxTimerSec bounds remainingSeconds regardless of configuration.
	MaxTimerSec int `yaml:"max_timer_sec"`
}

// DefaultConfig returns the countdown tuning used in production.
func DefaultConfig() Config {
	return Config{
		InitialTimerSec:       30,
		AntiSnipeThresholdSec: 10,
		AntiSnipeResetSec:     20,
		MaxTimerSec:           60,
	}
}
