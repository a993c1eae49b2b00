package config

import "time"

// Retry configuration constants
const (
	// Dataset fetch configuration. A failed load is terminal, so there is
	// exactly one attempt.
	FetchMaxAttempts = 1
	FetchTimeout     = 30 * time.Second

	// Sheet Write retry configuration
	SheetWriteMaxAttempts       = 3
	SheetWriteInitialWait       = 1 * time.Second
	SheetWriteMaxWait           = 10 * time.Second
	SheetWriteBackoffMultiplier = 2.0
	SheetWriteTimeout           = 30 * time.Second

	// Report deploy configuration
	DeployMaxAttempts = 1
	DeployTimeout     = 30 * time.Second
)

// RetryConfig defines retry behavior for operations
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
	Timeout     time.Duration
}

// Backoff returns how long to wait before the given retry (1-based), capped at MaxWait
func (r RetryConfig) Backoff(retry int) time.Duration {
	if retry <= 0 || r.InitialWait <= 0 {
		return 0
	}

	wait := float64(r.InitialWait)
	for i := 1; i < retry; i++ {
		wait *= r.Multiplier
		if r.MaxWait > 0 && time.Duration(wait) >= r.MaxWait {
			return r.MaxWait
		}
	}

	d := time.Duration(wait)
	if r.MaxWait > 0 && d > r.MaxWait {
		return r.MaxWait
	}
	return d
}

// ResilienceConfig contains all retry configurations
type ResilienceConfig struct {
	Fetch      RetryConfig
	SheetWrite RetryConfig
	Deploy     RetryConfig
}

// DefaultResilienceConfig provides sensible defaults
var DefaultResilienceConfig = ResilienceConfig{
	Fetch: RetryConfig{
		MaxAttempts: FetchMaxAttempts,
		Timeout:     FetchTimeout,
	},
	SheetWrite: RetryConfig{
		MaxAttempts: SheetWriteMaxAttempts,
		InitialWait: SheetWriteInitialWait,
		MaxWait:     SheetWriteMaxWait,
		Multiplier:  SheetWriteBackoffMultiplier,
		Timeout:     SheetWriteTimeout,
	},
	Deploy: RetryConfig{
		MaxAttempts: DeployMaxAttempts,
		Timeout:     DeployTimeout,
	},
}
