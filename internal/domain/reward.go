package domain

import (
	"fmt"
	"math/rand/v2"
)

type RewardMode string

const (
	// RewardModeFixed pays a fixed common amount outside the rare tier.
	RewardModeFixed RewardMode = "fixed"
	// RewardModeRange pays a uniform random amount within [RangeMin, RangeMax]
	// outside the rare tier.
	RewardModeRange RewardMode = "range"
)

func (m RewardMode) Valid() bool {
	switch m {
	case RewardModeFixed, RewardModeRange:
		return true
	default:
		return false
	}
}

type RewardConfig struct {
	RareChance   float64
	RareAmount   int64
	Mode         RewardMode
	CommonAmount int64
	RangeMin     int64
	RangeMax     int64
}

func DefaultRewardConfig() RewardConfig {
	return RewardConfig{
		RareChance:   0.04,
		RareAmount:   1,
		Mode:         RewardModeFixed,
		CommonAmount: 100,
	}
}

func (c RewardConfig) Validate() error {
	if c.RareChance < 0 || c.RareChance > 1 {
		return fmt.Errorf("rare chance %v out of [0, 1]", c.RareChance)
	}
	if c.RareAmount < 0 {
		return fmt.Errorf("rare amount %d is negative", c.RareAmount)
	}
	if !c.Mode.Valid() {
		return fmt.Errorf("unsupported reward mode %q", c.Mode)
	}

	switch c.Mode {
	case RewardModeFixed:
		if c.CommonAmount < 0 {
			return fmt.Errorf("common amount %d is negative", c.CommonAmount)
		}
	case RewardModeRange:
		if c.RangeMin < 0 {
			return fmt.Errorf("range min %d is negative", c.RangeMin)
		}
		if c.RangeMax < c.RangeMin {
			return fmt.Errorf("range max %d below range min %d", c.RangeMax, c.RangeMin)
		}
	}

	return nil
}

// RewardPolicy draws reward amounts from a two-tier distribution: a rare
// fixed amount with RareChance probability, otherwise the configured common
// variant. With a nil rng the shared math/rand source is used, which is safe
// for concurrent draws.
type RewardPolicy struct {
	cfg RewardConfig
	rng *rand.Rand
}

func NewRewardPolicy(cfg RewardConfig, rng *rand.Rand) (*RewardPolicy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &RewardPolicy{cfg: cfg, rng: rng}, nil
}

func (p *RewardPolicy) Draw() int64 {
	if p.float64() < p.cfg.RareChance {
		return p.cfg.RareAmount
	}

	if p.cfg.Mode == RewardModeRange {
		return p.cfg.RangeMin + p.int64n(p.cfg.RangeMax-p.cfg.RangeMin+1)
	}

	return p.cfg.CommonAmount
}

func (p *RewardPolicy) float64() float64 {
	if p.rng != nil {
		return p.rng.Float64()
	}
	return rand.Float64()
}

func (p *RewardPolicy) int64n(n int64) int64 {
	if p.rng != nil {
		return p.rng.Int64N(n)
	}
	return rand.Int64N(n)
}
