package config

import (
	"time"

	"github.com/vovakirdan/tui-ecosim/internal/core"
)

// Pacing tracks the watch view's playback speed within the configured bounds.
type Pacing struct {
	cfg  DisplayConfig
	rate int
}

// NewPacing starts at the configured tick rate.
func NewPacing(cfg DisplayConfig) *Pacing {
	p := &Pacing{cfg: cfg}
	p.SetRate(cfg.TickRate)
	return p
}

// Rate returns the current steps per second.
func (p *Pacing) Rate() int {
	return p.rate
}

// SetRate overrides the rate, clamped to [MinTickRate, MaxTickRate].
func (p *Pacing) SetRate(rate int) {
	p.rate = clamp(rate, p.cfg.MinTickRate, p.cfg.MaxTickRate)
}

// Faster doubles the rate.
func (p *Pacing) Faster() {
	p.SetRate(p.rate * 2)
}

// Slower halves the rate.
func (p *Pacing) Slower() {
	p.SetRate(p.rate / 2)
}

// Interval returns the delay between steps.
func (p *Pacing) Interval() time.Duration {
	return time.Second / time.Duration(p.rate)
}

// clamp restricts val to [lo, hi]. A non-positive lo is treated as 1.
func clamp(val, lo, hi int) int {
	lo = max(lo, 1)
	return core.Clamp(val, lo, max(hi, lo))
}
