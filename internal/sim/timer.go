package sim

import (
	"sync"
	"time"
)

type Timer interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemTimer reads the monotonic wall clock.
type SystemTimer struct{}

func (SystemTimer) Now() time.Time        { return time.Now() }
func (SystemTimer) Sleep(d time.Duration) { time.Sleep(d) }

// VirtualTimer only moves when slept on or advanced, which makes a loop
// run fully deterministic.
type VirtualTimer struct {
	mu  sync.RWMutex
	now time.Time
}

func NewVirtualTimer(start time.Time) *VirtualTimer {
	return &VirtualTimer{now: start}
}

func (v *VirtualTimer) Now() time.Time {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.now
}

func (v *VirtualTimer) Sleep(d time.Duration) {
	v.Advance(d)
}

// Advance moves time forward without sleeping, e.g. to fake a stalled frame.
func (v *VirtualTimer) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.now = v.now.Add(d)
}
