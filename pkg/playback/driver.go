package playback

import (
	"sync"
	"time"
)

// DefaultFrameRate is the TickerDriver rate when none is configured.
const DefaultFrameRate = 60

// TickerDriver is a ports.FrameDriver backed by a time.Ticker.
type TickerDriver struct {
	interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
}

// NewTickerDriver creates a driver firing fps times per second.
func NewTickerDriver(fps int) *TickerDriver {
	if fps <= 0 {
		fps = DefaultFrameRate
	}
	return &TickerDriver{interval: time.Second / time.Duration(fps)}
}

// Start begins delivering frames to fn, replacing any previous callback.
func (d *TickerDriver) Start(fn func(now time.Time)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()

	stop := make(chan struct{})
	d.stop = stop
	go func() {
		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case now := <-ticker.C:
				fn(now)
			}
		}
	}()
}

// Stop deregisters the pending frame. It does not wait for an in-flight callback.
func (d *TickerDriver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
}

// Running reports whether frames are being delivered.
func (d *TickerDriver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stop != nil
}

func (d *TickerDriver) stopLocked() {
	if d.stop != nil {
		close(d.stop)
		d.stop = nil
	}
}
