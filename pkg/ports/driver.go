package ports

import "time"

// FrameDriver delivers frame callbacks until stopped. It is the scheduler's
// only suspension point: "wait for the next frame".
type FrameDriver interface {
	// Start registers fn to be called once per frame. Calling Start while
	// running replaces the callback.
	Start(fn func(now time.Time))

	// Stop deregisters the pending frame. It is safe to call when stopped.
	Stop()
}
