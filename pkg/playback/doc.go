/*
Package playback turns the compiled timeline into per-element values over time.

Evaluate is a pure sampler: given an artboard snapshot, its timeline and a time
in ms it returns the frame at that instant. Scheduler is the stateful player:
it owns a PlaybackState for the timeline and a ChainPlaybackState for chains,
advances them on every frame delivered by a ports.FrameDriver (or by explicit
Advance calls) and publishes the derived element map.

Timeline and chain playback are mutually exclusive: starting one stops the
other. The scheduler reads the model through the Model interface on every
frame, so edits made while playing are picked up on the next tick.
*/
package playback
