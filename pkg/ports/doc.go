/*
Package ports defines the driven ports (interfaces) for the storyboard engine.

These interfaces decouple the studio and the scheduler from external
implementations, allowing documents to live in memory, on disk or in Redis and
allowing playback to be driven by a real-time ticker or by a test clock.

# Key Interfaces

  - DocumentStore: persists and loads artboard documents.
  - FrameDriver: delivers frame callbacks to the playback scheduler.
*/
package ports
