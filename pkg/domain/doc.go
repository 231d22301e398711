/*
Package domain contains the core domain models of the storyboard animation engine.

It defines the persisted entities of an artboard's animation (States, Transitions
and Chains), the derived Timeline produced by the compiler, and the ephemeral
playback records written by the scheduler. This package is kept pure and free of
I/O or persistence concerns, following Hexagonal Architecture principles.

# Key Entities

  - AnimationState: a named snapshot of per-element visual values for one artboard.
  - AnimationStateElement: the visual values of a single canvas element inside a State.
  - StateTransition: a timed, directed edge between two States of the same artboard.
  - AnimationChain: an ordered sequence of State references played independently.
  - ComputedTimeline: the flat, time-indexed view compiled from States and Transitions.
  - PlaybackState / ChainPlaybackState: the scheduler's ephemeral cursors.

References between entities (element ids, parent ids, state ids) are weak: they are
plain identifiers resolved by lookup at read time and may dangle.
*/
package domain
