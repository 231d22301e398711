/*
Package cascade computes per-element start offsets for staggered transitions.

Two levels are provided. CalculateStaggerDelays orders a flat list of elements by
a StaggerOrigin. HierarchyOffsets applies that ordering recursively over the
parent/child tree recorded in element snapshots, so that a child starts one step
after its parent and siblings fan out by origin. Presets maps catalogue names to
concrete CascadeConfig values.

All functions are pure.
*/
package cascade
