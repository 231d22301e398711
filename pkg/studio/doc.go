/*
Package studio owns the animation model: states, transitions and chains, grouped
by artboard.

A Studio is the single mutable owner of the model. Every mutation replaces the
affected records and bumps a revision counter; records already handed out by
Snapshot are never modified, so readers such as the playback scheduler can hold
a snapshot across a frame without locking.

Operations follow a no-error convention: unknown ids, dangling references and
duplicate pairs make a mutation a no-op and are reported through (id, ok) or
bool results. Only persistence (Save, Load) returns errors.
*/
package studio
