/*
Package timeline compiles an artboard's States and Transitions into a flat,
time-indexed ComputedTimeline and answers "what is active at time t" queries.

Compilation is pure and deterministic. States are sorted by Order; between two
consecutive states the explicit transition for that ordered pair is used when it
exists, otherwise an implicit transition of domain.DefaultTransitionDuration is
synthesized with an id prefixed by domain.ImplicitTransitionPrefix.
*/
package timeline
