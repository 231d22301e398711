/*
Package interpolate produces per-element visual values for an instant inside a
transition.

Two entry points exist. InterpolateElements is the standard path: each element's
schedule is picked by priority (its own timing, an explicit override, the legacy
stagger, the transition itself) and evaluated at a global progress value.
InterpolateElementsWithCascade replaces the override and stagger layers with
hierarchy-aware cascade offsets computed by package cascade. Apply selects the
right path for a StateTransition.

Numeric fields are lerped linearly in their native units; rotation is not
wrapped. Visibility is discrete: it drives an opacity multiplier while the
element animates and snaps to the target value once eased progress reaches 1.
*/
package interpolate
